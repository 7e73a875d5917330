package config

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from app.env or from environment variables.
type Config struct {
	DBDriver         string        `mapstructure:"DB_DRIVER"`
	DBSource         string        `mapstructure:"DB_SOURCE"`
	ServerAddress    string        `mapstructure:"SERVER_ADDRESS"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	LogFormat        string        `mapstructure:"LOG_FORMAT"`
	StreetNamesPath  string        `mapstructure:"STREET_NAMES_PATH"`
	StreetTypesPath  string        `mapstructure:"STREET_TYPES_PATH"`
	CityName         string        `mapstructure:"CITY_NAME"`
	MinMatchScore    int           `mapstructure:"MIN_MATCH_SCORE"`
	CheckNearby      bool          `mapstructure:"CHECK_NEARBY"`
	SpeciesCacheSize int           `mapstructure:"SPECIES_CACHE_SIZE"`
	RateLimitRPS     float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int           `mapstructure:"RATE_LIMIT_BURST"`
	ShutdownTimeout  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"DB_DRIVER":          "sqlite",
	"DB_SOURCE":          "data/sf_trees.db",
	"SERVER_ADDRESS":     "0.0.0.0:8080",
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "json",
	"STREET_NAMES_PATH":  "data/street_names.json",
	"STREET_TYPES_PATH":  "data/street_types.json",
	"CITY_NAME":          "San Francisco",
	"MIN_MATCH_SCORE":    90,
	"CHECK_NEARBY":       true,
	"SPECIES_CACHE_SIZE": 512,
	"RATE_LIMIT_RPS":     20.0,
	"RATE_LIMIT_BURST":   40,
	"SHUTDOWN_TIMEOUT":   "10s",
}

// LoadConfig reads configuration from app.env in path, if present, with
// environment variables taking precedence.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, eris.Wrap(err, "config: read file")
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, eris.Wrap(err, "config: unmarshal")
	}

	err = config.Validate()
	return config, err
}

// Validate checks values that would otherwise fail later and less clearly.
func (c Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return eris.Errorf("config: DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.DBSource == "" {
		return eris.New("config: DB_SOURCE is required")
	}
	if c.MinMatchScore < 0 || c.MinMatchScore > 100 {
		return eris.Errorf("config: MIN_MATCH_SCORE must be within [0, 100], got %d", c.MinMatchScore)
	}
	if c.SpeciesCacheSize <= 0 {
		return eris.Errorf("config: SPECIES_CACHE_SIZE must be positive, got %d", c.SpeciesCacheSize)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return eris.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}
