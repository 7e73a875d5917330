package main

import (
	"context"
	"fmt"
	"os"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/config"
	"sf-tree-identifier/internal/logger"
	"sf-tree-identifier/internal/repository"
	"sf-tree-identifier/internal/streets"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configDir   string
	treeFile    string
	speciesFile string
	driver      string
	source      string
	vocabulary  string
	anySite     bool
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Build the street tree index from the SF Street Tree List",
	Long: "Reads the SF Street Tree List CSV, keeps the trees planted along the street,\n" +
		"normalizes their addresses and loads them with the species catalog into the configured database.\n" +
		"The distinct street names are written to STREET_NAMES_PATH for address matching.",
	Example:      `  importer --file Street_Tree_List.csv --species mapped_species.csv`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.Setup(cfg.LogLevel, "console"); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if driver != "" {
			cfg.DBDriver = driver
		}
		if source != "" {
			cfg.DBSource = source
		}
		if vocabulary != "" {
			cfg.StreetNamesPath = vocabulary
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configDir, "config", "./configs", "directory containing app.env")
	rootCmd.Flags().StringVar(&treeFile, "file", "", "path to the street tree list CSV")
	rootCmd.Flags().StringVar(&speciesFile, "species", "", "optional qSpecies,urlPath CSV of SelecTree ids")
	rootCmd.Flags().StringVar(&driver, "driver", "", "override DB_DRIVER (postgres or sqlite)")
	rootCmd.Flags().StringVar(&source, "source", "", "override DB_SOURCE")
	rootCmd.Flags().StringVar(&vocabulary, "vocabulary", "", "override STREET_NAMES_PATH, where the street names are written")
	rootCmd.Flags().BoolVar(&anySite, "any-site", false, "keep trees regardless of site info")
	_ = rootCmd.MarkFlagRequired("file")
}

func run(ctx context.Context, cfg config.Config) error {
	abbr, err := streets.LoadAbbreviations(cfg.StreetTypesPath)
	if err != nil {
		return err
	}
	normalizer := address.NewNormalizer(abbr, address.WithCity(cfg.CityName))

	var (
		ds    *Dataset
		stats Stats
		urls  map[string]int
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		f, err := os.Open(treeFile)
		if err != nil {
			return eris.Wrap(err, "importer: failed to open tree list")
		}
		defer f.Close()
		ds, stats, err = ParseTreeList(f, normalizer, ParseOptions{AnySite: anySite})
		return err
	})
	if speciesFile != "" {
		g.Go(func() error {
			f, err := os.Open(speciesFile)
			if err != nil {
				return eris.Wrap(err, "importer: failed to open species list")
			}
			defer f.Close()
			urls, err = ParseSpeciesURLs(f)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("no_address", stats.NoAddress).
		Int("site", stats.Site).
		Int("non_species", stats.NonSpecies).
		Int("stairway", stats.Stairway).
		Int("invalid", stats.Invalid).
		Msg("tree list parsed")

	if urls != nil {
		if unmapped := AttachURLs(ds.Species, urls); len(unmapped) > 0 {
			log.Warn().Strs("species", unmapped).Msg("species in the tree list have no SelecTree id")
		}
	}

	if err := load(ctx, cfg, ds); err != nil {
		return err
	}

	vocab := streets.NewVocabulary(ds.StreetNames())
	if err := streets.SaveVocabulary(cfg.StreetNamesPath, vocab); err != nil {
		return err
	}
	log.Info().Int("street_names", vocab.Len()).Str("path", cfg.StreetNamesPath).Msg("street names written")
	return nil
}

func load(ctx context.Context, cfg config.Config, ds *Dataset) error {
	store, err := repository.Open(ctx, cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	existing, err := store.CountTrees(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		return eris.Errorf("importer: database already holds %d trees, import into an empty database", existing)
	}

	if _, err := store.LoadSpecies(ctx, ds.Species); err != nil {
		return err
	}
	if _, err := store.LoadTrees(ctx, ds.Trees); err != nil {
		return err
	}

	// Verify
	count, err := store.CountTrees(ctx)
	if err != nil {
		return err
	}
	if count != int64(len(ds.Trees)) {
		return eris.Errorf("importer: record count mismatch: expected %d, got %d", len(ds.Trees), count)
	}

	log.Info().
		Str("driver", cfg.DBDriver).
		Int("species", len(ds.Species)).
		Int64("trees", count).
		Msg("import complete")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
