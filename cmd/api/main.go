package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	_ "sf-tree-identifier/docs"
	"sf-tree-identifier/internal/app"
	"sf-tree-identifier/internal/config"
	"sf-tree-identifier/internal/handler"
	"sf-tree-identifier/internal/logger"
	"sf-tree-identifier/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

//	@title			SF Street Tree API
//	@version		1.0
//	@description	Identify the street trees planted at a San Francisco address.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if err := logger.Setup(config.LogLevel, config.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("cannot set up logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize layers
	metrics := observability.NewMetrics()
	a, err := app.New(ctx, config, app.WithMetrics(metrics))
	if err != nil {
		log.Fatal().Err(err).Str("driver", config.DBDriver).Msg("cannot initialize app")
	}
	defer a.Close() //nolint:errcheck

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterConfig{
		Trees:   handler.NewTreeHandler(a.Trees),
		Resolve: handler.NewResolveHandler(a.Addresses),
		Metrics: metrics,
		Limiter: rate.NewLimiter(rate.Limit(config.RateLimitRPS), config.RateLimitBurst),
	})

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("address", config.ServerAddress).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
