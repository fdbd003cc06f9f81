package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-catalog/config"
	httpapi "restaurant-catalog/internal/api/http"
	"restaurant-catalog/internal/extract"
	"restaurant-catalog/internal/service"
	"restaurant-catalog/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveFixture string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve browser sessions over HTTP",
	Long: `Starts the HTTP API. Each POST /api/sessions opens a browser session that
performs one catalog load; filters are then applied per session.

Redis, Kafka and Postgres are used when their hosts are configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFixture, "fixture", "", "serve a recorded payload from disk instead of the upstream URL")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, err := extract.Parse(cfg.Upstream.RestaurantsPath)
	if err != nil {
		return fmt.Errorf("invalid restaurants path: %w", err)
	}

	var cache service.PayloadCache
	var stats service.FilterStatsReader
	if cfg.Redis.Enabled() {
		client, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		cache = storage.NewRedisPayloadCache(client, cfg.Redis.CacheTTL)
		stats = storage.NewRedisFilterStats(client)
		logger.Info("Payload cache enabled", zap.String("host", cfg.Redis.Host), zap.Duration("ttl", cfg.Redis.CacheTTL))
	}

	var journal service.LoadJournal
	if cfg.Postgres.Enabled() {
		db, err := config.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()
		pg := storage.NewPostgresJournal(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		journal = pg
		logger.Info("Load journal enabled", zap.String("host", cfg.Postgres.Host))
	}

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled() {
		writer := config.NewKafkaWriter(cfg.Kafka)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
		logger.Info("Filter events enabled", zap.String("broker", cfg.Kafka.Broker), zap.String("topic", cfg.Kafka.Topic))
	}

	loader := service.NewCatalogLoader(newSource(serveFixture), cache, path, logger)
	sessions := service.NewSessionService(loader, journal, publisher,
		service.DefaultQRGenerator{BaseURL: cfg.Server.QRBaseURL},
		service.SessionOptions{
			RatingMode:       service.ParseRatingMode(cfg.Filter.RatingMode),
			DefaultThreshold: cfg.Filter.RatingThreshold,
			MaxSessions:      cfg.Server.MaxSessions,
		}, logger)
	defer sessions.CloseAll()

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(sessions, stats), cfg.Server.AllowedOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Catalog API starting", zap.String("addr", server.Addr), zap.String("source", loader.Source()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if idle := cfg.Server.SessionIdleTTL; idle > 0 {
		g.Go(func() error {
			return sessions.RunJanitor(gctx, janitorInterval(idle), idle)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Shutting down catalog API")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func janitorInterval(idle time.Duration) time.Duration {
	if interval := idle / 4; interval > time.Second {
		return interval
	}
	return time.Second
}

// newSource reads from fixture when set, otherwise from the configured upstream.
func newSource(fixture string) service.PayloadSource {
	if fixture != "" {
		return storage.NewFileSource(fixture)
	}
	return storage.NewHTTPSource(&http.Client{Timeout: cfg.Upstream.Timeout}, cfg.Upstream.URL)
}
