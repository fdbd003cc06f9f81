package main

import (
	"errors"
	"os/signal"
	"syscall"

	"restaurant-catalog/config"
	"restaurant-catalog/internal/service"
	"restaurant-catalog/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Fold published filter events into Redis usage counters",
	Long: `Consumes the filter event topic and keeps per-filter counts, rating
threshold counts and the most frequent name queries in Redis. The counters
are served by "serve" under GET /api/stats/filters.

Requires KAFKA_BROKER and REDIS_HOST.`,
	RunE: runAggregate,
}

func runAggregate(cmd *cobra.Command, args []string) error {
	if !cfg.Kafka.Enabled() || !cfg.Redis.Enabled() {
		return errors.New("aggregate needs both kafka and redis configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer client.Close()

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()

	logger.Info("Aggregating filter events",
		zap.String("broker", cfg.Kafka.Broker),
		zap.String("topic", cfg.Kafka.Topic),
		zap.String("group_id", cfg.Kafka.GroupID))

	aggregator := service.NewFilterAggregator(reader, storage.NewRedisFilterStats(client), logger)
	return aggregator.Start(ctx)
}
