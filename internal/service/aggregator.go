package service

import (
	"context"
	"encoding/json"

	"restaurant-catalog/internal/domain"
	"restaurant-catalog/internal/storage"

	"go.uber.org/zap"
)

// FilterAggregator consumes filter events and folds them into usage counters.
type FilterAggregator struct {
	Reader storage.MessageReader
	Stats  FilterStatsStore
	logger *zap.Logger
}

func NewFilterAggregator(reader storage.MessageReader, stats FilterStatsStore, logger *zap.Logger) *FilterAggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterAggregator{Reader: reader, Stats: stats, logger: logger}
}

// Start reads until ctx is done. Undecodable messages are skipped.
func (a *FilterAggregator) Start(ctx context.Context) error {
	a.logger.Info("Starting filter event aggregator")
	for {
		message, err := a.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			a.logger.Error("Error reading filter event", zap.Error(err))
			continue
		}

		var event domain.FilterEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			a.logger.Warn("Error unmarshaling filter event", zap.Error(err), zap.Int64("offset", message.Offset))
			continue
		}
		a.ProcessEvent(ctx, event)
	}
}

func (a *FilterAggregator) ProcessEvent(ctx context.Context, event domain.FilterEvent) {
	if event.Type != "filter_applied" {
		return
	}
	if err := a.Stats.RecordFilterEvent(ctx, event); err != nil {
		a.logger.Error("Error recording filter event",
			zap.String("session_id", event.SessionID),
			zap.String("filter", event.Filter),
			zap.Error(err))
		return
	}
	a.logger.Debug("Filter event recorded",
		zap.String("session_id", event.SessionID),
		zap.String("filter", event.Filter))
}
