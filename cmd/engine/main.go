package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/rawblock/muling-graph-engine/internal/api"
	"github.com/rawblock/muling-graph-engine/internal/config"
	"github.com/rawblock/muling-graph-engine/internal/engine"
	"github.com/rawblock/muling-graph-engine/internal/history"
)

func main() {
	log.Println("Starting money-muling graph analytics engine...")

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Setup WebSocket Hub for run-lifecycle narration.
	wsHub := api.NewHub()
	go wsHub.Run()

	var historyStore *history.Store
	if cfg.HistoryEnabled {
		ctx := context.Background()
		store, err := history.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			sugar.Warnw("failed to connect to history store, continuing without run persistence", "error", err)
		} else {
			defer store.Close()
			if err := store.InitSchema(ctx); err != nil {
				sugar.Warnw("history schema init failed", "error", err)
			} else {
				historyStore = store
			}
		}
	} else {
		sugar.Info("DATABASE_URL not set, running without run-history persistence")
	}

	opts := []engine.Option{
		engine.WithLogger(sugar),
		engine.WithHub(wsHub),
	}
	if historyStore != nil {
		opts = append(opts, engine.WithHistoryStore(historyStore))
	}
	eng := engine.New(opts...)

	r := api.SetupRouter(eng, historyStore, wsHub)

	sugar.Infow("engine listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
