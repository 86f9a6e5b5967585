package main

import (
	"context"
	"os"

	"execution-bot/bot"
	"execution-bot/config"
	"execution-bot/handlers"
	"execution-bot/keepalive"
	"execution-bot/logging"
	"execution-bot/store"
)

func main() {
	log := logging.GetLogger()
	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	st := store.New(cfg.DataDir)
	if err := st.Load(); err != nil {
		log.Fatalf("Error loading data files: %v", err)
	}

	// Keep-alive starts before the Discord session so the hosting platform
	// sees the port bound immediately.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	keepalive.New(cfg, log).Start(ctx)

	b, err := bot.New(cfg, st)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}
	handlers.Register(b)

	b.Run()

	cancel()
	b.Close()
}
