// Command deployfn applies the point-in-time resolution functions to the
// warehouse. Run it once per schema change:
//
//	DATABASE_URL=postgres://... go run ./cmd/deployfn
package main

import (
	"context"
	"os"
	"os/signal"

	fundstore "fundsight/internal/fund/store"
	"fundsight/internal/platform/config"
	"fundsight/internal/platform/logger"
	"fundsight/internal/platform/postgres"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	defs, err := fundstore.FunctionDefinitions()
	if err != nil {
		log.Error("load function definitions", "error", err)
		os.Exit(1)
	}

	for _, def := range defs {
		if _, err := pool.Exec(ctx, def.SQL); err != nil {
			log.Error("deploy function failed", "file", def.Name, "error", err)
			os.Exit(1)
		}
		log.Info("deployed function", "file", def.Name)
	}
	log.Info("deployment complete", "functions", len(defs))
}
