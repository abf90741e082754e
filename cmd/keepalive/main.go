package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	config "github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/keepalive"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.LoadKeepAlive(log)
	if err != nil {
		log.Errorf(err, "failed to load keep-alive config")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := keepalive.NewPinger(cfg, log).Run(ctx); err != nil {
		log.Errorf(err, "keep-alive failed")
		os.Exit(1)
	}
}
