package main

import (
	"os"

	"github.com/lox/potdrill/internal/server"
)

// ServeCmd runs the WebSocket drill server
type ServeCmd struct {
	Addr string `short:"a" help:"Server address to bind to (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger := newLogger(os.Stderr, cfg)
	logger.Info("Starting pot drill server", "addr", addr, "seed", cfg.Drill.Seed)

	ctx, cancel := signalContext(logger)
	defer cancel()

	var opts []server.Option
	if cfg.Drill.Seed != 0 {
		opts = append(opts, server.WithSeed(cfg.Drill.Seed))
	}
	return server.NewServer(addr, logger, opts...).Start(ctx)
}
