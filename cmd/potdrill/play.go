package main

import (
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/lox/potdrill/internal/config"
	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/randutil"
	"github.com/lox/potdrill/internal/trainer"
	"github.com/lox/potdrill/internal/tui"
)

// PlayCmd runs the drill in the terminal
type PlayCmd struct {
	Currency string `help:"Currency label shown after amounts (overrides config)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Currency != "" {
		cfg.Drill.Currency = c.Currency
	}

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := newLogger(logFile, cfg).WithPrefix("play")
	logger.Info("Starting drill", "seed", cfg.Drill.Seed, "currency", cfg.Drill.Currency)

	ctx, cancel := signalContext(logger)
	defer cancel()

	tr := trainer.New(drill.NewGenerator(source(cfg)), quartz.NewReal(), logger)
	if err := tui.Run(ctx, tr, logger, cfg.Drill.Currency); err != nil {
		return fmt.Errorf("failed to run drill: %w", err)
	}

	stats := tr.Stats()
	score := tr.Session().Score
	logger.Info("Drill finished", "score", score.String(), "meanSeconds", stats.Mean())
	if score.Attempted > 0 {
		fmt.Printf("Final score: %s (%.0f%%)\n", score, score.Accuracy()*100)
		fmt.Printf("Median answer time %.1fs, weakest field: %s\n", stats.Median(), stats.WeakestField().Label())
	}
	return nil
}

// source returns the configured random source. Seed 0 draws from entropy.
func source(cfg *config.Config) randutil.Source {
	if cfg.Drill.Seed != 0 {
		return randutil.New(cfg.Drill.Seed)
	}
	return randutil.NewRandom()
}
