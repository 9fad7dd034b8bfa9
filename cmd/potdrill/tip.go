package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/tui"
)

// TipCmd prints the tip for a pot, or the whole schedule
type TipCmd struct {
	Pot *int `arg:"" optional:"" help:"Pot size; omit to print the full schedule"`
}

func (c *TipCmd) Run(g *Globals) error {
	return c.run(os.Stdout, g)
}

func (c *TipCmd) run(w io.Writer, g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	currency := cfg.Drill.Currency

	if c.Pot == nil {
		_, err := fmt.Fprintln(w, tui.RenderTipTable(currency))
		return err
	}
	if *c.Pot < 0 {
		return fmt.Errorf("pot must not be negative, got %d", *c.Pot)
	}

	pot := *c.Pot
	_, err = fmt.Fprintf(w, "Pot %s: tip %s, rake %s, payout %s\n",
		amount(pot, currency),
		amount(drill.Tip(pot), currency),
		amount(drill.Rake(pot), currency),
		amount(pot-drill.Rake(pot)-drill.Tip(pot)-drill.Jackpot, currency))
	return err
}

// VersionCmd prints the build version
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(version)
	return nil
}
