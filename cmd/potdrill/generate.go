package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/potdrill/internal/config"
	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/fileutil"
	"github.com/lox/potdrill/internal/tui"
	"github.com/muesli/termenv"
)

// GenerateCmd prints scenarios without running a drill
type GenerateCmd struct {
	Count   int    `short:"n" default:"1" help:"Number of scenarios to generate"`
	JSON    bool   `name:"json" help:"Print scenarios as JSON lines"`
	Answers bool   `help:"Include the answer key"`
	NoColor bool   `help:"Disable colored output"`
	Out     string `short:"o" type:"path" help:"Write to this file instead of stdout"`
}

// problem is a scenario without its answer key
type problem struct {
	Number       int           `json:"number"`
	TotalPlayers int           `json:"totalPlayers"`
	Rounds       []drill.Round `json:"rounds"`
}

func (c *GenerateCmd) Run(g *Globals) error {
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return c.run(os.Stdout, g)
}

func (c *GenerateCmd) run(w io.Writer, g *Globals) error {
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", c.Count)
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Out != "" {
		return fileutil.WriteAtomic(c.Out, 0o644, func(f io.Writer) error {
			return c.emit(f, cfg)
		})
	}
	return c.emit(w, cfg)
}

func (c *GenerateCmd) emit(w io.Writer, cfg *config.Config) error {
	gen := drill.NewGenerator(source(cfg))
	enc := json.NewEncoder(w)
	for i := 1; i <= c.Count; i++ {
		s := gen.Generate()

		if c.JSON {
			var v any = problem{Number: i, TotalPlayers: s.TotalPlayers, Rounds: s.Rounds[:]}
			if c.Answers {
				v = struct {
					Number int `json:"number"`
					drill.Scenario
				}{i, s}
			}
			if err := enc.Encode(v); err != nil {
				return fmt.Errorf("failed to encode scenario: %w", err)
			}
			continue
		}

		if i > 1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		text := tui.HeaderStyle.Render(fmt.Sprintf("Scenario #%d  %d players", i, s.TotalPlayers)) +
			"\n" + tui.RenderRounds(s, cfg.Drill.Currency)
		if c.Answers {
			text += "\n" + renderAnswerKey(s, cfg.Drill.Currency)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

func renderAnswerKey(s drill.Scenario, currency string) string {
	var b strings.Builder
	for _, f := range drill.Fields {
		b.WriteString(fmt.Sprintf("\n%-16s %s", f.Label()+":", tui.BetStyle.Render(amount(s.Value(f), currency))))
	}
	return b.String()
}

func amount(v int, currency string) string {
	return strings.TrimSpace(fmt.Sprintf("%d %s", v, currency))
}
