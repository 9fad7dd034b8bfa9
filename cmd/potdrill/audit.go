package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/lox/potdrill/internal/audit"
	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/fileutil"
	"github.com/lox/potdrill/internal/tui"
)

// AuditCmd stress-tests the generator
type AuditCmd struct {
	Count   int    `short:"n" default:"100000" help:"Number of scenarios to generate"`
	Workers int    `short:"w" help:"Parallel workers (defaults to GOMAXPROCS)"`
	Report  string `type:"path" help:"Also write the report as JSON to this file"`
}

func (c *AuditCmd) Run(g *Globals) error {
	return c.run(os.Stdout, g)
}

func (c *AuditCmd) run(w io.Writer, g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	workers := c.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	report, err := audit.Run(ctx, audit.Options{
		Scenarios: c.Count,
		Workers:   workers,
		Seed:      cfg.Drill.Seed,
	}, logger)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, renderReport(report, cfg.Drill.Currency))
	if c.Report != "" {
		if err := fileutil.WriteJSON(c.Report, reportJSON(report)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote audit report", "path", c.Report)
	}
	if !report.OK() {
		return fmt.Errorf("%d of %d scenarios violated an invariant", len(report.Violations), report.Scenarios)
	}
	return nil
}

func renderReport(r *audit.Report, currency string) string {
	var b strings.Builder
	b.WriteString(tui.HeaderStyle.Render("Audit"))
	b.WriteString(fmt.Sprintf("\nScenarios:        %d", r.Scenarios))
	if r.Scenarios > 0 {
		b.WriteString(fmt.Sprintf("\nPot range:        %s - %s", amount(r.MinPot, currency), amount(r.MaxPot, currency)))
		b.WriteString(fmt.Sprintf("\nMean pot:         %.1f", r.MeanPot))
	}
	b.WriteString(fmt.Sprintf("\nRake capped:      %d", r.RakeCapped))
	b.WriteString(fmt.Sprintf("\nNegative payouts: %d", r.NegativePayout))

	if len(r.Violations) == 0 {
		b.WriteString("\n" + tui.SuccessStyle.Render("Violations:       0"))
	} else {
		b.WriteString("\n" + tui.ErrorStyle.Render(fmt.Sprintf("Violations:       %d", len(r.Violations))))
		for i, v := range r.Violations {
			if i == 5 {
				b.WriteString(fmt.Sprintf("\n  ... and %d more", len(r.Violations)-i))
				break
			}
			b.WriteString("\n  " + v.Error())
		}
	}

	b.WriteString("\n\n" + tui.TableHeaderStyle.Render(fmt.Sprintf("%-16s %9s", "Tip tier", "Scenarios")))
	tiers := drill.TipTiers()
	for i, n := range r.TipTiers {
		b.WriteString(fmt.Sprintf("\n%-16s %9d", amount(tiers[i].Tip, currency), n))
	}

	seats := make([]int, 0, len(r.SeatedPlayers))
	for p := range r.SeatedPlayers {
		seats = append(seats, p)
	}
	sort.Ints(seats)
	b.WriteString("\n\n" + tui.TableHeaderStyle.Render(fmt.Sprintf("%-16s %9s", "Seated players", "Scenarios")))
	for _, p := range seats {
		b.WriteString(fmt.Sprintf("\n%-16d %9d", p, r.SeatedPlayers[p]))
	}
	return b.String()
}

type auditFile struct {
	Scenarios      int            `json:"scenarios"`
	Violations     []string       `json:"violations"`
	MinPot         int            `json:"minPot"`
	MaxPot         int            `json:"maxPot"`
	MeanPot        float64        `json:"meanPot"`
	NegativePayout int            `json:"negativePayout"`
	RakeCapped     int            `json:"rakeCapped"`
	TipTiers       map[string]int `json:"tipTiers"`
	SeatedPlayers  map[int]int    `json:"seatedPlayers"`
}

func reportJSON(r *audit.Report) auditFile {
	out := auditFile{
		Scenarios:      r.Scenarios,
		Violations:     make([]string, len(r.Violations)),
		MinPot:         r.MinPot,
		MaxPot:         r.MaxPot,
		MeanPot:        r.MeanPot,
		NegativePayout: r.NegativePayout,
		RakeCapped:     r.RakeCapped,
		TipTiers:       make(map[string]int, len(r.TipTiers)),
		SeatedPlayers:  r.SeatedPlayers,
	}
	for i, v := range r.Violations {
		out.Violations[i] = v.Error()
	}
	tiers := drill.TipTiers()
	for i, n := range r.TipTiers {
		out.TipTiers[strconv.Itoa(tiers[i].Tip)] = n
	}
	return out
}
