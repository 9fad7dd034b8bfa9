// Package audit generates scenarios in bulk and checks every invariant, to
// catch generator defects that a single drill would rarely hit.
package audit

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// Options controls an audit run
type Options struct {
	Scenarios int
	Workers   int
	Seed      int64 // Worker i draws from randutil.New(Seed + i)
}

// Report summarizes an audit run
type Report struct {
	Scenarios      int
	Violations     []error
	MinPot         int
	MaxPot         int
	MeanPot        float64
	NegativePayout int
	RakeCapped     int
	TipTiers       []int // Scenario count per drill.TipTiers() row
	SeatedPlayers  map[int]int
}

// OK reports whether every scenario satisfied its invariants.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Run generates opts.Scenarios scenarios across opts.Workers goroutines. It
// stops early only if ctx is cancelled; invariant violations are collected in
// the report, not returned as errors.
func Run(ctx context.Context, opts Options, logger *log.Logger) (*Report, error) {
	if opts.Scenarios < 0 {
		return nil, fmt.Errorf("scenario count must not be negative, got %d", opts.Scenarios)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > opts.Scenarios && opts.Scenarios > 0 {
		workers = opts.Scenarios
	}
	logger = logger.WithPrefix("audit")
	logger.Debug("Starting audit", "scenarios", opts.Scenarios, "workers", workers, "seed", opts.Seed)

	partials := make([]*Report, workers)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		count := opts.Scenarios / workers
		if i < opts.Scenarios%workers {
			count++
		}
		g.Go(func() error {
			rep, err := runWorker(ctx, drill.NewGenerator(randutil.New(opts.Seed+int64(i))), count)
			partials[i] = rep
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("audit interrupted: %w", err)
	}

	report := merge(partials)
	logger.Info("Audit complete",
		"scenarios", report.Scenarios,
		"violations", len(report.Violations),
		"negativePayouts", report.NegativePayout)
	return report, nil
}

func newReport() *Report {
	return &Report{
		MinPot:        math.MaxInt,
		TipTiers:      make([]int, len(drill.TipTiers())),
		SeatedPlayers: make(map[int]int),
	}
}

func runWorker(ctx context.Context, gen *drill.Generator, count int) (rep *Report, err error) {
	rep = newReport()
	defer func() {
		// Generate panics on an invariant violation; record it instead.
		if r := recover(); r != nil {
			verr, ok := r.(error)
			if !ok {
				panic(r)
			}
			rep.Violations = append(rep.Violations, verr)
		}
	}()

	sum := 0
	for n := 0; n < count; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
		}
		s := gen.Generate()
		if err := s.Validate(); err != nil {
			rep.Violations = append(rep.Violations, err)
			continue
		}
		rep.observe(s)
		sum += s.Pot
	}
	if rep.Scenarios > 0 {
		rep.MeanPot = float64(sum) / float64(rep.Scenarios)
	}
	return rep, nil
}

func (r *Report) observe(s drill.Scenario) {
	r.Scenarios++
	r.MinPot = min(r.MinPot, s.Pot)
	r.MaxPot = max(r.MaxPot, s.Pot)
	if s.Payout < 0 {
		r.NegativePayout++
	}
	if s.Rake == drill.RakeCap {
		r.RakeCapped++
	}
	r.TipTiers[drill.TipTierIndex(s.Pot)]++
	r.SeatedPlayers[s.TotalPlayers]++
}

func merge(parts []*Report) *Report {
	out := newReport()
	weighted := 0.0
	for _, p := range parts {
		if p == nil {
			continue
		}
		out.Scenarios += p.Scenarios
		out.Violations = append(out.Violations, p.Violations...)
		out.NegativePayout += p.NegativePayout
		out.RakeCapped += p.RakeCapped
		weighted += p.MeanPot * float64(p.Scenarios)
		if p.Scenarios > 0 {
			out.MinPot = min(out.MinPot, p.MinPot)
			out.MaxPot = max(out.MaxPot, p.MaxPot)
		}
		for i, n := range p.TipTiers {
			out.TipTiers[i] += n
		}
		for seats, n := range p.SeatedPlayers {
			out.SeatedPlayers[seats] += n
		}
	}
	if out.Scenarios > 0 {
		out.MeanPot = weighted / float64(out.Scenarios)
	} else {
		out.MinPot = 0
	}
	return out
}
