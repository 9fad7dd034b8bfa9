package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/potdrill/internal/drill"
)

// View renders the drill
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.trainer.Session()
	var body string
	switch s.State {
	case drill.Idle:
		body = m.renderWelcome()
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.renderScenario(s),
			m.renderAnswers(s),
		)
		if s.State == drill.ShowingResults {
			body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderResults(s))
		}
	}

	sections := []string{m.renderHeader(s), body}
	if len(m.log) > 0 {
		sections = append(sections, PaneStyle.Render(m.history.View()))
	}
	if m.err != nil {
		sections = append(sections, ErrorStyle.Render(m.err.Error()))
	}
	sections = append(sections, m.renderHelp(s.State))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader(s drill.Session) string {
	title := "Pot Drill"
	if s.Number > 0 {
		title = fmt.Sprintf("Pot Drill  #%d", s.Number)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		HeaderStyle.Render(title),
		"  ",
		WarningStyle.Render("Score: "+s.Score.String()),
	)
}

func (m *Model) renderWelcome() string {
	var b strings.Builder
	b.WriteString("Work out the pot, the deductions and what the winner takes home.\n\n")
	b.WriteString(fmt.Sprintf("Rake is %d%% of the pot (max %d), the jackpot is always %d,\n",
		drill.RakePercent, drill.RakeCap, drill.Jackpot))
	b.WriteString("and the tip follows this table:\n\n")
	b.WriteString(RenderTipTable(m.currency))
	return PaneStyle.Render(b.String())
}

func (m *Model) renderScenario(s drill.Session) string {
	var b strings.Builder
	b.WriteString(StreetStyle.Render(fmt.Sprintf("%d players", s.Scenario.TotalPlayers)))
	b.WriteString(" are seated at the table.\n\n")
	b.WriteString(RenderRounds(s.Scenario, m.currency))
	return PaneStyle.Render(b.String())
}

func (m *Model) renderAnswers(s drill.Session) string {
	lines := make([]string, len(drill.Fields))
	for i, f := range drill.Fields {
		line := m.inputs[i].View()
		if s.State == drill.ShowingResults {
			v := s.Result.Verdicts[f]
			if v.Correct {
				line += " " + SuccessStyle.Render("✓")
			} else {
				line += " " + ErrorStyle.Render(fmt.Sprintf("%d", v.Canonical))
			}
		}
		lines[i] = line
	}

	style := PaneStyle
	if s.State == drill.AwaitingAnswers {
		style = FocusedPaneStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderResults(s drill.Session) string {
	var b strings.Builder
	if s.Result.AllCorrect {
		b.WriteString(SuccessStyle.Render("✅ " + s.Result.Headline()))
	} else {
		b.WriteString(ErrorStyle.Render("❌ " + s.Result.Headline()))
	}
	b.WriteString("\n")
	for _, f := range drill.Fields {
		v := s.Result.Verdicts[f]
		mark := SuccessStyle.Render("✓")
		if !v.Correct {
			mark = ErrorStyle.Render("✗")
		}
		b.WriteString(fmt.Sprintf("\n%s %s", mark, v.Correction(f, m.currency)))
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("\n\nAnswered in %.1fs", s.Elapsed().Seconds())))
	return PaneStyle.Render(b.String())
}

func (m *Model) renderHelp(state drill.State) string {
	var help string
	switch state {
	case drill.Idle:
		help = "Enter to start • Esc to quit"
	case drill.AwaitingAnswers:
		help = "Enter for next field, checks when all filled • Tab/↑↓ move • Esc to quit"
	case drill.ShowingResults:
		help = "Enter for next problem • PgUp/PgDn history • Esc to quit"
	}
	return InfoStyle.Render(help)
}

// RenderRounds formats the betting rounds of a scenario as a table.
func RenderRounds(s drill.Scenario, currency string) string {
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-10s %6s %7s %9s", "Round", "Folds", "Active", "Bet")))
	for _, r := range s.Rounds {
		folds := fmt.Sprintf("%6s", r.FoldsLabel())
		if r.Folds > 0 {
			folds = FoldStyle.Render(folds)
		}
		b.WriteString("\n")
		b.WriteString(StreetStyle.Render(fmt.Sprintf("%-10s", r.Street)))
		b.WriteString(" " + folds)
		b.WriteString(fmt.Sprintf(" %7d ", r.Players))
		b.WriteString(BetStyle.Render(fmt.Sprintf("%9s", strings.TrimSpace(fmt.Sprintf("%d %s", r.Bet, currency)))))
	}
	return b.String()
}

// RenderTipTable formats the tip schedule as a table.
func RenderTipTable(currency string) string {
	tiers := drill.TipTiers()
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-16s %6s", "Pot", "Tip")))
	for i, tier := range tiers {
		pot := fmt.Sprintf("%d+", tier.From)
		if i+1 < len(tiers) {
			pot = fmt.Sprintf("%d-%d", tier.From, tiers[i+1].From-1)
		}
		b.WriteString(fmt.Sprintf("\n%-16s %6s", pot, strings.TrimSpace(fmt.Sprintf("%d %s", tier.Tip, currency))))
	}
	return b.String()
}
