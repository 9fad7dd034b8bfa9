// Package tui is the terminal front end for the drill. It renders the current
// scenario, collects the five answers, and shows per-field corrections. All
// drill state lives in the trainer; the model only reacts to it.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/trainer"
)

// Model is the Bubble Tea model for a drill session
type Model struct {
	trainer  *trainer.Trainer
	logger   *log.Logger
	currency string

	inputs  []textinput.Model // One per drill.Fields entry
	focus   int
	history viewport.Model
	log     []string

	err      error
	width    int
	height   int
	quitting bool
}

// NewModel creates a drill model. The session starts when the learner
// presses enter on the welcome screen.
func NewModel(tr *trainer.Trainer, logger *log.Logger, currency string) *Model {
	inputs := make([]textinput.Model, len(drill.Fields))
	for i, f := range drill.Fields {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-16s", f.Label()+":")
		ti.Placeholder = currency
		ti.CharLimit = 12
		ti.Width = 12
		ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
		ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
		inputs[i] = ti
	}

	vp := viewport.New(40, 6)
	vp.SetContent("")

	return &Model{
		trainer:  tr,
		logger:   logger.WithPrefix("tui"),
		currency: currency,
		inputs:   inputs,
		history:  vp,
	}
}

// Run starts the interactive program and blocks until the learner quits or
// ctx is cancelled.
func Run(ctx context.Context, tr *trainer.Trainer, logger *log.Logger, currency string) error {
	p := tea.NewProgram(NewModel(tr, logger, currency), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run drill UI: %w", err)
	}
	return nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m, m.handleEnter()
		case "tab", "down":
			if m.state() == drill.AwaitingAnswers {
				m.setFocus(m.focus + 1)
			}
			return m, nil
		case "shift+tab", "up":
			if m.state() == drill.AwaitingAnswers {
				m.setFocus(m.focus - 1)
			}
			return m, nil
		case "pgup":
			m.history.HalfPageUp()
			return m, nil
		case "pgdown":
			m.history.HalfPageDown()
			return m, nil
		}
	}

	if m.state() != drill.AwaitingAnswers {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// handleEnter mirrors the drill's keyboard flow: start from the welcome
// screen, move to the next empty field, check once every field is filled,
// and load the next problem from the results screen.
func (m *Model) handleEnter() tea.Cmd {
	m.err = nil

	switch m.state() {
	case drill.Idle:
		return m.present(m.trainer.Start)

	case drill.AwaitingAnswers:
		if m.allFilled() {
			return m.check()
		}
		m.setFocus(m.nextEmpty())
		return nil

	case drill.ShowingResults:
		return m.present(m.trainer.Next)
	}
	return nil
}

func (m *Model) present(advance func() (drill.Session, error)) tea.Cmd {
	if _, err := advance(); err != nil {
		m.logger.Error("Failed to present scenario", "error", err)
		m.err = err
		return nil
	}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(0)
	return textinput.Blink
}

func (m *Model) check() tea.Cmd {
	raw := make(map[drill.Field]string, len(drill.Fields))
	for i, f := range drill.Fields {
		raw[f] = m.inputs[i].Value()
	}

	s, err := m.trainer.Check(raw)
	if err != nil {
		m.logger.Error("Failed to check answers", "error", err)
		m.err = err
		return nil
	}

	// Lock the answer sheet until the next problem.
	for i := range m.inputs {
		m.inputs[i].Blur()
	}

	mark := ErrorStyle.Render("✗")
	if s.Result.AllCorrect {
		mark = SuccessStyle.Render("✓")
	}
	m.addLogEntry(fmt.Sprintf("%s #%d  pot %d  %d/%d fields  %.1fs",
		mark, s.Number, s.Scenario.Pot, s.Result.CorrectCount(), len(drill.Fields), s.Elapsed().Seconds()))
	return nil
}

func (m *Model) addLogEntry(line string) {
	m.log = append(m.log, line)
	m.history.SetContent(strings.Join(m.log, "\n"))
	m.history.GotoBottom()
}

func (m *Model) setFocus(i int) {
	n := len(m.inputs)
	m.focus = ((i % n) + n) % n
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) allFilled() bool {
	for _, in := range m.inputs {
		if strings.TrimSpace(in.Value()) == "" {
			return false
		}
	}
	return true
}

// nextEmpty returns the first empty field after the focused one, wrapping.
func (m *Model) nextEmpty() int {
	n := len(m.inputs)
	for step := 1; step <= n; step++ {
		i := (m.focus + step) % n
		if strings.TrimSpace(m.inputs[i].Value()) == "" {
			return i
		}
	}
	return m.focus
}

func (m *Model) state() drill.State {
	return m.trainer.Session().State
}

// Focused returns the field that currently has keyboard focus.
func (m *Model) Focused() drill.Field {
	return drill.Fields[m.focus]
}

// Answer returns the raw text typed for a field.
func (m *Model) Answer(f drill.Field) string {
	return m.inputs[f].Value()
}

// History returns the result lines shown in the history pane.
func (m *Model) History() []string {
	return append([]string(nil), m.log...)
}
