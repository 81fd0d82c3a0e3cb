package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage represents the current stage of a scan
type Stage int

const (
	StageRead Stage = iota
	StageSplit
	StageAnalyze
	StageEmit
	StageDone
)

// Message types for updating the model
type (
	StageMsg        Stage
	OperationMsg    string
	SectionStartMsg string
	SectionDoneMsg  struct{}
	DoneMsg         struct{ Err error }
	SectionCountMsg int
)

// Model is the Bubbletea model for progress display
type Model struct {
	stage        Stage
	spinner      spinner.Model
	progress     progress.Model
	currentOp    string
	sectionCount int
	sectionsDone int
	width        int
	quitting     bool
	err          error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(progress.WithDefaultGradient())

	return Model{
		stage:    StageRead,
		spinner:  s,
		progress: p,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-4, 60)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)
		m.currentOp = ""
		return m, nil

	case OperationMsg:
		m.currentOp = string(msg)
		return m, nil

	case SectionStartMsg:
		m.currentOp = string(msg)
		return m, nil

	case SectionCountMsg:
		m.sectionCount = int(msg)
		return m, nil

	case SectionDoneMsg:
		m.sectionsDone++
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	switch m.stage {
	case StageRead:
		sb.WriteString(m.spinner.View())
		if m.currentOp != "" {
			sb.WriteString(" " + m.currentOp + "...")
		} else {
			sb.WriteString(" Reading draft...")
		}

	case StageSplit:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Splitting sections")
		if m.currentOp != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.currentOp))
		}

	case StageAnalyze:
		if m.sectionCount > 0 {
			pct := float64(m.sectionsDone) / float64(m.sectionCount)
			sb.WriteString(m.progress.ViewAs(pct))
			sb.WriteString("\n")
		}
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		if m.currentOp != "" {
			sb.WriteString(m.currentOp)
		} else {
			sb.WriteString("Scoring sections...")
		}

	case StageEmit:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Writing report...")
	}

	return sb.String()
}
