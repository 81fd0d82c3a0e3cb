package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
}

// StartProgress starts the progress display if in interactive mode
// Returns nil if not in interactive mode
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
	}

	go func() {
		// Rendering errors only affect the progress display
		_, _ = p.Run()
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetOperation updates the current operation description
func (pc *ProgressController) SetOperation(op string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(OperationMsg(op))
	}
}

// SetSectionCount sets the total number of sections to score
func (pc *ProgressController) SetSectionCount(count int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(SectionCountMsg(count))
	}
}

// SectionStart indicates a section is being scored
func (pc *ProgressController) SectionStart(number, title string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(SectionStartMsg(fmt.Sprintf("Scoring %s %s...", number, title)))
	}
}

// SectionDone indicates a section has been scored
func (pc *ProgressController) SectionDone() {
	if pc != nil && pc.program != nil {
		pc.program.Send(SectionDoneMsg{})
	}
}

// Done signals that all work is complete
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		pc.program.Wait()
	}
}
