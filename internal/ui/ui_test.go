package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm/draftscan/internal/analyzer"
)

func sampleReport() *analyzer.Report {
	sections := []analyzer.SectionReport{
		{Number: "0", Title: "Front Matter", Severity: 0, Flags: []string{}, Preview: "Abstract"},
		{Number: "1", Title: "Introduction", Severity: 5, Flags: []string{}, Preview: "Intro text."},
		{Number: "1.1", Title: "Scope", Severity: 30, Flags: []string{"a"}, Preview: "Scope text."},
		{Number: "2", Title: "Syntax", Severity: 45, Flags: []string{"x", "y"}, Preview: "one\ntwo\nthree\nfour"},
		{Number: "2.1", Title: "Rules", Severity: 10, Flags: []string{}, Preview: ""},
	}
	return &analyzer.Report{
		Summary:  analyzer.Summary{Input: analyzer.Input{Path: "draft.txt"}, SectionCount: len(sections)},
		Sections: sections,
	}
}

func numbers(nodes []*SectionNode) []string {
	var out []string
	for _, n := range nodes {
		if n.IsFlag() {
			out = append(out, "!"+n.Flag)
		} else {
			out = append(out, n.Section.Number)
		}
	}
	return out
}

func send(m BrowserModel, msgs ...tea.Msg) BrowserModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(BrowserModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDetectMode(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		format string
		want   OutputMode
	}{
		{"json", OutputModeStructured},
		{"yaml", OutputModeStructured},
		{"html", OutputModeStructured},
		{"terminal", OutputModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := detectMode(&buf, tt.format); got != tt.want {
				t.Errorf("detectMode(%q) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestNewPipedOutput(t *testing.T) {
	var out, errOut bytes.Buffer

	u := New(&out, &errOut, "json")
	if u.Mode != OutputModeStructured || u.IsInteractive() {
		t.Errorf("json on a pipe: mode = %v", u.Mode)
	}
	if got := u.Styles.IconHigh; got != "HIGH:" {
		t.Errorf("styled icon %q on a pipe", got)
	}
	if p := New(&out, &errOut, FormatTerminal).StartProgress(); p != nil {
		t.Error("progress started without a terminal")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel()
	next, _ := m.Update(OperationMsg("Reading draft.txt"))
	if got := next.(Model).View(); !strings.Contains(got, "Reading draft.txt...") {
		t.Errorf("View() = %q", got)
	}

	next, _ = next.Update(StageMsg(StageAnalyze))
	next, _ = next.Update(SectionCountMsg(2))
	next, _ = next.Update(SectionStartMsg("Scoring 1 Introduction..."))
	if got := next.(Model).View(); !strings.Contains(got, "Scoring 1 Introduction...") {
		t.Errorf("View() = %q", got)
	}

	next, cmd := next.Update(DoneMsg{})
	if cmd == nil || next.(Model).View() != "" {
		t.Error("DoneMsg should quit and clear the view")
	}
}

func TestPlainStylesUseASCIIIcons(t *testing.T) {
	s := NewStyles(false)
	if got := s.BandIcon(analyzer.BandHigh); got != "HIGH:" {
		t.Errorf("BandIcon(high) = %q", got)
	}
	if got := s.Band(analyzer.BandMedium).Render("x"); got != "x" {
		t.Errorf("plain style rendered %q", got)
	}
}

func TestBuildSectionTree(t *testing.T) {
	report := sampleReport()

	roots := BuildSectionTree(report.Sections, false, false)
	if got := numbers(roots); strings.Join(got, ",") != "0,1,2" {
		t.Fatalf("roots = %v", got)
	}
	if got := numbers(roots[1].Children); strings.Join(got, ",") != "1.1" {
		t.Errorf("children of 1 = %v", got)
	}
	if roots[1].Children[0].Depth != 1 {
		t.Errorf("depth of 1.1 = %d, want 1", roots[1].Children[0].Depth)
	}

	withFlags := BuildSectionTree(report.Sections, true, false)
	if got := numbers(withFlags[2].Children); strings.Join(got, ",") != "!x,!y,2.1" {
		t.Errorf("children of 2 = %v", got)
	}

	bySeverity := BuildSectionTree(report.Sections, true, true)
	if got := numbers(bySeverity); strings.Join(got, ",") != "2,1,0" {
		t.Errorf("severity order = %v", got)
	}
}

func TestBuildSectionTree_OrphanBecomesRoot(t *testing.T) {
	sections := []analyzer.SectionReport{
		{Number: "3.2", Title: "Orphan"},
		{Number: "4", Title: "Next"},
	}
	roots := BuildSectionTree(sections, false, false)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
}

func TestBuildSectionTree_RepeatedNumber(t *testing.T) {
	sections := []analyzer.SectionReport{
		{Number: "1", Title: "First"},
		{Number: "1", Title: "Second"},
		{Number: "1.1", Title: "Child"},
	}
	roots := BuildSectionTree(sections, false, false)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if len(roots[0].Children) != 0 {
		t.Errorf("first 1 has children %v", numbers(roots[0].Children))
	}
	if len(roots[1].Children) != 1 || roots[1].Children[0].Section.Title != "Child" {
		t.Errorf("1.1 should nest under the nearest preceding 1, got %v", numbers(roots[1].Children))
	}
}

func TestNewBrowserModel_BySeverity(t *testing.T) {
	m := send(NewBrowserModel(sampleReport(), true), tea.WindowSizeMsg{Width: 100, Height: 20})
	if got := numbers(m.nodes); len(got) == 0 || got[0] != "2" {
		t.Fatalf("visible = %v, want section 2 first", got)
	}
	if !strings.Contains(m.View(), "order(severity)") {
		t.Error("help line should show severity order")
	}

	m = send(m, runes("s"))
	if got := numbers(m.nodes); got[0] != "0" {
		t.Errorf("after toggle visible = %v, want document order", got)
	}
}

func TestBrowserNavigation(t *testing.T) {
	m := NewBrowserModel(sampleReport(), false)

	if got := strings.Join(numbers(m.nodes), ","); got != "0,1,1.1,2,!x,!y,2.1" {
		t.Fatalf("visible = %s", got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"))
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	if got := strings.Join(numbers(m.nodes), ","); got != "0,1,2,!x,!y,2.1" {
		t.Errorf("after collapse = %s", got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.nodes) != 7 {
		t.Errorf("after toggle got %d nodes, want 7", len(m.nodes))
	}

	m = send(m, runes("f"))
	if got := strings.Join(numbers(m.nodes), ","); got != "0,1,1.1,2,2.1" {
		t.Errorf("without flags = %s", got)
	}

	m = send(m, runes("s"))
	if got := strings.Join(numbers(m.nodes), ","); got != "2,2.1,1,1.1,0" {
		t.Errorf("severity order = %s", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor not reset: %d", m.cursor)
	}
}

func TestBrowserCursorClamped(t *testing.T) {
	m := NewBrowserModel(sampleReport(), false)
	for i := 0; i < 20; i++ {
		m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.nodes)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.nodes)-1)
	}
}

func TestBrowserQuit(t *testing.T) {
	m := NewBrowserModel(sampleReport(), false)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestBrowserView(t *testing.T) {
	m := NewBrowserModel(sampleReport(), false)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 20}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	view := m.View()

	for _, want := range []string{"draft.txt", "5 sections", "2 Syntax", "Severity: 45 (high)", "one", "three", "s order(document)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
	if strings.Contains(view, "four") {
		t.Error("preview should be cut to three lines")
	}
}

func TestWriteSectionTree(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSectionTree(&buf, sampleReport(), false); err != nil {
		t.Fatal(err)
	}

	want := `0 Front Matter  [0]
1 Introduction  [5]
└─ 1.1 Scope  [30]
   └─ ⚑ a
2 Syntax  [45]
├─ ⚑ x
├─ ⚑ y
└─ 2.1 Rules  [10]
`
	if got := buf.String(); got != want {
		t.Errorf("WriteSectionTree() =\n%s\nwant\n%s", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
