package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/draftscan/internal/analyzer"
)

// previewLines is how much of the selected section's preview the footer shows
const previewLines = 3

// SectionNode is a displayable node in the section tree. Flag nodes
// have a nil Section.
type SectionNode struct {
	Section  *analyzer.SectionReport
	Flag     string
	Depth    int
	Expanded bool
	Children []*SectionNode
	Parent   *SectionNode
}

// IsFlag reports whether the node is a flag leaf
func (n *SectionNode) IsFlag() bool {
	return n.Section == nil
}

// BuildSectionTree nests sections by their dotted numbers. "2.1" goes
// under the nearest preceding "2"; sections without a known parent are
// roots. With withFlags each section gets its flags as leading leaves.
func BuildSectionTree(sections []analyzer.SectionReport, withFlags, bySeverity bool) []*SectionNode {
	var roots []*SectionNode
	byNumber := make(map[string]*SectionNode)

	for i := range sections {
		sec := &sections[i]
		node := &SectionNode{Section: sec}

		if withFlags {
			for _, flag := range sec.Flags {
				node.Children = append(node.Children, &SectionNode{Flag: flag, Parent: node})
			}
		}

		if parent := findParent(byNumber, sec.Number); parent != nil {
			node.Parent = parent
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}

		// a repeated number shadows the earlier one for later subsections
		byNumber[sec.Number] = node
	}

	if bySeverity {
		sortBySeverity(roots)
	}
	setDepth(roots, 0)

	return roots
}

func findParent(byNumber map[string]*SectionNode, number string) *SectionNode {
	for {
		i := strings.LastIndex(number, ".")
		if i < 0 {
			return nil
		}
		number = number[:i]
		if node, ok := byNumber[number]; ok {
			return node
		}
	}
}

// sortBySeverity orders siblings by descending severity, flags first
func sortBySeverity(nodes []*SectionNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.IsFlag() || b.IsFlag() {
			return a.IsFlag() && !b.IsFlag()
		}
		return a.Section.Severity > b.Section.Severity
	})
	for _, n := range nodes {
		sortBySeverity(n.Children)
	}
}

func setDepth(nodes []*SectionNode, depth int) {
	for _, n := range nodes {
		n.Depth = depth
		n.Expanded = depth < 1
		setDepth(n.Children, depth+1)
	}
}

// BrowserModel is the bubbletea model for the section browser
type BrowserModel struct {
	report     *analyzer.Report
	roots      []*SectionNode
	nodes      []*SectionNode // Flattened list of visible nodes
	cursor     int
	viewport   viewport.Model
	ready      bool
	width      int
	height     int
	showFlags  bool
	bySeverity bool
	keys       browserKeyMap
	styles     browserStyles
}

type browserKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	ToggleFlags key.Binding
	ToggleSort  key.Binding
	Quit        key.Binding
}

type browserStyles struct {
	selected  lipgloss.Style
	high      lipgloss.Style
	medium    lipgloss.Style
	low       lipgloss.Style
	flag      lipgloss.Style
	tree      lipgloss.Style
	dim       lipgloss.Style
	preview   lipgloss.Style
	header    lipgloss.Style
	statusBar lipgloss.Style
	helpBar   lipgloss.Style
}

func defaultBrowserKeyMap() browserKeyMap {
	return browserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle"),
		),
		ToggleFlags: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle flags"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort by severity"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func defaultBrowserStyles() browserStyles {
	return browserStyles{
		selected:  lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true),
		high:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		medium:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		low:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		flag:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		tree:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		preview:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(1),
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236")).Padding(0, 1),
		statusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
		helpBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("235")),
	}
}

// NewBrowserModel creates a section browser for a report, starting in
// severity order when bySeverity is set
func NewBrowserModel(report *analyzer.Report, bySeverity bool) BrowserModel {
	m := BrowserModel{
		report:     report,
		showFlags:  true,
		bySeverity: bySeverity,
		keys:       defaultBrowserKeyMap(),
		styles:     defaultBrowserStyles(),
	}

	m.buildNodes()
	return m
}

func (m *BrowserModel) buildNodes() {
	m.roots = BuildSectionTree(m.report.Sections, m.showFlags, m.bySeverity)
	m.updateVisibleNodes()
}

func (m *BrowserModel) updateVisibleNodes() {
	m.nodes = nil
	for _, node := range m.roots {
		m.collectVisible(node)
	}

	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BrowserModel) collectVisible(node *SectionNode) {
	m.nodes = append(m.nodes, node)

	if node.Expanded {
		for _, child := range node.Children {
			m.collectVisible(child)
		}
	}
}

// syncViewport refreshes the tree content and scrolls the cursor into view
func (m *BrowserModel) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTree())

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// Init initializes the model
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Left):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = false
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = !m.nodes[m.cursor].Expanded
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.ToggleFlags):
			m.showFlags = !m.showFlags
			m.buildNodes()

		case key.Matches(msg, m.keys.ToggleSort):
			m.bySeverity = !m.bySeverity
			m.cursor = 0
			m.buildNodes()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// header, status bar, preview and help bar
		height := max(msg.Height-3-previewLines, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.YPosition = 1
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	m.syncViewport()
	return m, nil
}

// View renders the browser
func (m BrowserModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var sb strings.Builder

	title := m.report.Summary.Input.Path
	if name := m.report.Summary.Input.Docname; name != "" {
		title = name
	}
	sb.WriteString(m.styles.header.Width(m.width).Render(
		fmt.Sprintf("%s  %d sections  %d hotspots", title, m.report.Summary.SectionCount, len(m.report.Summary.Hotspots))))
	sb.WriteString("\n")

	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	var selected *SectionNode
	if len(m.nodes) > 0 && m.cursor < len(m.nodes) {
		selected = m.nodes[m.cursor]
	}

	sb.WriteString(m.styles.statusBar.Width(m.width).Render(m.renderDetailLine(selected)))
	sb.WriteString("\n")
	sb.WriteString(m.renderPreview(selected))
	sb.WriteString("\n")

	order := "document"
	if m.bySeverity {
		order = "severity"
	}
	help := fmt.Sprintf(" ↑↓ navigate  ←→ collapse/expand  f flags(%s)  s order(%s)  q quit",
		boolToOnOff(m.showFlags), order)
	sb.WriteString(m.styles.helpBar.Width(m.width).Render(help))

	return sb.String()
}

func (m *BrowserModel) renderTree() string {
	var sb strings.Builder

	for i, node := range m.nodes {
		sb.WriteString(m.renderNode(node, i == m.cursor))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (m *BrowserModel) renderNode(node *SectionNode, selected bool) string {
	var sb strings.Builder

	sb.WriteString(m.styles.tree.Render(strings.Repeat("  ", node.Depth)))
	if node.Parent != nil {
		sb.WriteString(m.styles.tree.Render(connector(node)))
	}

	if len(node.Children) > 0 {
		if node.Expanded {
			sb.WriteString(m.styles.dim.Render("▼ "))
		} else {
			sb.WriteString(m.styles.dim.Render("▶ "))
		}
	} else {
		sb.WriteString("  ")
	}

	var content string
	if node.IsFlag() {
		content = m.styles.flag.Render("⚑ " + node.Flag)
	} else {
		sec := node.Section
		content = m.bandStyle(sec.Severity).Render(fmt.Sprintf("%s %s", sec.Number, sec.Title)) +
			m.styles.dim.Render(fmt.Sprintf("  [%d]", sec.Severity))
		if !m.showFlags && len(sec.Flags) > 0 {
			content += m.styles.dim.Render(fmt.Sprintf(" %d flags", len(sec.Flags)))
		}
	}

	if selected {
		content = m.styles.selected.Render(content)
	}
	sb.WriteString(content)

	return sb.String()
}

func (m *BrowserModel) bandStyle(severity int) lipgloss.Style {
	switch analyzer.Band(severity) {
	case analyzer.BandHigh:
		return m.styles.high
	case analyzer.BandMedium:
		return m.styles.medium
	default:
		return m.styles.low
	}
}

func (m *BrowserModel) renderDetailLine(node *SectionNode) string {
	switch {
	case node == nil:
		return ""
	case node.IsFlag():
		return fmt.Sprintf(" %s  in %s %s", node.Flag, node.Parent.Section.Number, node.Parent.Section.Title)
	default:
		sec := node.Section
		return fmt.Sprintf(" Lines %d-%d  Severity: %d (%s)  Normative: %d  Xrefs: %d  Flags: %d",
			sec.StartLine, sec.EndLine, sec.Severity, analyzer.Band(sec.Severity),
			sec.Metrics.RFC2119.Total(), sec.Metrics.CrossrefCount, len(sec.Flags))
	}
}

func (m *BrowserModel) renderPreview(node *SectionNode) string {
	var text string
	if node != nil {
		if node.IsFlag() {
			node = node.Parent
		}
		text = node.Section.Preview
	}

	lines := strings.Split(text, "\n")
	if len(lines) > previewLines {
		lines = lines[:previewLines]
	}
	for len(lines) < previewLines {
		lines = append(lines, "")
	}
	for i, ln := range lines {
		lines[i] = m.styles.preview.Render(truncate(ln, m.width-2))
	}
	return strings.Join(lines, "\n")
}

// WriteSectionTree prints the section tree with flags to w
func WriteSectionTree(w io.Writer, report *analyzer.Report, bySeverity bool) error {
	for _, root := range BuildSectionTree(report.Sections, true, bySeverity) {
		if err := writeNode(w, root, ""); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w io.Writer, node *SectionNode, prefix string) error {
	line := prefix
	if node.Parent != nil {
		line += connector(node)
	}

	if node.IsFlag() {
		line += "⚑ " + node.Flag
	} else {
		line += fmt.Sprintf("%s %s  [%d]", node.Section.Number, node.Section.Title, node.Section.Severity)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	childPrefix := prefix
	if node.Parent != nil {
		if isLast(node) {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}
	for _, child := range node.Children {
		if err := writeNode(w, child, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func connector(node *SectionNode) string {
	if isLast(node) {
		return "└─ "
	}
	return "├─ "
}

func isLast(node *SectionNode) bool {
	siblings := node.Parent.Children
	return siblings[len(siblings)-1] == node
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func boolToOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
