package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/obodnikov/claude-chat-manager-sub000/internal/config"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/export"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/reconcile"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/session"
)

const (
	panelList       = 0
	panelTranscript = 1
)

// Data messages
type sessionsMsg struct{ sessions []session.Session }
type indexMsg struct {
	index reconcile.Index
	err   error
}
type transcriptMsg struct {
	sessionID   string
	messages    []reconcile.Message
	diagnostics []reconcile.Diagnostic
}
type exportedMsg struct {
	path string
	err  error
}

// Model is the main Bubble Tea model.
type Model struct {
	width  int
	height int

	cfg config.Config

	sessions []session.Session
	index    reconcile.Index
	indexErr error

	activePanel int
	cursor      int
	scrollPos   int

	// Transcript for the selected session
	transcript      []reconcile.Message
	diagnostics     []reconcile.Diagnostic
	transcriptForID string

	// Search/filter
	searching   bool
	searchInput textinput.Model
	filter      string

	// Reconciliation toggles
	includeTools bool
	strict       bool

	statusLine string
}

// NewModel builds the browser model around a loaded config.
func NewModel(cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 64

	return Model{
		cfg:          cfg,
		searchInput:  ti,
		includeTools: cfg.IncludeToolDetail,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadSessions(m.cfg), buildIndex(m.cfg))
}

func loadSessions(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		sessions := session.Discover(session.Roots{
			Desktop: cfg.DesktopRoot,
			Agent:   cfg.AgentRoot,
			CLI:     cfg.CLIRoot,
		})
		return sessionsMsg{sessions: sessions}
	}
}

func buildIndex(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		idx, err := reconcile.BuildIndex(cfg.DataRoot, reconcile.IndexOptions{})
		return indexMsg{index: idx, err: err}
	}
}

func (m Model) reconcileSelected() tea.Cmd {
	s := m.selected()
	if s == nil {
		return nil
	}
	idx := m.index
	includeTools := m.includeTools
	strict := m.strict
	sel := *s
	return func() tea.Msg {
		msgs, diags := reconcile.Reconcile(sel.Turns, idx, reconcile.StrategyFor(sel.Source), reconcile.Options{
			Strict:            strict,
			IncludeToolDetail: includeTools,
		})
		return transcriptMsg{sessionID: sel.ID, messages: msgs, diagnostics: diags}
	}
}

func (m Model) exportSelected() tea.Cmd {
	s := m.selected()
	if s == nil {
		return nil
	}
	sel := *s
	msgs := m.transcript
	diags := m.diagnostics
	dir := m.cfg.ExportDir
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, export.Filename(&sel))
		doc := export.Markdown(&sel, msgs, diags)
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m *Model) filtered() []session.Session {
	if m.filter == "" {
		return m.sessions
	}
	needle := strings.ToLower(m.filter)
	var out []session.Session
	for _, s := range m.sessions {
		hay := strings.ToLower(s.Summary + " " + s.Project + " " + s.ID + " " + string(s.Source))
		if strings.Contains(hay, needle) {
			out = append(out, s)
		}
	}
	return out
}

func (m *Model) selected() *session.Session {
	visible := m.filtered()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return &visible[m.cursor]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionsMsg:
		m.sessions = msg.sessions
		m.cursor = 0
		m.statusLine = fmt.Sprintf("%d sessions", len(m.sessions))
		return m, m.reconcileSelected()

	case indexMsg:
		m.index = msg.index
		m.indexErr = msg.err
		if msg.err != nil {
			m.statusLine = "index unavailable: " + msg.err.Error()
			return m, nil
		}
		return m, m.reconcileSelected()

	case transcriptMsg:
		if s := m.selected(); s != nil && s.ID == msg.sessionID {
			m.transcript = msg.messages
			m.diagnostics = msg.diagnostics
			m.transcriptForID = msg.sessionID
			m.scrollPos = 0
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.statusLine = "export failed: " + msg.err.Error()
		} else {
			m.statusLine = "exported " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch {
		case key.Matches(msg, keys.Enter):
			m.searching = false
			m.filter = m.searchInput.Value()
			m.cursor = 0
			return m, m.reconcileSelected()
		case key.Matches(msg, keys.Escape):
			m.searching = false
			m.searchInput.SetValue("")
			m.filter = ""
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Tab):
		m.activePanel = 1 - m.activePanel
		return m, nil

	case key.Matches(msg, keys.Left):
		m.activePanel = panelList
		return m, nil

	case key.Matches(msg, keys.Right):
		m.activePanel = panelTranscript
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.activePanel == panelList {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, m.reconcileSelected()
		}
		if m.scrollPos > 0 {
			m.scrollPos--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.activePanel == panelList {
			if m.cursor < len(m.filtered())-1 {
				m.cursor++
			}
			return m, m.reconcileSelected()
		}
		m.scrollPos++
		return m, nil

	case key.Matches(msg, keys.Tools):
		m.includeTools = !m.includeTools
		return m, m.reconcileSelected()

	case key.Matches(msg, keys.Strict):
		m.strict = !m.strict
		return m, m.reconcileSelected()

	case key.Matches(msg, keys.Export):
		return m, m.exportSelected()
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	listWidth := m.width / 3
	if listWidth < 30 {
		listWidth = 30
	}
	transcriptWidth := m.width - listWidth - 4
	bodyHeight := m.height - 3

	list := m.renderList(listWidth, bodyHeight)
	transcript := m.renderTranscript(transcriptWidth, bodyHeight)

	listStyle := panelBorder
	transcriptStyle := panelBorder
	if m.activePanel == panelList {
		listStyle = activePanelBorder
	} else {
		transcriptStyle = activePanelBorder
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Width(listWidth).Height(bodyHeight).Render(list),
		transcriptStyle.Width(transcriptWidth).Height(bodyHeight).Render(transcript),
	)

	return body + "\n" + m.statusBar()
}

func (m Model) renderList(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sessions"))
	if m.searching {
		b.WriteString("  " + m.searchInput.View())
	} else if m.filter != "" {
		b.WriteString("  " + dimStyle.Render("/"+m.filter))
	}
	b.WriteString("\n")

	visible := m.filtered()
	rows := height - 2
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(visible) && i < start+rows; i++ {
		s := visible[i]
		line := fmt.Sprintf("%-7s %s %s", s.Source, s.ShortID, s.Summary)
		line = clip(line, width-2)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("no sessions"))
	}
	return b.String()
}

func (m Model) renderTranscript(width, height int) string {
	s := m.selected()
	if s == nil {
		return dimStyle.Render("select a session")
	}

	var lines []string
	for _, msg := range m.transcript {
		var heading string
		switch msg.Role {
		case reconcile.RoleUser:
			heading = roleUserStyle.Render("User")
		case reconcile.RoleAssistant:
			heading = roleAssistantStyle.Render("Assistant")
		case reconcile.RoleTool:
			heading = roleToolStyle.Render("Tool")
		default:
			heading = msg.Role
		}
		lines = append(lines, heading)
		lines = append(lines, wrap(msg.Content, width-2)...)
		lines = append(lines, "")
	}
	for _, d := range m.diagnostics {
		lines = append(lines, diagStyle.Render(clip(d.String(), width-2)))
	}
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("empty transcript")}
	}

	rows := height - 1
	maxScroll := len(lines) - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	pos := m.scrollPos
	if pos > maxScroll {
		pos = maxScroll
	}
	end := pos + rows
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[pos:end], "\n")
}

func (m Model) statusBar() string {
	tools := "off"
	if m.includeTools {
		tools = "on"
	}
	mode := "lenient"
	if m.strict {
		mode = "strict"
	}
	left := fmt.Sprintf("tools:%s  mode:%s  index:%d", tools, mode, len(m.index))
	if m.indexErr != nil {
		left = "index error"
	}
	help := "j/k move  / filter  t tools  s strict  e export  q quit"
	line := left + "  " + accentStyle.Render(m.statusLine) + "  " + dimStyle.Render(help)
	return statusBarStyle.Width(m.width).Render(clip(line, m.width-2))
}

// clip truncates a rendered line to width runes.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

// wrap breaks content into lines no wider than width runes.
func wrap(content string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, line := range strings.Split(content, "\n") {
		runes := []rune(line)
		for len(runes) > width {
			out = append(out, string(runes[:width]))
			runes = runes[width:]
		}
		out = append(out, string(runes))
	}
	return out
}
