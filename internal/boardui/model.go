// Package boardui provides the Bubble Tea leaderboard interface.
package boardui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpratama/typerush/internal/model"
	"github.com/dpratama/typerush/internal/store"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

var languages = []string{"All", "English", "Indonesia"}

// Model implements the Bubble Tea leaderboard UI.
type Model struct {
	store *store.Store

	modes      []int
	activeMode int
	langIdx    int
	search     textinput.Model
	searchMode bool

	scores []model.Score
	board  table.Model
	errMsg string

	width  int
	height int
}

// NewModel constructs a leaderboard model with an initial filter applied.
func NewModel(st *store.Store, filter model.BoardFilter) *Model {
	m := &Model{
		store: st,
		modes: []int{15, 30, 60},
	}
	for i, mode := range m.modes {
		if mode == filter.TimeMode {
			m.activeMode = i
		}
	}
	for i, lang := range languages {
		if strings.EqualFold(lang, filter.Language) {
			m.langIdx = i
		}
	}
	m.search = textinput.New()
	m.search.Prompt = "Player: "
	m.search.Cursor.SetMode(cursor.CursorBlink)
	m.search.SetValue(filter.NameSearch)
	m.board = buildBoardTable(nil, 0, 1)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveMode(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveMode(1)
			return m, tea.ClearScreen
		case "tab":
			m.langIdx = (m.langIdx + 1) % len(languages)
			m.refresh()
			return m, nil
		case "/":
			m.searchMode = true
			m.search.Focus()
			return m, textinput.Blink
		case "g", "home":
			m.board.GotoTop()
			return m, nil
		case "G", "end":
			m.board.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.board, cmd = m.board.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searchMode = false
		m.search.Blur()
		m.refresh()
		return m, nil
	case tea.KeyEsc:
		m.searchMode = false
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderTabs()
	body := m.board.View()
	footer := m.renderFooter()
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) moveMode(delta int) {
	next := m.activeMode + delta
	if next < 0 {
		next = len(m.modes) - 1
	}
	if next >= len(m.modes) {
		next = 0
	}
	m.activeMode = next
	m.refresh()
}

// Filter assembles the query filter from the current UI state.
func (m *Model) Filter() model.BoardFilter {
	return model.BoardFilter{
		TimeMode:   m.modes[m.activeMode],
		Language:   languages[m.langIdx],
		NameSearch: strings.TrimSpace(m.search.Value()),
	}
}

func (m *Model) refresh() {
	scores, err := m.store.Leaderboard(context.Background(), m.Filter())
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load leaderboard: %v", err)
		m.scores = nil
	} else {
		m.errMsg = ""
		m.scores = scores
	}
	m.rebuildTable()
}

func (m *Model) rebuildTable() {
	height := m.boardHeight()
	m.board = buildBoardTable(m.scores, m.width, height)
	m.board.Focus()
}

func (m *Model) updateLayout() {
	m.search.Width = maxInt(10, m.width-lipgloss.Width(m.search.Prompt)-2)
	m.rebuildTable()
}

func (m *Model) boardHeight() int {
	headerHeight := lipgloss.Height(m.renderTabs())
	height := m.height - headerHeight - 1
	if height < 1 {
		height = 1
	}
	return height
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.modes))
	for i, mode := range m.modes {
		label := fmt.Sprintf("%ds", mode)
		if i == m.activeMode {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	if m.searchMode {
		return m.search.View()
	}
	segments := []string{
		fmt.Sprintf("Lang %s", languages[m.langIdx]),
	}
	if v := strings.TrimSpace(m.search.Value()); v != "" {
		segments = append(segments, fmt.Sprintf("Search %q", v))
	}
	segments = append(segments, "←/→ mode", "tab lang", "/ search", "q quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func buildBoardTable(scores []model.Score, width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: 16},
		{Title: "Net WPM", Width: 8},
		{Title: "Gross WPM", Width: 10},
		{Title: "Accuracy", Width: 9},
		{Title: "Score", Width: 7},
		{Title: "Language", Width: 10},
		{Title: "Date", Width: 19},
	}
	rows := make([]table.Row, 0, len(scores))
	for i, sc := range scores {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			sc.Username,
			fmt.Sprintf("%d", sc.NetWPM),
			fmt.Sprintf("%d", sc.GrossWPM),
			fmt.Sprintf("%.1f%%", sc.Accuracy),
			fmt.Sprintf("%.1f", sc.WeightedScore),
			sc.Language,
			sc.PlayedAt,
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	t.SetStyles(boardTableStyles())
	return t
}

func boardTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
