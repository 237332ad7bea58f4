// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpratama/typerush/internal/engine"
)

const tickInterval = 250 * time.Millisecond

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	resultBoxStyle   = lipgloss.NewStyle().
				Padding(1, 3).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A"))
	resultTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	resultValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type finalResult struct {
	netWPM        int
	grossWPM      int
	accuracy      float64
	weightedScore float64
}

// Model implements the Bubble Tea typing UI driven by an engine.Session.
type Model struct {
	session   *engine.Session
	supplier  engine.Supplier
	timeLimit time.Duration
	sandbox   bool

	width  int
	height int

	started  bool
	finished bool
	result   finalResult
	saveErr  string
}

// NewModel constructs a typing model and loads the first batch. A zero
// timeLimit means unlimited (sandbox) play.
func NewModel(session *engine.Session, supplier engine.Supplier, timeLimit time.Duration, sandbox bool) *Model {
	m := &Model{
		session:   session,
		supplier:  supplier,
		timeLimit: timeLimit,
		sandbox:   sandbox,
	}
	m.session.Start(m.supplier.Next())
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
		return m, nil
	case tickMsg:
		if m.finished || !m.started {
			return m, nil
		}
		if m.timeLimit > 0 && m.session.Elapsed() >= m.timeLimit {
			m.finishGame()
			return m, nil
		}
		return m, tickCmd()
	case tea.KeyMsg:
		if m.finished {
			return m, tea.Quit
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			// Give up: no score is recorded.
			m.session.Abort()
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			m.session.ProcessBackspace()
			return m, nil
		case tea.KeySpace:
			return m, m.handleRunes([]rune{' '})
		case tea.KeyRunes:
			return m, m.handleRunes(msg.Runes)
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) handleRunes(runes []rune) tea.Cmd {
	var cmd tea.Cmd
	for _, r := range runes {
		if m.finished {
			break
		}
		if r < 32 || r > 126 {
			continue
		}
		if !m.started {
			m.started = true
			m.session.ResetClock()
			cmd = tickCmd()
		}
		if m.session.BatchDone() && !m.rollover() {
			break
		}
		target := m.session.Target()
		pos := m.session.Cursor()
		m.session.ProcessKeystroke(r, target[pos])
		if m.session.BatchDone() && !m.rollover() {
			break
		}
	}
	return cmd
}

// rollover loads the next batch, finishing the game when the supplier is
// exhausted. Reports whether play continues.
func (m *Model) rollover() bool {
	next := m.supplier.Next()
	if len(next) == 0 {
		m.finishGame()
		return false
	}
	m.session.LoadBatch(next)
	return true
}

func (m *Model) finishGame() {
	if m.finished {
		return
	}
	m.finished = true
	elapsed := m.session.Elapsed()
	m.result = finalResult{
		netWPM:        m.session.NetWPM(elapsed),
		grossWPM:      m.session.GrossWPM(elapsed),
		accuracy:      m.session.Accuracy(),
		weightedScore: m.session.WeightedScore(elapsed),
	}
	if err := m.session.Finish(context.Background()); err != nil {
		m.saveErr = fmt.Sprintf("failed to save score: %v", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished {
		return m.renderResults()
	}
	if len(m.session.Target()) == 0 {
		return ""
	}
	cursorIndex := -1
	if !m.session.BatchDone() {
		cursorIndex = m.session.Cursor()
	}
	styledRunes := buildStyledRunes(m.session.Target(), m.session.Status(), cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	segments := []string{m.timerSegment()}
	if m.started {
		elapsed := m.session.Elapsed()
		segments = append(segments,
			fmt.Sprintf("%d WPM", m.session.NetWPM(elapsed)),
			fmt.Sprintf("%.1f%%", m.session.Accuracy()),
		)
	}
	segments = append(segments, fmt.Sprintf("Errors %d", m.session.TotalErrors()))
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) timerSegment() string {
	if m.timeLimit <= 0 {
		if !m.started {
			return "∞"
		}
		return fmt.Sprintf("%ds", int(m.session.Elapsed().Seconds()))
	}
	if !m.started {
		return fmt.Sprintf("%ds", int(m.timeLimit.Seconds()))
	}
	remaining := m.timeLimit - m.session.Elapsed()
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%ds", int(remaining.Seconds()))
}

func (m *Model) renderResults() string {
	rows := []string{
		resultTitleStyle.Render("Results"),
		"",
		fmt.Sprintf("Net WPM    %s", resultValueStyle.Render(fmt.Sprintf("%d", m.result.netWPM))),
		fmt.Sprintf("Gross WPM  %s", resultValueStyle.Render(fmt.Sprintf("%d", m.result.grossWPM))),
		fmt.Sprintf("Accuracy   %s", resultValueStyle.Render(fmt.Sprintf("%.1f%%", m.result.accuracy))),
		fmt.Sprintf("Score      %s", resultValueStyle.Render(fmt.Sprintf("%.1f", m.result.weightedScore))),
	}
	switch {
	case m.saveErr != "":
		rows = append(rows, "", incorrectStyle.Render(m.saveErr))
	case m.sandbox:
		rows = append(rows, "", footerStyle.Render("Score not saved (sandbox mode)"))
	}
	rows = append(rows, "", footerStyle.Render("press any key to exit"))

	box := resultBoxStyle.Render(strings.Join(rows, "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
