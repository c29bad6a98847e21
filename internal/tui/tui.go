// Package tui is an interactive terminal front-end for a playback controller.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AlxndrStoev/game-of-life/internal/playback"
)

var (
	aliveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("213")).Foreground(lipgloss.Color("16"))
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(32)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

const eventBuffer = 256

type evolvingMsg bool

type liveCellsMsg bool

type noticeMsg string

// Model is the bubbletea model for the terminal front-end.
type Model struct {
	ctrl      *playback.Controller
	events    chan tea.Msg
	snap      playback.Snapshot
	row, col  int
	evolving  bool
	hasLive   bool
	notice    string
	err       error
	quitting  bool
}

// New builds a Model around ctrl and subscribes to its signals.
func New(ctrl *playback.Controller) Model {
	events := make(chan tea.Msg, eventBuffer)
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
		}
	}
	ctrl.AddObserver(playback.ObserverFuncs{
		OnEvolving:  func(on bool) { send(evolvingMsg(on)) },
		OnLiveCells: func(alive bool) { send(liveCellsMsg(alive)) },
		OnNotify:    func(msg string) { send(noticeMsg(msg)) },
	})
	snap := ctrl.Snapshot()
	return Model{
		ctrl:    ctrl,
		events:  events,
		snap:    snap,
		row:     snap.Size / 2,
		col:     snap.Size / 2,
		hasLive: snap.Population > 0,
	}
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-events }
}

func (m Model) Init() tea.Cmd { return waitForEvent(m.events) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case evolvingMsg:
		m.evolving = bool(msg)
	case liveCellsMsg:
		m.hasLive = bool(msg)
	case noticeMsg:
		m.notice = string(msg)
	default:
		return m, nil
	}
	m.snap = m.ctrl.Snapshot()
	return m, waitForEvent(m.events)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Pause()
		m.quitting = true
		return m, tea.Quit
	case "n":
		m.notice = ""
		m.ctrl.Next()
	case "a":
		m.notice = ""
		m.ctrl.Auto()
	case "p":
		m.ctrl.Pause()
	case " ":
		if m.ctrl.State() == playback.AutoPlaying {
			m.ctrl.Pause()
		} else {
			m.notice = ""
			m.ctrl.Auto()
		}
	case "r":
		m.notice = ""
		m.ctrl.Reset()
	case "z":
		m.notice = ""
		m.ctrl.Randomize()
	case "t", "enter":
		m.err = m.ctrl.Toggle(m.row, m.col)
	case "up", "k":
		m.row = max(m.row-1, 0)
	case "down", "j":
		m.row = min(m.row+1, m.snap.Size-1)
	case "left", "h":
		m.col = max(m.col-1, 0)
	case "right", "l":
		m.col = min(m.col+1, m.snap.Size-1)
	case "+", "=":
		m.ctrl.SetInterval(max(m.ctrl.Interval()/2, time.Millisecond))
	case "-":
		m.ctrl.SetInterval(m.ctrl.Interval() * 2)
	}
	m.snap = m.ctrl.Snapshot()
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	board := boardStyle.Render(m.renderBoard())
	stats := statsStyle.Render(m.renderStats())

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, stats))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("n next • a auto • space/p pause • r reset • z random • arrows move • t toggle • +/- speed • q quit"))
	return b.String()
}

func (m Model) renderBoard() string {
	var b strings.Builder
	for row := 0; row < m.snap.Size; row++ {
		for col := 0; col < m.snap.Size; col++ {
			cell := deadStyle.Render("··")
			if m.snap.Alive(row, col) {
				cell = aliveStyle.Render("██")
			}
			if row == m.row && col == m.col {
				glyph := "  "
				if m.snap.Alive(row, col) {
					glyph = "▓▓"
				}
				cell = cursorStyle.Render(glyph)
			}
			b.WriteString(cell)
		}
		if row < m.snap.Size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderStats() string {
	var b strings.Builder
	for _, group := range m.ctrl.Parameters().Groups {
		b.WriteString(headerStyle.Render(group.Name))
		b.WriteString("\n")
		for _, p := range group.Params {
			b.WriteString(labelStyle.Render(p.Label))
			b.WriteString(valueStyle.Render(p.Value))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("Running"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%v", m.evolving)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Has life"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%v", m.hasLive)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Cursor"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d,%d", m.row, m.col)))
	return b.String()
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctrl *playback.Controller) error {
	p := tea.NewProgram(New(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	ctrl.Pause()
	return err
}
