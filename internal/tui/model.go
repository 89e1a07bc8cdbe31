// Package tui is the view-seed screen. It forwards user commands and
// terminal focus changes to the disclosure controller and renders the
// controller's projection. The rendered seed is kept only between the
// Revealed and Redacted events.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benaskins/seedkeeper/internal/balance"
	"github.com/benaskins/seedkeeper/internal/disclosure"
	"github.com/benaskins/seedkeeper/internal/i18n"
	"github.com/benaskins/seedkeeper/internal/lifecycle"
)

const (
	seedGroup    = 9
	groupsPerRow = 3
)

// Disclosure is the controller surface the screen drives.
type Disclosure interface {
	SubmitPassword(candidate string)
	RequestHide()
	SetActiveIndex(index int)
	OnLifecycleEvent(ev lifecycle.Event)
	Snapshot() disclosure.Projection
	State() disclosure.Projection
	Events() <-chan disclosure.Event
}

// Config describes what the screen shows besides the seed.
type Config struct {
	// Identities is the number of selectable identities. Values below 1
	// disable identity navigation.
	Identities int
	// Own and Transfers feed the balance panel. The panel is hidden when
	// Own is empty.
	Own         balance.AddressSet
	Transfers   []balance.Transfer
	RecentLimit int
}

type eventMsg disclosure.Event

type eventsClosedMsg struct{}

func waitForEvent(ch <-chan disclosure.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

// Model is the bubbletea model of the view-seed screen.
type Model struct {
	ctrl      Disclosure
	cfg       Config
	input     textinput.Model
	keys      keyMap
	help      help.Model
	balance   *balance.View
	total     int64
	rows      []balance.Row
	status    string
	statusErr bool
	width     int

	// seedBox is rendered once per disclosure so frames do not copy the seed.
	seedBox   string
	seedIndex int
}

// New builds the screen for ctrl.
func New(ctrl Disclosure, cfg Config) Model {
	pi := textinput.New()
	pi.Placeholder = i18n.T("password")
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '•'
	pi.CharLimit = 256
	pi.Width = 40
	pi.Focus()

	m := Model{
		ctrl:    ctrl,
		cfg:     cfg,
		input:   pi,
		keys:    newKeyMap(),
		help:    help.New(),
		balance: balance.NewView(ctrl.State().Index),
	}
	if len(cfg.Own) > 0 {
		m.total = balance.Total(cfg.Transfers, cfg.Own)
		m.rows = balance.Recent(cfg.Transfers, cfg.Own, cfg.RecentLimit)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.ctrl.Events()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.FocusMsg:
		m.ctrl.OnLifecycleEvent(lifecycle.Focus)
		return m, nil

	case tea.BlurMsg:
		m.ctrl.OnLifecycleEvent(lifecycle.Blur)
		return m, nil

	case tea.ResumeMsg:
		m.ctrl.OnLifecycleEvent(lifecycle.Foreground)
		return m, nil

	case eventMsg:
		m.handleEvent(disclosure.Event(msg))
		return m, waitForEvent(m.ctrl.Events())

	case eventsClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.RequestHide()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Suspend):
			m.ctrl.OnLifecycleEvent(lifecycle.Background)
			return m, tea.Suspend
		case key.Matches(msg, m.keys.Hide):
			m.ctrl.RequestHide()
			m.input.Reset()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.ToggleBalance):
			m.balance.Toggle()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return m, nil
		}
	}

	if m.ctrl.State().Phase != disclosure.Hidden {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	if m.ctrl.State().Phase != disclosure.Hidden {
		return
	}
	candidate := m.input.Value()
	m.input.Reset()
	if candidate == "" {
		return
	}
	m.status, m.statusErr = "", false
	m.ctrl.SubmitPassword(candidate)
}

func (m *Model) step(delta int) {
	n := m.cfg.Identities
	if n <= 1 {
		return
	}
	next := ((m.ctrl.State().Index+delta)%n + n) % n
	m.ctrl.SetActiveIndex(next)
	m.balance.SetIndex(next)
	m.seedBox = ""
	m.input.Reset()
	m.status, m.statusErr = "", false
}

func (m *Model) handleEvent(ev disclosure.Event) {
	switch ev.Kind {
	case disclosure.EventWrongPassword:
		m.input.Reset()
		m.status, m.statusErr = i18n.T("wrong_password"), true
	case disclosure.EventRetrievalFailed:
		if ev.Failure == disclosure.MalformedCredentialData {
			m.status = i18n.T("malformed_credentials")
		} else {
			m.status = i18n.Tf("retrieval_failed", map[string]any{"Reason": i18n.T("store_unavailable")})
		}
		m.statusErr = true
	case disclosure.EventRevealed:
		m.status, m.statusErr = "", false
		m.seedBox = ""
		if snap := m.ctrl.Snapshot(); snap.Revealed() {
			m.seedBox = seedBoxStyle.Render(chunkSeed(snap.Seed))
			m.seedIndex = snap.Index
		}
	case disclosure.EventRedacted:
		m.seedBox = ""
		m.input.Reset()
		m.status, m.statusErr = i18n.T("redacted"), false
	}
}

func (m Model) View() string {
	st := m.ctrl.State()

	var b strings.Builder
	title := i18n.T("app_title")
	if m.cfg.Identities > 1 {
		title += "  " + mutedStyle.Render(i18n.Tf("identity", map[string]any{"Index": st.Index + 1}))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	switch {
	case st.Revealed() && m.seedBox != "" && m.seedIndex == st.Index:
		b.WriteString(m.seedBox)
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("esc  " + i18n.T("hide_seed")))
	case st.Phase != disclosure.Hidden:
		// Authenticating, or Revealed before its event arrived.
		b.WriteString(infoStyle.Render(i18n.T("retrieving")))
	default:
		b.WriteString(textStyle.Render(i18n.T("enter_password")))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("⏎  " + i18n.T("view_seed")))
	}
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(mutedStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	if len(m.cfg.Own) > 0 {
		b.WriteString(panelStyle.Render(m.balancePanel()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) balancePanel() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", i18n.T("balance"), textStyle.Render(m.balance.Text(m.total)))
	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Render(i18n.T("no_transactions")))
		return b.String()
	}
	for _, row := range m.rows {
		fmt.Fprintf(&b, "%s  %-10s %s%s %s\n",
			row.Time.Format("15:04 02/01"),
			i18n.T(row.Status.MessageID()),
			row.Sign,
			strconv.FormatFloat(row.Value, 'f', -1, 64),
			row.Unit,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// chunkSeed splits s into space-separated groups, groupsPerRow to a line.
func chunkSeed(s string) string {
	var groups []string
	for len(s) > seedGroup {
		groups = append(groups, s[:seedGroup])
		s = s[seedGroup:]
	}
	if s != "" {
		groups = append(groups, s)
	}

	var lines []string
	for len(groups) > groupsPerRow {
		lines = append(lines, strings.Join(groups[:groupsPerRow], " "))
		groups = groups[groupsPerRow:]
	}
	if len(groups) > 0 {
		lines = append(lines, strings.Join(groups, " "))
	}
	return strings.Join(lines, "\n")
}
