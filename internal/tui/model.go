// Package tui provides the interactive drafting screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/idraft/internal/app"
	"github.com/runoshun/idraft/internal/domain"
	"github.com/runoshun/idraft/internal/usecase"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeConfirmDelete
)

// Busy tells which long-running action is in flight.
type Busy int

const (
	BusyNone Busy = iota
	BusyLogin
	BusySubmit
)

// Model is the drafting screen.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	container *app.Container
	ctx       context.Context
	cancel    context.CancelFunc

	// State
	drafts  []domain.Draft
	err     error
	status  string
	authURL string
	repo    domain.RepoRef

	// Components
	keys     KeyMap
	styles   Styles
	help     help.Model
	addInput textinput.Model
	spinner  spinner.Model

	// Numeric state
	cursor      int
	width       int
	height      int
	deleteIndex int // Index of draft being deleted
	mode        Mode
	busy        Busy
}

// New creates the drafting screen for c.
// repo is the submission target; when zero, submitting shows an error.
func New(c *app.Container, repo domain.RepoRef) *Model {
	ai := textinput.New()
	ai.Placeholder = "Issue title..."
	ai.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		container: c,
		ctx:       ctx,
		cancel:    cancel,
		drafts:    c.Queue.Items(),
		repo:      repo,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		addInput:  ai,
		spinner:   sp,
		mode:      ModeNormal,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.busy == BusyNone {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgDraftsChanged:
		m.setDrafts(msg.Drafts)
		m.err = msg.Err
		if msg.Err == nil {
			m.status = msg.Status
		}
		return m, nil

	case MsgAuthURL:
		m.authURL = msg.URL
		return m, nil

	case MsgLoginDone:
		m.busy = BusyNone
		m.authURL = ""
		if msg.Err != nil {
			m.err = msg.Err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = "Signed in to GitHub."
		return m, nil

	case MsgSubmitDone:
		m.busy = BusyNone
		m.setDrafts(msg.Drafts)
		m.err = msg.Err
		if msg.Result != nil {
			m.status = batchSummary(msg.Result)
		} else {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) setDrafts(drafts []domain.Draft) {
	m.drafts = drafts
	if m.cursor >= len(m.drafts) {
		m.cursor = len(m.drafts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode { //nolint:exhaustive // ModeNormal handled in default
	case ModeAdd:
		return m.handleAddMode(msg)
	case ModeConfirmDelete:
		return m.handleDeleteMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit):
		if m.busy == BusySubmit {
			m.status = "Submission in progress; press ctrl+c to quit anyway."
			return m, nil
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.drafts)-1 {
			m.cursor++
		}
		return m, nil
	}

	// The queue and the session are read-only while a login or batch runs.
	if m.busy != BusyNone {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAdd
		m.err = nil
		m.addInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		if len(m.drafts) > 0 && m.cursor < len(m.drafts) {
			m.mode = ModeConfirmDelete
			m.deleteIndex = m.cursor
		}
		return m, nil

	case key.Matches(msg, m.keys.Login):
		if _, ok := m.container.Session.CurrentToken(); ok {
			m.status = "Already signed in."
			return m, nil
		}
		m.busy = BusyLogin
		m.err = nil
		m.status = ""
		return m, tea.Batch(m.login(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Logout):
		m.container.Session.Logout()
		m.err = nil
		m.status = "Signed out."
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.busy = BusySubmit
		m.err = nil
		m.status = ""
		return m, tea.Batch(m.submit(), m.spinner.Tick)
	}

	return m, nil
}

// handleAddMode handles keys in add mode.
func (m *Model) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := m.addInput.Value()
		m.mode = ModeNormal
		m.addInput.Reset()
		m.addInput.Blur()
		return m, m.addDraft(title)

	case "esc":
		m.mode = ModeNormal
		m.addInput.Reset()
		m.addInput.Blur()
		return m, nil
	}

	// Handle input
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// handleDeleteMode handles keys in delete confirmation mode.
func (m *Model) handleDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeNormal
		return m, m.removeDraft(m.deleteIndex)

	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N", msg.String() == "q":
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}

// addDraft returns a command that queues a draft.
func (m *Model) addDraft(title string) tea.Cmd {
	return func() tea.Msg {
		drafts, err := m.container.Queue.Add(m.ctx, title)
		if errors.Is(err, domain.ErrValidation) {
			return MsgDraftsChanged{Drafts: m.container.Queue.Items(), Err: err}
		}
		return MsgDraftsChanged{Drafts: drafts, Err: err, Status: "Draft queued."}
	}
}

// removeDraft returns a command that deletes the draft at index.
func (m *Model) removeDraft(index int) tea.Cmd {
	return func() tea.Msg {
		drafts, err := m.container.Queue.RemoveAt(m.ctx, index)
		return MsgDraftsChanged{Drafts: drafts, Err: err, Status: "Draft deleted."}
	}
}

// login returns a command that runs the browser login, plus a command that
// reports the authorize URL once the listener is up.
func (m *Model) login() tea.Cmd {
	c := m.container
	urls := make(chan string, 1)
	done := make(chan struct{})
	c.OnAuthURL = func(url string) {
		select {
		case urls <- url:
		default:
		}
	}

	run := func() tea.Msg {
		defer close(done)
		_, err := c.LoginUseCase().Execute(m.ctx, usecase.LoginInput{
			Timeout: c.AppConfig.OAuth.LoginTimeout.Duration,
		})
		return MsgLoginDone{Err: err}
	}
	wait := func() tea.Msg {
		select {
		case url := <-urls:
			return MsgAuthURL{URL: url}
		case <-done:
			return nil
		}
	}
	return tea.Batch(run, wait)
}

// submit returns a command that submits every draft.
func (m *Model) submit() tea.Cmd {
	c := m.container
	repo := m.repo
	return func() tea.Msg {
		result, err := c.SubmitAllUseCase().Execute(m.ctx, usecase.SubmitAllInput{Repo: repo})
		return MsgSubmitDone{Result: result, Err: err, Drafts: c.Queue.Items()}
	}
}

func batchSummary(r *domain.BatchResult) string {
	s := fmt.Sprintf("Submitted: %d created, %d failed.", r.Succeeded, r.Failed())
	if !r.Cleared && r.Failed() > 0 {
		s += " Failed drafts were kept."
	}
	return s
}

// View renders the TUI.
func (m *Model) View() string {
	var base string
	switch m.mode { //nolint:exhaustive // ModeNormal handled in default
	case ModeAdd:
		base = m.viewAddDialog()
	case ModeConfirmDelete:
		base = m.viewDeleteDialog()
	default:
		base = m.viewMain()
	}
	return m.styles.App.Render(base)
}

// viewMain renders the header, the draft list, the status line and the help footer.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewDraftList())
	b.WriteString("\n")

	if line := m.viewStatus(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) viewHeader() string {
	title := m.styles.Header.Render(fmt.Sprintf("idraft · %d %s", len(m.drafts), plural(len(m.drafts), "draft", "drafts")))

	var auth string
	if _, ok := m.container.Session.CurrentToken(); ok {
		auth = m.styles.AuthOK.Render("● signed in")
	} else {
		auth = m.styles.AuthMissing.Render("○ signed out")
	}

	target := "no target repository"
	if !m.repo.IsZero() {
		target = "→ " + m.repo.String()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", auth, "  ", m.styles.Index.Render(target))
}

func (m *Model) viewDraftList() string {
	if len(m.drafts) == 0 {
		return m.styles.Empty.Render("No drafts. Press a to add one.")
	}

	var b strings.Builder
	for i, d := range m.drafts {
		index := m.styles.Index.Render(fmt.Sprintf("%3d ", i+1))
		if i == m.cursor {
			b.WriteString(index + m.styles.Selected.Render("> "+d.String()))
		} else {
			b.WriteString(index + m.styles.Normal.Render("  "+d.String()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewStatus() string {
	switch {
	case m.busy == BusyLogin && m.authURL != "":
		return m.styles.Loading.Render(m.spinner.View()+" Waiting for the browser. If it did not open, visit:") +
			"\n  " + m.authURL
	case m.busy == BusyLogin:
		return m.styles.Loading.Render(m.spinner.View() + " Starting login...")
	case m.busy == BusySubmit:
		return m.styles.Loading.Render(m.spinner.View() + " Submitting drafts...")
	case m.err != nil:
		return m.styles.Error.Render("Error: " + m.err.Error())
	case m.status != "":
		return m.styles.Status.Render(m.status)
	}
	return ""
}

func (m *Model) viewAddDialog() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("New draft"))
	b.WriteString("\n")
	b.WriteString(m.addInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Index.Render("enter to queue · esc to cancel"))
	return m.styles.Dialog.Render(b.String())
}

func (m *Model) viewDeleteDialog() string {
	var title string
	if m.deleteIndex < len(m.drafts) {
		title = m.drafts[m.deleteIndex].String()
	}

	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Delete draft?"))
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(m.styles.Index.Render("y to delete · n to keep"))
	return m.styles.Dialog.Render(b.String())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
