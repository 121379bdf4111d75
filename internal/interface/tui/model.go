// Package tui implements the interactive chat interface: a session pane
// on the left, the active conversation on the right, and an ingest
// prompt for adding new videos.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"vidchat/internal/core/backend"
	"vidchat/internal/core/export"
	"vidchat/internal/core/models"
	"vidchat/internal/core/store"
)

type viewMode int

const (
	chatView viewMode = iota
	ingestView
	helpView
)

type focusArea int

const (
	focusQuestion focusArea = iota
	focusSessions
)

type nowFunc func() time.Time

type Model struct {
	client *backend.Client
	store  *store.Store
	logger *log.Logger
	now    nowFunc

	mode  viewMode
	focus focusArea

	sessionList list.Model
	question    textinput.Model
	urlInput    textinput.Model
	titleInput  textinput.Model
	viewport    viewport.Model
	spin        spinner.Model

	// Per-operation busy flags: an in-flight ingest must not block
	// queries, and vice versa. Each flag also guards against double
	// submission of its own kind.
	ingestBusy bool
	queryBusy  bool

	// Non-empty modalErr blocks all input until acknowledged. Only
	// ingest failures end up here; query failures stay inline.
	modalErr string

	status string

	width  int
	height int
	ready  bool
}

func New(client *backend.Client, st *store.Store, logger *log.Logger) Model {
	question := textinput.New()
	question.Placeholder = "Ask about this video..."
	question.CharLimit = 2000
	question.Focus()

	urlInput := textinput.New()
	urlInput.Placeholder = "https://youtube.com/watch?v=..."
	urlInput.CharLimit = 2000

	titleInput := textinput.New()
	titleInput.Placeholder = "Title (optional)"
	titleInput.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	sessions := list.New(nil, newSessionDelegate(), 0, 0)
	sessions.Title = "Videos"
	sessions.SetShowStatusBar(false)
	sessions.SetFilteringEnabled(false)
	sessions.SetShowHelp(false)
	sessions.DisableQuitKeybindings()

	return Model{
		client:      client,
		store:       st,
		logger:      logger,
		now:         time.Now,
		mode:        chatView,
		focus:       focusQuestion,
		sessionList: sessions,
		question:    question,
		urlInput:    urlInput,
		titleInput:  titleInput,
		spin:        spin,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadVideos(m.client, m.logger, m.now),
		m.spin.Tick,
		textinput.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.ingestBusy && !m.queryBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case videosLoadedMsg:
		m.store.Hydrate(msg.sessions)
		m.refreshSessionList()
		m.refreshViewport()
		return m, nil

	case ingestDoneMsg:
		return m.finishIngest(msg)

	case ingestFailedMsg:
		m.ingestBusy = false
		m.modalErr = msg.err.Error()
		return m, nil

	case answerMsg:
		// Routed by the key captured at submission time. If that
		// session was deleted while the request was in flight the
		// append is a no-op and the answer vanishes, which is the
		// intended outcome.
		m.queryBusy = false
		m.store.AppendMessage(msg.key, models.AssistantMessage(msg.content))
		if _, ok := m.store.Get(msg.key); !ok {
			m.logger.Debug("discarded answer for removed session", "key", msg.key)
		}
		m.refreshSessionList()
		if msg.key == m.store.ActiveKey() {
			m.refreshViewport()
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Saved transcript to " + msg.path
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Copied last answer"
		}
		return m, nil
	}

	// Everything else (cursor blink and friends) goes to the focused input.
	var cmd tea.Cmd
	switch {
	case m.mode == ingestView && m.titleInput.Focused():
		m.titleInput, cmd = m.titleInput.Update(msg)
	case m.mode == ingestView:
		m.urlInput, cmd = m.urlInput.Update(msg)
	default:
		m.question, cmd = m.question.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A blocking ingest error must be acknowledged before anything else.
	if m.modalErr != "" {
		switch msg.String() {
		case "enter", "esc":
			m.modalErr = ""
		}
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case helpView:
		m.mode = chatView
		return m, nil
	case ingestView:
		return m.handleIngestKey(msg)
	default:
		return m.handleChatKey(msg)
	}
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "tab":
		if m.focus == focusQuestion {
			m.focus = focusSessions
			m.question.Blur()
		} else {
			m.focus = focusQuestion
			m.question.Focus()
		}
		return m, nil

	case "ctrl+n":
		m.mode = ingestView
		m.urlInput.Focus()
		m.titleInput.Blur()
		return m, textinput.Blink

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.focus == focusSessions {
		return m.handleSessionPaneKey(msg)
	}

	if msg.String() == "enter" {
		return m.startQuery()
	}
	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	return m, cmd
}

func (m Model) handleSessionPaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		m.mode = helpView
		return m, nil

	case "enter":
		if item, ok := m.sessionList.SelectedItem().(sessionItem); ok {
			m.store.SetActive(item.key)
			m.refreshViewport()
			m.focus = focusQuestion
			m.question.Focus()
		}
		return m, nil

	case "d":
		if item, ok := m.sessionList.SelectedItem().(sessionItem); ok {
			// Purely local removal; any in-flight answer for this
			// session will be dropped by the store.
			m.store.Remove(item.key)
			m.refreshSessionList()
			m.refreshViewport()
		}
		return m, nil

	case "y":
		return m, m.copyLastAnswer()

	case "s":
		return m, m.exportActive()
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

func (m Model) handleIngestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = chatView
		m.urlInput.Blur()
		m.titleInput.Blur()
		return m, nil

	case "tab", "shift+tab":
		if m.urlInput.Focused() {
			m.urlInput.Blur()
			m.titleInput.Focus()
		} else {
			m.titleInput.Blur()
			m.urlInput.Focus()
		}
		return m, nil

	case "enter":
		return m.startIngest()
	}

	var cmd tea.Cmd
	if m.urlInput.Focused() {
		m.urlInput, cmd = m.urlInput.Update(msg)
	} else {
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

// startQuery validates and submits the question against the active
// session. The session identity is captured here, synchronously, before
// the request goes out; the user message is appended immediately so the
// question is visible while the answer is pending.
func (m Model) startQuery() (tea.Model, tea.Cmd) {
	if m.queryBusy {
		m.status = "Still waiting for the previous answer"
		return m, nil
	}
	question := strings.TrimSpace(m.question.Value())
	if question == "" {
		return m, nil
	}
	active, ok := m.store.Active()
	if !ok {
		m.status = "No video selected. Press ctrl+n to ingest one."
		return m, nil
	}

	m.question.SetValue("")
	m.store.AppendMessage(active.Key, models.UserMessage(question))
	m.queryBusy = true
	m.refreshSessionList()
	m.refreshViewport()

	return m, tea.Batch(
		askQuestion(m.client, active.Key, active.VideoID, question),
		m.spin.Tick,
	)
}

// startIngest validates and submits the ingest form. A second submission
// while one is in flight is rejected outright.
func (m Model) startIngest() (tea.Model, tea.Cmd) {
	if m.ingestBusy {
		m.status = "An ingest is already running"
		return m, nil
	}
	url := strings.TrimSpace(m.urlInput.Value())
	if url == "" {
		return m, nil
	}
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		title = fmt.Sprintf("Video %d", m.store.Len()+1)
	}

	m.ingestBusy = true
	m.mode = chatView
	m.status = "Ingesting " + url
	return m, tea.Batch(ingestVideo(m.client, url, title), m.spin.Tick)
}

func (m Model) finishIngest(msg ingestDoneMsg) (tea.Model, tea.Cmd) {
	m.ingestBusy = false

	title := msg.result.Description
	if title == "" {
		title = msg.submittedTitle
	}
	sess := models.Session{
		VideoID:   msg.result.VideoURL,
		Key:       msg.result.VideoURL,
		Title:     title,
		CreatedAt: m.now(),
	}

	if err := m.store.UpsertNew(sess); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			// Already known; just switch to it.
			m.store.SetActive(sess.Key)
			m.status = "Video already ingested"
		} else {
			m.modalErr = err.Error()
			return m, nil
		}
	} else {
		m.store.SetActive(sess.Key)
		m.status = "Ingested: " + title
	}

	m.urlInput.SetValue("")
	m.titleInput.SetValue("")
	m.focus = focusQuestion
	m.question.Focus()
	m.refreshSessionList()
	m.refreshViewport()
	return m, nil
}

func (m *Model) copyLastAnswer() tea.Cmd {
	active, ok := m.store.Active()
	if !ok {
		return nil
	}
	answer, ok := active.LastAssistantMessage()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(answer.Content)}
	}
}

func (m *Model) exportActive() tea.Cmd {
	active, ok := m.store.Active()
	if !ok || len(active.History) == 0 {
		return nil
	}
	path := export.Filename(active)
	return func() tea.Msg {
		return exportedMsg{path: path, err: export.Write(active, path)}
	}
}
