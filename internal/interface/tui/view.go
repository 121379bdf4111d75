package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"vidchat/internal/core/models"
)

const sessionPaneWidth = 34

func (m *Model) layout() {
	listHeight := m.height - 2
	if listHeight < 1 {
		listHeight = 1
	}
	m.sessionList.SetSize(sessionPaneWidth-2, listHeight)

	chatWidth := m.chatWidth()
	m.question.Width = chatWidth - 6
	m.urlInput.Width = chatWidth - 6
	m.titleInput.Width = chatWidth - 6

	// Room for the title bar, input box and status line.
	vpHeight := m.height - 7
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = chatWidth
	m.viewport.Height = vpHeight
}

func (m *Model) chatWidth() int {
	w := m.width - sessionPaneWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}

// refreshViewport re-renders the active session's history and scrolls to
// the tail, where new messages land.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	active, ok := m.store.Active()
	if !ok {
		m.viewport.SetContent(statusStyle.Render("No video selected.\n\nPress ctrl+n to ingest a video, or tab to pick one from the list."))
		return
	}
	m.viewport.SetContent(renderHistory(active, m.chatWidth()))
	m.viewport.GotoBottom()
}

func renderHistory(s models.Session, width int) string {
	if len(s.History) == 0 {
		return statusStyle.Render("No messages yet. Ask something about this video.")
	}

	var b strings.Builder
	for _, msg := range s.History {
		b.WriteString(styledLabel(msg.Role))
		b.WriteString("\n")
		if msg.Role == models.RoleAssistant {
			b.WriteString(renderMarkdown(msg.Content, width))
		} else {
			b.WriteString(msg.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func styledLabel(role models.Role) string {
	if role == models.RoleAssistant {
		return assistantStyle.Render(roleLabel(role))
	}
	return userStyle.Render(roleLabel(role))
}

// renderMarkdown renders assistant answers through glamour, falling back
// to plain text when rendering fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return content + "\n"
	}
	out, err := r.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.modalErr != "" {
		return m.viewModal()
	}

	switch m.mode {
	case helpView:
		return m.viewHelp()
	case ingestView:
		return m.viewIngest()
	default:
		return m.viewChat()
	}
}

func (m Model) viewChat() string {
	left := sessionPaneStyle.Render(m.sessionList.View())

	var title string
	if active, ok := m.store.Active(); ok {
		label := active.Title
		if label == "" {
			label = active.VideoID
		}
		title = titleStyle.Render(label)
	} else {
		title = titleStyle.Render("vidchat")
	}

	input := inputBorderStyle.Width(m.chatWidth() - 2).Render(m.question.View())

	status := m.status
	switch {
	case m.queryBusy:
		status = m.spin.View() + " Thinking..."
	case m.ingestBusy:
		status = m.spin.View() + " Ingesting video (this can take a while)..."
	}
	statusLine := statusStyle.Render(status)

	right := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.viewport.View(),
		input,
		statusLine,
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) viewIngest() string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Ingest a video"),
		"",
		"URL",
		inputBorderStyle.Render(m.urlInput.View()),
		"",
		"Title (optional)",
		inputBorderStyle.Render(m.titleInput.View()),
		"",
		helpStyle.Render("enter: submit · tab: next field · esc: cancel"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}

func (m Model) viewModal() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		modalTitleStyle.Render("Ingest failed"),
		"",
		wordwrap(m.modalErr, 60),
		"",
		helpStyle.Render("press enter to dismiss"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		modalStyle.Render(body))
}

func (m Model) viewHelp() string {
	help := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("vidchat"),
		"",
		"tab        switch between question input and video list",
		"enter      ask question / open selected video",
		"ctrl+n     ingest a new video",
		"d          delete selected video's chat (list focus)",
		"y          copy last answer (list focus)",
		"s          save transcript (list focus)",
		"pgup/pgdn  scroll conversation",
		"q          quit (list focus) · ctrl+c anywhere",
		"",
		helpStyle.Render("press any key to go back"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, help)
}

func wordwrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line+len(w)+1 > width && line > 0 {
			b.WriteString("\n")
			line = 0
		} else if i > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
