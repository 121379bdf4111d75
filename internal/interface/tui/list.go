package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/dustin/go-humanize"

	"vidchat/internal/core/models"
)

type sessionItem struct {
	key      string
	title    string
	active   bool
	messages int
	age      string
}

func (i sessionItem) Title() string {
	title := i.title
	if title == "" {
		title = i.key
	}
	if i.active {
		return "● " + title
	}
	return "  " + title
}

func (i sessionItem) Description() string {
	noun := "messages"
	if i.messages == 1 {
		noun = "message"
	}
	if i.age == "" {
		return fmt.Sprintf("  %d %s", i.messages, noun)
	}
	return fmt.Sprintf("  %d %s · %s", i.messages, noun, i.age)
}

func (i sessionItem) FilterValue() string {
	return i.title + " " + i.key
}

func newSessionDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedDescStyle
	return d
}

// refreshSessionList rebuilds the session pane from the store, keeping
// the cursor where it was when possible.
func (m *Model) refreshSessionList() {
	sessions := m.store.Sessions()
	activeKey := m.store.ActiveKey()

	items := make([]list.Item, 0, len(sessions))
	for _, s := range sessions {
		age := ""
		if !s.CreatedAt.IsZero() {
			age = humanize.Time(s.CreatedAt)
		}
		items = append(items, sessionItem{
			key:      s.Key,
			title:    s.Title,
			active:   s.Key == activeKey,
			messages: len(s.History),
			age:      age,
		})
	}

	index := m.sessionList.Index()
	m.sessionList.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.sessionList.Select(index)
	}
}

func roleLabel(role models.Role) string {
	if role == models.RoleAssistant {
		return "Assistant"
	}
	return "You"
}
