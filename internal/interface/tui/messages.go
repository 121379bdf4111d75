package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"vidchat/internal/core/backend"
	"vidchat/internal/core/models"
)

// videosLoadedMsg carries the hydrated session list. Hydration never
// fails: transport errors and malformed payloads arrive here as an empty
// list, already logged.
type videosLoadedMsg struct {
	sessions []models.Session
}

// ingestDoneMsg reports a successful ingest. submittedTitle is the title
// resolved at submission time, used when the backend returns no
// description.
type ingestDoneMsg struct {
	result         backend.IngestResult
	submittedTitle string
}

// ingestFailedMsg reports a failed ingest; shown as a blocking modal.
type ingestFailedMsg struct {
	err error
}

// answerMsg carries a query resolution. key is the session key captured
// when the question was submitted, not whatever is active when the
// answer lands. Failed queries arrive as inline error text.
type answerMsg struct {
	key     string
	content string
}

// exportedMsg reports the result of a transcript save.
type exportedMsg struct {
	path string
	err  error
}

// copiedMsg reports a clipboard yank.
type copiedMsg struct {
	err error
}

// loadVideos fetches the backend listing once at startup and maps it to
// empty-history sessions. Any failure degrades to zero sessions so the
// client still starts.
func loadVideos(client *backend.Client, logger *log.Logger, now nowFunc) tea.Cmd {
	return func() tea.Msg {
		videos, err := client.ListVideos(context.Background())
		if err != nil {
			var parseErr *backend.ParseError
			if errors.As(err, &parseErr) {
				logger.Warn("list-videos returned an unexpected shape, starting empty", "err", err)
			} else {
				logger.Warn("list-videos failed, starting empty", "err", err)
			}
			return videosLoadedMsg{}
		}

		sessions := make([]models.Session, 0, len(videos))
		for _, v := range videos {
			if v.URL == "" {
				continue
			}
			sessions = append(sessions, models.Session{
				VideoID:   v.URL,
				Key:       v.URL,
				Title:     v.Description,
				CreatedAt: now(),
			})
		}
		return videosLoadedMsg{sessions: sessions}
	}
}

// ingestVideo submits one URL for ingestion. url and title are fixed at
// submission time.
func ingestVideo(client *backend.Client, url, title string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Ingest(context.Background(), url, title)
		if err != nil {
			return ingestFailedMsg{err: err}
		}
		return ingestDoneMsg{result: result, submittedTitle: title}
	}
}

// askQuestion issues one query. key and videoID are captured here,
// before the request suspends; the resolution routes by key no matter
// which session is active by then. Failures become inline answer text
// so the conversation keeps its shape.
func askQuestion(client *backend.Client, key, videoID, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := client.Query(context.Background(), videoID, question)
		if err != nil {
			return answerMsg{key: key, content: "Error: " + err.Error()}
		}
		return answerMsg{key: key, content: answer}
	}
}
