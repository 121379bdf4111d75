package models

import (
	"errors"
	"time"
)

// Session represents one conversational thread bound to one ingested video.
type Session struct {
	VideoID   string // Backend identifier used to scope queries; opaque to the client
	Key       string // Client-side unique key; fixed at creation
	Title     string // Display label (backend description, user-supplied, or generated)
	History   []Message
	CreatedAt time.Time // Local bookkeeping for display only
}

// Validate checks that the session has required fields
func (s *Session) Validate() error {
	if s.Key == "" {
		return errors.New("session key is required")
	}
	if s.VideoID == "" {
		return errors.New("video id is required")
	}
	return nil
}

// LastAssistantMessage returns the most recent assistant turn, if any.
func (s *Session) LastAssistantMessage() (Message, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAssistant {
			return s.History[i], true
		}
	}
	return Message{}, false
}
