package models

import (
	"testing"
	"time"
)

func TestSessionValidation(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name: "valid session",
			session: Session{
				VideoID:   "dQw4w9WgXcQ",
				Key:       "dQw4w9WgXcQ",
				Title:     "Some talk",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing key",
			session: Session{
				VideoID: "dQw4w9WgXcQ",
			},
			wantErr: true,
		},
		{
			name: "missing video id",
			session: Session{
				Key: "dQw4w9WgXcQ",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLastAssistantMessage(t *testing.T) {
	s := Session{
		VideoID: "v1",
		Key:     "v1",
		History: []Message{
			UserMessage("first question"),
			AssistantMessage("first answer"),
			UserMessage("second question"),
		},
	}

	msg, ok := s.LastAssistantMessage()
	if !ok {
		t.Fatal("expected an assistant message")
	}
	if msg.Content != "first answer" {
		t.Errorf("got %q, want %q", msg.Content, "first answer")
	}

	empty := Session{VideoID: "v2", Key: "v2"}
	if _, ok := empty.LastAssistantMessage(); ok {
		t.Error("expected no assistant message in empty history")
	}
}
