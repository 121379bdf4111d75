package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidchat/internal/core/models"
)

func TestMarkdown(t *testing.T) {
	s := models.Session{
		VideoID: "abc123",
		Key:     "abc123",
		Title:   "Cooking with fire",
		History: []models.Message{
			models.UserMessage("What is this about?"),
			models.AssistantMessage("It's a cooking tutorial."),
		},
	}

	doc, err := Markdown(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# Cooking with fire",
		"Video: abc123",
		"**You**",
		"What is this about?",
		"**Assistant**",
		"It's a cooking tutorial.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("transcript missing %q:\n%s", want, doc)
		}
	}

	// User turn comes before the assistant turn.
	if strings.Index(doc, "**You**") > strings.Index(doc, "**Assistant**") {
		t.Error("turns rendered out of order")
	}
}

func TestMarkdownFallsBackToVideoID(t *testing.T) {
	doc, err := Markdown(models.Session{VideoID: "v9", Key: "v9"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "# v9") {
		t.Errorf("expected video id as title:\n%s", doc)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	s := models.Session{
		VideoID: "v1",
		Key:     "v1",
		Title:   "Short",
		History: []models.Message{models.UserMessage("hi")},
	}
	if err := Write(s, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Short") {
		t.Error("written file missing title")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		session models.Session
		prefix  string
	}{
		{"from title", models.Session{Title: "My Video!", VideoID: "v1"}, "My-Video"},
		{"from video id", models.Session{VideoID: "abc123"}, "abc123"},
		{"all stripped", models.Session{Title: "???"}, "transcript"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.session)
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("Filename() = %q, want prefix %q", got, tt.prefix)
			}
			if !strings.HasSuffix(got, ".md") {
				t.Errorf("Filename() = %q, want .md suffix", got)
			}
		})
	}
}
