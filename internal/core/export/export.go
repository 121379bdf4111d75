// Package export renders session transcripts to markdown.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cbroglie/mustache"

	"vidchat/internal/core/models"
)

const transcriptTemplate = `# {{title}}

Video: {{video_id}}
Exported: {{exported_at}}

{{#turns}}
**{{label}}**

{{content}}

{{/turns}}`

// Markdown renders a session's transcript as a markdown document.
func Markdown(s models.Session) (string, error) {
	title := s.Title
	if title == "" {
		title = s.VideoID
	}

	turns := make([]map[string]string, 0, len(s.History))
	for _, msg := range s.History {
		label := "You"
		if msg.Role == models.RoleAssistant {
			label = "Assistant"
		}
		turns = append(turns, map[string]string{
			"label":   label,
			"content": msg.Content,
		})
	}

	out, err := mustache.Render(transcriptTemplate, map[string]interface{}{
		"title":       title,
		"video_id":    s.VideoID,
		"exported_at": time.Now().Format(time.RFC3339),
		"turns":       turns,
	})
	if err != nil {
		return "", fmt.Errorf("render transcript: %w", err)
	}
	return out, nil
}

// Write renders the transcript and writes it to path.
func Write(s models.Session, path string) error {
	doc, err := Markdown(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Filename suggests a transcript filename for a session.
func Filename(s models.Session) string {
	base := s.Title
	if base == "" {
		base = s.VideoID
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = "transcript"
	}
	if len(base) > 60 {
		base = base[:60]
	}
	return fmt.Sprintf("%s-%s.md", base, time.Now().Format("20060102-150405"))
}
