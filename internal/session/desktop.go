package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// desktopConversation mirrors one conversation file exported by the
// desktop chat client. Assistant entries carry only abbreviated text
// plus the identifier of the execution log holding the full answer.
type desktopConversation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at"`
	Messages  []struct {
		Role        string `json:"role"`
		Text        string `json:"text"`
		ExecutionID string `json:"executionId"`
	} `json:"messages"`
}

// ScanDesktop reads every conversation JSON file under root and returns
// the discovered sessions, newest content first left to the caller to sort.
// Unreadable or malformed files are skipped.
func ScanDesktop(root string) []Session {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var sessions []Session
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(root, e.Name())
		s := parseDesktopConversation(path)
		if s != nil {
			sessions = append(sessions, *s)
		}
	}
	return sessions
}

func parseDesktopConversation(path string) *Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var conv desktopConversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil
	}
	if conv.ID == "" {
		return nil
	}

	turns := make([]Turn, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		turns = append(turns, Turn{
			Role:        m.Role,
			Text:        m.Text,
			ExecutionID: m.ExecutionID,
		})
	}

	ts := fileModTime(path)
	if conv.UpdatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, conv.UpdatedAt); err == nil {
			ts = parsed
		}
	}

	return &Session{
		ID:       conv.ID,
		ShortID:  shortID(conv.ID),
		Source:   SourceDesktop,
		Summary:  summaryFromTurns(conv.Name, turns),
		Time:     ts,
		FilePath: path,
		Turns:    turns,
	}
}

func fileModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// summaryFromTurns prefers an explicit name, then the first user turn.
func summaryFromTurns(name string, turns []Turn) string {
	if name != "" {
		return truncate(name, 120)
	}
	for _, t := range turns {
		if t.Role == "user" && strings.TrimSpace(t.Text) != "" {
			return truncate(t.Text, 120)
		}
	}
	return ""
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-2]) + ".."
}
