package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// agentIndexEntry mirrors one session index file written by the IDE
// coding agent. The index is lightweight and chronological; the real
// conversation lives in execution logs referenced by executionId.
type agentIndexEntry struct {
	SessionID string `json:"sessionId"`
	Workspace string `json:"workspace"`
	UpdatedAt int64  `json:"updatedAt"`
	Turns     []struct {
		Role        string `json:"role"`
		Text        string `json:"text"`
		ExecutionID string `json:"executionId"`
	} `json:"turns"`
}

// ScanAgent reads the IDE agent's session index files under root.
// Each file describes one session; malformed files are skipped.
func ScanAgent(root string) []Session {
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
		s := parseAgentIndex(path)
		if s != nil {
			sessions = append(sessions, *s)
		}
	}
	return sessions
}

func parseAgentIndex(path string) *Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var idx agentIndexEntry
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil
	}
	if idx.SessionID == "" {
		return nil
	}

	turns := make([]Turn, 0, len(idx.Turns))
	for _, t := range idx.Turns {
		turns = append(turns, Turn{
			Role:        t.Role,
			Text:        t.Text,
			ExecutionID: t.ExecutionID,
		})
	}

	ts := fileModTime(path)
	if idx.UpdatedAt > 0 {
		ts = time.UnixMilli(idx.UpdatedAt)
	}

	project := filepath.Base(idx.Workspace)
	if project == "" || project == "." {
		project = "unknown"
	}

	return &Session{
		ID:       idx.SessionID,
		ShortID:  shortID(idx.SessionID),
		Source:   SourceAgent,
		Project:  project,
		CWD:      idx.Workspace,
		Summary:  summaryFromTurns("", turns),
		Time:     ts,
		FilePath: path,
		Turns:    turns,
	}
}
