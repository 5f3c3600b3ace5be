package session

import "time"

// Source identifies which tool produced a session.
type Source string

const (
	SourceDesktop Source = "desktop" // desktop chat client
	SourceAgent   Source = "agent"   // IDE coding agent
	SourceCLI     Source = "cli"     // CLI coding agent
)

// Turn is one entry of a session history. ExecutionID is set only on
// assistant turns whose full text lives in a separate execution log.
type Turn struct {
	Role        string `json:"role"`
	Text        string `json:"text"`
	ExecutionID string `json:"executionId,omitempty"`
}

// Session is one recorded conversation as found in a source's session index.
type Session struct {
	ID       string
	ShortID  string
	Source   Source
	Project  string
	CWD      string
	Summary  string
	Time     time.Time
	FilePath string
	Turns    []Turn
}

// shortID abbreviates a session identifier for display.
func shortID(id string) string {
	if len(id) < 9 {
		return id
	}
	return id[:4] + ".." + id[len(id)-4:]
}
