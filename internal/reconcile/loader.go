package reconcile

import (
	"encoding/json"
	"fmt"
	"os"
)

// ExecutionLog is the decoded form of one execution-log file. The IDE
// agent writes conversation data in up to three places, depending on
// version: a context snapshot, an echo of the request input, and a
// top-level message list.
type ExecutionLog struct {
	ExecutionID string         `json:"executionId"`
	Context     entryContainer `json:"context"`
	Input       entryContainer `json:"input"`
	Messages    []RawEntry     `json:"messages"`
}

type entryContainer struct {
	Messages []RawEntry `json:"messages"`
}

// RawEntry is one message of an execution log before extraction.
type RawEntry struct {
	Role    string  `json:"role"`
	Content []Block `json:"content"`
}

// Block is one typed content block of a raw entry. Fields beyond Type
// are populated depending on the block kind.
type Block struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Status    string          `json:"status"`
}

// LoadLog reads and decodes a single execution-log file. Any read or
// decode failure is returned as an error; callers record it as a
// diagnostic and move on.
func LoadLog(path string) (*ExecutionLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read execution log: %w", err)
	}

	var log ExecutionLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("decode execution log %s: %w", path, err)
	}
	return &log, nil
}
