package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanDesktop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "conv-1.json", `{
		"id": "11111111-2222-3333-4444-555555555555",
		"name": "Planning the release",
		"updated_at": "2026-05-01T10:00:00Z",
		"messages": [
			{"role": "user", "text": "What is left to ship?"},
			{"role": "assistant", "text": "Let me check.", "executionId": "exec-1"}
		]
	}`)
	// malformed and id-less files are skipped, not fatal
	writeFile(t, root, "broken.json", `{nope`)
	writeFile(t, root, "anonymous.json", `{"name":"no id"}`)
	writeFile(t, root, "notes.txt", `not a conversation`)

	sessions := ScanDesktop(root)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", s.ID)
	assert.Equal(t, "1111..5555", s.ShortID)
	assert.Equal(t, SourceDesktop, s.Source)
	assert.Equal(t, "Planning the release", s.Summary)
	assert.Equal(t, "2026-05-01T10:00:00Z", s.Time.UTC().Format("2006-01-02T15:04:05Z07:00"))

	require.Len(t, s.Turns, 2)
	assert.Empty(t, s.Turns[0].ExecutionID)
	assert.Equal(t, "exec-1", s.Turns[1].ExecutionID)
}

func TestScanDesktopSummaryFallsBackToFirstUserTurn(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "conv.json", `{
		"id": "abc",
		"messages": [
			{"role": "assistant", "text": "hello"},
			{"role": "user", "text": "  the   actual\nquestion  "}
		]
	}`)

	sessions := ScanDesktop(root)
	require.Len(t, sessions, 1)
	assert.Equal(t, "the actual question", sessions[0].Summary)
}

func TestScanDesktopMissingRoot(t *testing.T) {
	assert.Empty(t, ScanDesktop(filepath.Join(t.TempDir(), "nope")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "12345678..", truncate("123456789012", 10))
	assert.Equal(t, "a b", truncate("a\r\n  b", 10))
}
