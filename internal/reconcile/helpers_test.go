package reconcile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBucket = "0123456789abcdef0123456789abcdef"

// textEntry builds a raw entry holding a single text block.
func textEntry(role, text string) RawEntry {
	return RawEntry{Role: role, Content: []Block{{Type: "text", Text: text}}}
}

// writeExecutionLog writes a log file (no extension, per the storage
// convention) under root/bucket/sub and returns its path.
func writeExecutionLog(t *testing.T, root, bucket, sub, name string, log ExecutionLog) string {
	t.Helper()
	dir := filepath.Join(root, bucket, sub)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	data, err := json.Marshal(log)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// conversationLog builds a log whose top-level container alternates
// user/assistant text entries, one user+assistant pair per response.
func conversationLog(execID string, responses ...string) ExecutionLog {
	log := ExecutionLog{ExecutionID: execID}
	for i, r := range responses {
		log.Messages = append(log.Messages,
			textEntry("user", "question "+string(rune('a'+i))),
			textEntry("assistant", r),
		)
	}
	return log
}
