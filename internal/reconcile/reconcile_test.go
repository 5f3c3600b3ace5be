package reconcile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obodnikov/claude-chat-manager-sub000/internal/session"
)

func TestStrategyForSource(t *testing.T) {
	assert.Equal(t, StrategyEnrich, StrategyFor(session.SourceDesktop))
	assert.Equal(t, StrategyReconstruct, StrategyFor(session.SourceAgent))
	assert.Equal(t, StrategyEnrich, StrategyFor(session.SourceCLI))
}

func TestReconcileEnrichPreservesMessageCount(t *testing.T) {
	root := t.TempDir()
	writeExecutionLog(t, root, testBucket, "sess-1", "log-1",
		conversationLog("exec-1", "full answer"))

	idx, err := BuildIndex(root, IndexOptions{})
	require.NoError(t, err)

	turns := []session.Turn{
		{Role: "user", Text: "question"},
		{Role: "assistant", Text: "On it.", ExecutionID: "exec-1"},
	}
	msgs, diags := Reconcile(turns, idx, StrategyEnrich, Options{})

	assert.Empty(t, diags)
	require.Len(t, msgs, len(turns))
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "question", msgs[0].Content)
	assert.Equal(t, "full answer", msgs[1].Content)
}

func TestReconcileDispatchesToReconstruct(t *testing.T) {
	root := t.TempDir()
	writeExecutionLog(t, root, testBucket, "sess-1", "log-1",
		conversationLog("exec-1", "first", "second"))

	idx, err := BuildIndex(root, IndexOptions{})
	require.NoError(t, err)

	turns := []session.Turn{
		{Role: "user", Text: "q", ExecutionID: "exec-1"},
		{Role: "assistant", Text: "...", ExecutionID: "exec-1"},
	}
	msgs, diags := Reconcile(turns, idx, StrategyReconstruct, Options{})

	assert.Empty(t, diags)
	// the cumulative log carries the whole conversation, not the turns
	require.Len(t, msgs, 4)
	assert.Equal(t, "second", msgs[3].Content)
}

func TestReconcileRootRequiresDataRoot(t *testing.T) {
	_, _, err := ReconcileRoot(nil, filepath.Join(t.TempDir(), "missing"), StrategyEnrich, Options{})
	assert.Error(t, err)
}

func TestReconcileRootEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeExecutionLog(t, root, testBucket, "sess-1", "log-1",
		conversationLog("exec-1", "full answer"))

	turns := []session.Turn{
		{Role: "user", Text: "question"},
		{Role: "assistant", Text: "Sure.", ExecutionID: "exec-1"},
	}
	msgs, diags, err := ReconcileRoot(turns, root, StrategyEnrich, Options{})
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, msgs, 2)
	assert.Equal(t, "full answer", msgs[1].Content)
}
