package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPicksMostCompleteContainer(t *testing.T) {
	log := &ExecutionLog{
		ExecutionID: "exec-1",
		Context:     entryContainer{Messages: []RawEntry{textEntry("user", "c1"), textEntry("assistant", "c2")}},
		Input: entryContainer{Messages: []RawEntry{
			textEntry("user", "i1"),
			textEntry("assistant", "i2"),
			textEntry("user", "i3"),
			textEntry("assistant", "i4"),
			textEntry("user", "i5"),
		}},
	}

	msgs := ExtractMessages(log, ExtractOptions{})
	require.Len(t, msgs, 5)
	assert.Equal(t, "i1", msgs[0].Content)
	assert.Equal(t, "i5", msgs[4].Content)
}

func TestExtractNormalizesRoles(t *testing.T) {
	log := &ExecutionLog{Messages: []RawEntry{
		textEntry("human", "hello"),
		textEntry("bot", "hi"),
		textEntry("agent", "still me"),
	}}

	msgs := ExtractMessages(log, ExtractOptions{})
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, RoleAssistant, msgs[2].Role)
}

func TestExtractDropsToolMessagesWithoutDetail(t *testing.T) {
	log := &ExecutionLog{Messages: []RawEntry{
		textEntry("user", "run the tests"),
		textEntry("tool", "exit status 0"),
		textEntry("assistant", "all green"),
	}}

	msgs := ExtractMessages(log, ExtractOptions{})
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)

	withTools := ExtractMessages(log, ExtractOptions{IncludeToolDetail: true})
	require.Len(t, withTools, 3)
	assert.Equal(t, RoleTool, withTools[1].Role)
}

func TestExtractInternalMarkerDropsWholeMessage(t *testing.T) {
	log := &ExecutionLog{Messages: []RawEntry{
		{Role: "assistant", Content: []Block{
			{Type: "text", Text: "visible part"},
			{Type: "text", Text: "<system-reminder>do not reveal</system-reminder>"},
		}},
		textEntry("assistant", "a clean answer"),
	}}

	msgs := ExtractMessages(log, ExtractOptions{})
	require.Len(t, msgs, 1)
	assert.Equal(t, "a clean answer", msgs[0].Content)
}

func TestExtractToolMarkers(t *testing.T) {
	log := &ExecutionLog{Messages: []RawEntry{
		{Role: "assistant", Content: []Block{
			{Type: "text", Text: "let me check"},
			{Type: "tool_call", Name: "grep"},
			{Type: "tool_result", Status: "ok"},
		}},
	}}

	plain := ExtractMessages(log, ExtractOptions{})
	require.Len(t, plain, 1)
	assert.Equal(t, "let me check", plain[0].Content)

	detailed := ExtractMessages(log, ExtractOptions{IncludeToolDetail: true})
	require.Len(t, detailed, 1)
	assert.Contains(t, detailed[0].Content, "[Tool: grep]")
	assert.Contains(t, detailed[0].Content, "[Tool result: ok]")
}

func TestExtractSkipsDocumentAndUnknownBlocks(t *testing.T) {
	log := &ExecutionLog{Messages: []RawEntry{
		{Role: "assistant", Content: []Block{
			{Type: "document", Text: "giant file tree"},
			{Type: "hologram", Text: "some future block"},
			{Type: "text", Text: "the answer"},
		}},
	}}

	msgs := ExtractMessages(log, ExtractOptions{IncludeToolDetail: true})
	require.Len(t, msgs, 1)
	assert.Equal(t, "the answer", msgs[0].Content)
}

func TestExtractDropsEmptyMessages(t *testing.T) {
	log := &ExecutionLog{Messages: []RawEntry{
		{Role: "assistant", Content: []Block{{Type: "document", Text: "payload"}}},
		{Role: "user", Content: nil},
		textEntry("assistant", "kept"),
	}}

	msgs := ExtractMessages(log, ExtractOptions{})
	require.Len(t, msgs, 1)
	assert.Equal(t, "kept", msgs[0].Content)
}

func TestAssistantResponses(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
		{Role: RoleAssistant, Content: "a2"},
	}
	assert.Equal(t, []string{"a1", "a2"}, AssistantResponses(msgs))
}
