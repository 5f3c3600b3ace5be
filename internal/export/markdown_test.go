package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obodnikov/claude-chat-manager-sub000/internal/reconcile"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/session"
)

func sampleSession() *session.Session {
	return &session.Session{
		ID:      "11111111-2222-3333-4444-555555555555",
		ShortID: "1111..5555",
		Source:  session.SourceDesktop,
		Project: "widget",
		Summary: "Planning the release",
		Time:    time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMarkdown(t *testing.T) {
	msgs := []reconcile.Message{
		{Role: reconcile.RoleUser, Content: "What is left to ship?"},
		{Role: reconcile.RoleAssistant, Content: "Two open issues.\n"},
	}
	out := Markdown(sampleSession(), msgs, nil)

	assert.True(t, strings.HasPrefix(out, "# Planning the release\n"))
	assert.Contains(t, out, "- Source: desktop\n")
	assert.Contains(t, out, "- Project: widget\n")
	assert.Contains(t, out, "- Updated: 2026-05-01T10:00:00Z\n")
	assert.Contains(t, out, "## User\n\nWhat is left to ship?\n")
	assert.Contains(t, out, "## Assistant\n\nTwo open issues.\n")
	assert.NotContains(t, out, "<!--")
}

func TestMarkdownDiagnosticsStayInComment(t *testing.T) {
	diags := []reconcile.Diagnostic{
		{Kind: reconcile.DiagLogNotFound, Message: "execution log exec-1 not found in index"},
	}
	out := Markdown(sampleSession(), nil, diags)

	require.Contains(t, out, "<!--\nreconciliation diagnostics:\n")
	assert.Contains(t, out, "[log_not_found] execution log exec-1 not found in index")
}

func TestMarkdownFallsBackToIDTitle(t *testing.T) {
	s := sampleSession()
	s.Summary = ""
	out := Markdown(s, nil, nil)
	assert.True(t, strings.HasPrefix(out, "# "+s.ID+"\n"))
}

func TestBook(t *testing.T) {
	a := sampleSession()
	b := sampleSession()
	b.ID = "second"
	b.Summary = "Second chat"

	out := Book("All chats", []BookSection{
		{Session: a, Messages: []reconcile.Message{{Role: reconcile.RoleUser, Content: "one"}}},
		{Session: b, Messages: []reconcile.Message{{Role: reconcile.RoleUser, Content: "two"}}},
	})

	assert.True(t, strings.HasPrefix(out, "# All chats\n"))
	assert.Contains(t, out, "1. Planning the release (desktop)\n")
	assert.Contains(t, out, "2. Second chat (desktop)\n")
	assert.Less(t, strings.Index(out, "# Planning the release"), strings.Index(out, "# Second chat"))
}

func TestFilename(t *testing.T) {
	s := sampleSession()
	assert.Equal(t, "desktop-11111111-2222-3333-4444-555555555555.md", Filename(s))

	s.ID = "weird/id with:chars" + strings.Repeat("x", 60)
	name := Filename(s)
	assert.True(t, strings.HasPrefix(name, "desktop-weird-id-with-chars"))
	assert.True(t, strings.HasSuffix(name, ".md"))
	// source prefix + 40-char cap + extension
	assert.LessOrEqual(t, len(name), len("desktop-")+40+len(".md"))
}
