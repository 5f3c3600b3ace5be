// Package export renders reconciled conversations as markdown.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/obodnikov/claude-chat-manager-sub000/internal/reconcile"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/session"
)

// roleHeading maps output roles onto transcript headings.
func roleHeading(role string) string {
	switch role {
	case reconcile.RoleUser:
		return "## User"
	case reconcile.RoleAssistant:
		return "## Assistant"
	case reconcile.RoleTool:
		return "## Tool"
	default:
		return "## " + role
	}
}

// Markdown renders one reconciled session as a standalone markdown
// document. Diagnostics are appended as an HTML comment so the export
// stays self-describing without polluting the visible transcript.
func Markdown(s *session.Session, msgs []reconcile.Message, diags []reconcile.Diagnostic) string {
	var b strings.Builder

	title := s.Summary
	if title == "" {
		title = s.ID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Source: %s\n", s.Source)
	fmt.Fprintf(&b, "- Session: %s\n", s.ID)
	if s.Project != "" {
		fmt.Fprintf(&b, "- Project: %s\n", s.Project)
	}
	if !s.Time.IsZero() {
		fmt.Fprintf(&b, "- Updated: %s\n", s.Time.Format(time.RFC3339))
	}
	b.WriteString("\n")

	for _, m := range msgs {
		b.WriteString(roleHeading(m.Role))
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(m.Content, "\n"))
		b.WriteString("\n\n")
	}

	if len(diags) > 0 {
		b.WriteString("<!--\nreconciliation diagnostics:\n")
		for _, d := range diags {
			fmt.Fprintf(&b, "  %s\n", d)
		}
		b.WriteString("-->\n")
	}

	return b.String()
}

// BookSection is one session prepared for the combined book export.
type BookSection struct {
	Session     *session.Session
	Messages    []reconcile.Message
	Diagnostics []reconcile.Diagnostic
}

// Book concatenates many sessions into one markdown document with a
// table of contents, oldest session first.
func Book(title string, sections []BookSection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Contents\n\n")
	for i, sec := range sections {
		name := sec.Session.Summary
		if name == "" {
			name = sec.Session.ID
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, name, sec.Session.Source)
	}
	b.WriteString("\n---\n\n")

	for _, sec := range sections {
		b.WriteString(Markdown(sec.Session, sec.Messages, sec.Diagnostics))
		b.WriteString("\n---\n\n")
	}
	return b.String()
}

// Filename derives a filesystem-safe export name for a session.
func Filename(s *session.Session) string {
	base := s.ID
	if len(base) > 40 {
		base = base[:40]
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	return fmt.Sprintf("%s-%s.md", s.Source, base)
}
