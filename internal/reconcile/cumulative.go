package reconcile

import (
	"crypto/sha256"
	"strings"

	"go.uber.org/zap"

	"github.com/obodnikov/claude-chat-manager-sub000/internal/session"
)

// dedupePrefixLen is how much of a message's content feeds the
// de-duplication hash.
const dedupePrefixLen = 200

// ReconstructOptions configures the cumulative reconstructor.
type ReconstructOptions struct {
	Extract ExtractOptions
	Logger  *zap.Logger
}

func (o ReconstructOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Reconstruct rebuilds a conversation for sources whose execution logs
// are cumulative snapshots: each log already contains the whole
// conversation up to that point, so the most recent usable log is the
// entire answer and earlier logs are subsumed. When no log yields
// anything, the raw session text is the lowest-fidelity fallback.
func Reconstruct(turns []session.Turn, idx Index, opts ReconstructOptions) ([]Message, []Diagnostic) {
	var diags []Diagnostic
	log := opts.logger()

	refs := executionRefs(turns)
	if len(refs) == 0 {
		diags = append(diags, diagf(DiagFallback, "session carries no execution references, using session text"))
		return turnsToMessages(turns), diags
	}

	// most recent first; earlier logs only matter when later ones
	// yield nothing
	for i := len(refs) - 1; i >= 0; i-- {
		msgs, ds := extractFromRef(refs[i], idx, opts.Extract)
		diags = append(diags, ds...)
		if len(msgs) == 0 {
			continue
		}
		if i < len(refs)-1 {
			diags = append(diags, diagf(DiagFallback,
				"most recent execution log yielded nothing, fell back to %s", refs[i]))
		}
		log.Debug("cumulative reconstruction done",
			zap.String("executionId", refs[i]), zap.Int("messages", len(msgs)))
		return msgs, diags
	}

	diags = append(diags, diagf(DiagFallback,
		"none of %d execution logs yielded messages, using session text", len(refs)))
	return turnsToMessages(turns), diags
}

// extractFromRef resolves, loads, and extracts one execution log.
// Every failure mode degrades to an empty result plus a diagnostic.
func extractFromRef(ref string, idx Index, opts ExtractOptions) ([]Message, []Diagnostic) {
	path, ok := idx[ref]
	if !ok {
		return nil, []Diagnostic{diagf(DiagLogNotFound, "execution log %s not found in index", ref)}
	}
	execLog, err := LoadLog(path)
	if err != nil {
		return nil, []Diagnostic{diagf(DiagStructural, "execution log %s unusable: %v", ref, err)}
	}
	if execLog.ExecutionID != ref {
		return nil, []Diagnostic{diagf(DiagIdentityMismatch,
			"execution log at %s identifies as %s, session referenced %s", path, execLog.ExecutionID, ref)}
	}
	return ExtractMessages(execLog, opts), nil
}

// executionRefs returns the session's execution references in order of
// first appearance, de-duplicated.
func executionRefs(turns []session.Turn) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, t := range turns {
		if t.ExecutionID == "" || seen[t.ExecutionID] {
			continue
		}
		seen[t.ExecutionID] = true
		refs = append(refs, t.ExecutionID)
	}
	return refs
}

// turnsToMessages converts raw session turns into output messages with
// roles normalized. Empty turns are dropped.
func turnsToMessages(turns []session.Turn) []Message {
	out := make([]Message, 0, len(turns))
	for _, t := range turns {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		out = append(out, Message{Role: normalizeRole(t.Role), Content: t.Text})
	}
	return out
}

// DedupeUserMessages drops user messages whose content prefix was seen
// before. Callers that chain multiple cumulative logs use it to remove
// the user turns repeated across snapshots; the default strategy keeps
// a single log and does not need it.
func DedupeUserMessages(msgs []Message) []Message {
	seen := make(map[[sha256.Size]byte]bool)
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role != RoleUser {
			out = append(out, m)
			continue
		}
		prefix := m.Content
		if len(prefix) > dedupePrefixLen {
			prefix = prefix[:dedupePrefixLen]
		}
		sum := sha256.Sum256([]byte(prefix))
		if seen[sum] {
			continue
		}
		seen[sum] = true
		out = append(out, m)
	}
	return out
}
