package reconcile

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/obodnikov/claude-chat-manager-sub000/internal/session"
)

// DefaultAckPrefixes are the brief acknowledgment phrases the session
// index stores in place of a real answer.
var DefaultAckPrefixes = []string{
	"on it",
	"sure",
	"let me",
	"i'll",
	"i will",
	"got it",
	"working on",
	"looking",
	"checking",
	"analyzing",
	"reading",
	"examining",
	"one moment",
}

// ValidationConfig holds the heuristic constants of the substitution
// check. The zero value selects the defaults; the values are pinned by
// unit tests so changes stay deliberate.
type ValidationConfig struct {
	// AckPrefixes are matched case-insensitively against the start of
	// the trimmed placeholder.
	AckPrefixes []string
	// MaxPlaceholderLen is the character count below which a
	// placeholder is assumed brief by construction.
	MaxPlaceholderLen int
	// WordWindow and MinWordMatches control the positional word check:
	// the first WordWindow words of placeholder and candidate must
	// share at least MinWordMatches words at matching positions.
	WordWindow     int
	MinWordMatches int
}

func (c ValidationConfig) withDefaults() ValidationConfig {
	if c.AckPrefixes == nil {
		c.AckPrefixes = DefaultAckPrefixes
	}
	if c.MaxPlaceholderLen == 0 {
		c.MaxPlaceholderLen = 100
	}
	if c.WordWindow == 0 {
		c.WordWindow = 5
	}
	if c.MinWordMatches == 0 {
		c.MinWordMatches = 2
	}
	return c
}

// Validate decides whether candidate may replace original. Rejection is
// the conservative default: an unexpanded placeholder is better than
// unrelated content in an exported transcript.
func Validate(original, candidate string, cfg ValidationConfig) bool {
	cfg = cfg.withDefaults()

	trimmed := strings.TrimSpace(original)
	if trimmed == "" {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, prefix := range cfg.AckPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	if utf8.RuneCountInString(original) < cfg.MaxPlaceholderLen {
		return true
	}

	if strings.Contains(strings.ToLower(candidate), strings.ToLower(original)) {
		return true
	}

	origWords := strings.Fields(lower)
	candWords := strings.Fields(strings.ToLower(candidate))
	matches := 0
	for i := 0; i < cfg.WordWindow && i < len(origWords) && i < len(candWords); i++ {
		if origWords[i] == candWords[i] {
			matches++
		}
	}
	return matches >= cfg.MinWordMatches
}

// EnrichOptions configures the sequential enricher.
type EnrichOptions struct {
	// Strict aborts enrichment entirely on a count mismatch instead of
	// proceeding best-effort.
	Strict     bool
	Validation ValidationConfig
	Extract    ExtractOptions
	Logger     *zap.Logger
}

func (o EnrichOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Enrich walks a session history in order, replacing each assistant
// placeholder with the next extracted response from the session's
// execution log when validation accepts the substitution. Positional
// correspondence is the only matching rule: the Nth placeholder pairs
// with the Nth extracted response, and the position advances even when
// a substitution is rejected. User turns pass through untouched.
func Enrich(turns []session.Turn, idx Index, opts EnrichOptions) ([]session.Turn, []Diagnostic) {
	var diags []Diagnostic
	log := opts.logger()

	ref := sessionExecutionRef(turns)
	if ref == "" {
		diags = append(diags, diagf(DiagLogNotFound, "session carries no execution reference"))
		return copyTurns(turns), diags
	}

	path, ok := idx[ref]
	if !ok {
		diags = append(diags, diagf(DiagLogNotFound, "execution log %s not found in index", ref))
		return copyTurns(turns), diags
	}

	execLog, err := LoadLog(path)
	if err != nil {
		diags = append(diags, diagf(DiagStructural, "execution log %s unusable: %v", ref, err))
		return copyTurns(turns), diags
	}

	if execLog.ExecutionID != ref {
		diags = append(diags, diagf(DiagIdentityMismatch,
			"execution log at %s identifies as %s, session referenced %s", path, execLog.ExecutionID, ref))
		return copyTurns(turns), diags
	}

	responses := AssistantResponses(ExtractMessages(execLog, opts.Extract))

	placeholders := 0
	for _, t := range turns {
		if normalizeRole(t.Role) == RoleAssistant {
			placeholders++
		}
	}
	if len(responses) != placeholders {
		diags = append(diags, diagf(DiagCountMismatch,
			"session has %d assistant placeholders, log %s yields %d responses", placeholders, ref, len(responses)))
		if opts.Strict {
			return copyTurns(turns), diags
		}
	}

	out := copyTurns(turns)
	i := 0
	for n := range out {
		if normalizeRole(out[n].Role) != RoleAssistant {
			continue
		}
		if i >= len(responses) {
			// log exhausted, keep the remaining placeholders
			continue
		}
		if Validate(out[n].Text, responses[i], opts.Validation) {
			out[n].Text = responses[i]
		} else {
			diags = append(diags, diagf(DiagValidationRejected,
				"validation failed for assistant turn %d, placeholder kept", n))
		}
		i++
	}

	log.Debug("sequential enrichment done",
		zap.String("executionId", ref),
		zap.Int("placeholders", placeholders),
		zap.Int("responses", len(responses)),
		zap.Int("diagnostics", len(diags)))
	return out, diags
}

// sessionExecutionRef returns the execution log a session points at:
// the first non-empty reference in turn order.
func sessionExecutionRef(turns []session.Turn) string {
	for _, t := range turns {
		if t.ExecutionID != "" {
			return t.ExecutionID
		}
	}
	return ""
}

func copyTurns(turns []session.Turn) []session.Turn {
	out := make([]session.Turn, len(turns))
	copy(out, turns)
	return out
}
