// Package reconcile reconstructs complete conversations from abbreviated
// session histories and the execution-log tree that holds the full text.
// Recoverable problems surface as diagnostics, never as errors: an export
// with an occasional unexpanded placeholder is acceptable, a corrupted
// transcript is not.
package reconcile

import "fmt"

// DiagKind classifies a diagnostic so callers can tell apart conditions
// safe to ignore from ones worth a manual look.
type DiagKind string

const (
	DiagLogNotFound        DiagKind = "log_not_found"
	DiagStructural         DiagKind = "structural"
	DiagIdentityMismatch   DiagKind = "identity_mismatch"
	DiagCountMismatch      DiagKind = "count_mismatch"
	DiagValidationRejected DiagKind = "validation_rejected"
	DiagFallback           DiagKind = "fallback"
)

// Diagnostic is one recoverable condition observed during reconciliation.
type Diagnostic struct {
	Kind    DiagKind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
}

func diagf(kind DiagKind, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
