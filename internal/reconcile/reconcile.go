package reconcile

import (
	"go.uber.org/zap"

	"github.com/obodnikov/claude-chat-manager-sub000/internal/session"
)

// Strategy selects how a session is reconciled against its execution
// logs.
type Strategy int

const (
	// StrategyEnrich rewrites assistant placeholders in place, one
	// extracted response per placeholder.
	StrategyEnrich Strategy = iota
	// StrategyReconstruct rebuilds the whole conversation from the most
	// recent cumulative execution log.
	StrategyReconstruct
)

// StrategyFor returns the strategy suited to a session source. The IDE
// agent's logs are cumulative snapshots; everything else enriches in
// place.
func StrategyFor(src session.Source) Strategy {
	if src == session.SourceAgent {
		return StrategyReconstruct
	}
	return StrategyEnrich
}

// Options configures a reconciliation call.
type Options struct {
	Strict            bool
	IncludeToolDetail bool
	Validation        ValidationConfig
	Logger            *zap.Logger
}

// Reconcile runs the selected strategy over a session history using a
// prebuilt index. It never fails for recoverable conditions; whatever
// could not be recovered is described in the returned diagnostics.
func Reconcile(turns []session.Turn, idx Index, strat Strategy, opts Options) ([]Message, []Diagnostic) {
	extract := ExtractOptions{IncludeToolDetail: opts.IncludeToolDetail}

	switch strat {
	case StrategyReconstruct:
		return Reconstruct(turns, idx, ReconstructOptions{Extract: extract, Logger: opts.Logger})
	default:
		enriched, diags := Enrich(turns, idx, EnrichOptions{
			Strict:     opts.Strict,
			Validation: opts.Validation,
			Extract:    extract,
			Logger:     opts.Logger,
		})
		// enrichment rewrites content only; the message list stays 1:1
		// with the input turns
		out := make([]Message, len(enriched))
		for i, t := range enriched {
			out[i] = Message{Role: normalizeRole(t.Role), Content: t.Text}
		}
		return out, diags
	}
}

// ReconcileRoot builds a fresh index under root and reconciles against
// it. The returned error covers only the data-root precondition; use
// BuildIndex plus Reconcile directly to share one index across a batch.
func ReconcileRoot(turns []session.Turn, root string, strat Strategy, opts Options) ([]Message, []Diagnostic, error) {
	idx, err := BuildIndex(root, IndexOptions{Logger: opts.Logger})
	if err != nil {
		return nil, nil, err
	}
	msgs, diags := Reconcile(turns, idx, strat, opts)
	return msgs, diags, nil
}
