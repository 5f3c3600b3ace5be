package reconcile

import (
	"fmt"
	"strings"
)

// Role values of a reconciled message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is the engine's sole output unit.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BlockKind is the tagged variant of a content block. Unknown kinds are
// skipped so new block types in future log formats degrade gracefully.
type BlockKind int

const (
	BlockUnknown BlockKind = iota
	BlockText
	BlockToolInvocation
	BlockToolResponse
	BlockDocument
)

func blockKind(tag string) BlockKind {
	switch tag {
	case "text":
		return BlockText
	case "tool_call", "tool_use":
		return BlockToolInvocation
	case "tool_result":
		return BlockToolResponse
	case "document":
		return BlockDocument
	default:
		return BlockUnknown
	}
}

// internalMarkers identify agent-internal bookkeeping (environment
// snapshots, identity preambles, system directives) that must never
// appear in an exported transcript. A text block containing one drops
// the entire message.
var internalMarkers = []string{
	"<system-reminder>",
	"<environment_context>",
	"<local-command-",
	"<command-name>",
	"<permissions",
}

func isInternalText(text string) bool {
	for _, marker := range internalMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// ExtractOptions controls message extraction from a decoded log.
type ExtractOptions struct {
	// IncludeToolDetail keeps tool-role messages and renders tool
	// invocation/response markers inside assistant content.
	IncludeToolDetail bool
}

// ExtractMessages converts the most complete of the log's candidate
// containers into an ordered list of role/content messages. More
// entries is taken to mean a more complete conversation; the containers
// are not merged.
func ExtractMessages(log *ExecutionLog, opts ExtractOptions) []Message {
	if log == nil {
		return nil
	}

	entries := mostCompleteContainer(log)
	out := make([]Message, 0, len(entries))
	for _, entry := range entries {
		role := normalizeRole(entry.Role)
		if role == RoleTool && !opts.IncludeToolDetail {
			continue
		}
		content, internal := foldBlocks(entry.Content, opts)
		if internal || content == "" {
			continue
		}
		out = append(out, Message{Role: role, Content: content})
	}
	return out
}

// mostCompleteContainer picks whichever candidate holds the most raw
// entries: context snapshot first, then input echo, then top level.
func mostCompleteContainer(log *ExecutionLog) []RawEntry {
	best := log.Context.Messages
	if len(log.Input.Messages) > len(best) {
		best = log.Input.Messages
	}
	if len(log.Messages) > len(best) {
		best = log.Messages
	}
	return best
}

// foldBlocks flattens an entry's typed blocks into a single content
// string. The second return is true when the entry is agent-internal
// and must be dropped whole.
func foldBlocks(blocks []Block, opts ExtractOptions) (string, bool) {
	var parts []string
	for _, b := range blocks {
		switch blockKind(b.Type) {
		case BlockText:
			if isInternalText(b.Text) {
				return "", true
			}
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		case BlockToolInvocation:
			if opts.IncludeToolDetail && b.Name != "" {
				parts = append(parts, fmt.Sprintf("[Tool: %s]", b.Name))
			}
		case BlockToolResponse:
			if opts.IncludeToolDetail {
				status := b.Status
				if status == "" {
					status = "done"
				}
				parts = append(parts, fmt.Sprintf("[Tool result: %s]", status))
			}
		case BlockDocument:
			// large structural payloads such as file trees
		case BlockUnknown:
			// future block types: skip
		}
	}
	return strings.Join(parts, "\n"), false
}

// normalizeRole maps source-specific role vocabularies onto the output
// contract.
func normalizeRole(role string) string {
	switch strings.ToLower(role) {
	case "human", "user":
		return RoleUser
	case "bot", "agent", "assistant":
		return RoleAssistant
	case "tool":
		return RoleTool
	default:
		return role
	}
}

// AssistantResponses filters msgs down to assistant content, in order.
// This is the response list the sequential enricher consumes.
func AssistantResponses(msgs []Message) []string {
	var out []string
	for _, m := range msgs {
		if m.Role == RoleAssistant {
			out = append(out, m.Content)
		}
	}
	return out
}
