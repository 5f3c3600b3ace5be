package session

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// ScanCLI walks the CLI coding agent's per-project session directories
// under root and parses each JSONL transcript. CLI transcripts are
// full fidelity already, so turns carry no execution references.
func ScanCLI(root string) []Session {
	projects, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var sessions []Session
	for _, proj := range projects {
		if !proj.IsDir() {
			continue
		}
		projPath := filepath.Join(root, proj.Name())
		files, err := os.ReadDir(projPath)
		if err != nil {
			continue
		}
		for _, f := range files {
			// only top-level .jsonl files, subdirectories hold subagent runs
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".jsonl") {
				continue
			}
			s := parseCLISession(filepath.Join(projPath, f.Name()))
			if s != nil {
				sessions = append(sessions, *s)
			}
		}
	}
	return sessions
}

// cliLine is one record of a CLI transcript. Content is either a plain
// string or an array of typed blocks.
type cliLine struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	CWD       string `json:"cwd"`
	Message   struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

func parseCLISession(path string) *Session {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	// large buffer to survive oversized tool outputs
	sc.Buffer(make([]byte, 0, 256*1024), 10*1024*1024)

	var (
		id    string
		cwd   string
		turns []Turn
	)

	for sc.Scan() {
		var line cliLine
		if err := json.Unmarshal(sc.Bytes(), &line); err != nil {
			continue
		}
		if id == "" && line.SessionID != "" {
			id = line.SessionID
			cwd = line.CWD
		}

		switch line.Type {
		case "user":
			text := cliTextContent(line.Message.Content)
			if text == "" || isCLISystemContent(text) {
				continue
			}
			turns = append(turns, Turn{Role: "user", Text: text})
		case "assistant":
			text := cliTextContent(line.Message.Content)
			if text == "" {
				continue
			}
			// merge consecutive assistant records into one turn
			if n := len(turns); n > 0 && turns[n-1].Role == "assistant" {
				turns[n-1].Text += "\n" + text
				continue
			}
			turns = append(turns, Turn{Role: "assistant", Text: text})
		}
	}

	if id == "" {
		return nil
	}

	project := filepath.Base(cwd)
	if project == "" || project == "." {
		project = "unknown"
	}

	return &Session{
		ID:       id,
		ShortID:  shortID(id),
		Source:   SourceCLI,
		Project:  project,
		CWD:      cwd,
		Summary:  summaryFromTurns("", turns),
		Time:     fileModTime(path),
		FilePath: path,
		Turns:    turns,
	}
}

// cliTextContent folds the text blocks of a record into one string.
func cliTextContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return StripANSI(str)
	}

	var blocks []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}

	var texts []string
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			texts = append(texts, StripANSI(b.Text))
		}
	}
	return strings.Join(texts, "\n")
}

// isCLISystemContent reports whether text is tool-generated bookkeeping
// that should not appear as a user turn.
func isCLISystemContent(text string) bool {
	return strings.HasPrefix(text, "<local-command-") ||
		strings.HasPrefix(text, "<command-name>") ||
		strings.Contains(text, "<system-reminder>") ||
		strings.HasPrefix(text, "<environment_context>")
}
