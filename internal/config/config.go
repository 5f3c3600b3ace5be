package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds the source roots and export settings.
type Config struct {
	// DesktopRoot holds the desktop chat client's conversation exports.
	DesktopRoot string
	// AgentRoot holds the IDE agent's session index files.
	AgentRoot string
	// CLIRoot holds the CLI agent's per-project transcripts.
	CLIRoot string
	// DataRoot is the execution-log tree consumed by reconciliation.
	DataRoot string
	// ExportDir receives markdown exports.
	ExportDir string
	// IncludeToolDetail shows tool invocation markers in transcripts.
	IncludeToolDetail bool
}

// fileConfig mirrors the relevant fields of ~/.claude-chat-manager.json.
type fileConfig struct {
	DesktopRoot       string `json:"desktopRoot"`
	AgentRoot         string `json:"agentRoot"`
	CLIRoot           string `json:"cliRoot"`
	DataRoot          string `json:"dataRoot"`
	ExportDir         string `json:"exportDir"`
	IncludeToolDetail bool   `json:"includeToolDetail"`
}

// Load builds a Config by merging sources (lowest to highest priority):
//  1. Defaults derived from the home directory
//  2. ~/.claude-chat-manager.json
//  3. CCM_* environment variables
//  4. Explicit flag values (passed as arguments)
func Load(flagDataRoot, flagExportDir string) Config {
	cfg := Config{}

	// 1. Home-derived defaults
	home, homeErr := os.UserHomeDir()
	if homeErr == nil {
		cfg.DesktopRoot = filepath.Join(home, ".claude", "desktop", "conversations")
		cfg.AgentRoot = filepath.Join(home, ".cursor", "sessions")
		cfg.CLIRoot = filepath.Join(home, ".claude", "projects")
		cfg.DataRoot = filepath.Join(home, ".cursor", "chats")
		cfg.ExportDir = filepath.Join(home, "chat-exports")
	}

	// 2. Config file
	if homeErr == nil {
		p := filepath.Join(home, ".claude-chat-manager.json")
		if data, err := os.ReadFile(p); err == nil {
			var f fileConfig
			if json.Unmarshal(data, &f) == nil {
				if f.DesktopRoot != "" {
					cfg.DesktopRoot = f.DesktopRoot
				}
				if f.AgentRoot != "" {
					cfg.AgentRoot = f.AgentRoot
				}
				if f.CLIRoot != "" {
					cfg.CLIRoot = f.CLIRoot
				}
				if f.DataRoot != "" {
					cfg.DataRoot = f.DataRoot
				}
				if f.ExportDir != "" {
					cfg.ExportDir = f.ExportDir
				}
				cfg.IncludeToolDetail = f.IncludeToolDetail
			}
		}
	}

	// 3. Env vars override file
	for env, target := range map[string]*string{
		"CCM_DESKTOP_ROOT": &cfg.DesktopRoot,
		"CCM_AGENT_ROOT":   &cfg.AgentRoot,
		"CCM_CLI_ROOT":     &cfg.CLIRoot,
		"CCM_DATA_ROOT":    &cfg.DataRoot,
		"CCM_EXPORT_DIR":   &cfg.ExportDir,
	} {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}

	// 4. CLI flags override everything
	if flagDataRoot != "" {
		cfg.DataRoot = flagDataRoot
	}
	if flagExportDir != "" {
		cfg.ExportDir = flagExportDir
	}

	return cfg
}
