package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obodnikov/claude-chat-manager-sub000/internal/config"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/export"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/reconcile"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/session"
	"github.com/obodnikov/claude-chat-manager-sub000/internal/ui"
)

var (
	flagDataRoot  string
	flagExportDir string
	flagStrict    bool
	flagTools     bool
	flagVerbose   bool
)

func main() {
	root := &cobra.Command{
		Use:   "claude-chat-manager",
		Short: "Browse and export chat-assistant sessions",
		Long: "claude-chat-manager browses sessions recorded by the desktop chat client,\n" +
			"the IDE coding agent, and the CLI coding agent, reconciling abbreviated\n" +
			"histories against their execution logs before display or export.",
		RunE: runBrowse,
	}

	root.PersistentFlags().StringVar(&flagDataRoot, "data-root", "", "execution-log tree (overrides env/config file)")
	root.PersistentFlags().StringVar(&flagExportDir, "export-dir", "", "directory for markdown exports")
	root.PersistentFlags().BoolVar(&flagStrict, "strict", false, "abort enrichment on count mismatch")
	root.PersistentFlags().BoolVar(&flagTools, "tools", false, "include tool invocation markers")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(listCmd(), showCmd(), exportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg := config.Load(flagDataRoot, flagExportDir)
	if flagTools {
		cfg.IncludeToolDetail = true
	}
	return cfg
}

func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("not a terminal; use the list, show, or export subcommands")
	}

	cfg := loadConfig()
	m := ui.NewModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			sessions := discover(cfg)
			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}
			for _, s := range sessions {
				fmt.Printf("%-7s  %-10s  %-16s  %s\n", s.Source, s.ShortID, s.Time.Format("2006-01-02 15:04"), s.Summary)
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print a reconciled transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			logger := newLogger()
			defer logger.Sync()

			s, msgs, diags, err := reconcileByID(cfg, logger, args[0])
			if err != nil {
				return err
			}
			fmt.Print(export.Markdown(s, msgs, diags))
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var book bool
	cmd := &cobra.Command{
		Use:   "export [session-id]",
		Short: "Write markdown exports",
		Long:  "Export one session, or every session when no id is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			logger := newLogger()
			defer logger.Sync()

			if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
				return fmt.Errorf("create export dir: %w", err)
			}

			if len(args) == 1 {
				s, msgs, diags, err := reconcileByID(cfg, logger, args[0])
				if err != nil {
					return err
				}
				path := filepath.Join(cfg.ExportDir, export.Filename(s))
				if err := os.WriteFile(path, []byte(export.Markdown(s, msgs, diags)), 0o644); err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			}

			sessions := discover(cfg)
			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			// one index for the whole batch
			idx, err := reconcile.BuildIndex(cfg.DataRoot, reconcile.IndexOptions{Logger: logger})
			if err != nil {
				return err
			}

			opts := reconcile.Options{
				Strict:            flagStrict,
				IncludeToolDetail: cfg.IncludeToolDetail,
				Logger:            logger,
			}

			if book {
				var sections []export.BookSection
				for i := range sessions {
					s := &sessions[i]
					msgs, diags := reconcile.Reconcile(s.Turns, idx, reconcile.StrategyFor(s.Source), opts)
					sections = append(sections, export.BookSection{Session: s, Messages: msgs, Diagnostics: diags})
				}
				path := filepath.Join(cfg.ExportDir, "sessions-book.md")
				if err := os.WriteFile(path, []byte(export.Book("Chat Sessions", sections)), 0o644); err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			}

			for i := range sessions {
				s := &sessions[i]
				msgs, diags := reconcile.Reconcile(s.Turns, idx, reconcile.StrategyFor(s.Source), opts)
				path := filepath.Join(cfg.ExportDir, export.Filename(s))
				if err := os.WriteFile(path, []byte(export.Markdown(s, msgs, diags)), 0o644); err != nil {
					return err
				}
				fmt.Println(path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&book, "book", false, "write a single combined document")
	return cmd
}

func discover(cfg config.Config) []session.Session {
	return session.Discover(session.Roots{
		Desktop: cfg.DesktopRoot,
		Agent:   cfg.AgentRoot,
		CLI:     cfg.CLIRoot,
	})
}

func reconcileByID(cfg config.Config, logger *zap.Logger, id string) (*session.Session, []reconcile.Message, []reconcile.Diagnostic, error) {
	sessions := discover(cfg)
	s := session.Find(sessions, id)
	if s == nil {
		return nil, nil, nil, fmt.Errorf("session %s not found", id)
	}

	msgs, diags, err := reconcile.ReconcileRoot(s.Turns, cfg.DataRoot, reconcile.StrategyFor(s.Source), reconcile.Options{
		Strict:            flagStrict,
		IncludeToolDetail: cfg.IncludeToolDetail,
		Logger:            logger,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return s, msgs, diags, nil
}
