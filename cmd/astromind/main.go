package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sashaai2006/AstroMind/internal/config"
	"github.com/sashaai2006/AstroMind/internal/tui"
	"github.com/sashaai2006/AstroMind/internal/tui/views"
	"github.com/sashaai2006/AstroMind/internal/workspace"
	"github.com/sashaai2006/AstroMind/pkg/backend"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	var (
		baseURL string
		cfgPath string
	)

	root := &cobra.Command{
		Use:   "astromind <project-id>",
		Short: "Terminal workspace for an AstroMind project",
		Long: "Opens the workspace for a generated project: file tree, editor,\n" +
			"pipeline graph, and live log feed, synchronized against the backend.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], baseURL, cfgPath)
		},
	}
	root.Flags().StringVar(&baseURL, "base-url", "", "backend base URL (default from config or "+config.DefaultBaseURL+")")
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file")
	return root
}

func run(projectID, baseURL, cfgPath string) error {
	// The TUI owns the terminal; keep log noise down to errors.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if baseURL == "" {
		baseURL = cfg.Backend.BaseURL
	}

	client := backend.NewClient(baseURL, projectID)

	sub, err := backend.NewSubscriber(baseURL, projectID)
	if err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	if err := sub.Connect(); err != nil {
		// The workspace still works without live events; fetches cover
		// the initial snapshot.
		slog.Error("event stream unavailable", "error", err)
	}
	defer sub.Close()

	store := workspace.NewStore(client)
	dispatcher := workspace.NewDispatcher(store, client)

	editorView := views.NewEditorView()
	pipelineView := views.NewPipelineView()

	startTab := 0
	if cfg.UI.StartTab == "pipeline" {
		startTab = 1
	}
	return tui.Run(client, store, dispatcher, sub.Events(), startTab, editorView, pipelineView)
}
