package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"commitview/internal/api"
	"commitview/internal/config"
	"commitview/internal/eventbus"
	"commitview/internal/ui"
)

func newRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "commitview [owner/repo[@sha]]",
		Short: "Browse repositories, commits and side-by-side file diffs",
		Long: `A terminal browser for a repository REST API.

Usage modes:
  commitview                     Start at the repository list
  commitview acme/app            Open the commit history of acme/app
  commitview acme/app@0123abc    Open a single commit and its changed files
  commitview diff acme/app@0123abc path/to/file.go
                                 Print one file's before/after columns`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runBrowser,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: "+config.DefaultPath()+")")
	cmd.PersistentFlags().String("api", "",
		"Base URL of the API (overrides api.base_url)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable debug logging")
	cmd.Flags().Int("page", 1, "Commit page to open")
	cmd.Flags().Int("per-page", 0, "Commits per page (default: ui.per_page)")

	cmd.AddCommand(newDiffCommand(), newConfigCommand())
	return cmd
}

// loadConfig reads the config file and applies the persistent flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, config.ConfigService, error) {
	path, _ := cmd.Flags().GetString("config")
	svc := config.NewConfigServiceWithPath(path)
	cfg, err := svc.Load()
	if err != nil {
		return nil, svc, err
	}
	if base, _ := cmd.Flags().GetString("api"); base != "" {
		cfg.API.BaseURL = base
		if err := cfg.Validate(); err != nil {
			return nil, svc, err
		}
	}
	return cfg, svc, nil
}

// setupLogging sends logs to the configured file so they never draw over
// the terminal UI. The returned closer is safe to call when no file opened.
func setupLogging(cmd *cobra.Command, cfg config.LogConfig) io.Closer {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		level = logger.InfoLevel
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logger.DebugLevel
	}
	logger.SetLevel(level)

	if cfg.File == "" {
		logger.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	logFile, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Warnf("Could not open log file: %v", err)
		logger.SetOutput(io.Discard)
		return io.NopCloser(nil)
	}
	logger.SetOutput(logFile)
	return logCloser{file: logFile}
}

type logCloser struct {
	file *os.File
}

// Close restores stderr logging before closing the file
func (c logCloser) Close() error {
	logger.SetOutput(os.Stderr)
	return c.file.Close()
}

func runBrowser(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer setupLogging(cmd, cfg.Log).Close()

	start := ui.Start{}
	if len(args) == 1 {
		t, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		start.Owner, start.Repo, start.SHA = t.Owner, t.Repo, t.SHA
	}
	start.Page, _ = cmd.Flags().GetInt("page")
	start.PerPage, _ = cmd.Flags().GetInt("per-page")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New()
	defer bus.Close()

	client, err := api.NewClientFromConfig(cfg.API, bus)
	if err != nil {
		return err
	}
	logger.Infof("[main] browsing %s", client.BaseURL())

	model := ui.NewModel(ctx, client, cfg, start)
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseCellMotion()}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	// Forward fetch telemetry to the UI without blocking the bus dispatcher
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("[main] event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventFetchStarted,
		eventbus.EventFetchCompleted,
		eventbus.EventFetchFailed,
	} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
