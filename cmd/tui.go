package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"spotiflow/internal/shared"
	"spotiflow/internal/tasks"
	"spotiflow/internal/ui"
)

// TUI launches the interactive terminal UI for playlist reordering.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	engine, err := r.engine(cmd.Bool("no-cache"))
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spotiflow-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	opts := tasks.FlowOpts{
		NameSuffix: r.config.Flow.NameSuffix,
		Public:     r.config.Flow.Public,
		BatchSize:  r.config.Flow.BatchSize,
		RateLimit:  r.config.Flow.RateLimit,
	}

	model := ui.NewModel(ctx, r.spotify, engine, opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
