package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/urfave/cli/v3"

	"spotiflow/internal/formatter"
	"spotiflow/internal/shared"
	"spotiflow/internal/tasks"
)

// flowOpts builds FlowOpts from config defaults overridden by command flags.
func (r *Runner) flowOpts(cmd *cli.Command) tasks.FlowOpts {
	opts := tasks.FlowOpts{
		Seed:       cmd.String("seed"),
		Strict:     cmd.Bool("strict"),
		NameSuffix: r.config.Flow.NameSuffix,
		Public:     r.config.Flow.Public,
		BatchSize:  r.config.Flow.BatchSize,
		RateLimit:  r.config.Flow.RateLimit,
	}

	if suffix := cmd.String("suffix"); suffix != "" {
		opts.NameSuffix = suffix
	}
	if cmd.Bool("private") {
		opts.Public = false
	}

	return opts
}

// runFlow executes the reorder flow, logging progress updates as they arrive.
func (r *Runner) runFlow(ctx context.Context, cmd *cli.Command, create bool) (*tasks.ReorderResult, error) {
	engine, err := r.engine(cmd.Bool("no-cache"))
	if err != nil {
		return nil, err
	}

	idOrName := cmd.String("playlist")
	opts := r.flowOpts(cmd)

	progress := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	var result *tasks.ReorderResult
	if create {
		result, err = engine.Run(ctx, progress, idOrName, opts)
	} else {
		result, err = engine.Preview(ctx, progress, idOrName, opts)
	}
	close(progress)
	wg.Wait()

	if err != nil {
		if reauthed, authErr := r.handleSpotifyAuthError(ctx, err); reauthed {
			if authErr != nil {
				return nil, authErr
			}
			return r.runFlow(ctx, cmd, create)
		}
		return nil, err
	}

	return result, nil
}

// FlowRun reorders a playlist and creates the result on Spotify.
func (r *Runner) FlowRun(ctx context.Context, cmd *cli.Command) error {
	result, err := r.runFlow(ctx, cmd, true)
	if err != nil {
		return err
	}

	r.writePlain("%s", formatter.ReorderToText(result))
	return nil
}

// FlowPreview computes and prints the reordering without touching Spotify.
func (r *Runner) FlowPreview(ctx context.Context, cmd *cli.Command) error {
	result, err := r.runFlow(ctx, cmd, false)
	if err != nil {
		return err
	}

	switch format := cmd.String("format"); format {
	case "json":
		return r.writeJSON(result, true)
	case "csv":
		data, err := formatter.ReorderToCSV(result)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case "markdown", "md":
		return r.writePlain("%s", formatter.ReorderToMarkdown(result))
	case "text", "txt":
		return r.writePlain("%s", formatter.ReorderToText(result))
	default:
		return fmt.Errorf("%w: unknown format '%s'", shared.ErrInvalidFlag, format)
	}
}
