package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"spotiflow/internal/shared"
)

// Genre looks up a coarse genre label for a track on Last.fm.
func (r *Runner) Genre(ctx context.Context, cmd *cli.Command) error {
	track := cmd.StringArg("track")
	artist := cmd.StringArg("artist")

	if track == "" || artist == "" {
		return fmt.Errorf("%w: usage: spotiflow genre <track> <artist>", shared.ErrMissingArgument)
	}

	if r.genre == nil {
		return fmt.Errorf("%w: Last.fm api_key must be set in config.toml", shared.ErrMissingCredentials)
	}

	r.logger.Infof("looking up genre for %s - %s", artist, track)

	genre, err := r.genre.LookupGenre(ctx, track, artist)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if genre == "" {
		r.writePlain("No genre found for %s - %s\n", artist, track)
		return nil
	}

	r.writePlain("%s - %s: %s\n", artist, track, genre)
	return nil
}
