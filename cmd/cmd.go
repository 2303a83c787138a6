// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file, database, and migrations",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Setup,
	}
}

// authCommand handles Spotify authentication
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.SpotifyAuth,
	}
}

// playlistsCommand lists the user's Spotify playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"ls"},
		Usage:   "List Spotify playlists",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of playlists to return",
				Value: 50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.SpotifyPlaylists,
	}
}

// exportCommand exports a playlist's tracks to a file or stdout
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a playlist's tracks",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Playlist ID to export",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.SpotifyExport,
	}
}

// flowCommand runs the reorder flow
func flowCommand(r *Runner) *cli.Command {
	flowFlags := []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:     "playlist",
			Aliases:  []string{"p"},
			Usage:    "Playlist ID or name to reorder",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "seed",
			Usage: "Track ID to start the ordering from",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail when any track has no audio features",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Bypass the local feature cache",
		},
	}

	return &cli.Command{
		Name:  "flow",
		Usage: "Reorder a playlist by acoustic similarity",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Reorder and create the new playlist on Spotify",
				Flags: append(flowFlags,
					&cli.StringFlag{
						Name:  "suffix",
						Usage: "Suffix for the created playlist name",
					},
					&cli.BoolFlag{
						Name:  "private",
						Usage: "Create the playlist as private",
					},
				),
				Action: r.FlowRun,
			},
			{
				Name:  "preview",
				Usage: "Show the reordering without creating a playlist",
				Flags: append(flowFlags,
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json, csv, markdown",
						Value:   "text",
					},
				),
				Action: r.FlowPreview,
			},
		},
	}
}

// cacheCommand manages the local audio feature cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local audio feature cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cached feature counts",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached audio features",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheClear,
			},
		},
	}
}

// genreCommand looks up a track's genre via Last.fm
func genreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genre",
		Usage: "Look up a track's genre on Last.fm",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "track"},
			&cli.StringArg{Name: "artist"},
		},
		Action: r.Genre,
	}
}

// tuiCommand returns the top-level TUI command for interactive reordering.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist reordering",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Bypass the local feature cache",
			},
		},
		Action: r.TUI,
	}
}
