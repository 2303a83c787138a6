package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"spotiflow/internal/services"
	"spotiflow/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService services.Service
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			if len(config.Credentials.Spotify.AccessToken) > 0 {
				if err := svc.OAuthenticate(context.Background(), config.Credentials.Spotify.Token()); err != nil {
					logger.Debug("stored tokens rejected", "error", err)
				}
			}
			spotifyService = svc
		}
	}

	var genreService services.GenreTagger
	if config.Credentials.LastFM.APIKey != "" {
		genreService = services.NewLastFMService(config.Credentials.LastFM.APIKey, config.Credentials.LastFM.BaseURL, nil)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Spotify:    spotifyService,
		Genre:      genreService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "spotiflow",
		Usage:    "Reorder Spotify playlists by acoustic similarity",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
