package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nvelasco/trendboard/internal/api"
	"github.com/nvelasco/trendboard/internal/app"
	"github.com/nvelasco/trendboard/internal/credential"
	"github.com/nvelasco/trendboard/internal/csvimport"
	"github.com/nvelasco/trendboard/internal/logutils"
	"github.com/nvelasco/trendboard/internal/model"
	"github.com/nvelasco/trendboard/internal/refresh"
	"github.com/nvelasco/trendboard/internal/store"
)

// tokenKey is the keyring entry holding the optional API bearer token.
const tokenKey = "api-token"

type flags struct {
	configPath string
	apiURL     string
	logLevel   string
	logFile    string
}

func main() {
	ctx := context.Background()

	var (
		f         flags
		logCloser func()
		cache     *store.Cache
	)

	cmd := &cli.Command{
		Name:  "trendboard",
		Usage: "Terminal dashboard for product catalogs, trends and campaigns",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TRENDBOARD_CONFIG"),
				Value:       model.DefaultConfigPath(),
				Destination: &f.configPath,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "override the product API base URL",
				Sources:     cli.EnvVars("TRENDBOARD_API_URL"),
				Destination: &f.apiURL,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal)",
				Sources:     cli.EnvVars("TRENDBOARD_LOG_LEVEL"),
				Value:       "info",
				Destination: &f.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to trendboard.log next to the config)",
				Sources:     cli.EnvVars("TRENDBOARD_LOG_FILE"),
				Destination: &f.logFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// A TUI owns stdout, so always log to a file.
			logFile := f.logFile
			if logFile == "" {
				logFile = filepath.Join(filepath.Dir(f.configPath), "trendboard.log")
			}

			logger, closer, err := logutils.New(f.logLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if cache != nil {
				if err := cache.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close cache")
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "csv-template",
				Usage: "print the CSV import template to stdout",
				Action: func(ctx context.Context, c *cli.Command) error {
					fmt.Print(csvimport.Template())
					return nil
				},
			},
			{
				Name:      "set-token",
				Usage:     "store the API bearer token in the system keyring",
				ArgsUsage: "<token>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("usage: trendboard set-token <token>")
					}
					return credential.Set(tokenKey, c.Args().First())
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'trendboard --help' for usage", c.Args().First())
			}
			var err error
			cache, err = runTUI(f)
			return err
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// runTUI wires the stores together and runs the Bubble Tea program. It
// returns the opened cache so the After hook can close it.
func runTUI(f flags) (*store.Cache, error) {
	cfg, err := model.LoadConfig(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.apiURL != "" {
		cfg.API.BaseURL = f.apiURL
	}

	cache, err := store.OpenCache(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	// The token is optional: without one the client sends no
	// Authorization header.
	token := os.Getenv("TRENDBOARD_API_TOKEN")
	if token == "" {
		token, _ = credential.Get(tokenKey)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Version, token)
	productStore := store.NewProductStore(client, cache)
	notificationStore := store.NewNotificationStore(cache)
	refresher := refresh.New(
		productStore,
		notificationStore,
		time.Duration(cfg.Display.RefreshIntervalSec)*time.Second,
	)

	program := tea.NewProgram(
		app.New(productStore, notificationStore, refresher),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return cache, fmt.Errorf("run ui: %w", err)
	}
	return cache, nil
}
