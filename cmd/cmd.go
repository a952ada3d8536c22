// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/tunely/internal/formatter"
	"github.com/urfave/cli/v3"
)

// serveCommand runs the web front-end
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web front-end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address (host:port); overrides server.host and server.port",
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "Favorites store driver (json, sqlite, memory); overrides store.driver",
			},
		},
		Action: r.Serve,
	}
}

// searchCommand queries the search collaborator
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search for songs",
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of results to print",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// favoritesCommand manages the favorites collection
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite tracks",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List favorites in insertion order",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.FavoritesList,
			},
			{
				Name:  "add",
				Usage: "Add a track to favorites (no-op when the id is already present)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Track ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Track name",
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Artist name",
					},
					&cli.StringFlag{
						Name:  "artwork",
						Usage: "Artwork URL (100x100)",
					},
					&cli.StringFlag{
						Name:  "preview",
						Usage: "Preview audio URL",
					},
				},
				Action: r.FavoritesAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a track from favorites",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.FavoritesRemove,
			},
			{
				Name:      "import",
				Usage:     "Search each term in a file and add the first result to favorites",
				ArgsUsage: "<file|->",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "file",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Concurrent searches",
						Value:   4,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Show matches without saving them",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the import result as JSON",
					},
				},
				Action: r.FavoritesImport,
			},
			{
				Name:  "export",
				Usage: "Export favorites to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text, json)",
						Value:   string(formatter.FormatCSV),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default favorites.<ext>, - for stdout)",
					},
				},
				Action: r.FavoritesExport,
			},
		},
	}
}

// setupCommand writes the config file and prepares the database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration to --config",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Create the sqlite database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand launches the terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "term",
				Usage: "Search term to run on start",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File that receives log output while the TUI is running",
				Value: "./tmp/tunely-tui.log",
			},
		},
		Action: r.TUI,
	}
}
