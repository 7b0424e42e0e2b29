package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reelist/client"

	"github.com/urfave/cli/v2"
)

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "reelist", "token"), nil
}

func loadToken() string {
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func newAPI(c *cli.Context) *client.API {
	api := client.New(c.String("server"))
	if token := loadToken(); token != "" {
		api.SetToken(token)
	}
	return api
}

func parseMovieID(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one movie id")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid movie id %q", c.Args().First())
	}
	return id, nil
}

func main() {
	app := &cli.App{
		Name:  "reelist",
		Usage: "track your progress through the curated 100-movie list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "reelist server base URL",
				Value:   "http://localhost:5003",
				EnvVars: []string{"REELIST_SERVER"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "create an account and store its token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(c *cli.Context) error {
					api := client.New(c.String("server"))
					token, err := api.Register(c.Context, c.String("username"), c.String("password"))
					if err != nil {
						return err
					}
					if err := saveToken(token); err != nil {
						return fmt.Errorf("failed to store token: %w", err)
					}
					fmt.Printf("registered as %s\n", c.String("username"))
					return nil
				},
			},
			{
				Name:  "login",
				Usage: "log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(c *cli.Context) error {
					api := client.New(c.String("server"))
					token, err := api.Login(c.Context, c.String("username"), c.String("password"))
					if err != nil {
						return err
					}
					if err := saveToken(token); err != nil {
						return fmt.Errorf("failed to store token: %w", err)
					}
					fmt.Printf("logged in as %s\n", c.String("username"))
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "show the catalog with watched marks",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Usage: "title substring"},
					&cli.BoolFlag{Name: "watched", Usage: "only watched movies"},
					&cli.BoolFlag{Name: "unwatched", Usage: "only unwatched movies"},
					&cli.Float64Flag{Name: "min-rating"},
					&cli.Float64Flag{Name: "max-rating"},
					&cli.IntFlag{Name: "min-year"},
					&cli.IntFlag{Name: "max-year"},
				},
				Action: func(c *cli.Context) error {
					ctrl := client.NewController(newAPI(c))
					if err := ctrl.Load(c.Context); err != nil {
						return err
					}

					movies := ctrl.Filtered(client.Filter{
						Search:    c.String("search"),
						Watched:   c.Bool("watched"),
						Unwatched: c.Bool("unwatched"),
						MinRating: c.Float64("min-rating"),
						MaxRating: c.Float64("max-rating"),
						MinYear:   c.Int("min-year"),
						MaxYear:   c.Int("max-year"),
					})

					for _, m := range movies {
						mark := " "
						if ctrl.IsWatched(m.ID) {
							mark = "x"
						}
						fmt.Printf("%3d. [%s] %-45s %d  %.1f/10  (id %d)\n",
							m.Rank, mark, m.Title, m.Year(), m.VoteAverage, m.ID)
					}
					fmt.Printf("\n%d / %d movies watched\n", ctrl.WatchedCount(), len(ctrl.Movies()))
					return nil
				},
			},
			{
				Name:      "watch",
				Usage:     "mark a movie as watched",
				ArgsUsage: "<movie-id>",
				Action: func(c *cli.Context) error {
					id, err := parseMovieID(c)
					if err != nil {
						return err
					}
					if err := newAPI(c).Watch(c.Context, id); err != nil {
						return err
					}
					fmt.Printf("marked %d as watched\n", id)
					return nil
				},
			},
			{
				Name:      "unwatch",
				Usage:     "remove the watched mark from a movie",
				ArgsUsage: "<movie-id>",
				Action: func(c *cli.Context) error {
					id, err := parseMovieID(c)
					if err != nil {
						return err
					}
					if err := newAPI(c).Unwatch(c.Context, id); err != nil {
						return err
					}
					fmt.Printf("unmarked %d\n", id)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
