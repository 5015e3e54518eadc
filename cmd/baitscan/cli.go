package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/newshub/baitscan/internal/config"
	"github.com/newshub/baitscan/internal/errors"
	"github.com/newshub/baitscan/internal/ops"
	"github.com/newshub/baitscan/internal/web"
)

// maxStdinBytes bounds what analyze and tag read from stdin.
const maxStdinBytes = 4 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "baitscan",
		Usage:   "Clickbait detector for Indonesian news headlines",
		Version: Version,
		Commands: []*cli.Command{
			analyzeCmd(db, cfg),
			tagCmd(cfg),
			fetchCmd(db),
			listCmd(db),
			deleteCmd(db),
			purgeCmd(db),
			statsCmd(db),
			exportCmd(db),
			serveCmd(db, cfg),
		},
	}
	// Errors are returned to the caller instead of exiting, so tests can see them.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func formatFlag(allowText bool) cli.Flag {
	usage := "Output format: json|yaml"
	if allowText {
		usage = "Output format: json|yaml|text"
	}
	return &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: usage}
}

// analyzeCmd creates the analyze command.
func analyzeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Score a headline (reads it from stdin when no argument is given)",
		ArgsUsage: "[title]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "save", Aliases: []string{"s"}, Usage: "Store the analysis in history"},
			&cli.StringFlag{Name: "source", Usage: "Publisher or feed name (stored with --save)"},
			&cli.StringFlag{Name: "link", Usage: "Article URL (stored with --save)"},
			formatFlag(true),
		},
		Action: func(c *cli.Context) error {
			var title string
			switch {
			case c.NArg() > 0:
				title = strings.Join(c.Args().Slice(), " ")
			case stdinHasData():
				text, err := readStdin(maxStdinBytes)
				if err != nil {
					return outputError(err)
				}
				title = text
			default:
				return outputError(errors.NewInvalidRequest("title must be given as an argument or piped via stdin"))
			}

			input := ops.AnalyzeInput{
				Title: title,
				Save:  c.Bool("save"),
			}
			if source := c.String("source"); source != "" {
				input.Source = &source
			}
			if link := c.String("link"); link != "" {
				input.Link = &link
			}

			output, err := ops.Analyze(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			if c.String("format") == "text" {
				return outputReport(os.Stdout, output)
			}
			return outputFormatted(c, output)
		},
	}
}

// tagCmd creates the tag command.
func tagCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Flag many headlines at once (arguments, or one per line on stdin)",
		ArgsUsage: "[titles...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "score", Usage: "Also include the full score and category"},
			formatFlag(false),
		},
		Action: func(c *cli.Context) error {
			titles := c.Args().Slice()
			if len(titles) == 0 && stdinHasData() {
				text, err := readStdin(maxStdinBytes)
				if err != nil {
					return outputError(err)
				}
				titles = splitLines(text)
			}

			output, err := ops.Tag(c.Context, cfg, ops.TagInput{
				Titles:    titles,
				WithScore: c.Bool("score"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputFormatted(c, output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Show a stored analysis",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted analyses"},
			formatFlag(false),
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Fetch(c.Context, db, ops.FetchInput{
				ID:             c.Args().First(),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputFormatted(c, output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored analyses, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category: safe|warning|suspicious|danger"},
			&cli.BoolFlag{Name: "clickbait", Usage: "Only analyses flagged as clickbait"},
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Filter by title substring"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted analyses"},
			formatFlag(false),
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				ClickbaitOnly:  c.Bool("clickbait"),
				Limit:          c.Int("limit"),
				Offset:         c.Int("offset"),
				IncludeDeleted: c.Bool("include-deleted"),
			}
			if category := c.String("category"); category != "" {
				input.Category = &category
			}
			if query := c.String("query"); query != "" {
				input.Query = &query
			}

			output, err := ops.List(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputFormatted(c, output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a stored analysis",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, db, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete soft-deleted analyses",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only purge if deleted more than N days ago (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}
			if olderThan := c.String("older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}

			output, err := ops.Purge(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Summarize stored analyses",
		Flags: []cli.Flag{formatFlag(false)},
		Action: func(c *cli.Context) error {
			output, err := ops.Stats(c.Context, db)
			if err != nil {
				return outputError(err)
			}

			return outputFormatted(c, output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write stored analyses as JSONL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted analyses"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to this file instead of stdout"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ExportInput{IncludeDeleted: c.Bool("include-deleted")}
			if category := c.String("category"); category != "" {
				input.Category = &category
			}

			path := c.String("output")
			if path == "" {
				if _, err := ops.Export(c.Context, db, os.Stdout, input); err != nil {
					return outputError(err)
				}
				return nil
			}

			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
			if err != nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("cannot open output file: %v", err)))
			}
			w := bufio.NewWriter(f)
			output, err := ops.Export(c.Context, db, w, input)
			if err == nil {
				err = w.Flush()
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				_ = os.Remove(path)
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8080, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			port := c.Int("port")
			if port < 1 || port > 65535 {
				return outputError(errors.NewInvalidRequest("port must be between 1 and 65535"))
			}

			srv, err := web.NewServer(db, cfg, Version, c.String("bind"), port)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(srv); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// output0 writes v to stdout in the format selected by --format.
func outputFormatted(c *cli.Context, v any) error {
	switch format := c.String("format"); format {
	case "", "json":
		return outputJSON(v)
	case "yaml":
		return outputYAML(v)
	default:
		return outputError(errors.NewInvalidRequest(fmt.Sprintf("unsupported format %q", format)))
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML marshals result to stdout as YAML.
func outputYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// outputReport prints a human-readable analysis.
func outputReport(w io.Writer, out *ops.AnalyzeOutput) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Judul     : %s\n", out.Title)
	fmt.Fprintf(bw, "Skor      : %d/%d\n", out.Score, out.MaxScore)
	fmt.Fprintf(bw, "Kategori  : %s (%s)\n", out.CategoryLabel, out.Category)
	fmt.Fprintf(bw, "Clickbait : %s\n", yesNo(out.IsClickbait))
	if out.ID != "" {
		fmt.Fprintf(bw, "ID        : %s\n", out.ID)
	}
	fmt.Fprintf(bw, "\n%s\n", out.CategoryDescription)

	if len(out.Triggers) > 0 {
		fmt.Fprintf(bw, "\nIndikator Terdeteksi (%d):\n", len(out.Triggers))
		for _, t := range out.Triggers {
			fmt.Fprintf(bw, "  +%-3d %s: %s\n", t.Weight, t.MatchedText, t.Description)
		}
	}
	return bw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "ya"
	}
	return "tidak"
}

// outputError formats error for CLI.
func outputError(err error) error {
	var bErr *errors.BaitError
	if stderrors.As(err, &bErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", bErr.Code, bErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most maxBytes from stdin and trims surrounding whitespace.
func readStdin(maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxBytes+1))
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if int64(len(data)) > maxBytes {
		return "", errors.NewInvalidRequest(fmt.Sprintf("stdin exceeds %d bytes", maxBytes))
	}
	return strings.TrimSpace(string(data)), nil
}

// splitLines returns the non-blank lines of s, trimmed.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}
