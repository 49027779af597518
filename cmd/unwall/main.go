package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/mgrzeszczak/unwall"
	unwallhttp "github.com/mgrzeszczak/unwall/http"
	"github.com/mgrzeszczak/unwall/rod"
	"github.com/mgrzeszczak/unwall/scrape"
	unwallslog "github.com/mgrzeszczak/unwall/slog"
	"github.com/mgrzeszczak/unwall/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for the result archive. Set before calling Run().
	DBPath string

	// SQLite database used by the archive service.
	DB *sqlite.DB

	// Services injectable for end-to-end testing. When nil, Run wires
	// the real implementations.
	Fetcher unwall.Fetcher
	Scraper Scraper
	Archive unwall.ArchiveService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("unwall"),
		kong.Description("Scrape WAF/bot protected websites using browser impersonation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'unwall --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire the fetch and scrape pipeline for commands that need it.
	if cmd == "scrape" || cmd == "batch" {
		if err := m.wireScraper(cli, cmd, deps); err != nil {
			return err
		}
		if deps.Closer != nil {
			defer deps.Closer.Close()
		}
	}

	// Open the archive database only when a command touches it.
	if needsArchive(cli, cmd) {
		if m.Archive == nil {
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintln(stderr, "Hint: Set UNWALL_DB to use a different database path")
				return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
			}
			defer m.Close()
			m.Archive = sqlite.NewArchiveService(m.DB)
		}
		deps.Archive = m.Archive
	}

	return kongCtx.Run(deps)
}

// wireScraper builds the fetcher and scraper for the scrape and batch
// commands, honoring test-injected instances.
func (m *Main) wireScraper(cli *CLI, cmd string, deps *Dependencies) error {
	if m.Scraper != nil {
		deps.Scraper = m.Scraper
		return nil
	}

	browser, timeout, render := cli.Scrape.Browser, cli.Scrape.Timeout, cli.Scrape.Render
	if cmd == "batch" {
		browser, timeout, render = cli.Batch.Browser, cli.Batch.Timeout, cli.Batch.Render
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		var err error
		if render {
			fetcher, err = rod.NewFetcher(rod.WithFetchTimeout(time.Duration(timeout) * time.Second))
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
				return fmt.Errorf("failed to start browser: %w", err)
			}
		} else {
			fetcher, err = unwallhttp.NewFetcher(
				unwallhttp.WithBrowser(browser),
				unwallhttp.WithTimeout(time.Duration(timeout)*time.Second),
			)
			if err != nil {
				return err
			}
		}
		deps.Closer = fetcher
	}

	if cli.Verbose {
		fetcher = unwallslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	deps.Scraper = scrape.NewScraper(fetcher, scrape.WithLogger(deps.Logger))
	return nil
}

func needsArchive(cli *CLI, cmd string) bool {
	switch cmd {
	case "archive":
		return true
	case "scrape":
		return cli.Scrape.Save
	case "batch":
		return cli.Batch.Save
	default:
		return false
	}
}

func defaultDBPath() string {
	if path := os.Getenv("UNWALL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "unwall.db"
	}
	dir := filepath.Join(home, ".unwall")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "unwall.db")
}
