package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/scrape"
)

// Scraper is the single-URL scrape operation commands run against.
type Scraper interface {
	Scrape(ctx context.Context, url string, opts scrape.Options) (*unwall.Result, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Scraper Scraper
	Archive unwall.ArchiveService

	// Closer releases the wired fetcher after the command completes.
	Closer io.Closer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetch and parse progress"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape a single URL"`
	Batch    BatchCmd    `cmd:"" help:"Scrape every URL in a list file"`
	Browsers BrowsersCmd `cmd:"" help:"List supported browser profiles"`
	Archive  ArchiveCmd  `cmd:"" help:"Manage archived results"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL          string `arg:"" help:"URL to scrape"`
	Browser      string `short:"b" default:"chrome" env:"UNWALL_BROWSER" help:"Browser profile to impersonate"`
	Format       string `short:"f" default:"text" enum:"text,markdown,json" help:"Output format"`
	Output       string `short:"o" help:"Output file (default: stdout)"`
	Timeout      int    `short:"t" default:"30" help:"Request timeout in seconds"`
	Comments     bool   `help:"Fetch YouTube comments"`
	CommentChars int    `default:"50000" help:"Character budget for comment text"`
	CommentPages int    `default:"1" help:"Maximum comment pages to fetch"`
	Render       bool   `help:"Render pages in a headless browser"`
	Save         bool   `help:"Archive the result in the local database"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File         string  `arg:"" help:"File with one URL per line (# comments allowed)"`
	Browser      string  `short:"b" default:"chrome" env:"UNWALL_BROWSER" help:"Browser profile to impersonate"`
	Format       string  `short:"f" default:"text" enum:"text,markdown,json" help:"Output format"`
	Timeout      int     `short:"t" default:"30" help:"Request timeout in seconds"`
	Concurrency  int     `short:"c" default:"4" help:"Concurrent scrape limit"`
	RateLimit    float64 `default:"1.0" help:"Max requests per second per host"`
	Comments     bool    `help:"Fetch YouTube comments"`
	CommentChars int     `default:"50000" help:"Character budget for comment text"`
	CommentPages int     `default:"1" help:"Maximum comment pages to fetch"`
	Render       bool    `help:"Render pages in a headless browser"`
	Save         bool    `help:"Archive each result in the local database"`
}

// BrowsersCmd is the "browsers" subcommand.
type BrowsersCmd struct{}

// ArchiveCmd groups the archive subcommands.
type ArchiveCmd struct {
	List   ArchiveListCmd   `cmd:"" help:"List archived results"`
	Delete ArchiveDeleteCmd `cmd:"" help:"Delete an archived result"`
}

// ArchiveListCmd is the "archive list" subcommand.
type ArchiveListCmd struct {
	Kind  string `help:"Filter by kind (reddit, youtube, generic)"`
	Limit int    `default:"20" help:"Maximum results to list"`
}

// ArchiveDeleteCmd is the "archive delete" subcommand.
type ArchiveDeleteCmd struct {
	ID string `arg:"" help:"Result ID"`
}
