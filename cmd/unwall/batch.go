package main

import (
	"fmt"
	"os"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/batch"
	"github.com/mgrzeszczak/unwall/format"
	"github.com/mgrzeszczak/unwall/scrape"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	f, err := format.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	file, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open URL list: %w", err)
	}
	defer file.Close()

	urls, err := batch.ParseList(file)
	if err != nil {
		return fmt.Errorf("failed to read URL list: %w", err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs in %s", c.File)
	}

	runner := batch.NewRunner(deps.Scraper,
		batch.WithConcurrency(c.Concurrency),
		batch.WithHostLimiter(batch.NewHostLimiter(c.RateLimit)),
		batch.WithLogger(deps.Logger),
		batch.WithScrapeOptions(scrape.Options{
			IncludeComments:  c.Comments,
			CommentCharLimit: c.CommentChars,
			MaxCommentPages:  c.CommentPages,
		}),
	)

	outcomes := runner.Run(deps.Ctx, urls)

	var failed int
	for _, out := range outcomes {
		if out.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", out.URL, unwall.ErrorMessage(out.Err))
			continue
		}

		rendered, err := format.Render(out.Result, f)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", out.URL, unwall.ErrorMessage(err))
			continue
		}
		fmt.Fprintln(deps.Stdout, rendered)
		fmt.Fprintln(deps.Stdout)

		if c.Save {
			saved, err := archiveResult(deps, out.Result)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %v\n", out.URL, err)
				continue
			}
			fmt.Fprintf(deps.Stderr, "Archived %s as: %s\n", out.URL, saved.ID)
		}
	}

	fmt.Fprintf(deps.Stderr, "Scraped %d of %d URLs\n", len(outcomes)-failed, len(outcomes))

	if failed == len(outcomes) {
		return fmt.Errorf("all %d URLs failed", failed)
	}
	return nil
}
