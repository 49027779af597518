package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mgrzeszczak/unwall"
	"github.com/mgrzeszczak/unwall/format"
	"github.com/mgrzeszczak/unwall/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	f, err := format.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, c.URL, scrape.Options{
		IncludeComments:  c.Comments,
		CommentCharLimit: c.CommentChars,
		MaxCommentPages:  c.CommentPages,
	})
	if err != nil {
		return err
	}

	out, err := format.Render(result, f)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(out+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(deps.Stderr, "Saved to: %s\n", c.Output)
	} else {
		fmt.Fprintln(deps.Stdout, out)
	}

	if c.Save {
		saved, err := archiveResult(deps, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "Archived as: %s\n", saved.ID)
	}

	return nil
}

// archiveResult stores the extracted record in the archive.
func archiveResult(deps *Dependencies, result *unwall.Result) (*unwall.SavedResult, error) {
	var record any
	switch result.Kind {
	case unwall.KindReddit:
		record = result.Thread
	case unwall.KindYouTube:
		record = result.Video
	default:
		record = result.Article
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	saved := &unwall.SavedResult{
		Kind:      result.Kind,
		SourceURL: result.URL,
		Record:    data,
	}
	if err := deps.Archive.SaveResult(deps.Ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to archive result: %w", err)
	}
	return saved, nil
}
