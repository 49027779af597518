package main

import (
	"fmt"
	"time"

	"github.com/mgrzeszczak/unwall"
)

// Run executes the archive list command.
func (c *ArchiveListCmd) Run(deps *Dependencies) error {
	filter := unwall.ArchiveFilter{Limit: c.Limit}
	if c.Kind != "" {
		kind := unwall.Kind(c.Kind)
		filter.Kind = &kind
	}

	results, err := deps.Archive.FindResults(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived results. Use 'unwall scrape --save' to create one.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %s  %s\n",
			r.ID, r.Kind, r.FetchedAt.Format(time.RFC3339), r.SourceURL)
	}

	return nil
}

// Run executes the archive delete command.
func (c *ArchiveDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Archive.DeleteResult(deps.Ctx, c.ID); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.ID)
	return nil
}
