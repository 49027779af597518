package main

import (
	"fmt"

	unwallhttp "github.com/mgrzeszczak/unwall/http"
)

// Run executes the browsers command.
func (c *BrowsersCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Supported browsers:")
	for _, browser := range unwallhttp.SupportedBrowsers() {
		fmt.Fprintf(deps.Stdout, "  - %s\n", browser)
	}
	return nil
}
