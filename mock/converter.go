package mock

import "github.com/mgrzeszczak/unwall"

var _ unwall.Converter = (*Converter)(nil)

// Converter is a mock implementation of unwall.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
