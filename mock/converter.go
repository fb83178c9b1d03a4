package mock

import "github.com/fwojciec/newsbrowse"

var _ newsbrowse.Converter = (*Converter)(nil)

// Converter is a mock implementation of newsbrowse.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
