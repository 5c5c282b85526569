package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the products whose name, article or category contains query,
// compared with Unicode case folding. An empty query matches every product.
// The result keeps catalog order and never aliases the input slice.
func Filter(query string, products []Product) []Product {
	// a Caser keeps state between calls, so each Filter gets its own
	fold := cases.Fold()
	q := fold.String(query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q == "" ||
			strings.Contains(fold.String(p.Name), q) ||
			strings.Contains(fold.String(p.Article), q) ||
			strings.Contains(fold.String(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
