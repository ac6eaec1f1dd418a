// Package catalog reshapes a product list for the catalog view: search
// filtering and grouping by category. All functions are pure.
package catalog

import (
	"strings"

	"github.com/iamcryptofennec/simple-store/internal/domain"
)

// FilterBySearch returns the products whose title or category contains query,
// ignoring case. A blank query returns products unchanged.
func FilterBySearch(products []domain.Product, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// Groups maps category labels to products, remembering the order in which
// categories were first seen.
type Groups struct {
	Categories []string
	Products   map[string][]domain.Product
}

// GroupByCategory buckets products by category. Categories and the products
// inside each bucket keep their input order.
func GroupByCategory(products []domain.Product) Groups {
	g := Groups{Products: make(map[string][]domain.Product)}
	for _, p := range products {
		if _, ok := g.Products[p.Category]; !ok {
			g.Categories = append(g.Categories, p.Category)
		}
		g.Products[p.Category] = append(g.Products[p.Category], p)
	}
	return g
}

func (g Groups) Len() int { return len(g.Categories) }

func (g Groups) Get(category string) []domain.Product { return g.Products[category] }

// View is what the catalog page renders: the grouped search result and the
// number of matching products.
type View struct {
	Total  int
	Groups Groups
}

// Search filters before grouping, so empty categories never show up.
func Search(products []domain.Product, query string) View {
	filtered := FilterBySearch(products, query)
	return View{
		Total:  len(filtered),
		Groups: GroupByCategory(filtered),
	}
}
