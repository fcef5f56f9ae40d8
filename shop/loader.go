package shop

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/mytheresa/storefront/models"
	"golang.org/x/sync/singleflight"
)

// Loader fetches the static catalog and fills in missing ratings and
// descriptions.
type Loader struct {
	source  CatalogSource
	timeout time.Duration
	randInt func(n int) int
	group   singleflight.Group
}

func NewLoader(source CatalogSource, timeout time.Duration) *Loader {
	return &Loader{
		source:  source,
		timeout: timeout,
		randInt: rand.IntN,
	}
}

// Load fetches the catalog. Concurrent calls share one fetch, which is
// detached from the first caller's cancellation and bounded by the
// loader timeout instead.
func (l *Loader) Load(ctx context.Context) ([]models.Product, error) {
	v, err, _ := l.group.Do("catalog", func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if l.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, l.timeout)
			defer cancel()
		}

		products, err := l.source.Fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		for i := range products {
			p := &products[i]
			if p.Rating == 0 {
				// 4 or 5 stars
				p.Rating = float64(l.randInt(2) + 4)
			}
			if p.Description == "" {
				p.Description = fmt.Sprintf("Premium %s crafted with the finest materials and attention to detail.", p.Name)
			}
			p.Source = models.SourceCatalog
		}
		return products, nil
	})
	if err != nil {
		return nil, &LoadError{Source: l.source.Location(), Err: err}
	}

	products := v.([]models.Product)
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = cloneProduct(p)
	}
	return out, nil
}

func cloneProduct(p models.Product) models.Product {
	p.Colors = slices.Clone(p.Colors)
	return p
}
