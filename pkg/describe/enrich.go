package describe

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the enrichment fan-out width.
const DefaultBatchSize = 5

// Facet is one optional detail lookup applied to a collected item. Apply
// mutates the item in place. An error matching Absent means the feature is
// not configured on the item; the field stays at its zero value.
type Facet[T any] struct {
	Name   string
	Absent Classifier
	Apply  func(ctx context.Context, item *T) error
}

// Enrich applies the facets to every item, fanning out in consecutive groups
// of batchSize goroutines. A group fully completes before the next one
// starts. Facets run in order per item; an absence-classified error skips
// that facet, any other error stops the item's remaining facets and is
// recorded at the item's index, leaving sibling items untouched. Both
// returned slices are positionally aligned with items.
func Enrich[T any](ctx context.Context, items []T, batchSize int, facets ...Facet[T]) ([]T, []error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	errs := make([]error, len(items))
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = applyFacets(ctx, &items[i], facets)
			}(i)
		}
		wg.Wait()
	}
	return items, errs
}

// EnrichAll is Enrich for callers that need every item fully detailed: the
// first failed item fails the whole call, and batches after the failed one
// are never started.
func EnrichAll[T any](ctx context.Context, items []T, batchSize int, facets ...Facet[T]) ([]T, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				if err := applyFacets(gctx, &items[i], facets); err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func applyFacets[T any](ctx context.Context, item *T, facets []Facet[T]) error {
	for _, f := range facets {
		err := f.Apply(ctx, item)
		if err == nil {
			continue
		}
		if f.Absent != nil && f.Absent(err) {
			continue
		}
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return nil
}
