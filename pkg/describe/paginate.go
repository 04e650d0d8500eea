package describe

import "context"

// Page is one slice of a cursor-paginated vendor listing.
type Page[T any] struct {
	Items     []T
	NextToken *string
}

// PageFunc fetches the page at token. A nil token requests the first page;
// the token returned by the vendor is passed back verbatim.
type PageFunc[T any] func(ctx context.Context, token *string) (Page[T], error)

// Collect drains a paginated listing into a single slice, preserving the
// vendor's order. A failed page discards everything collected so far.
func Collect[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	return CollectN(ctx, 0, fetch)
}

// CollectN is Collect capped at max items: paging stops as soon as the cap
// is covered and the result is truncated to exactly max. max <= 0 means no
// cap.
func CollectN[T any](ctx context.Context, max int, fetch PageFunc[T]) ([]T, error) {
	var items []T
	var token *string
	for {
		page, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)

		if max > 0 && len(items) >= max {
			return items[:max], nil
		}
		if page.NextToken == nil || *page.NextToken == "" {
			return items, nil
		}
		token = page.NextToken
	}
}
