package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/getpatchwork/pwclient/internal/api"
)

// pageIterator lazily walks a paginated collection endpoint. Each call to
// next fetches one page; pages are never prefetched, so a caller that
// stops after a prefix never pays for the rest of the result set.
//
// The iterator is forward-only and not safe for concurrent use.
type pageIterator[T any] struct {
	client    *Client
	operation string
	nextURL   string
	done      bool
}

func newPageIterator[T any](c *Client, operation, startURL string) *pageIterator[T] {
	return &pageIterator[T]{client: c, operation: operation, nextURL: startURL}
}

// next fetches the next page and returns its items. Returns (nil, nil)
// once all pages have been consumed.
func (it *pageIterator[T]) next(ctx context.Context) ([]T, error) {
	if it.done || it.nextURL == "" {
		return nil, nil
	}

	data, header, err := it.client.doRaw(ctx, http.MethodGet, it.nextURL, it.operation, nil)
	if errors.Is(err, errNotFound) {
		it.done = true
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &api.APIError{Operation: it.operation, Message: "malformed response body", Err: err}
	}

	it.nextURL = parseLinkNext(header.Get("Link"))
	if it.nextURL == "" {
		it.done = true
	}

	return items, nil
}

// collect drains the iterator and returns all items concatenated in page
// order.
func (it *pageIterator[T]) collect(ctx context.Context) ([]T, error) {
	var all []T
	for {
		items, err := it.next(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			return all, nil
		}
		all = append(all, items...)
	}
}

// collectN consumes pages only until n items are gathered, then stops.
func (it *pageIterator[T]) collectN(ctx context.Context, n int) ([]T, error) {
	var all []T
	for len(all) < n {
		items, err := it.next(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			break
		}
		all = append(all, items...)
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// parseLinkNext extracts the rel="next" URL from an RFC 5988 Link header.
// Returns "" when no next page is advertised.
//
// Format: <https://server/api/patches/?page=2>; rel="next", <...>; rel="last"
func parseLinkNext(header string) string {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)

		segments := strings.SplitN(part, ";", 2)
		if len(segments) != 2 {
			continue
		}

		urlPart := strings.TrimSpace(segments[0])
		relPart := strings.TrimSpace(segments[1])

		if !strings.Contains(relPart, `rel="next"`) {
			continue
		}
		if strings.HasPrefix(urlPart, "<") && strings.HasSuffix(urlPart, ">") {
			return urlPart[1 : len(urlPart)-1]
		}
	}

	return ""
}
