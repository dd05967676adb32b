package rest

import (
	"context"
	"errors"

	"github.com/getpatchwork/pwclient/internal/api"
)

// PersonList returns all people. Substring search is a legacy-backend
// capability; the REST API does not provide it.
func (c *Client) PersonList(ctx context.Context, search string) ([]api.Person, error) {
	if search != "" {
		return nil, &api.NotSupportedError{
			Backend:   api.BackendREST,
			Operation: "person_list",
			Reason:    "the REST API does not support person search",
		}
	}

	it := newPageIterator[wirePerson](c, "list people", c.listURL("people", nil))
	wires, err := it.collect(ctx)
	if err != nil {
		return nil, err
	}

	people := make([]api.Person, 0, len(wires))
	for i := range wires {
		people = append(people, *wires[i].canonical())
	}
	return people, nil
}

// PersonGet fetches one person by ID. Returns (nil, nil) when the person
// does not exist.
func (c *Client) PersonGet(ctx context.Context, id int) (*api.Person, error) {
	var w wirePerson
	err := c.doJSON(ctx, "GET", c.detailURL("people", id), "get person", nil, &w)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w.canonical(), nil
}
