package rest

import (
	"context"

	"github.com/getpatchwork/pwclient/internal/api"
)

// Patch states are not exposed by the REST API, on the basis that they
// will eventually be a static list rather than something configurable.
// Callers depend on telling "no match" apart from "lookup never
// attempted", so this is an explicit capability gap, not an empty set.

func (c *Client) StateList(ctx context.Context, search string) ([]api.State, error) {
	return nil, c.statesNotSupported("state_list")
}

func (c *Client) StateGet(ctx context.Context, id int) (*api.State, error) {
	return nil, c.statesNotSupported("state_get")
}

func (c *Client) statesNotSupported(operation string) error {
	return &api.NotSupportedError{
		Backend:   api.BackendREST,
		Operation: operation,
		Reason:    "the REST API does not expose state objects",
	}
}
