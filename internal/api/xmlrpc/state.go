package xmlrpc

import (
	"context"

	"github.com/getpatchwork/pwclient/internal/api"
)

// StateList returns states matching the search string, or all states
// when it is empty.
func (c *Client) StateList(ctx context.Context, search string) ([]api.State, error) {
	var wires []xmlState
	if err := c.call(ctx, "state_list", []any{search, 0}, &wires); err != nil {
		return nil, err
	}

	states := make([]api.State, 0, len(wires))
	for i := range wires {
		s, err := wires[i].canonical()
		if err != nil {
			return nil, err
		}
		states = append(states, *s)
	}
	return states, nil
}

// StateGet fetches one state by ID. Returns (nil, nil) when the state
// does not exist.
func (c *Client) StateGet(ctx context.Context, id int) (*api.State, error) {
	var w xmlState
	if err := c.call(ctx, "state_get", []any{id}, &w); err != nil {
		return nil, err
	}
	if w.empty() {
		return nil, nil
	}
	return w.canonical()
}
