package xmlrpc

import (
	"context"

	"github.com/getpatchwork/pwclient/internal/api"
)

// PersonList returns people whose name or email contains the search
// string, or all people when it is empty.
func (c *Client) PersonList(ctx context.Context, search string) ([]api.Person, error) {
	var wires []xmlPerson
	if err := c.call(ctx, "person_list", []any{search, 0}, &wires); err != nil {
		return nil, err
	}

	people := make([]api.Person, 0, len(wires))
	for i := range wires {
		p, err := wires[i].canonical()
		if err != nil {
			return nil, err
		}
		people = append(people, *p)
	}
	return people, nil
}

// PersonGet fetches one person by ID. Returns (nil, nil) when the person
// does not exist.
func (c *Client) PersonGet(ctx context.Context, id int) (*api.Person, error) {
	var w xmlPerson
	if err := c.call(ctx, "person_get", []any{id}, &w); err != nil {
		return nil, err
	}
	if w.empty() {
		return nil, nil
	}
	return w.canonical()
}
