package xmlrpc

import (
	"context"

	"github.com/getpatchwork/pwclient/internal/api"
)

// ProjectList returns projects matching the search string, or all
// projects when it is empty.
func (c *Client) ProjectList(ctx context.Context, search string) ([]api.Project, error) {
	var wires []xmlProject
	if err := c.call(ctx, "project_list", []any{search, 0}, &wires); err != nil {
		return nil, err
	}

	projects := make([]api.Project, 0, len(wires))
	for i := range wires {
		p, err := wires[i].canonical()
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

// ProjectGet fetches one project by ID. Returns (nil, nil) when the
// project does not exist.
func (c *Client) ProjectGet(ctx context.Context, id int) (*api.Project, error) {
	var w xmlProject
	if err := c.call(ctx, "project_get", []any{id}, &w); err != nil {
		return nil, err
	}
	if w.empty() {
		return nil, nil
	}
	return w.canonical()
}
