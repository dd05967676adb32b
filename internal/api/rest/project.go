package rest

import (
	"context"
	"errors"

	"github.com/getpatchwork/pwclient/internal/api"
)

// ProjectList returns all projects. The REST API has no project search,
// so a non-empty search string is an explicit capability gap rather than
// an empty result.
func (c *Client) ProjectList(ctx context.Context, search string) ([]api.Project, error) {
	if search != "" {
		return nil, &api.NotSupportedError{
			Backend:   api.BackendREST,
			Operation: "project_list",
			Reason:    "the REST API does not support project search",
		}
	}

	it := newPageIterator[wireProject](c, "list projects", c.listURL("projects", nil))
	wires, err := it.collect(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]api.Project, 0, len(wires))
	for i := range wires {
		projects = append(projects, *wires[i].canonical())
	}
	return projects, nil
}

// ProjectGet fetches one project by ID. Returns (nil, nil) when the
// project does not exist.
func (c *Client) ProjectGet(ctx context.Context, id int) (*api.Project, error) {
	var w wireProject
	err := c.doJSON(ctx, "GET", c.detailURL("projects", id), "get project", nil, &w)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w.canonical(), nil
}
