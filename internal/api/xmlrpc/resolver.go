package xmlrpc

import (
	"context"
	"strings"
)

// stateIDByName resolves a partial state name to its identifier by
// case-insensitive prefix match against the server's state list. The
// first match wins; 0 means no match.
func (c *Client) stateIDByName(ctx context.Context, name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	states, err := c.StateList(ctx, name)
	if err != nil {
		return 0, err
	}
	for _, state := range states {
		if strings.HasPrefix(strings.ToLower(state.Name), strings.ToLower(name)) {
			return state.ID, nil
		}
	}
	return 0, nil
}

// projectIDByLinkName resolves a project short name to its identifier by
// exact linkname match. 0 means no match.
func (c *Client) projectIDByLinkName(ctx context.Context, linkname string) (int, error) {
	if linkname == "" {
		return 0, nil
	}
	projects, err := c.ProjectList(ctx, linkname)
	if err != nil {
		return 0, err
	}
	for _, project := range projects {
		if project.LinkName == linkname {
			return project.ID, nil
		}
	}
	return 0, nil
}

// personIDsByName resolves a partial name or email address to the list
// of matching person identifiers.
func (c *Client) personIDsByName(ctx context.Context, name string) ([]int, error) {
	if name == "" {
		return nil, nil
	}
	people, err := c.PersonList(ctx, name)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(people))
	for _, person := range people {
		ids = append(ids, person.ID)
	}
	return ids, nil
}
