package xmlrpc

import (
	"context"
	"fmt"

	"github.com/getpatchwork/pwclient/internal/api"
)

// PatchList fetches patches matching the filter. State and project
// filters are resolved to identifiers first; an unresolvable value drops
// the filter with a note on stderr. Submitter and delegate filters fan
// out into one server call per matched person, because the list method
// accepts a single person identifier at a time; when nobody matches, the
// result is empty, not unfiltered.
func (c *Client) PatchList(ctx context.Context, filter api.PatchFilter) ([]api.Patch, error) {
	filters := map[string]any{}

	if filter.MaxCount != 0 {
		filters["max_count"] = filter.MaxCount
	}
	if filter.Archived != nil {
		filters["archived"] = *filter.Archived
	}
	if filter.MsgID != "" {
		filters["msgid"] = filter.MsgID
	}
	if filter.Name != "" {
		filters["name__icontains"] = filter.Name
	}
	if filter.Hash != "" {
		filters["hash"] = filter.Hash
	}

	if filter.State != "" {
		stateID, err := c.stateIDByName(ctx, filter.State)
		if err != nil {
			return nil, err
		}
		if stateID == 0 {
			fmt.Fprintf(c.stderr, "Note: No State found matching %s*, ignoring filter\n", filter.State)
		} else {
			filters["state_id"] = stateID
		}
	}

	if filter.Project != "" {
		projectID, err := c.projectIDByLinkName(ctx, filter.Project)
		if err != nil {
			return nil, err
		}
		if projectID == 0 {
			fmt.Fprintf(c.stderr, "Note: No Project found matching %s, ignoring filter\n", filter.Project)
		} else {
			filters["project_id"] = projectID
		}
	}

	// Submitter and delegate are partial matches resolved client-side,
	// one list call per person. Filtering by both at once is not
	// supported.
	if filter.Submitter != "" {
		return c.patchListPerPerson(ctx, filters, "submitter_id", filter.Submitter)
	}
	if filter.Delegate != "" {
		return c.patchListPerPerson(ctx, filters, "delegate_id", filter.Delegate)
	}

	return c.patchList(ctx, filters)
}

func (c *Client) patchListPerPerson(ctx context.Context, filters map[string]any, key, name string) ([]api.Patch, error) {
	personIDs, err := c.personIDsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(personIDs) == 0 {
		fmt.Fprintf(c.stderr, "Note: Nobody found matching *%s*\n", name)
		return []api.Patch{}, nil
	}

	var patches []api.Patch
	for _, personID := range personIDs {
		filters[key] = personID
		batch, err := c.patchList(ctx, filters)
		if err != nil {
			return nil, err
		}
		patches = append(patches, batch...)
	}
	return patches, nil
}

func (c *Client) patchList(ctx context.Context, filters map[string]any) ([]api.Patch, error) {
	var wires []xmlPatch
	if err := c.call(ctx, "patch_list", []any{filters}, &wires); err != nil {
		return nil, err
	}

	patches := make([]api.Patch, 0, len(wires))
	for i := range wires {
		p, err := wires[i].canonical()
		if err != nil {
			return nil, err
		}
		patches = append(patches, *p)
	}
	return patches, nil
}

// PatchGet fetches one patch by ID. Returns (nil, nil) when the patch
// does not exist, matching the REST backend's treatment of a 404.
func (c *Client) PatchGet(ctx context.Context, id int) (*api.Patch, error) {
	var w xmlPatch
	if err := c.call(ctx, "patch_get", []any{id}, &w); err != nil {
		return nil, err
	}
	if w.empty() {
		return nil, nil
	}
	return w.canonical()
}

// PatchGetByHash looks a patch up by content hash across all projects.
func (c *Client) PatchGetByHash(ctx context.Context, hash string) (*api.Patch, error) {
	var w xmlPatch
	if err := c.call(ctx, "patch_get_by_hash", []any{hash}, &w); err != nil {
		return nil, err
	}
	if w.empty() {
		return nil, nil
	}
	return w.canonical()
}

// PatchGetByProjectHash looks a patch up by content hash within one
// project. Servers that predate the project-scoped method reject it as
// unknown; those fall back to the unscoped lookup. Any other fault
// propagates untouched.
func (c *Client) PatchGetByProjectHash(ctx context.Context, project, hash string) (*api.Patch, error) {
	var w xmlPatch
	err := c.call(ctx, "patch_get_by_project_hash", []any{project, hash}, &w)
	if err != nil {
		if isUnknownMethodFault(err) {
			return c.PatchGetByHash(ctx, hash)
		}
		return nil, err
	}
	if w.empty() {
		return nil, nil
	}
	return w.canonical()
}

// PatchGetMbox returns the patch mail content and the filename recorded
// on the patch.
func (c *Client) PatchGetMbox(ctx context.Context, id int) (string, string, error) {
	patch, err := c.PatchGet(ctx, id)
	if err != nil {
		return "", "", err
	}
	if patch == nil {
		return "", "", &api.APIError{
			Operation: "get mbox",
			Message:   fmt.Sprintf("unable to fetch patch %d; does it exist?", id),
		}
	}

	var mbox string
	if err := c.call(ctx, "patch_get_mbox", []any{id}, &mbox); err != nil {
		return "", "", err
	}
	if mbox == "" {
		return "", "", &api.APIError{
			Operation: "get mbox",
			Message:   fmt.Sprintf("unable to fetch mbox for patch %d; does it exist?", id),
		}
	}
	return mbox, patch.Filename, nil
}

// PatchGetDiff returns the raw diff of a patch.
func (c *Client) PatchGetDiff(ctx context.Context, id int) (string, error) {
	var diff string
	if err := c.call(ctx, "patch_get_diff", []any{id}, &diff); err != nil {
		return "", err
	}
	return diff, nil
}

// PatchSet updates a patch. A state name that resolves to nothing is an
// error here, unlike in PatchList: dropping the filter would silently
// mutate the wrong way. The legacy API reports success as a bare
// boolean and returns no record.
func (c *Client) PatchSet(ctx context.Context, id int, update api.PatchUpdate) (*api.Patch, error) {
	params := map[string]any{}

	if update.State != "" {
		stateID, err := c.stateIDByName(ctx, update.State)
		if err != nil {
			return nil, err
		}
		if stateID == 0 {
			return nil, &api.APIError{
				Operation: "update patch",
				Message:   fmt.Sprintf("no state found matching %s*", update.State),
			}
		}
		params["state"] = stateID
	}
	if update.CommitRef != "" {
		params["commit_ref"] = update.CommitRef
	}
	if update.Archived != nil {
		params["archived"] = *update.Archived
	}

	var ok bool
	if err := c.call(ctx, "patch_set", []any{id, params}, &ok); err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.ErrNotUpdated
	}
	return nil, nil
}
