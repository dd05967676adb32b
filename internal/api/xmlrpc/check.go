package xmlrpc

import (
	"context"

	"github.com/getpatchwork/pwclient/internal/api"
)

// CheckList lists checks, optionally narrowed to one patch or one user.
// Unlike the REST API, the legacy service can list checks across all
// patches.
func (c *Client) CheckList(ctx context.Context, patchID int, user string) ([]api.Check, error) {
	filters := map[string]any{}
	if patchID != 0 {
		filters["patch_id"] = patchID
	}
	if user != "" {
		filters["user"] = user
	}

	var wires []xmlCheck
	if err := c.call(ctx, "check_list", []any{filters}, &wires); err != nil {
		return nil, err
	}

	checks := make([]api.Check, 0, len(wires))
	for i := range wires {
		ch, err := wires[i].canonical()
		if err != nil {
			return nil, err
		}
		checks = append(checks, *ch)
	}
	return checks, nil
}

// CheckGet fetches one check by ID. The patch ID is not needed by the
// legacy API and is ignored. Returns (nil, nil) when the check does not
// exist.
func (c *Client) CheckGet(ctx context.Context, _ int, checkID int) (*api.Check, error) {
	var w xmlCheck
	if err := c.call(ctx, "check_get", []any{checkID}, &w); err != nil {
		return nil, err
	}
	if w.empty() {
		return nil, nil
	}
	return w.canonical()
}

// CheckCreate attaches a new check to a patch. A server fault carries
// the remote message back through the unified error taxonomy.
func (c *Client) CheckCreate(ctx context.Context, patchID int, req api.CheckCreateRequest) error {
	var ok bool
	return c.call(ctx, "check_create",
		[]any{patchID, req.Context, string(req.State), req.TargetURL, req.Description}, &ok)
}
