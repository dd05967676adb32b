package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/getpatchwork/pwclient/internal/api"
)

// CheckList lists the checks on one patch. The REST API scopes checks
// under their patch, so listing without a patch ID is a capability gap.
func (c *Client) CheckList(ctx context.Context, patchID int, user string) ([]api.Check, error) {
	if patchID == 0 {
		return nil, c.checksNeedPatch("check_list")
	}

	patch, err := c.checkTargetPatch(ctx, patchID)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	if user != "" {
		params.Set("user", user)
	}
	listURL := c.subURL("patches", patchID, "checks")
	if len(params) > 0 {
		listURL += "?" + params.Encode()
	}

	it := newPageIterator[wireCheck](c, "list checks", listURL)
	wires, err := it.collect(ctx)
	if err != nil {
		return nil, err
	}

	checks := make([]api.Check, 0, len(wires))
	for i := range wires {
		checks = append(checks, *wires[i].canonical(patch))
	}
	return checks, nil
}

// CheckGet fetches one check. Returns (nil, nil) when the check does not
// exist.
func (c *Client) CheckGet(ctx context.Context, patchID, checkID int) (*api.Check, error) {
	if patchID == 0 {
		return nil, c.checksNeedPatch("check_get")
	}

	patch, err := c.checkTargetPatch(ctx, patchID)
	if err != nil {
		return nil, err
	}

	var w wireCheck
	detailURL := fmt.Sprintf("%s%d/", c.subURL("patches", patchID, "checks"), checkID)
	err = c.doJSON(ctx, http.MethodGet, detailURL, "get check", nil, &w)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w.canonical(patch), nil
}

// CheckCreate attaches a new check to a patch.
func (c *Client) CheckCreate(ctx context.Context, patchID int, req api.CheckCreateRequest) error {
	body := map[string]any{
		"context":     req.Context,
		"state":       string(req.State),
		"target_url":  req.TargetURL,
		"description": req.Description,
	}
	return c.doJSON(ctx, http.MethodPost, c.subURL("patches", patchID, "checks"), "create check", body, nil)
}

// checkTargetPatch fetches the patch a check lookup is scoped to. The
// check response does not repeat patch name or ID, so the extra round
// trip is unavoidable.
func (c *Client) checkTargetPatch(ctx context.Context, patchID int) (*api.Patch, error) {
	patch, err := c.PatchGet(ctx, patchID)
	if err != nil {
		return nil, err
	}
	if patch == nil {
		return nil, &api.APIError{
			Operation: "get check",
			Message:   fmt.Sprintf("unable to fetch patch %d; does it exist?", patchID),
		}
	}
	return patch, nil
}

func (c *Client) checksNeedPatch(operation string) error {
	return &api.NotSupportedError{
		Backend:   api.BackendREST,
		Operation: operation,
		Reason:    "listing checks requires a target patch",
	}
}
