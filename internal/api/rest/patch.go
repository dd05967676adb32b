package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/getpatchwork/pwclient/internal/api"
)

// filenameRe extracts the suggested filename from a Content-Disposition
// header on mbox downloads.
var filenameRe = regexp.MustCompile(`filename=(.+)`)

// PatchList fetches patches matching the filter as one paginated GET.
// State names are slugified and project linknames passed through raw; no
// resolution round-trips are made. Submitter and delegate filters are a
// legacy-backend capability: they are dropped here with a note on stderr
// rather than silently ignored.
func (c *Client) PatchList(ctx context.Context, filter api.PatchFilter) ([]api.Patch, error) {
	params := url.Values{}

	if filter.State != "" {
		params.Set("state", slugify(filter.State))
	}
	if filter.Project != "" {
		params.Set("project", filter.Project)
	}
	if filter.Archived != nil {
		params.Set("archived", strconv.FormatBool(*filter.Archived))
	}
	if filter.MsgID != "" {
		params.Set("msgid", strings.Trim(filter.MsgID, "<>"))
	}
	if filter.Name != "" {
		params.Set("q", filter.Name)
	}
	if filter.Hash != "" {
		params.Set("hash", filter.Hash)
	}
	if filter.Submitter != "" {
		fmt.Fprintf(c.stderr, "Note: submitter filters require the XML-RPC backend, ignoring filter\n")
	}
	if filter.Delegate != "" {
		fmt.Fprintf(c.stderr, "Note: delegate filters require the XML-RPC backend, ignoring filter\n")
	}

	it := newPageIterator[wirePatch](c, "list patches", c.listURL("patches", params))

	var (
		wires []wirePatch
		err   error
	)
	switch {
	case filter.MaxCount > 0:
		// Lazy pagination pays off here: only the pages covering the
		// requested prefix are fetched.
		wires, err = it.collectN(ctx, filter.MaxCount)
	default:
		wires, err = it.collect(ctx)
		if err == nil && filter.MaxCount < 0 && len(wires) > -filter.MaxCount {
			wires = wires[len(wires)+filter.MaxCount:]
		}
	}
	if err != nil {
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
// does not exist.
func (c *Client) PatchGet(ctx context.Context, id int) (*api.Patch, error) {
	w, err := c.patchDetail(ctx, id)
	if err != nil || w == nil {
		return nil, err
	}
	return w.canonical()
}

// PatchGetByHash looks a patch up by content hash. An ambiguous result
// (zero or several matches) is reported the same way the legacy API
// reports an unknown hash: as no patch at all.
func (c *Client) PatchGetByHash(ctx context.Context, hash string) (*api.Patch, error) {
	return c.patchByHash(ctx, url.Values{"hash": []string{hash}})
}

// PatchGetByProjectHash looks a patch up by content hash within one
// project.
func (c *Client) PatchGetByProjectHash(ctx context.Context, project, hash string) (*api.Patch, error) {
	return c.patchByHash(ctx, url.Values{
		"project": []string{project},
		"hash":    []string{hash},
	})
}

func (c *Client) patchByHash(ctx context.Context, params url.Values) (*api.Patch, error) {
	it := newPageIterator[wirePatch](c, "get patch by hash", c.listURL("patches", params))
	wires, err := it.collect(ctx)
	if err != nil {
		return nil, err
	}
	if len(wires) != 1 {
		return nil, nil
	}
	return wires[0].canonical()
}

// PatchGetMbox downloads the patch mail content and returns it together
// with the filename the server suggests.
func (c *Client) PatchGetMbox(ctx context.Context, id int) (string, string, error) {
	w, err := c.patchDetail(ctx, id)
	if err != nil {
		return "", "", err
	}
	if w == nil || w.Mbox == "" {
		return "", "", &api.APIError{
			Operation: "get mbox",
			Message:   fmt.Sprintf("unable to fetch patch %d; does it exist?", id),
		}
	}

	data, header, err := c.doRaw(ctx, http.MethodGet, w.Mbox, "download mbox", nil)
	if err != nil {
		return "", "", err
	}

	match := filenameRe.FindStringSubmatch(header.Get("Content-Disposition"))
	if match == nil {
		return "", "", &api.APIError{
			Operation: "download mbox",
			Message:   "filename header was missing from the response",
		}
	}
	filename := strings.TrimSuffix(match[1], ".patch")

	return string(data), filename, nil
}

// PatchGetDiff returns the raw diff of a patch.
func (c *Client) PatchGetDiff(ctx context.Context, id int) (string, error) {
	w, err := c.patchDetail(ctx, id)
	if err != nil {
		return "", err
	}
	if w == nil {
		return "", &api.APIError{
			Operation: "get diff",
			Message:   fmt.Sprintf("unable to fetch patch %d; does it exist?", id),
		}
	}
	return w.Diff, nil
}

// PatchSet updates a patch via PATCH and returns the re-normalized
// record the server responds with.
func (c *Client) PatchSet(ctx context.Context, id int, update api.PatchUpdate) (*api.Patch, error) {
	params := map[string]any{}

	if update.State != "" {
		params["state"] = slugify(update.State)
	}
	if update.CommitRef != "" {
		params["commit_ref"] = update.CommitRef
	}
	if update.Archived != nil {
		params["archived"] = *update.Archived
	}

	var w wirePatch
	if err := c.doJSON(ctx, http.MethodPatch, c.detailURL("patches", id), "update patch", params, &w); err != nil {
		return nil, err
	}
	return w.canonical()
}

// patchDetail fetches the wire-shaped patch, with (nil, nil) for a 404.
func (c *Client) patchDetail(ctx context.Context, id int) (*wirePatch, error) {
	var w wirePatch
	err := c.doJSON(ctx, http.MethodGet, c.detailURL("patches", id), "get patch", nil, &w)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
