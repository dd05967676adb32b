package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/getpatchwork/pwclient/internal/api"
)

func patchJSON(id int, name string) string {
	return fmt.Sprintf(`{
		"id": %d,
		"date": "2026-08-01T12:00:00",
		"msgid": "<%d@example.com>",
		"name": %q,
		"state": "new",
		"archived": false,
		"project": {"id": 1, "linkname": "netdev", "name": "Networking"},
		"submitter": {"id": 2, "email": "jo@example.com", "name": "Jo"},
		"delegate": {"id": 3, "username": "maintainer"}
	}`, id, id, name)
}

func TestPatchListFilters(t *testing.T) {
	var gotQuery url.Values
	var stderr bytes.Buffer
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}), WithStderr(&stderr))

	archived := true
	_, err := c.PatchList(context.Background(), api.PatchFilter{
		Project:   "netdev",
		State:     "Under Review",
		Archived:  &archived,
		MsgID:     "<abc@example.com>",
		Name:      "rx drop",
		Submitter: "jo",
	})
	if err != nil {
		t.Fatalf("PatchList: %v", err)
	}

	if got := gotQuery.Get("state"); got != "under-review" {
		t.Errorf("state param = %q, want the slugified name", got)
	}
	if got := gotQuery.Get("project"); got != "netdev" {
		t.Errorf("project param = %q", got)
	}
	if got := gotQuery.Get("archived"); got != "true" {
		t.Errorf("archived param = %q", got)
	}
	if got := gotQuery.Get("msgid"); got != "abc@example.com" {
		t.Errorf("msgid param = %q, want the brackets stripped", got)
	}
	if got := gotQuery.Get("q"); got != "rx drop" {
		t.Errorf("q param = %q", got)
	}
	if gotQuery.Has("submitter") {
		t.Error("submitter must not be passed to the REST API")
	}
	if !strings.Contains(stderr.String(), "submitter filters require the XML-RPC backend") {
		t.Errorf("expected a dropped-filter note, got %q", stderr.String())
	}
}

func TestPatchListAcceptedStateParam(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))

	if _, err := c.PatchList(context.Background(), api.PatchFilter{State: "Accepted"}); err != nil {
		t.Fatalf("PatchList: %v", err)
	}
	if got := gotQuery.Get("state"); got != "accepted" {
		t.Errorf("state param = %q, want accepted", got)
	}
}

func TestPatchListMaxCountLazy(t *testing.T) {
	requests := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := 1
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)

		next := fmt.Sprintf("http://%s/patches/?page=%d", r.Host, page+1)
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
		fmt.Fprintf(w, "[%s,%s]", patchJSON(page*10, "a"), patchJSON(page*10+1, "b"))
	}))

	patches, err := c.PatchList(context.Background(), api.PatchFilter{MaxCount: 3})
	if err != nil {
		t.Fatalf("PatchList: %v", err)
	}
	if len(patches) != 3 {
		t.Fatalf("got %d patches, want 3", len(patches))
	}
	if requests != 2 {
		t.Errorf("requests = %d, want 2 (no page beyond the prefix)", requests)
	}
}

func TestPatchListNegativeMaxCountTail(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "[%s,%s,%s]",
			patchJSON(1, "a"), patchJSON(2, "b"), patchJSON(3, "c"))
	}))

	patches, err := c.PatchList(context.Background(), api.PatchFilter{MaxCount: -2})
	if err != nil {
		t.Fatalf("PatchList: %v", err)
	}
	if len(patches) != 2 || patches[0].ID != 2 || patches[1].ID != 3 {
		t.Errorf("patches = %+v, want the last two", patches)
	}
}

func TestPatchGetNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	p, err := c.PatchGet(context.Background(), 999)
	if err != nil {
		t.Fatalf("PatchGet: %v", err)
	}
	if p != nil {
		t.Errorf("want nil patch, got %+v", p)
	}
}

func TestPatchGetNormalizes(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(patchJSON(7, "net: fix rx drop")))
	}))

	p, err := c.PatchGet(context.Background(), 7)
	if err != nil {
		t.Fatalf("PatchGet: %v", err)
	}
	if p.Submitter != "Jo <jo@example.com>" {
		t.Errorf("Submitter = %q", p.Submitter)
	}
	if p.Project != "Networking" || p.ProjectID != 1 {
		t.Errorf("Project = %q/%d", p.Project, p.ProjectID)
	}
	if p.Delegate != "maintainer" || p.DelegateID != 3 {
		t.Errorf("Delegate = %q/%d", p.Delegate, p.DelegateID)
	}
	if p.StateID != 0 {
		t.Errorf("StateID = %d, want 0 under REST", p.StateID)
	}
}

func TestPatchGetNonASCIISubmitter(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"id": 7, "name": "p", "state": "new",
			"project": {"id": 1, "linkname": "netdev", "name": "Networking"},
			"submitter": {"id": 2, "email": "jose@example.com", "name": "José Núñez"}
		}`))
	}))

	p, err := c.PatchGet(context.Background(), 7)
	if err != nil {
		t.Fatalf("PatchGet: %v", err)
	}
	if p.Submitter != "José Núñez <jose@example.com>" {
		t.Errorf("Submitter = %q, want the accents preserved", p.Submitter)
	}
}

func TestPatchGetMissingProjectIsError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id": 7, "name": "p", "submitter": {"id": 2, "email": "a@b.c"}}`))
	}))

	_, err := c.PatchGet(context.Background(), 7)
	if !api.IsAPIError(err) {
		t.Errorf("want APIError for missing embedded project, got %v", err)
	}
}

func TestPatchGetByHashAmbiguous(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "[%s,%s]", patchJSON(1, "a"), patchJSON(2, "b"))
	}))

	p, err := c.PatchGetByHash(context.Background(), "deadbeef")
	if err != nil {
		t.Fatalf("PatchGetByHash: %v", err)
	}
	if p != nil {
		t.Errorf("ambiguous hash must resolve to no patch, got %+v", p)
	}
}

func TestPatchGetByProjectHashParams(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("[" + patchJSON(5, "a") + "]"))
	}))

	p, err := c.PatchGetByProjectHash(context.Background(), "netdev", "deadbeef")
	if err != nil {
		t.Fatalf("PatchGetByProjectHash: %v", err)
	}
	if p == nil || p.ID != 5 {
		t.Fatalf("patch = %+v", p)
	}
	if gotQuery.Get("project") != "netdev" || gotQuery.Get("hash") != "deadbeef" {
		t.Errorf("query = %v", gotQuery)
	}
}

func TestPatchGetMbox(t *testing.T) {
	mux := http.NewServeMux()
	var srvURL string
	mux.HandleFunc("/patches/7/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"id": 7, "name": "p", "state": "new",
			"project": {"id": 1, "linkname": "netdev", "name": "Networking"},
			"submitter": {"id": 2, "email": "a@b.c"},
			"mbox": %q
		}`, srvURL+"/patches/7/mbox/")
	})
	mux.HandleFunc("/patches/7/mbox/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", "attachment; filename=net-fix-rx-drop.patch")
		w.Write([]byte("From jo@example.com\n\ndiff --git a b\n"))
	})

	c, srv := newTestClient(t, mux)
	srvURL = srv.URL

	mbox, filename, err := c.PatchGetMbox(context.Background(), 7)
	if err != nil {
		t.Fatalf("PatchGetMbox: %v", err)
	}
	if !strings.HasPrefix(mbox, "From jo@example.com") {
		t.Errorf("mbox = %q", mbox)
	}
	if filename != "net-fix-rx-drop" {
		t.Errorf("filename = %q, want the .patch suffix stripped", filename)
	}
}

func TestPatchGetMboxMissingFilename(t *testing.T) {
	mux := http.NewServeMux()
	var srvURL string
	mux.HandleFunc("/patches/7/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"id": 7, "name": "p", "state": "new",
			"project": {"id": 1, "linkname": "netdev", "name": "Networking"},
			"submitter": {"id": 2, "email": "a@b.c"},
			"mbox": %q
		}`, srvURL+"/patches/7/mbox/")
	})
	mux.HandleFunc("/patches/7/mbox/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("content"))
	})

	c, srv := newTestClient(t, mux)
	srvURL = srv.URL

	_, _, err := c.PatchGetMbox(context.Background(), 7)
	if !api.IsAPIError(err) || !strings.Contains(err.Error(), "filename header was missing") {
		t.Errorf("want missing-filename APIError, got %v", err)
	}
}

func TestPatchSet(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(patchJSON(7, "p")))
	}))

	archived := true
	p, err := c.PatchSet(context.Background(), 7, api.PatchUpdate{
		State:    "Under Review",
		Archived: &archived,
	})
	if err != nil {
		t.Fatalf("PatchSet: %v", err)
	}
	if p == nil || p.ID != 7 {
		t.Errorf("patch = %+v", p)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q", gotMethod)
	}
	if gotBody["state"] != "under-review" || gotBody["archived"] != true {
		t.Errorf("body = %v", gotBody)
	}
}

func TestCheckListRequiresPatch(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	if _, err := c.CheckList(context.Background(), 0, ""); !api.IsNotSupported(err) {
		t.Errorf("want NotSupportedError, got %v", err)
	}
}

func TestCheckListScopedToPatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/patches/7/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(patchJSON(7, "net: fix rx drop")))
	})
	mux.HandleFunc("/patches/7/checks/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{
			"id": 3, "state": "success", "context": "build",
			"user": {"id": 9, "username": "ci-bot"}
		}]`))
	})

	c, _ := newTestClient(t, mux)

	checks, err := c.CheckList(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("CheckList: %v", err)
	}
	if len(checks) != 1 {
		t.Fatalf("got %d checks", len(checks))
	}
	ch := checks[0]
	if ch.Patch != "net: fix rx drop" || ch.PatchID != 7 {
		t.Errorf("check patch = %q/%d", ch.Patch, ch.PatchID)
	}
	if ch.State != api.CheckStateSuccess || ch.User != "ci-bot" {
		t.Errorf("check = %+v", ch)
	}
}

func TestCheckCreatePostsBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))

	err := c.CheckCreate(context.Background(), 7, api.CheckCreateRequest{
		Context:   "build",
		State:     api.CheckStateFail,
		TargetURL: "https://ci.example.com/1",
	})
	if err != nil {
		t.Fatalf("CheckCreate: %v", err)
	}
	if gotPath != "/patches/7/checks/" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["state"] != "fail" || gotBody["context"] != "build" {
		t.Errorf("body = %v", gotBody)
	}
}
