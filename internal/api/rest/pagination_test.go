package rest

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// pagedHandler serves /items/ in fixed-size pages with Link headers and
// counts the requests it saw.
type pagedHandler struct {
	items    []int
	pageSize int
	requests int
}

func (h *pagedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.requests++

	page := 1
	fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)

	start := (page - 1) * h.pageSize
	end := start + h.pageSize
	if start > len(h.items) {
		start = len(h.items)
	}
	if end > len(h.items) {
		end = len(h.items)
	}

	if end < len(h.items) {
		next := fmt.Sprintf("http://%s%s?page=%d", r.Host, r.URL.Path, page+1)
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next", <%s>; rel="last"`, next, next))
	}

	fmt.Fprint(w, "[")
	for i := start; i < end; i++ {
		if i > start {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, `{"v": %d}`, h.items[i])
	}
	fmt.Fprint(w, "]")
}

type wireItem struct {
	V int `json:"v"`
}

func values(items []wireItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.V
	}
	return out
}

func TestCollectConcatenatesPages(t *testing.T) {
	h := &pagedHandler{items: []int{1, 2, 3, 4, 5, 6, 7}, pageSize: 3}
	c, srv := newTestClient(t, h)

	it := newPageIterator[wireItem](c, "list items", srv.URL+"/items/")
	items, err := it.collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7}, values(items)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if h.requests != 3 {
		t.Errorf("requests = %d, want 3", h.requests)
	}
}

func TestCollectNStopsEarly(t *testing.T) {
	h := &pagedHandler{items: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, pageSize: 3}
	c, srv := newTestClient(t, h)

	it := newPageIterator[wireItem](c, "list items", srv.URL+"/items/")
	items, err := it.collectN(context.Background(), 4)
	if err != nil {
		t.Fatalf("collectN: %v", err)
	}

	if diff := cmp.Diff([]int{1, 2, 3, 4}, values(items)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	// Four items span two pages; the third must never be fetched.
	if h.requests != 2 {
		t.Errorf("requests = %d, want 2", h.requests)
	}
}

func TestCollectNDrainedCollection(t *testing.T) {
	h := &pagedHandler{items: []int{1, 2}, pageSize: 3}
	c, srv := newTestClient(t, h)

	it := newPageIterator[wireItem](c, "list items", srv.URL+"/items/")
	items, err := it.collectN(context.Background(), 10)
	if err != nil {
		t.Fatalf("collectN: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("items = %v, want the whole collection", values(items))
	}
}

func TestNextAfterDone(t *testing.T) {
	h := &pagedHandler{items: []int{1}, pageSize: 3}
	c, srv := newTestClient(t, h)

	it := newPageIterator[wireItem](c, "list items", srv.URL+"/items/")
	if _, err := it.next(context.Background()); err != nil {
		t.Fatalf("next: %v", err)
	}

	items, err := it.next(context.Background())
	if err != nil || items != nil {
		t.Errorf("next after done = %v, %v", items, err)
	}
	if h.requests != 1 {
		t.Errorf("requests = %d, want 1", h.requests)
	}
}

func TestParseLinkNext(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"next only", `<https://s/api/patches/?page=2>; rel="next"`, "https://s/api/patches/?page=2"},
		{"next and last", `<https://s/p/?page=2>; rel="next", <https://s/p/?page=9>; rel="last"`, "https://s/p/?page=2"},
		{"no next", `<https://s/p/?page=1>; rel="first"`, ""},
		{"malformed", "garbage", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseLinkNext(tc.header); got != tc.want {
				t.Errorf("parseLinkNext(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}
