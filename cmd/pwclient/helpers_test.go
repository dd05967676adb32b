package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getpatchwork/pwclient/internal/api"
)

func TestInferBackend(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://patchwork.example.com/xmlrpc/", api.BackendXMLRPC},
		{"https://patchwork.example.com/api/", api.BackendREST},
		{"https://patchwork.example.com/", api.BackendREST},
	}
	for _, tc := range tests {
		if got := inferBackend(tc.url); got != tc.want {
			t.Errorf("inferBackend(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestFormatPatch(t *testing.T) {
	p := api.Patch{
		ID:    1023,
		State: "New",
		Name:  "net: fix rx drop",
		MsgID: "<20260801.1234@example.com>",
	}

	tests := []struct {
		format string
		want   string
	}{
		{"%{id}", "1023"},
		{"%{id} %{state}", "1023 New"},
		{"https://lore.example.org/r/%{_msgid_}", "https://lore.example.org/r/20260801.1234@example.com"},
		{"%{unknown}", "%{unknown}"},
	}
	for _, tc := range tests {
		if got := formatPatch(p, tc.format); got != tc.want {
			t.Errorf("formatPatch(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestSavePatchAvoidsCollision(t *testing.T) {
	base := filepath.Join(t.TempDir(), "net-fix-rx-drop")

	first, err := savePatch(base, "first\n")
	if err != nil {
		t.Fatalf("savePatch: %v", err)
	}
	if first != base+".patch" {
		t.Errorf("first path = %q", first)
	}

	second, err := savePatch(base, "second\n")
	if err != nil {
		t.Fatalf("savePatch second: %v", err)
	}
	if second != base+".1.patch" {
		t.Errorf("second path = %q", second)
	}

	data, err := os.ReadFile(first)
	if err != nil || string(data) != "first\n" {
		t.Errorf("first file content = %q, err %v", data, err)
	}
}

func TestSessionRequireAuth(t *testing.T) {
	s := &session{project: "netdev"}
	err := s.requireAuth("update")
	if err == nil || !strings.Contains(err.Error(), "update") {
		t.Errorf("requireAuth without creds = %v", err)
	}

	s.creds = api.Credentials{Token: "abc"}
	if err := s.requireAuth("update"); err != nil {
		t.Errorf("requireAuth with token = %v", err)
	}
}
