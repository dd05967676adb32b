package display

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/getpatchwork/pwclient/internal/api"
)

func TestCheckStateColors(t *testing.T) {
	// Force colors on so the assertions hold under CI pipes.
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	cases := []struct {
		state api.CheckState
		code  string
	}{
		{api.CheckStateSuccess, "\x1b[32m"},
		{api.CheckStateWarning, "\x1b[33m"},
		{api.CheckStateFail, "\x1b[31m"},
		{api.CheckStatePending, "\x1b[36m"},
	}
	for _, tc := range cases {
		got := CheckState(tc.state)
		if !strings.Contains(got, tc.code) {
			t.Errorf("CheckState(%q) = %q, want escape %q", tc.state, got, tc.code)
		}
		if !strings.Contains(got, string(tc.state)) {
			t.Errorf("CheckState(%q) lost the state text: %q", tc.state, got)
		}
	}
}

func TestCheckStateUnknownPassesThrough(t *testing.T) {
	if got := CheckState(api.CheckState("odd")); got != "odd" {
		t.Errorf("got %q", got)
	}
}

func TestArchived(t *testing.T) {
	if Archived(true) != "yes" || Archived(false) != "no" {
		t.Error("Archived mapping is wrong")
	}
}

func TestPerson(t *testing.T) {
	if got := Person(""); got != "(none)" {
		t.Errorf("Person(\"\") = %q", got)
	}
	if got := Person("Jo <jo@example.com>"); got != "Jo <jo@example.com>" {
		t.Errorf("Person passthrough = %q", got)
	}
}
