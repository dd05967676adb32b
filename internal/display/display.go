// Package display provides human-readable renderings of patch and
// check attributes for CLI output. Raw values stay untouched in JSON
// output and machine-readable fields.
package display

import (
	"github.com/fatih/color"

	"github.com/getpatchwork/pwclient/internal/api"
)

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
	pendingColor = color.New(color.FgCyan)
)

// CheckState colorizes a check outcome for terminal output. Unknown
// states pass through uncolored.
func CheckState(state api.CheckState) string {
	switch state {
	case api.CheckStateSuccess:
		return successColor.Sprint(string(state))
	case api.CheckStateWarning:
		return warningColor.Sprint(string(state))
	case api.CheckStateFail:
		return failColor.Sprint(string(state))
	case api.CheckStatePending:
		return pendingColor.Sprint(string(state))
	default:
		return string(state)
	}
}

// Archived renders the archived flag the way the legacy client did.
func Archived(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// Person renders a person with an empty-value placeholder, used in
// grouped listings where the delegate may be unset.
func Person(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
