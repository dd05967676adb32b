package main

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getpatchwork/pwclient/internal/api"
	"github.com/getpatchwork/pwclient/internal/format"
)

var listFlags struct {
	state     string
	submitter string
	delegate  string
	archived  string
	msgid     string
	hash      string
	maxCount  int
	lastCount int
	format    string
}

var listCmd = &cobra.Command{
	Use:   "list [name substring]",
	Short: "List patches in the project, newest last",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

// searchCmd is a historical alias for list.
var searchCmd = &cobra.Command{
	Use:    "search [name substring]",
	Short:  "Alias for list",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE:   runList,
}

func init() {
	for _, cmd := range []*cobra.Command{listCmd, searchCmd} {
		f := cmd.Flags()
		f.StringVarP(&listFlags.state, "state", "s", "", "Filter by state name")
		f.StringVarP(&listFlags.submitter, "submitter", "w", "", "Filter by submitter name or email substring")
		f.StringVarP(&listFlags.delegate, "delegate", "d", "", "Filter by delegate name or email substring")
		f.StringVarP(&listFlags.archived, "archived", "a", "", "Filter by archived state (yes, no)")
		f.StringVarP(&listFlags.msgid, "msgid", "m", "", "Filter by Message-Id")
		f.StringVarP(&listFlags.hash, "hash", "H", "", "Filter by content hash")
		f.IntVarP(&listFlags.maxCount, "limit", "n", 0, "Limit to the first n patches")
		f.IntVarP(&listFlags.lastCount, "limit-last", "N", 0, "Limit to the last n patches")
		f.StringVarP(&listFlags.format, "format", "f", "", "Custom output format with %{fieldname} placeholders")
	}
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	filter := api.PatchFilter{
		Project:   s.project,
		State:     listFlags.state,
		Submitter: listFlags.submitter,
		Delegate:  listFlags.delegate,
		MsgID:     listFlags.msgid,
		Hash:      listFlags.hash,
		MaxCount:  listFlags.maxCount,
	}
	if listFlags.lastCount > 0 {
		filter.MaxCount = -listFlags.lastCount
	}
	if len(args) == 1 {
		filter.Name = args[0]
	}
	switch listFlags.archived {
	case "":
	case "yes":
		v := true
		filter.Archived = &v
	case "no":
		v := false
		filter.Archived = &v
	default:
		return fmt.Errorf("invalid --archived value %q (want yes or no)", listFlags.archived)
	}

	patches, err := s.client.PatchList(cmd.Context(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case listFlags.submitter != "":
		printGrouped(out, patches, "Patches submitted by %s:", func(p api.Patch) string { return p.Submitter })
	case listFlags.delegate != "":
		printGrouped(out, patches, "Patches delegated to %s:", func(p api.Patch) string { return p.Delegate })
	default:
		printPatches(out, patches)
	}
	return nil
}

// printGrouped lists patches in per-person sections, sorted by person.
// Within a section the server's order is preserved.
func printGrouped(w io.Writer, patches []api.Patch, heading string, key func(api.Patch) string) {
	groups := map[string][]api.Patch{}
	for _, p := range patches {
		k := key(p)
		groups[k] = append(groups[k], p)
	}

	order := make([]string, 0, len(groups))
	for k := range groups {
		order = append(order, k)
	}
	sort.Strings(order)

	for _, k := range order {
		fmt.Fprintf(w, heading+"\n", k)
		printPatches(w, groups[k])
	}
}

func printPatches(w io.Writer, patches []api.Patch) {
	if listFlags.format != "" {
		for _, p := range patches {
			fmt.Fprintln(w, formatPatch(p, listFlags.format))
		}
		return
	}

	t := format.NewTable(format.Simple)
	t.Header("ID", "State", "Name")
	for _, p := range patches {
		t.Row(p.ID, p.State, p.Name)
	}
	fmt.Fprintln(w, t.String())
}

var fieldToken = regexp.MustCompile(`%\{([a-z_]+)\}`)

// formatPatch substitutes %{fieldname} placeholders with patch field
// values. The pseudo-field _msgid_ is the Message-Id stripped of its
// angle brackets, handy for building archive URLs.
func formatPatch(p api.Patch, formatStr string) string {
	fields := map[string]string{}
	for _, f := range p.Fields() {
		fields[f.Key] = f.Value
	}
	fields["_msgid_"] = strings.Trim(p.MsgID, "<>")

	return fieldToken.ReplaceAllStringFunc(formatStr, func(tok string) string {
		name := fieldToken.FindStringSubmatch(tok)[1]
		if v, ok := fields[name]; ok {
			return v
		}
		return tok
	})
}
