package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/getpatchwork/pwclient/internal/api"
	"github.com/getpatchwork/pwclient/internal/display"
	"github.com/getpatchwork/pwclient/internal/format"
)

var checkListFlags struct {
	patchID int
	user    string
}

var checkListCmd = &cobra.Command{
	Use:   "check-list",
	Short: "List CI checks",
	Args:  cobra.NoArgs,
	RunE:  runCheckList,
}

var checkInfoFlags struct {
	patchID int
}

var checkInfoCmd = &cobra.Command{
	Use:   "check-info <check ID>",
	Short: "Show the full metadata of one check",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckInfo,
}

var checkCreateFlags struct {
	context     string
	state       string
	targetURL   string
	description string
	useHashes   bool
	useMsgIDs   bool
}

var checkCreateCmd = &cobra.Command{
	Use:   "check-create <patch ID>",
	Short: "Attach a CI check result to a patch",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckCreate,
}

func init() {
	f := checkListCmd.Flags()
	f.IntVar(&checkListFlags.patchID, "patch", 0, "Limit to checks on one patch (required for the REST backend)")
	f.StringVar(&checkListFlags.user, "user", "", "Limit to checks created by one user")

	f = checkInfoCmd.Flags()
	f.IntVar(&checkInfoFlags.patchID, "patch", 0, "Patch the check belongs to (required for the REST backend)")

	f = checkCreateCmd.Flags()
	f.StringVarP(&checkCreateFlags.context, "context", "c", "", "Label to discern the check from others (required)")
	f.StringVarP(&checkCreateFlags.state, "state", "s", "", "Check state (pending, success, warning, fail) (required)")
	f.StringVarP(&checkCreateFlags.targetURL, "target-url", "u", "", "URL with the check's full results")
	f.StringVarP(&checkCreateFlags.description, "description", "d", "", "Check summary")
	f.BoolVarP(&checkCreateFlags.useHashes, "use-hashes", "H", false, "Argument is a content hash, not an ID")
	f.BoolVarP(&checkCreateFlags.useMsgIDs, "use-msgids", "m", false, "Argument is a Message-Id, not an ID")

	_ = checkCreateCmd.MarkFlagRequired("context")
	_ = checkCreateCmd.MarkFlagRequired("state")
}

func runCheckList(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	checks, err := s.client.CheckList(cmd.Context(), checkListFlags.patchID, checkListFlags.user)
	if err != nil {
		return err
	}

	t := format.NewTable(format.Simple)
	t.Header("ID", "Context", "State", "Patch")
	for _, ch := range checks {
		t.Row(ch.ID, ch.Context, display.CheckState(ch.State), ch.Patch)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

func runCheckInfo(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	checkID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid check ID: %s", args[0])
	}

	check, err := s.client.CheckGet(cmd.Context(), checkInfoFlags.patchID, checkID)
	if err != nil {
		return err
	}
	if check == nil {
		fmt.Fprintf(os.Stderr, "Error getting information on check ID %d\n", checkID)
		os.Exit(1)
	}

	pairs := make([][2]string, 0, 10)
	for _, f := range check.Fields() {
		pairs = append(pairs, [2]string{f.Key, f.Value})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Information for check id %d\n", checkID)
	fmt.Fprintln(cmd.OutOrStdout(), format.KeyValues(pairs))
	return nil
}

func runCheckCreate(cmd *cobra.Command, args []string) error {
	state := api.CheckState(checkCreateFlags.state)
	switch state {
	case api.CheckStatePending, api.CheckStateSuccess, api.CheckStateWarning, api.CheckStateFail:
	default:
		return fmt.Errorf("invalid check state %q (want pending, success, warning or fail)", checkCreateFlags.state)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	if err := s.requireAuth("check-create"); err != nil {
		return err
	}

	ids, err := s.resolvePatchIDs(cmd.Context(), args, checkCreateFlags.useHashes, checkCreateFlags.useMsgIDs)
	if err != nil {
		return err
	}

	return s.client.CheckCreate(cmd.Context(), ids[0], api.CheckCreateRequest{
		Context:     checkCreateFlags.context,
		State:       state,
		TargetURL:   checkCreateFlags.targetURL,
		Description: checkCreateFlags.description,
	})
}
