package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

var viewFlags struct {
	useHashes bool
	useMsgIDs bool
}

var viewCmd = &cobra.Command{
	Use:     "view <ID>...",
	Aliases: []string{"show"},
	Short:   "View patch content, through $PAGER when set",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runView,
}

func init() {
	f := viewCmd.Flags()
	f.BoolVarP(&viewFlags.useHashes, "use-hashes", "H", false, "Arguments are content hashes, not IDs")
	f.BoolVarP(&viewFlags.useMsgIDs, "use-msgids", "m", false, "Arguments are Message-Ids, not IDs")
}

func runView(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ids, err := s.resolvePatchIDs(cmd.Context(), args, viewFlags.useHashes, viewFlags.useMsgIDs)
	if err != nil {
		return err
	}

	var body strings.Builder
	for _, id := range ids {
		mbox, _, err := s.client.PatchGetMbox(cmd.Context(), id)
		if err != nil {
			return err
		}
		body.WriteString(mbox)
	}

	pager := os.Getenv("PAGER")
	if pager == "" {
		fmt.Fprint(cmd.OutOrStdout(), body.String())
		return nil
	}

	pagerCmd := exec.CommandContext(cmd.Context(), pager)
	pagerCmd.Stdin = strings.NewReader(body.String())
	pagerCmd.Stdout = os.Stdout
	pagerCmd.Stderr = os.Stderr
	return pagerCmd.Run()
}
