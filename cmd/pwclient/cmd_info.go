package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getpatchwork/pwclient/internal/format"
)

var infoFlags struct {
	useHashes bool
	useMsgIDs bool
}

var infoCmd = &cobra.Command{
	Use:   "info <ID>...",
	Short: "Show the full metadata of one or more patches",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	f := infoCmd.Flags()
	f.BoolVarP(&infoFlags.useHashes, "use-hashes", "H", false, "Arguments are content hashes, not IDs")
	f.BoolVarP(&infoFlags.useMsgIDs, "use-msgids", "m", false, "Arguments are Message-Ids, not IDs")
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ids, err := s.resolvePatchIDs(cmd.Context(), args, infoFlags.useHashes, infoFlags.useMsgIDs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range ids {
		patch, err := s.client.PatchGet(cmd.Context(), id)
		if err != nil {
			return err
		}
		if patch == nil {
			fmt.Fprintf(os.Stderr, "Error getting information on patch ID %d\n", id)
			os.Exit(1)
		}

		pairs := make([][2]string, 0, 16)
		for _, f := range patch.Fields() {
			pairs = append(pairs, [2]string{f.Key, f.Value})
		}
		fmt.Fprintf(out, "Information for patch id %d\n", id)
		fmt.Fprintln(out, format.KeyValues(pairs))
	}
	return nil
}
