package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getpatchwork/pwclient/internal/api"
)

var updateFlags struct {
	state     string
	archived  string
	commitRef string
	useHashes bool
	useMsgIDs bool
}

var updateCmd = &cobra.Command{
	Use:   "update <ID>...",
	Short: "Update the state, archived flag, or commit ref of patches",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUpdate,
}

func init() {
	f := updateCmd.Flags()
	f.StringVarP(&updateFlags.state, "state", "s", "", "New state name")
	f.StringVarP(&updateFlags.archived, "archived", "a", "", "New archived state (yes, no)")
	f.StringVarP(&updateFlags.commitRef, "commit-ref", "c", "", "Commit reference (single patch only)")
	f.BoolVarP(&updateFlags.useHashes, "use-hashes", "H", false, "Arguments are content hashes, not IDs")
	f.BoolVarP(&updateFlags.useMsgIDs, "use-msgids", "m", false, "Arguments are Message-Ids, not IDs")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if updateFlags.state == "" && updateFlags.archived == "" {
		return fmt.Errorf("one of --state or --archived is required")
	}
	if updateFlags.commitRef != "" && len(args) > 1 {
		return fmt.Errorf("--commit-ref can only be used with one patch")
	}

	update := api.PatchUpdate{
		State:     updateFlags.state,
		CommitRef: updateFlags.commitRef,
	}
	switch updateFlags.archived {
	case "":
	case "yes":
		v := true
		update.Archived = &v
	case "no":
		v := false
		update.Archived = &v
	default:
		return fmt.Errorf("invalid --archived value %q (want yes or no)", updateFlags.archived)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	if err := s.requireAuth("update"); err != nil {
		return err
	}

	ids, err := s.resolvePatchIDs(cmd.Context(), args, updateFlags.useHashes, updateFlags.useMsgIDs)
	if err != nil {
		return err
	}

	for _, id := range ids {
		// Validate the target first so a typoed ID fails before anything
		// is mutated.
		patch, err := s.client.PatchGet(cmd.Context(), id)
		if err != nil {
			return err
		}
		if patch == nil {
			fmt.Fprintf(os.Stderr, "Invalid patch ID given\n")
			os.Exit(1)
		}

		if _, err := s.client.PatchSet(cmd.Context(), id, update); err != nil {
			if errors.Is(err, api.ErrNotUpdated) {
				return fmt.Errorf("patch %d not updated", id)
			}
			return err
		}
	}
	return nil
}
