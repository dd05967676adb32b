package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getpatchwork/pwclient/internal/format"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List valid patch states (XML-RPC backend only)",
	Args:  cobra.NoArgs,
	RunE:  runStates,
}

func runStates(cmd *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	states, err := s.client.StateList(cmd.Context(), "")
	if err != nil {
		return err
	}

	t := format.NewTable(format.Simple)
	t.Header("ID", "Name")
	for _, st := range states {
		t.Row(st.ID, st.Name)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}
