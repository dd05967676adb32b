package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getpatchwork/pwclient/internal/format"
)

var projectsCmd = &cobra.Command{
	Use:   "projects [search]",
	Short: "List projects on the server",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjects,
}

func runProjects(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	search := ""
	if len(args) == 1 {
		search = args[0]
	}

	projects, err := s.client.ProjectList(cmd.Context(), search)
	if err != nil {
		return err
	}

	t := format.NewTable(format.Simple)
	t.Header("ID", "Name", "Description")
	for _, p := range projects {
		t.Row(p.ID, p.LinkName, p.Name)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}
