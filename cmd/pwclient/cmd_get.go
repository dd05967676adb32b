package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var getFlags struct {
	useHashes bool
	useMsgIDs bool
}

var getCmd = &cobra.Command{
	Use:     "get <ID>...",
	Aliases: []string{"save"},
	Short:   "Download patches and save them locally",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runGet,
}

func init() {
	f := getCmd.Flags()
	f.BoolVarP(&getFlags.useHashes, "use-hashes", "H", false, "Arguments are content hashes, not IDs")
	f.BoolVarP(&getFlags.useMsgIDs, "use-msgids", "m", false, "Arguments are Message-Ids, not IDs")
}

func runGet(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	ids, err := s.resolvePatchIDs(cmd.Context(), args, getFlags.useHashes, getFlags.useMsgIDs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range ids {
		mbox, filename, err := s.client.PatchGetMbox(cmd.Context(), id)
		if err != nil {
			return err
		}

		path, err := savePatch(filename, mbox)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved patch to %s\n", path)
	}
	return nil
}

// savePatch writes the mbox under <base>.patch, appending a counter
// instead of overwriting an existing file.
func savePatch(base, mbox string) (string, error) {
	path := base + ".patch"
	for i := 0; ; i++ {
		if i > 0 {
			path = fmt.Sprintf("%s.%d.patch", base, i)
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("unable to save patch: %w", err)
		}

		_, werr := f.WriteString(mbox)
		cerr := f.Close()
		if werr != nil {
			return "", fmt.Errorf("unable to save patch: %w", werr)
		}
		if cerr != nil {
			return "", fmt.Errorf("unable to save patch: %w", cerr)
		}
		return path, nil
	}
}
