package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getpatchwork/pwclient/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	project    string
	logLevel   string
	logFormat  string
}

var rootCmd = &cobra.Command{
	Use:   "pwclient",
	Short: "Command-line client for the Patchwork patch tracking system",
	Long: "pwclient queries and manipulates patches on a Patchwork server,\n" +
		"speaking either the REST API or the legacy XML-RPC API depending\n" +
		"on the project configuration.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Config file path (default: the user config dir)")
	pf.StringVarP(&rootFlags.project, "project", "p", "", "Project linkname to operate on")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(checkListCmd)
	rootCmd.AddCommand(checkInfoCmd)
	rootCmd.AddCommand(checkCreateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
