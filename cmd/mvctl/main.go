// mvctl is the command-line client for a mediavault server: it lists and
// creates folders, uploads local media in bounded waves and deletes files.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mediavault/mediavault/tool"
	"github.com/mediavault/mediavault/transfer"
)

var (
	serverURL  string
	accessCode string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mvctl",
		Short: "Client for a mediavault media server",
		Long: `mvctl talks to a running mediavault server.

Authentication uses the server's access code, passed with --code or the
MEDIAVAULT_CODE environment variable.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			tool.InitLogger()
			if verbose {
				tool.DefaultLogger.SetLevel(log.DebugLevel)
			} else {
				tool.DefaultLogger.SetLevel(log.WarnLevel)
			}
			if accessCode == "" {
				accessCode = os.Getenv("MEDIAVAULT_CODE")
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:3000", "Base URL of the media server")
	rootCmd.PersistentFlags().StringVarP(&accessCode, "code", "c", "", "Access code (defaults to MEDIAVAULT_CODE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newLsCmd())
	rootCmd.AddCommand(newMkdirCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newRmAllCmd())

	return rootCmd
}

func newAPIClient() (*transfer.Client, error) {
	if accessCode == "" {
		return nil, fmt.Errorf("no access code: pass --code or set MEDIAVAULT_CODE")
	}
	return transfer.NewClient(serverURL, accessCode), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
