package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path> [path...]",
		Short: "Delete media files on the server",
		Long: `Delete each given file. Deletions are independent: a path that
cannot be removed does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if err := client.DeleteFile(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Printf("deleted %s\n", args[0])
				return nil
			}
			resp, err := client.DeleteMany(cmd.Context(), args)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range resp.Results {
				if r.Success {
					fmt.Printf("deleted %s\n", r.Path)
				} else {
					failed++
					fmt.Fprintf(os.Stderr, "failed: %s: %s\n", r.Path, r.Error)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d deletions failed", failed, len(resp.Results))
			}
			return nil
		},
	}
}

func newRmAllCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm-all [folder]",
		Short: "Delete every file directly inside a folder",
		Long: `Delete all files at the top level of a folder. Subfolders and
their contents are left alone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			folderPath := ""
			if len(args) == 1 {
				folderPath = args[0]
			}
			if !yes {
				return fmt.Errorf("rm-all removes every file in /%s; re-run with --yes to confirm", folderPath)
			}
			resp, err := client.DeleteAll(cmd.Context(), folderPath)
			if err != nil {
				return err
			}
			for _, r := range resp.Results {
				if !r.Success {
					fmt.Fprintf(os.Stderr, "failed: %s: %s\n", r.Path, r.Error)
				}
			}
			fmt.Printf("deleted %d file(s)\n", resp.DeletedCount)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation check")
	return cmd
}
