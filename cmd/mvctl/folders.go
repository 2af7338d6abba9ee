package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List folders and media files at a path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			folderPath := ""
			if len(args) == 1 {
				folderPath = args[0]
			}
			listing, err := client.ListFolder(cmd.Context(), folderPath)
			if err != nil {
				return err
			}
			for _, f := range listing.Folders {
				fmt.Printf("%-8s %s\n", f.Type, f.Path)
			}
			for _, f := range listing.Files {
				fmt.Printf("%-8s %s\n", f.Type, f.Path)
			}
			fmt.Printf("%d folders, %d files in /%s\n", len(listing.Folders), len(listing.Files), listing.CurrentPath)
			return nil
		},
	}
}

func newMkdirCmd() *cobra.Command {
	var parentPath string
	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			created, err := client.CreateFolder(cmd.Context(), parentPath, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", created)
			return nil
		},
	}
	cmd.Flags().StringVarP(&parentPath, "parent", "p", "", "Parent folder path (default media root)")
	return cmd
}
