package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mediavault/mediavault/transfer"
	"github.com/mediavault/mediavault/types"
)

func newUploadCmd() *cobra.Command {
	var (
		destFolder  string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "upload <file> [file...]",
		Short: "Upload local media files to a server folder",
		Long: `Upload streams each file to the server, at most five at a time.
A file that fails stays failed; re-run the command to try it again.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			for _, p := range args {
				if _, err := os.Stat(p); err != nil {
					return fmt.Errorf("cannot read %s: %w", p, err)
				}
			}

			sched := transfer.NewScheduler(client.UploadFile)
			if concurrency > 0 {
				sched.SetWaveSize(concurrency)
			}

			bar := newUploadBar(len(args))
			sched.Subscribe(func() {
				total := int64(0)
				for _, t := range sched.Snapshot() {
					if t.State.Terminal() {
						total += 100
					} else {
						total += int64(t.ProgressPercent)
					}
				}
				_ = bar.Set64(total)
			})

			ids := sched.Submit(args, destFolder)
			sched.WaitIdle()
			_ = bar.Finish()

			failed := 0
			for _, t := range sched.Snapshot() {
				if t.State == types.TransferError {
					failed++
					fmt.Fprintf(os.Stderr, "failed: %s: %s\n", t.DisplayName, t.Error)
				}
			}
			fmt.Printf("uploaded %d of %d files\n", len(ids)-failed, len(ids))
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(ids))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&destFolder, "to", "t", "", "Destination folder path (default media root)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Max concurrent uploads (default 5)")
	return cmd
}

// newUploadBar builds the aggregate progress bar: 100 units per file.
func newUploadBar(fileCount int) *progressbar.ProgressBar {
	return progressbar.NewOptions64(int64(100*fileCount),
		progressbar.OptionSetDescription(fmt.Sprintf("Uploading %d file(s)", fileCount)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}
