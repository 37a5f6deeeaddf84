package cmd

import (
	"fmt"

	"wordmerge/pkg/merge"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume an interrupted merge",
	Long: `Resume continues a merge from the checkpoint file written by a previous
run. Files already recorded as processed are skipped; everything their lines
contributed is carried forward from the partial output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		progressFile, err := cmd.Flags().GetString("progress-file")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		if progressFile == "" {
			return fmt.Errorf("--progress-file is required")
		}

		return merge.Resume(progressFile, logger)
	},
}

func init() {
	resumeCmd.Flags().String("progress-file", "", "Path to the checkpoint file of the interrupted run")
	RootCmd.AddCommand(resumeCmd)
}
