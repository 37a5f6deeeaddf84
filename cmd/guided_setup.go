package cmd

import (
	"fmt"
	"os"

	"wordmerge/pkg/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var guidedSetupCmd = &cobra.Command{
	Use:   "guided-setup [path]",
	Short: "Build a configuration interactively",
	Long:  `Walk through the run settings one question at a time and save the result as a JSON configuration file.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "wordmerge.json"
		if len(args) == 1 {
			path = args[0]
		}

		cfg, err := config.GuidedSetup(os.Stdin)
		if err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		logger.Info("Configuration saved", zap.String("path", path))
		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(guidedSetupCmd)
}
