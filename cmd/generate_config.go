package cmd

import (
	"fmt"

	"wordmerge/pkg/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config [path]",
	Short: "Write a configuration template",
	Long:  `Write a JSON configuration file populated with default values, ready to edit.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "wordmerge.json"
		if len(args) == 1 {
			path = args[0]
		}

		if err := config.Template().Save(path); err != nil {
			return err
		}
		logger.Info("Configuration template written", zap.String("path", path))
		fmt.Printf("Configuration template written to %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(generateConfigCmd)
}
