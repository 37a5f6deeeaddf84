package cmd

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// logger is shared by all subcommands; it is injected through Execute so the
// whole command tree logs with the fields set up in main.
var logger *zap.Logger

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "wordmerge",
	Short: "wordmerge merges and deduplicates wordlists",
	Long: `wordmerge merges large collections of wordlist files into a single
deduplicated output. Input files in legacy encodings are detected and
converted to UTF-8 on the fly, memory use is bounded by batching, and
interrupted runs can be resumed from a checkpoint file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute wires the injected logger into the command tree and runs it.
func Execute(l *zap.Logger) error {
	logger = l
	return RootCmd.Execute()
}
