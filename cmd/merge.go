package cmd

import (
	"fmt"

	"wordmerge/pkg/config"
	"wordmerge/pkg/logging"
	"wordmerge/pkg/merge"
	"wordmerge/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge and deduplicate wordlists",
	Long: `Merge reads a list of wordlist paths (one per line), streams every file
through encoding detection and UTF-8 conversion, and writes a single
deduplicated output. Progress is checkpointed after every completed file so
an interrupted run can be continued with the resume command.`,
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("error reading flags: %w", err)
	}

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger.Debug("Loaded configuration", zap.String("config", configPath))
	}

	wordlists, _ := flags.GetString("wordlists-file")
	rules, _ := flags.GetString("rules-file")
	outputWordlist, _ := flags.GetString("output-wordlist")
	outputRules, _ := flags.GetString("output-rules")
	progressFile, _ := flags.GetString("progress-file")
	debug, _ := flags.GetBool("debug")

	// Flags override the config file. Wordlist and rule inputs are the same
	// mechanism with different naming; a run takes one or the other.
	input := cfg.InputFiles
	if wordlists != "" {
		input = wordlists
	}
	if rules != "" {
		input = rules
	}
	output := cfg.OutputFiles
	if outputWordlist != "" {
		output = outputWordlist
	}
	if outputRules != "" {
		output = outputRules
	}
	if input == "" || output == "" {
		return fmt.Errorf("an input list (-w or -r) and an output path are required")
	}

	cfg.InputFiles = input
	cfg.OutputFiles = output
	if debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Debug runs switch to the development logger for readable output.
	if cfg.Debug {
		if l, err := logging.New(true, "wordmerge", version.Get().Version); err == nil {
			logger = l
		}
	}

	return merge.Run(merge.Arguments{
		InputFile:    cfg.InputFiles,
		OutputFile:   cfg.OutputFiles,
		Threads:      cfg.Threads,
		ProgressFile: progressFile,
		Verbose:      cfg.Verbose,
		Debug:        cfg.Debug,
	}, logger)
}

func init() {
	mergeCmd.Flags().StringP("wordlists-file", "w", "", "File listing wordlist paths to merge, one per line")
	mergeCmd.Flags().StringP("rules-file", "r", "", "File listing rule file paths to merge, one per line")
	mergeCmd.Flags().String("output-wordlist", "", "Path for the merged wordlist output")
	mergeCmd.Flags().String("output-rules", "", "Path for the merged rules output")
	mergeCmd.Flags().StringP("config", "c", "", "Path to a JSON configuration file")
	mergeCmd.Flags().String("progress-file", "", "Path for the resume checkpoint file")
	mergeCmd.Flags().BoolP("debug", "d", false, "Enable debug logging")

	RootCmd.AddCommand(mergeCmd)
}
