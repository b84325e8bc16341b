package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default phpmin.yaml configuration file",
		Long: `Create a phpmin.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually:

  output                      output directory, created beside the source root when relative
  scheme                      1 strips comments and blank lines, 2 or more also renames
  extensions                  file extensions that are minified (php, inc)
  exclude.paths               regexes of source paths to skip
  exclude.variables           variables never renamed (entries ending in * match a prefix)
  exclude.functions           functions never renamed
  symbols.scope               run (one table for every file) or file
  symbols.export              YAML file receiving the final symbol tables
  functions.legacy_substring  replace function names anywhere in the text
  run.parallel                concurrent files when symbols.scope is file
  log.*                       log file, level and rotation`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
