package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"phpmin.dev/pkg/phpmin/internal/domain"
	m "phpmin.dev/pkg/phpmin/internal/model"
)

var scopeFlag string
var parallelFlag int
var symbolsFlag string
var legacyFunctionsFlag bool

// minifyCmd represents the minify command.
var minifyCmd = newMinifyCmd()

func newMinifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minify [src]",
		Short: "Minify a PHP source tree",
		Long:  minifyLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			_, err = workflow.Minify(cmd.Context(), domain.MinifyArgs{
				Source:        parseSource(args),
				Output:        m.Path(viper.GetString(outputConfigKey)),
				Scope:         m.ParseSymbolScope(viper.GetString(scopeConfigKey)),
				Parallel:      viper.GetInt(parallelConfigKey),
				Exclude:       viper.GetStringSlice(excludeConfigKey),
				SymbolsExport: m.Path(viper.GetString(symbolsExportConfigKey)),
			})

			return err
		},
	}

	configureMinifyFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(minifyCmd)
}

func configureMinifyFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scopeFlag, scopeFlagName, viper.GetString(scopeConfigKey), "symbol table lifetime: run (shared by all files) or file")
	bindFlagToConfig(cmd.Flags().Lookup(scopeFlagName), scopeConfigKey)

	cmd.Flags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files minified concurrently with --scope file")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().StringVar(&symbolsFlag, symbolsFlagName, viper.GetString(symbolsExportConfigKey), "write the symbol tables to this YAML file")
	bindFlagToConfig(cmd.Flags().Lookup(symbolsFlagName), symbolsExportConfigKey)

	cmd.Flags().BoolVar(&legacyFunctionsFlag, legacyFunctionsFlagName, viper.GetBool(legacyFunctionsConfigKey), "replace function names anywhere in the text, not only on word boundaries")
	bindFlagToConfig(cmd.Flags().Lookup(legacyFunctionsFlagName), legacyFunctionsConfigKey)
}
