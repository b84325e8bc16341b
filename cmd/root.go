// Package cmd provides the root command and CLI setup for phpmin.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"phpmin.dev/pkg/phpmin/internal/adapter"
	"phpmin.dev/pkg/phpmin/internal/controller"
	"phpmin.dev/pkg/phpmin/internal/domain"
	m "phpmin.dev/pkg/phpmin/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var symbolStore adapter.SymbolStore

// outputFlag is a root-level flag naming the output directory.
var outputFlag string

// schemeFlag selects strip-only (1) or rename (>1) minification.
var schemeFlag int

// excludePatterns is a root-level flag that filters source files.
var excludePatterns []string

var extensionsFlag []string
var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	fsAdapter = adapter.NewLocalSourceFSAdapter()
	symbolStore = adapter.NewSymbolStore()
}

const rootLongDescription = `phpmin minifies PHP applications. It strips comment, divider and blank
lines from every .php/.inc file of a source tree and, with --scheme 2 or
higher, renames user-defined variables and functions to short synthetic
names. The directory structure is mirrored into the output directory.`

const minifyLongDescription = `Minify every eligible file under SRC (default: current directory).

The output directory is created beside SRC unless --output is absolute.
With --scheme 2 variables become $a, $b, ... and functions fn0, fn1, ...
Symbols are shared by all files of the run unless --scope file is given.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phpmin",
		Short: "PHP application minifier",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputFlag, outputFlagName, "o",
			viper.GetString(outputConfigKey),
			"output directory (relative names are created beside the source root)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputConfigKey)

	cmd.PersistentFlags().IntVarP(&schemeFlag, schemeFlagName, "s", viper.GetInt(schemeConfigKey), "1 strips comments and whitespace, 2 or more also renames identifiers")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(schemeFlagName), schemeConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "skip files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringSliceVar(&extensionsFlag, extensionsFlagName, viper.GetStringSlice(extensionsConfigKey), "file extensions to minify")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(extensionsFlagName), extensionsConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path (default from config)")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newWorkflow assembles the workflow from the current configuration.
func newWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	cfg := domainConfig()

	engine, err := domain.NewDefaultEngine(cfg, fsAdapter)
	if err != nil {
		return nil, err
	}

	ui := controller.NewUI(cmd, isTerminalOutput(cmd))

	return domain.NewWorkflow(cfg, fsAdapter, symbolStore, ui, engine), nil
}

func isTerminalOutput(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && controller.IsTTY(f)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parseSource(args []string) m.Path {
	if len(args) == 0 || args[0] == "" {
		return m.Path(".")
	}

	return m.Path(args[0])
}
