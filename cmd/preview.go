package cmd

import (
	"github.com/spf13/cobra"

	"phpmin.dev/pkg/phpmin/internal/domain"
	m "phpmin.dev/pkg/phpmin/internal/model"
)

const defaultPreviewContext = 3

var previewContextFlag int

// previewCmd represents the preview command.
var previewCmd = newPreviewCmd()

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show what minifying a single file would change",
		Long: `Minify one file in memory and print a unified diff against the original,
followed by the symbol names it would receive. Nothing is written to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			return workflow.Preview(cmd.Context(), domain.PreviewArgs{
				File:    m.Path(args[0]),
				Context: previewContextFlag,
			})
		},
	}

	cmd.Flags().IntVarP(&previewContextFlag, contextFlagName, "c", defaultPreviewContext, "lines of diff context")

	return cmd
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
