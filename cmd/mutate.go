package cmd

import (
	"github.com/spf13/cobra"

	"splicer.dev/pkg/splicer/internal/domain"
	m "splicer.dev/pkg/splicer/internal/model"
)

var mutateOutputFlag string
var mutateReportFlag string
var mutateDiffFlag bool

// mutateCmd represents the mutate command.
var mutateCmd = newMutateCmd()

func newMutateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutate <file>",
		Short: "Mutate a single source file",
		Long: `Run one mutation session over a source file.

The mutant is written to --output, or to stdout when no output is given.
A summary of every attempt is printed to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := engineConfigFromViper()
			if err != nil {
				return err
			}

			engine.WithDiff = mutateDiffFlag

			return workflow.Mutate(cmd.Context(), domain.MutateArgs{
				Input:  m.Path(args[0]),
				Output: m.Path(mutateOutputFlag),
				Report: m.Path(mutateReportFlag),
				Engine: engine,
			})
		},
	}

	configureMutateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(mutateCmd)
}

func configureMutateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&mutateOutputFlag, "output", "o", "", "write the mutant to this file instead of stdout")
	cmd.Flags().StringVar(&mutateReportFlag, "report", "", "save the session report (.json, .yaml or .yml)")
	cmd.Flags().BoolVarP(&mutateDiffFlag, "diff", "d", false, "include a unified diff in the summary")
}
