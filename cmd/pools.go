package cmd

import (
	"github.com/spf13/cobra"

	"splicer.dev/pkg/splicer/internal/domain"
	m "splicer.dev/pkg/splicer/internal/model"
)

var poolsSamplesFlag int

// poolsCmd represents the pools command.
var poolsCmd = newPoolsCmd()

func newPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools <file>",
		Short: "Show the donor pool collected from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := engineConfigFromViper()
			if err != nil {
				return err
			}

			return workflow.Pools(cmd.Context(), domain.PoolsArgs{
				Input:   m.Path(args[0]),
				Engine:  engine,
				Samples: poolsSamplesFlag,
			})
		},
	}

	cmd.Flags().IntVar(&poolsSamplesFlag, "samples", defaultPoolSamples, "donor previews shown per kind")

	return cmd
}

func init() {
	rootCmd.AddCommand(poolsCmd)
}
