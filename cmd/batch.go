package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"splicer.dev/pkg/splicer/internal/domain"
	m "splicer.dev/pkg/splicer/internal/model"
)

const (
	batchDataDirFlagName   = "data-dir"
	batchPatternFlagName   = "pattern"
	batchOutputDirFlagName = "output-dir"
	batchMaxFilesFlagName  = "max-files"
	batchParallelFlagName  = "parallel"
	batchTimeoutFlagName   = "timeout"
	batchReportFlagName    = "report-name"
)

var (
	batchDataDirFlag   string
	batchPatternFlag   string
	batchOutputDirFlag string
	batchMaxFilesFlag  int
	batchParallelFlag  int
	batchTimeoutFlag   int64
	batchReportFlag    string
)

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Mutate every matching file of a data directory",
		Long: `Find files matching --pattern under --data-dir (recursively), mutate each
of them with seed+N for the N-th file and write <name>_mutated<ext> files plus a
summary report into --output-dir. A failing file never stops the batch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := engineConfigFromViper()
			if err != nil {
				return err
			}

			return workflow.Batch(cmd.Context(), domain.BatchArgs{
				DataDir:    m.Path(viper.GetString(batchDataDirKey)),
				Pattern:    viper.GetString(batchPatternKey),
				Recursive:  true,
				OutputDir:  m.Path(viper.GetString(batchOutputDirKey)),
				ReportName: viper.GetString(batchReportKey),
				MaxFiles:   viper.GetInt(batchMaxFilesKey),
				Threads:    viper.GetInt(batchParallelKey),
				Timeout:    batchTimeout(),
				Engine:     engine,
			})
		},
	}

	configureBatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func configureBatchFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&batchDataDirFlag, batchDataDirFlagName, viper.GetString(batchDataDirKey), "directory scanned for input files")
	bindFlagToConfig(flags.Lookup(batchDataDirFlagName), batchDataDirKey)

	flags.StringVar(&batchPatternFlag, batchPatternFlagName, viper.GetString(batchPatternKey), "glob matched against file names")
	bindFlagToConfig(flags.Lookup(batchPatternFlagName), batchPatternKey)

	flags.StringVarP(&batchOutputDirFlag, batchOutputDirFlagName, "o", viper.GetString(batchOutputDirKey), "directory for mutants and the batch report")
	bindFlagToConfig(flags.Lookup(batchOutputDirFlagName), batchOutputDirKey)

	flags.IntVar(&batchMaxFilesFlag, batchMaxFilesFlagName, viper.GetInt(batchMaxFilesKey), "process at most this many files (0 = all)")
	bindFlagToConfig(flags.Lookup(batchMaxFilesFlagName), batchMaxFilesKey)

	flags.IntVarP(&batchParallelFlag, batchParallelFlagName, "j", viper.GetInt(batchParallelKey), "number of files mutated in parallel")
	bindFlagToConfig(flags.Lookup(batchParallelFlagName), batchParallelKey)

	flags.Int64Var(&batchTimeoutFlag, batchTimeoutFlagName, viper.GetInt64(batchTimeoutKey), "per-file session timeout in seconds (0 = none)")
	bindFlagToConfig(flags.Lookup(batchTimeoutFlagName), batchTimeoutKey)

	flags.StringVar(&batchReportFlag, batchReportFlagName, viper.GetString(batchReportKey), "file name of the batch report (.json or .yaml)")
	bindFlagToConfig(flags.Lookup(batchReportFlagName), batchReportKey)
}
