// Package cmd provides the root command and CLI setup for splicer.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"splicer.dev/pkg/splicer/internal/adapter"
	"splicer.dev/pkg/splicer/internal/controller"
	"splicer.dev/pkg/splicer/internal/domain"
)

var syntaxAdapter adapter.SyntaxAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var mutagen domain.Mutagen
var workflow domain.Workflow
var ui controller.UI

// Root-level flags shared by every engine command.
var (
	languageFlag      string
	seedFlag          int64
	mutationsFlag     int
	attemptFactorFlag int
	protectFlag       []string
	verboseFlag       bool
	logFlag           string
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stderr))
	syntaxAdapter = adapter.NewTreeSitterAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	mutagen = domain.NewMutagen(syntaxAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		ui,
		mutagen,
	)
}

const rootLongDescription = `Splicer mutates source files by splicing syntax-tree fragments.

Every mutation replaces one node of the concrete syntax tree with another
fragment of the same grammatical kind taken from the file itself, reparses
the result and keeps it only when it is still well-formed and declares no
name twice. Runs are reproducible for a given seed.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

// newRootCmd returns a root command with its persistent flags bound.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "splicer",
		Short:        "Syntax-tree splicing mutation engine",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&languageFlag, languageFlagName, "l", viper.GetString(languageKey), "grammar of the input files (rust, go, python, javascript)")
	bindFlagToConfig(flags.Lookup(languageFlagName), languageKey)

	flags.Int64VarP(&seedFlag, seedFlagName, "s", viper.GetInt64(seedKey), "seed of the deterministic random generator")
	bindFlagToConfig(flags.Lookup(seedFlagName), seedKey)

	flags.IntVarP(&mutationsFlag, mutationsFlagName, "m", viper.GetInt(mutationsKey), "number of accepted mutations to aim for")
	bindFlagToConfig(flags.Lookup(mutationsFlagName), mutationsKey)

	flags.IntVar(&attemptFactorFlag, attemptFactorFlagName, viper.GetInt(engineAttemptFactorKey), "attempt budget as a multiple of --mutations")
	bindFlagToConfig(flags.Lookup(attemptFactorFlagName), engineAttemptFactorKey)

	flags.StringArrayVarP(&protectFlag, protectFlagName, "p", viper.GetStringSlice(engineProtectKey), "extra identifier that must never be replaced (can be repeated)")
	bindFlagToConfig(flags.Lookup(protectFlagName), engineProtectKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.StringVar(&logFlag, logFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
