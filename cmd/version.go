package cmd

import (
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	m "splicer.dev/pkg/splicer/internal/model"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version, the Go version and the tree-sitter grammars built into splicer.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("tool version\t", info.Main.Version)
			cmd.Println("go version\t", info.GoVersion)
			cmd.Println("grammars\t", grammarList())
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}

func grammarList() string {
	names := make([]string, 0, len(m.Languages()))
	for _, lang := range m.Languages() {
		names = append(names, string(lang))
	}

	return strings.Join(names, ", ")
}
