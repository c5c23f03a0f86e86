package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// grammarModule provides the Java grammar the parser adapter is built with.
const grammarModule = "github.com/smacker/go-tree-sitter"

const unknownVersion = "unknown"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version, the Go version and the Java grammar version used to build ngshift.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("version: " + unknownVersion)
				return
			}

			tool, grammar := buildVersions(info)

			cmd.Println("ngshift version\t", tool)
			cmd.Println("go version\t", info.GoVersion)
			cmd.Println("java grammar\t", grammar)
		},
	}
}

// buildVersions returns the main module version and the grammar module
// version recorded in info, "unknown" when missing.
func buildVersions(info *debug.BuildInfo) (tool, grammar string) {
	tool, grammar = unknownVersion, unknownVersion

	if info.Main.Version != "" {
		tool = info.Main.Version
	}

	for _, dep := range info.Deps {
		if dep.Path != grammarModule {
			continue
		}

		if dep.Replace != nil {
			dep = dep.Replace
		}

		if dep.Version != "" {
			grammar = dep.Version
		}
	}

	return tool, grammar
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
