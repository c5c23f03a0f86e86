// Package cmd provides the root command and CLI setup for ngshift.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ngshift.dev/pkg/ngshift/internal/adapter"
	"ngshift.dev/pkg/ngshift/internal/controller"
	"ngshift.dev/pkg/ngshift/internal/domain"
	m "ngshift.dev/pkg/ngshift/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var javaParser adapter.JavaParserAdapter
var materializer adapter.Materializer
var profileStore adapter.ProfileStore
var workflow domain.Workflow
var ui controller.UI

// profileFileFlag is a root-level flag naming a custom conversion profile.
var profileFileFlag string

// logFileFlag and verboseFlag configure the rotating log file.
var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	javaParser = adapter.NewLocalJavaParserAdapter()
	materializer = adapter.NewJavaMaterializer()
	profileStore = adapter.NewProfileStore()
	workflow = domain.NewWorkflow(
		fsAdapter,
		javaParser,
		materializer,
		profileStore,
		ui,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - FooTest.java   convert a single file
  - ./src          convert the .java files of a directory
  - ./src/...      recursively convert a directory tree`

const rootLongDescription = `ngshift rewrites JUnit 3 and JUnit 4 test sources into TestNG tests.

It edits only what the conversion requires: legacy imports, base classes,
lifecycle and test annotations, assertion receivers and annotation
attributes. Every other byte of the file is kept as written.

` + pathPatternsHelp

const convertLongDescription = `Convert the given Java test sources to TestNG.

By default the converted text is shown as a unified diff and nothing is
written. Use --write to update the files in place.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ngshift",
		Short: "JUnit to TestNG test source converter",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&profileFileFlag, profileFlagName, viper.GetString(profileFileKey), "YAML conversion profile (default: built-in JUnit to TestNG)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(profileFlagName), profileFileKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
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
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
