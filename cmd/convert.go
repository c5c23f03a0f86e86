package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ngshift.dev/pkg/ngshift/internal/domain"
)

var convertWriteFlag bool
var convertPlanFlag bool
var convertNoDiffFlag bool
var convertParallelFlag int
var convertStrictFlag bool

// convertCmd represents the convert command.
var convertCmd = newConvertCmd()

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert paths...",
		Short: "Convert JUnit test sources to TestNG",
		Long:  convertLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile()
			if err != nil {
				return err
			}

			return workflow.Convert(cmd.Context(), domain.ConvertArgs{
				Paths:    parsePaths(args),
				Profile:  profile,
				Write:    viper.GetBool(convertWriteKey),
				ShowPlan: convertPlanFlag,
				ShowDiff: !viper.GetBool(convertNoDiffKey),
				Parallel: parallelism(viper.GetInt(convertParallelKey)),
				Strict:   viper.GetBool(convertStrictKey),
			})
		},
	}

	configureConvertFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func configureConvertFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&convertWriteFlag, writeFlagName, "w", viper.GetBool(convertWriteKey), "write the converted sources back to disk")
	bindFlagToConfig(cmd.Flags().Lookup(writeFlagName), convertWriteKey)

	cmd.Flags().BoolVar(&convertPlanFlag, planFlagName, false, "print the edit plan of every converted file")

	cmd.Flags().BoolVar(&convertNoDiffFlag, noDiffFlagName, viper.GetBool(convertNoDiffKey), "do not print unified diffs")
	bindFlagToConfig(cmd.Flags().Lookup(noDiffFlagName), convertNoDiffKey)

	cmd.Flags().IntVarP(&convertParallelFlag, parallelFlagName, "p", viper.GetInt(convertParallelKey), "number of files converted concurrently (0: unlimited)")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), convertParallelKey)

	cmd.Flags().BoolVar(&convertStrictFlag, strictFlagName, viper.GetBool(convertStrictKey), "fail on ambiguous annotation matches instead of removing the first one")
	bindFlagToConfig(cmd.Flags().Lookup(strictFlagName), convertStrictKey)
}

func parallelism(n int) uint {
	if n < 0 {
		return 0
	}

	return uint(n)
}
