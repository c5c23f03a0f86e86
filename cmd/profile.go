package cmd

import (
	"github.com/spf13/cobra"

	"ngshift.dev/pkg/ngshift/internal/domain"
	m "ngshift.dev/pkg/ngshift/internal/model"
)

var profileOutputFlag string

// profileCmd represents the profile command.
var profileCmd = newProfileCmd()

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the active conversion profile",
		Long: `Print the conversion profile as YAML: the built-in JUnit to TestNG profile,
or the one named by --profile. Write it to a file with --output to start a
custom profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := loadProfile()
			if err != nil {
				return err
			}

			return workflow.ExportProfile(cmd.Context(), domain.ProfileArgs{
				Profile: profile,
				Output:  m.Path(profileOutputFlag),
			})
		},
	}

	cmd.Flags().StringVarP(&profileOutputFlag, "output", "o", "", "write the profile to this file instead of printing it")

	return cmd
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
