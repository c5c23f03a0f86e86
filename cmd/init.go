package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

const defaultProfileFileName = configBaseName + "-profile.yaml"

var initWithProfileFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default ngshift.yaml configuration file",
		Long: `Create an ngshift.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually. With --with-profile the
built-in conversion profile is written next to it and referenced from it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initWithProfileFlag {
				profilePath := filepath.Join(configFolderPath, defaultProfileFileName)
				if _, err := os.Stat(profilePath); err == nil {
					return fmt.Errorf("failed to write profile file: %s already exists", profilePath)
				}

				if err := profileStore.SaveProfile(m.Path(profilePath), m.DefaultProfile()); err != nil {
					return fmt.Errorf("failed to write profile file: %w", err)
				}

				if err := cmd.Flags().Set(profileFlagName, profilePath); err != nil {
					return fmt.Errorf("failed to reference profile file: %w", err)
				}
			}

			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&initWithProfileFlag, "with-profile", false, "also write the built-in profile to "+defaultProfileFileName)

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
