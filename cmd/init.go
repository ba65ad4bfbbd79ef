package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlperf/sqlperf/internal/profile"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with an example template",
	Long: `Create the sqlperf config file with an example profile template.

The config file stores named connection profiles so you don't need to
pass a driver and DSN on every invocation. An existing config file is
not overwritten unless --force is given.`,
	Example: `  # Create default config
  sqlperf init

  # Overwrite existing config
  sqlperf init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, err := profile.WriteExample(force)
		if err != nil {
			return err
		}

		fmt.Printf("Created config at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing config file")
}
