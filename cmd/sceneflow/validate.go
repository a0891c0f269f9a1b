package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/sceneflow/internal/cli"
	"github.com/aretw0/sceneflow/pkg/runner"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog]",
	Short: "Check the scene catalog for consistency",
	Long: `Checks every scene configuration, reports next and restart links to missing scenes
and warns about scenes that cannot be reached from the entry scene.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig(cmd, args)

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			signals := runner.NewSignalManager(context.Background())
			defer signals.Stop()
			if err := cli.ValidateWatch(signals.Context(), cfg, logger, os.Stdout); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := cli.Validate(cfg, logger, os.Stdout); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolP("watch", "w", false, "Validate again whenever a scene file changes")
}
