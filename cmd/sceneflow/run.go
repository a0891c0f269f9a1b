package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/sceneflow/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [catalog]",
	Short: "Run the installation",
	Long: `Starts the scene flow from the entry scene.

By default the flow is drawn full screen in the terminal: Space, Enter or 'n' skip,
'r' or Backspace reset, Esc or 'q' quit. With --headless the flow only logs and
reads "skip" and "reset" commands from stdin.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions(cmd, args)
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		if err := cli.Execute(context.Background(), opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run without the terminal surface (logs and stdin commands)")
	runCmd.Flags().BoolP("watch", "w", false, "Restart the flow whenever a scene file changes")

	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
