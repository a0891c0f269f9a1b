package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/sceneflow/internal/cli"
	"github.com/aretw0/sceneflow/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [catalog]",
	Short: "Export the scene graph visualization",
	Long: `Inspects the catalog and outputs a Mermaid diagram (graph TD) of the scenes.
Next links are solid, reset links dotted. With --live the scene currently running
on the installation (as mirrored in Redis) is highlighted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig(cmd, args)

		engine, err := cli.OpenEngine(cfg, logger)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		scenes, err := engine.Inspect()
		if err != nil {
			fmt.Printf("Error inspecting catalog: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.GraphOverlay
		if live, _ := cmd.Flags().GetBool("live"); live {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			status, err := readStatus(ctx, cfg)
			if err != nil {
				fmt.Printf("Error reading live status: %v\n", err)
				os.Exit(1)
			}
			overlay = &graph.GraphOverlay{CurrentScene: status.Scene}
		}

		fmt.Print(graph.GenerateMermaid(scenes, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("live", false, "Highlight the running scene (requires redis.addr)")
}
