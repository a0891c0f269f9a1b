package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/sceneflow/internal/cli"
	"github.com/aretw0/sceneflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scene>",
	Short: "Show the configuration and notes of a scene",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig(cmd, nil)

		engine, err := cli.OpenEngine(cfg, logger)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		scene, err := engine.Catalog().GetScene(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		next := scene.NextScene
		if scene.IsTerminal() {
			next = "(end of experience)"
		}
		fmt.Printf("Scene:   %s\n", scene.Name)
		fmt.Printf("Entry:   %t\n", scene.IsEntryScene)
		fmt.Printf("Dwell:   %ss\n", strconv.FormatFloat(scene.DwellSeconds, 'f', -1, 64))
		fmt.Printf("Next:    %s\n", next)
		fmt.Printf("Restart: %s\n", scene.RestartScene)
		if scene.Music != "" {
			fmt.Printf("Music:   %s\n", scene.Music)
		}

		if scene.Notes == "" {
			return
		}
		render, err := tui.NewRenderer(80)
		if err != nil {
			fmt.Printf("\n%s\n", scene.Notes)
			return
		}
		out, err := render(scene.Notes)
		if err != nil {
			out = scene.Notes
		}
		fmt.Print("\n", out)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
