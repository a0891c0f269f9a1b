package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/sceneflow/internal/cli"
	"github.com/aretw0/sceneflow/internal/config"
	"github.com/aretw0/sceneflow/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sceneflow",
	Short: "Sceneflow drives a linear exhibit of scenes",
	Long: `Sceneflow runs an installation of scenes that fade in, dwell, fade out with their music
and hand over to the next scene. A reset button brings the visitor back to the start at any time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Host config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Scene catalog: a directory of scene files or a single .yaml file")
	rootCmd.PersistentFlags().String("entry", "", "Entry scene, overriding the is_entry flag")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// runOptions collects the persistent flags. A positional argument stands for --dir.
func runOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	opts := cli.RunOptions{}
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Catalog, _ = cmd.Flags().GetString("dir")
	opts.Entry, _ = cmd.Flags().GetString("entry")
	opts.LogLevel, _ = cmd.Flags().GetString("log-level")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		opts.Catalog = args[0]
	}
	return opts
}

// loadConfig resolves the host config of tool commands; their logs only show warnings.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, *slog.Logger) {
	cfg, err := cli.LoadConfig(runOptions(cmd, args))
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	return cfg, logging.New(level)
}
