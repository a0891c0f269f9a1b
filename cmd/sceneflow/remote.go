package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/sceneflow/internal/config"
	redisAdapter "github.com/aretw0/sceneflow/pkg/adapters/redis"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/spf13/cobra"
)

const remoteTimeout = 5 * time.Second

var errNoRedis = errors.New("redis.addr is not configured")

var pressCmd = &cobra.Command{
	Use:       "press <skip|reset>",
	Short:     "Press a button of a running installation",
	Long:      `Sends a button press to the installation through Redis. The host sees it on its next tick.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ButtonSkip), string(domain.ButtonReset)},
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _ := loadConfig(cmd, nil)

		b, ok := domain.ParseButton(args[0])
		if !ok {
			fmt.Printf("Error: unknown button %q (want skip or reset)\n", args[0])
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		a, err := connectRedis(ctx, cfg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		if err := a.Press(ctx, b); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Pressed %s.\n", b)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of a running installation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _ := loadConfig(cmd, nil)

		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		st, err := readStatus(ctx, cfg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scene:      %s (activation %d)\n", st.Scene, st.Activation)
		fmt.Printf("Phase:      %s (%.1fs)\n", st.State.Phase, st.State.Elapsed)
		fmt.Printf("Opacity:    %.2f\n", st.Opacity)
		fmt.Printf("Volume:     %.2f\n", st.Volume)
		fmt.Printf("Updated:    %s ago\n", time.Since(st.UpdatedAt).Round(time.Second))
	},
}

func init() {
	rootCmd.AddCommand(pressCmd)
	rootCmd.AddCommand(statusCmd)
}

func connectRedis(ctx context.Context, cfg config.Config) (*redisAdapter.Adapter, error) {
	if cfg.Redis.Addr == "" {
		return nil, errNoRedis
	}
	return redisAdapter.Connect(ctx, cfg.Redis.Addr, redisAdapter.WithPrefix(cfg.Redis.Prefix))
}

func readStatus(ctx context.Context, cfg config.Config) (redisAdapter.Status, error) {
	a, err := connectRedis(ctx, cfg)
	if err != nil {
		return redisAdapter.Status{}, err
	}
	defer a.Close()
	return a.ReadStatus(ctx)
}
