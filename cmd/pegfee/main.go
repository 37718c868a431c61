package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pegfee/pegfee-node/cmd/pegfee/cmd"
	"github.com/pegfee/pegfee-node/cmd/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.RootCmd
	rootCmd.PersistentFlags().StringVar(&utils.PegfeeHome, "home-dir", "", "base dir (default is $HOME/.pegfee)")
	rootCmd.PersistentFlags().StringVar(&utils.PegfeeConfig, "config", "", "path to config (default is $(home-dir)/config/config.toml)")

	rootCmd.AddCommand(cmd.Commands()...)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
