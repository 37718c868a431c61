package cmd

import (
	"fmt"

	"github.com/pegfee/pegfee-node/core/node"
	"github.com/spf13/cobra"
)

var Init = &cobra.Command{
	Use:   "init",
	Short: "Import the genesis file into an empty state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		genesisFile, err := cmd.Flags().GetString("genesis")
		if err != nil {
			return err
		}
		if genesisFile == "" {
			genesisFile = cfg.GenesisFile()
		}

		appState, err := node.LoadGenesis(genesisFile)
		if err != nil {
			return err
		}

		return withNode(func(n *node.Node) error {
			if err := n.InitChain(appState); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s (%s), version %d\n",
				appState.Name, appState.Symbol, n.CurrentState().Version())
			return nil
		})
	},
}

var VerifyGenesis = &cobra.Command{
	Use:   "verify-genesis",
	Short: "Verify genesis file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appState, err := node.LoadGenesis(cfg.GenesisFile())
		if err != nil {
			return err
		}

		if err := appState.Verify(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Genesis is ok")
		return nil
	},
}

func init() {
	Init.Flags().String("genesis", "", "path to the genesis file (default is genesis_file from the config)")
}
