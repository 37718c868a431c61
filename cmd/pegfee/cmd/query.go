package cmd

import (
	"fmt"
	"strconv"

	"github.com/pegfee/pegfee-node/api"
	"github.com/pegfee/pegfee-node/core/feetoken"
	"github.com/pegfee/pegfee-node/core/node"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pegfee/pegfee-node/version"
	"github.com/spf13/cobra"
)

var Balance = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show the balance of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		return withToken(func(_ *node.Node, token *feetoken.FeeToken) error {
			frozen := ""
			if token.IsFrozen(address) {
				frozen = " (frozen)"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s\n", helpers.FormatTokens(token.BalanceOf(address)), token.Symbol(), frozen)
			return nil
		})
	},
}

var Allowance = &cobra.Command{
	Use:   "allowance <owner> <spender>",
	Short: "Show how much spender may move out of owner's balance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		spender, err := parseAddress(args[1])
		if err != nil {
			return err
		}

		return withToken(func(_ *node.Node, token *feetoken.FeeToken) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", helpers.FormatTokens(token.Allowance(owner, spender)), token.Symbol())
			return nil
		})
	},
}

var Status = &cobra.Command{
	Use:   "status",
	Short: "Show token parameters and the last committed version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withToken(func(n *node.Node, token *feetoken.FeeToken) error {
			st := n.CurrentState()

			return printJSON(cmd, api.StatusResponse{
				Version:         version.Version,
				Name:            token.Name(),
				Symbol:          token.Symbol(),
				TotalSupply:     helpers.FormatTokens(token.TotalSupply()),
				TransferFeeRate: helpers.FormatTokens(token.TransferFeeRate()),
				FeePool:         helpers.FormatTokens(token.FeePool()),
				Self:            token.Self(),
				Ledger:          token.Ledger(),
				Owner:           token.Owner(),
				Issuer:          token.Issuer(),
				FeeAuthority:    token.FeeAuthority(),
				Court:           token.Court(),
				StateVersion:    st.Version(),
				StateHash:       fmt.Sprintf("%X", st.Hash()),
			})
		})
	},
}

var Estimate = &cobra.Command{
	Use:   "estimate <amount>",
	Short: "Show the fee on amount in both fee modes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}

		return withToken(func(_ *node.Node, token *feetoken.FeeToken) error {
			received, err := token.AmountReceived(amount)
			if err != nil {
				return err
			}

			fee, err := token.TransferFeeIncurred(amount)
			if err != nil {
				return err
			}

			total, err := token.TransferPlusFee(amount)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "recipient pays: %s received\n", helpers.FormatTokens(received))
			fmt.Fprintf(out, "sender pays: %s fee, %s charged\n", helpers.FormatTokens(fee), helpers.FormatTokens(total))
			return nil
		})
	},
}

var Events = &cobra.Command{
	Use:   "events <version>",
	Short: "Show events committed in a state version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return err
		}

		return withNode(func(n *node.Node) error {
			items, err := n.GetEventsDB().LoadEvents(v)
			if err != nil {
				return err
			}

			return printJSON(cmd, api.EncodeEvents(items))
		})
	},
}

var Export = &cobra.Command{
	Use:   "export",
	Short: "Print the state as a genesis document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := cmd.Flags().GetUint64("version")
		if err != nil {
			return err
		}

		return withNode(func(n *node.Node) error {
			if !n.Initialized() {
				return node.ErrNotInitialized
			}

			var appState types.AppState
			if v == 0 {
				appState = n.CurrentState().Export()
			} else {
				cState, err := n.GetStateForVersion(v)
				if err != nil {
					return err
				}
				appState = cState.Export()
			}

			if err := appState.Verify(); err != nil {
				return err
			}

			return printJSON(cmd, appState)
		})
	},
}

func init() {
	Export.Flags().Uint64("version", 0, "state version to export (default is the last one)")
}
