package cmd

import (
	"github.com/pegfee/pegfee-node/core/feetoken"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/spf13/cobra"
)

var Transfer = &cobra.Command{
	Use:   "transfer <to> <amount>",
	Short: "Send tokens, the recipient pays the fee unless --sender-pays is set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		senderPays, err := cmd.Flags().GetBool("sender-pays")
		if err != nil {
			return err
		}

		return mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
			if senderPays {
				return token.TransferSenderPaysFee(sender, to, amount)
			}
			return token.Transfer(sender, to, amount)
		})
	},
}

var TransferFrom = &cobra.Command{
	Use:   "transfer-from <owner> <to> <amount>",
	Short: "Send tokens of owner using the allowance given to --from",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		to, err := parseAddress(args[1])
		if err != nil {
			return err
		}

		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}

		senderPays, err := cmd.Flags().GetBool("sender-pays")
		if err != nil {
			return err
		}

		return mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
			if senderPays {
				return token.TransferFromSenderPaysFee(sender, owner, to, amount)
			}
			return token.TransferFrom(sender, owner, to, amount)
		})
	},
}

var Approve = &cobra.Command{
	Use:   "approve <spender> <amount>",
	Short: "Allow spender to move up to amount of --from's tokens",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spender, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		return mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
			return token.Approve(sender, spender, amount)
		})
	},
}

func init() {
	Transfer.Flags().Bool("sender-pays", false, "deliver the full amount and charge the fee to the sender")
	TransferFrom.Flags().Bool("sender-pays", false, "deliver the full amount and charge the fee to the allowance")
}
