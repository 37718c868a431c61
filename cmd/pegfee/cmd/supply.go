package cmd

import (
	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/core/feetoken"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/spf13/cobra"
)

type accountOp func(token *feetoken.FeeToken, sender, account types.Address, amount *uint256.Int) error

// accountAmountCommand builds a command taking an account and an amount.
func accountAmountCommand(use, short string, op accountOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			return mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
				return op(token, sender, account, amount)
			})
		},
	}
}

var Issue = accountAmountCommand("issue", "Create new tokens on the balance of account",
	(*feetoken.FeeToken).Issue)

var Burn = accountAmountCommand("burn", "Destroy tokens from the balance of account",
	(*feetoken.FeeToken).Burn)

var WithdrawFees = accountAmountCommand("withdraw-fees", "Pay collected fees out to account",
	(*feetoken.FeeToken).WithdrawFees)

var Donate = &cobra.Command{
	Use:   "donate <amount>",
	Short: "Move tokens of --from into the fee pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}

		return mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
			return token.DonateToFeePool(sender, amount)
		})
	},
}
