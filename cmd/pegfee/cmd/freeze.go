package cmd

import (
	"github.com/pegfee/pegfee-node/core/feetoken"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/spf13/cobra"
)

type addressOp func(token *feetoken.FeeToken, sender, target types.Address) error

func addressCommand(use, short string, op addressOp) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			return mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
				return op(token, sender, target)
			})
		},
	}
}

var Freeze = addressCommand("freeze <target>",
	"Confiscate the balance of target and freeze it, --from must be the court",
	(*feetoken.FeeToken).FreezeAndConfiscate)

var Unfreeze = addressCommand("unfreeze <target>",
	"Let a frozen account receive again, --from must be the owner",
	(*feetoken.FeeToken).UnfreezeAccount)
