package cmd

import (
	"io/ioutil"

	"github.com/pegfee/pegfee-node/core/feetoken"
	"github.com/pegfee/pegfee-node/core/governance"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	tmos "github.com/tendermint/tendermint/libs/os"
)

var SetFeeRate = &cobra.Command{
	Use:   "set-fee-rate <rate>",
	Short: "Set the transfer fee rate as a fraction, e.g. 0.0015 for 15 basis points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := parseAmount(args[0])
		if err != nil {
			return err
		}

		return mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
			return token.SetTransferFeeRate(sender, rate)
		})
	},
}

var SetFeeAuthority = addressCommand("set-fee-authority <address>",
	"Change the account allowed to withdraw fees",
	(*feetoken.FeeToken).SetFeeAuthority)

var SetCourt = &cobra.Command{
	Use:   "set-court <court-file>",
	Short: "Trust the court described in court-file and install it as the node's court file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := ioutil.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "read court file")
		}

		court, err := governance.LoadStatic(args[0])
		if err != nil {
			return err
		}

		if err := mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
			return token.SetCourt(sender, court)
		}); err != nil {
			return err
		}

		return tmos.WriteFile(cfg.CourtFile(), data, 0600)
	},
}

var SetLedger = addressCommand("set-ledger <address>",
	"Point the token at another existing ledger",
	(*feetoken.FeeToken).SetLedger)

var CreateLedger = addressCommand("create-ledger <address>",
	"Register an empty ledger for this token",
	(*feetoken.FeeToken).CreateLedger)

var SetIssuer = &cobra.Command{
	Use:   "set-issuer <address>",
	Short: "Change the issuer, with --fee-authority it becomes the fee authority too",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issuer, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		alsoFeeAuthority, err := cmd.Flags().GetBool("fee-authority")
		if err != nil {
			return err
		}

		return mutate(cmd, func(token *feetoken.FeeToken, sender types.Address) error {
			return token.SetIssuer(sender, issuer, alsoFeeAuthority)
		})
	},
}

func init() {
	SetIssuer.Flags().Bool("fee-authority", false, "make the new issuer the fee authority as well")
}
