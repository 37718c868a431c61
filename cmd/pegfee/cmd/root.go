package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pegfee/pegfee-node/cmd/utils"
	"github.com/pegfee/pegfee-node/config"
	"github.com/pegfee/pegfee-node/core/feetoken"
	"github.com/pegfee/pegfee-node/core/node"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pegfee/pegfee-node/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	tmlog "github.com/tendermint/tendermint/libs/log"
)

var (
	cfg    *config.Config
	logger tmlog.Logger
)

var RootCmd = &cobra.Command{
	Use:           "pegfee",
	Short:         "Fee-bearing token ledger",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		home := utils.GetPegfeeHome()

		var err error
		cfg, err = config.GetConfig(home)
		if err != nil {
			return err
		}

		v := viper.New()
		v.SetConfigFile(utils.GetPegfeeConfigPath())
		v.SetEnvPrefix("PEGFEE")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "read config")
		}

		if err := v.Unmarshal(cfg); err != nil {
			return errors.Wrap(err, "decode config")
		}
		cfg.RootDir = home

		if err := cfg.ValidateBasic(); err != nil {
			return err
		}

		logger, err = log.NewLogger(cfg)
		return err
	},
}

func init() {
	RootCmd.PersistentFlags().String("from", "", "address of the sender")
}

// Commands returns every subcommand of the root command.
func Commands() []*cobra.Command {
	return []*cobra.Command{
		Init,
		VerifyGenesis,
		Transfer,
		TransferFrom,
		Approve,
		Issue,
		Burn,
		WithdrawFees,
		Donate,
		Freeze,
		Unfreeze,
		SetFeeRate,
		SetFeeAuthority,
		SetIssuer,
		SetCourt,
		CreateLedger,
		SetLedger,
		Balance,
		Allowance,
		Status,
		Estimate,
		Events,
		Export,
		Serve,
		Version,
	}
}

func withNode(fn func(n *node.Node) error) error {
	n, err := node.NewNode(cfg, logger)
	if err != nil {
		return err
	}

	if err := fn(n); err != nil {
		_ = n.Stop()
		return err
	}

	return n.Stop()
}

func withToken(fn func(n *node.Node, token *feetoken.FeeToken) error) error {
	return withNode(func(n *node.Node) error {
		token, err := n.Token()
		if err != nil {
			return err
		}

		return fn(n, token)
	})
}

// mutate runs one operation in the name of --from and commits it.
func mutate(cmd *cobra.Command, fn func(token *feetoken.FeeToken, sender types.Address) error) error {
	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}

	sender, err := parseAddress(from)
	if err != nil {
		return errors.Wrap(err, "--from")
	}

	return withToken(func(n *node.Node, token *feetoken.FeeToken) error {
		if err := fn(token, sender); err != nil {
			return err
		}

		hash, version, err := n.Commit()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "committed version %d, hash %X\n", version, hash)
		return nil
	})
}

func parseAddress(s string) (types.Address, error) {
	return types.ParseAddress(s)
}

// parseAmount reads a decimal token amount such as "998.5".
func parseAmount(s string) (*uint256.Int, error) {
	value, err := helpers.ParseTokens(s)
	if err != nil {
		return nil, errors.Wrapf(err, "amount %q", s)
	}

	return value, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
