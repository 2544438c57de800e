package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradegate/account"
	"github.com/rustyeddy/tradegate/risk"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Largest order an account can take at a price",
	Long: `Compute the largest quantity at --price that would pass both the
balance check and the exposure check.

Example:
  tradegate size --balance 1000 --max-exposure 5000 --price 50000 --places 4`,
	RunE: runSize,
}

var (
	sizeBalance     string
	sizeExposure    string
	sizeMaxExposure string
	sizePrice       string
	sizePlaces      int32
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().StringVar(&sizeBalance, "balance", "", "account balance (required)")
	sizeCmd.Flags().StringVar(&sizeExposure, "exposure", "0", "current exposure")
	sizeCmd.Flags().StringVar(&sizeMaxExposure, "max-exposure", "", "exposure ceiling (required)")
	sizeCmd.Flags().StringVar(&sizePrice, "price", "", "order price (required)")
	sizeCmd.Flags().Int32Var(&sizePlaces, "places", 0, "decimal places of the quantity")
	_ = sizeCmd.MarkFlagRequired("balance")
	_ = sizeCmd.MarkFlagRequired("max-exposure")
	_ = sizeCmd.MarkFlagRequired("price")
}

func runSize(cmd *cobra.Command, args []string) error {
	parse := func(name, v string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
		}
		return d, nil
	}

	balance, err := parse("balance", sizeBalance)
	if err != nil {
		return err
	}
	exposure, err := parse("exposure", sizeExposure)
	if err != nil {
		return err
	}
	maxExposure, err := parse("max-exposure", sizeMaxExposure)
	if err != nil {
		return err
	}
	price, err := parse("price", sizePrice)
	if err != nil {
		return err
	}

	a := account.Account{Balance: balance, Exposure: exposure, MaxExposure: maxExposure}
	qty := risk.MaxQuantity(a, price, sizePlaces)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Headroom: %s\n", risk.Headroom(a))
	fmt.Fprintf(out, "Max quantity @ %s: %s\n", price, qty)
	return nil
}
