package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seedswap",
	Short: "A seeded two-party asset swap escrow",
	Long: `seedswap demonstrates a conditional asset swap: a maker locks a
deposit of one asset behind a derived custody address and names a price
in another. A taker pays the price and receives the deposit, or the
maker refunds. No key material exists for the custody address; its
authority is re-derived from the escrow inputs on every operation.

Examples:
  seedswap demo
  seedswap demo --refund
  seedswap addr --maker C1D156453CC1C0C14B9E3C4F1C7D22E3C3D2AE24 --seed 7`,
	Version: "0.1.0",
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(addrCmd)
}
