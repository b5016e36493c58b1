package main

import (
	"github.com/spf13/viper"
)

// Config holds the demo and address formatting settings.
type Config struct {
	Bech32HRP     string
	TickerX       string
	TickerY       string
	DepositAmount uint64
	ReceiveAmount uint64
	Seed          uint64
}

// loadConfig reads settings from an optional .seedswap.yaml and the
// SEEDSWAP_* environment variables, falling back to the demo defaults.
func loadConfig() *Config {
	viper.SetConfigName(".seedswap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	viper.SetDefault("bech32_hrp", "swap")
	viper.SetDefault("ticker_x", "TOKA")
	viper.SetDefault("ticker_y", "TOKB")
	viper.SetDefault("deposit_amount", 100)
	viper.SetDefault("receive_amount", 50)
	viper.SetDefault("seed", 7)

	viper.SetEnvPrefix("SEEDSWAP")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	return &Config{
		Bech32HRP:     viper.GetString("bech32_hrp"),
		TickerX:       viper.GetString("ticker_x"),
		TickerY:       viper.GetString("ticker_y"),
		DepositAmount: viper.GetUint64("deposit_amount"),
		ReceiveAmount: viper.GetUint64("receive_amount"),
		Seed:          viper.GetUint64("seed"),
	}
}
