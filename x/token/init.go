package token

import (
	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
)

// Initializer fulfils the Initializer interface to load tokens and
// initial holdings from genesis.
type Initializer struct{}

var _ seedswap.Initializer = (*Initializer)(nil)

// FromGenesis initializes the token registry and initial balances from
// the "token" section of the genesis options.
func (Initializer) FromGenesis(opts seedswap.Options, db seedswap.KVStore) error {
	var state struct {
		Tokens []struct {
			Ticker   string `json:"ticker"`
			Decimals uint8  `json:"decimals"`
		} `json:"tokens"`
		Holdings []struct {
			Owner   seedswap.Address `json:"owner"`
			Ticker  string           `json:"ticker"`
			Balance uint64           `json:"balance"`
		} `json:"holdings"`
	}
	if err := opts.ReadOptions("token", &state); err != nil {
		return errors.Wrap(err, "token genesis")
	}

	ctrl := NewController()
	for _, t := range state.Tokens {
		if _, err := ctrl.Register(db, Token{Ticker: t.Ticker, Decimals: t.Decimals}); err != nil {
			return errors.Wrapf(err, "register %q", t.Ticker)
		}
	}
	for _, h := range state.Holdings {
		if err := h.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "holding owner for %q", h.Ticker)
		}
		if err := ctrl.Issue(db, h.Owner, AssetAddr(h.Ticker), h.Balance); err != nil {
			return errors.Wrapf(err, "issue %q", h.Ticker)
		}
	}
	return nil
}
