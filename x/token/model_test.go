package token

import (
	"testing"

	"github.com/seedswap/seedswap/swaptest"
	"github.com/seedswap/seedswap/swaptest/assert"
)

func TestTokenValidate(t *testing.T) {
	cases := map[string]struct {
		token   Token
		wantErr bool
	}{
		"valid":             {Token{Ticker: "TOKA", Decimals: 6}, false},
		"minimal ticker":    {Token{Ticker: "ABC", Decimals: 0}, false},
		"lowercase ticker":  {Token{Ticker: "toka", Decimals: 6}, true},
		"too short":         {Token{Ticker: "AB", Decimals: 6}, true},
		"too long":          {Token{Ticker: "ABCDEFGHI", Decimals: 6}, true},
		"too many decimals": {Token{Ticker: "TOKA", Decimals: 19}, true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.token.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestDerivedAddresses(t *testing.T) {
	// derivation must be deterministic
	assert.Equal(t, AssetAddr("TOKA"), AssetAddr("TOKA"))

	// and distinct per input
	if AssetAddr("TOKA").Equals(AssetAddr("TOKB")) {
		t.Fatal("distinct tickers must derive distinct addresses")
	}

	alice := swaptest.NewCondition().Address()
	bob := swaptest.NewCondition().Address()
	a := AssetAddr("TOKA")
	b := AssetAddr("TOKB")

	assert.Equal(t, HoldingAddr(alice, a), HoldingAddr(alice, a))
	if HoldingAddr(alice, a).Equals(HoldingAddr(bob, a)) {
		t.Fatal("distinct owners must derive distinct holdings")
	}
	if HoldingAddr(alice, a).Equals(HoldingAddr(alice, b)) {
		t.Fatal("distinct assets must derive distinct holdings")
	}
}

func TestHoldingRoundTrip(t *testing.T) {
	h := Holding{
		Asset:     AssetAddr("TOKA"),
		Authority: swaptest.NewCondition().Address(),
		Balance:   123456789,
	}
	bz, err := h.Marshal()
	assert.Nil(t, err)

	var got Holding
	assert.Nil(t, got.Unmarshal(bz))
	assert.Equal(t, h, got)

	var tok Token
	if err := tok.Unmarshal(bz); err == nil {
		t.Fatal("holding bytes must not decode as a token")
	}
}
