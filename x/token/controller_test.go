package token

import (
	"testing"

	"github.com/seedswap/seedswap/errors"
	"github.com/seedswap/seedswap/store"
	"github.com/seedswap/seedswap/swaptest"
	"github.com/seedswap/seedswap/swaptest/assert"
)

func TestRegisterToken(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	addr, err := ctrl.Register(db, Token{Ticker: "TOKA", Decimals: 6})
	assert.Nil(t, err)
	assert.Equal(t, AssetAddr("TOKA"), addr)

	if !ctrl.HasToken(db, addr) {
		t.Fatal("registered token must resolve")
	}
	if ctrl.HasToken(db, AssetAddr("NOPE")) {
		t.Fatal("unregistered token must not resolve")
	}

	_, err = ctrl.Register(db, Token{Ticker: "TOKA", Decimals: 6})
	if !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate, got %+v", err)
	}

	_, err = ctrl.Register(db, Token{Ticker: "bad ticker", Decimals: 0})
	if !errors.ErrAsset.Is(err) {
		t.Fatalf("want invalid asset, got %+v", err)
	}
}

func TestIssueAndBalance(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	owner := swaptest.NewCondition().Address()

	asset, err := ctrl.Register(db, Token{Ticker: "TOKA", Decimals: 6})
	assert.Nil(t, err)

	if err := ctrl.Issue(db, owner, asset, 100); err != nil {
		t.Fatalf("issue: %+v", err)
	}
	got, err := ctrl.Balance(db, owner, asset)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), got)

	// issuing again tops up the same holding
	assert.Nil(t, ctrl.Issue(db, owner, asset, 23))
	got, err = ctrl.Balance(db, owner, asset)
	assert.Nil(t, err)
	assert.Equal(t, uint64(123), got)

	err = ctrl.Issue(db, owner, AssetAddr("NOPE"), 1)
	if !errors.ErrAsset.Is(err) {
		t.Fatalf("want invalid asset, got %+v", err)
	}
}

func TestTransfer(t *testing.T) {
	alice := swaptest.NewCondition()
	bob := swaptest.NewCondition()

	cases := map[string]struct {
		amount  uint64
		wantErr *errors.Error
	}{
		"happy path": {
			amount: 40,
		},
		"full balance": {
			amount: 100,
		},
		"insufficient funds": {
			amount:  101,
			wantErr: errors.ErrAmount,
		},
		"zero amount": {
			amount:  0,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			asset, err := ctrl.Register(db, Token{Ticker: "TOKA", Decimals: 6})
			assert.Nil(t, err)
			assert.Nil(t, ctrl.Issue(db, alice.Address(), asset, 100))

			err = ctrl.Transfer(db, alice, alice.Address(), bob.Address(), asset, tc.amount)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %v, got %+v", tc.wantErr, err)
				}
				return
			}
			assert.Nil(t, err)

			srcBal, err := ctrl.Balance(db, alice.Address(), asset)
			assert.Nil(t, err)
			assert.Equal(t, 100-tc.amount, srcBal)
			destBal, err := ctrl.Balance(db, bob.Address(), asset)
			assert.Nil(t, err)
			assert.Equal(t, tc.amount, destBal)
		})
	}
}

func TestTransferAuthority(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := swaptest.NewCondition()
	mallory := swaptest.NewCondition()

	asset, err := ctrl.Register(db, Token{Ticker: "TOKA", Decimals: 6})
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Issue(db, alice.Address(), asset, 100))

	err = ctrl.Transfer(db, mallory, alice.Address(), mallory.Address(), asset, 1)
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}
	// balance untouched
	got, err := ctrl.Balance(db, alice.Address(), asset)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), got)
}

func TestTransferMissingSource(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := swaptest.NewCondition()
	bob := swaptest.NewCondition()

	asset, err := ctrl.Register(db, Token{Ticker: "TOKA", Decimals: 6})
	assert.Nil(t, err)

	err = ctrl.Transfer(db, alice, alice.Address(), bob.Address(), asset, 1)
	if !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty, got %+v", err)
	}
}

func TestClose(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := swaptest.NewCondition()
	bob := swaptest.NewCondition()

	asset, err := ctrl.Register(db, Token{Ticker: "TOKA", Decimals: 6})
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Issue(db, alice.Address(), asset, 100))

	err = ctrl.Close(db, alice, alice.Address(), asset, alice.Address())
	if !ErrNotEmpty.Is(err) {
		t.Fatalf("want not empty, got %+v", err)
	}

	assert.Nil(t, ctrl.Transfer(db, alice, alice.Address(), bob.Address(), asset, 100))

	err = ctrl.Close(db, bob, alice.Address(), asset, alice.Address())
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}

	assert.Nil(t, ctrl.Close(db, alice, alice.Address(), asset, alice.Address()))

	// a closed holding reads as zero and cannot be drained again
	got, err := ctrl.Balance(db, alice.Address(), asset)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), got)
	err = ctrl.Transfer(db, alice, alice.Address(), bob.Address(), asset, 1)
	if !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty, got %+v", err)
	}
}
