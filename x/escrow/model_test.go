package escrow

import (
	"testing"

	"github.com/seedswap/seedswap/swaptest"
	"github.com/seedswap/seedswap/swaptest/assert"
	"github.com/seedswap/seedswap/x/token"
)

func TestEscrowRoundTrip(t *testing.T) {
	esc := Escrow{
		Seed:          42,
		Maker:         swaptest.NewCondition().Address(),
		AssetX:        token.AssetAddr("TOKA"),
		AssetY:        token.AssetAddr("TOKB"),
		ReceiveAmount: 50,
		Bump:          255,
	}
	bz, err := esc.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, 78, len(bz))

	var got Escrow
	assert.Nil(t, got.Unmarshal(bz))
	assert.Equal(t, esc, got)
}

func TestDerivation(t *testing.T) {
	maker := swaptest.NewCondition().Address()
	other := swaptest.NewCondition().Address()

	// deterministic
	assert.Equal(t, Addr(maker, 1), Addr(maker, 1))

	// distinct per maker and per seed
	if Addr(maker, 1).Equals(Addr(other, 1)) {
		t.Fatal("distinct makers must derive distinct escrows")
	}
	if Addr(maker, 1).Equals(Addr(maker, 2)) {
		t.Fatal("distinct seeds must derive distinct escrows")
	}

	// the custody authority is a separate slot from the record, and
	// moves with the bump
	custody := CustodyCondition(maker, 1, 255).Address()
	if custody.Equals(Addr(maker, 1)) {
		t.Fatal("custody authority must not collide with the record slot")
	}
	if custody.Equals(CustodyCondition(maker, 1, 254).Address()) {
		t.Fatal("distinct bumps must derive distinct custody authorities")
	}
}
