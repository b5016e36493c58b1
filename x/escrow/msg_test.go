package escrow

import (
	"testing"

	"github.com/seedswap/seedswap/errors"
	"github.com/seedswap/seedswap/swaptest"
	"github.com/seedswap/seedswap/swaptest/assert"
	"github.com/seedswap/seedswap/x/token"
)

func TestCreateMsgValidate(t *testing.T) {
	maker := swaptest.NewCondition().Address()

	valid := func() *CreateMsg {
		return &CreateMsg{
			Seed:          1,
			Maker:         maker,
			AssetX:        token.AssetAddr("TOKA"),
			AssetY:        token.AssetAddr("TOKB"),
			DepositAmount: 100,
			ReceiveAmount: 50,
		}
	}

	assert.Nil(t, valid().Validate())

	cases := map[string]func(*CreateMsg){
		"missing maker":  func(m *CreateMsg) { m.Maker = nil },
		"missing asset":  func(m *CreateMsg) { m.AssetX = nil },
		"zero deposit":   func(m *CreateMsg) { m.DepositAmount = 0 },
		"zero price":     func(m *CreateMsg) { m.ReceiveAmount = 0 },
		"truncated addr": func(m *CreateMsg) { m.AssetY = m.AssetY[:10] },
	}
	for testName, mutate := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := valid()
			mutate(msg)
			if err := msg.Validate(); !errors.ErrInput.Is(err) {
				t.Fatalf("want invalid input, got %+v", err)
			}
		})
	}
}

func TestMsgPaths(t *testing.T) {
	assert.Equal(t, "escrow/create", (&CreateMsg{}).Path())
	assert.Equal(t, "escrow/take", (&TakeMsg{}).Path())
	assert.Equal(t, "escrow/refund", (&RefundMsg{}).Path())
}
