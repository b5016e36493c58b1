package seedswap_test

import (
	"testing"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
	"github.com/seedswap/seedswap/swaptest"
	"github.com/seedswap/seedswap/swaptest/assert"
)

func TestLoadMsg(t *testing.T) {
	msg := &swaptest.Msg{RoutePath: "test/any", Serialized: []byte("payload")}
	tx := &swaptest.Tx{Msg: msg}

	var dest swaptest.Msg
	assert.Nil(t, seedswap.LoadMsg(tx, &dest))
	assert.Equal(t, *msg, dest)
}

func TestLoadMsgInvalid(t *testing.T) {
	cause := errors.ErrInput.New("broken")

	cases := map[string]struct {
		tx      seedswap.Tx
		dest    seedswap.Msg
		wantErr *errors.Error
	}{
		"tx cannot provide message": {
			tx:      &swaptest.Tx{Err: errors.ErrState.New("no msg")},
			dest:    &swaptest.Msg{},
			wantErr: errors.ErrState,
		},
		"message fails validation": {
			tx:      &swaptest.Tx{Msg: &swaptest.Msg{Err: cause}},
			dest:    &swaptest.Msg{},
			wantErr: errors.ErrInput,
		},
		"nil destination": {
			tx:      &swaptest.Tx{Msg: &swaptest.Msg{}},
			dest:    (*swaptest.Msg)(nil),
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := seedswap.LoadMsg(tc.tx, tc.dest); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	tx := &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "escrow/create"}}
	assert.Equal(t, "escrow/create", seedswap.GetPath(tx))

	broken := &swaptest.Tx{Err: errors.ErrState.New("no msg")}
	assert.Equal(t, "(missing)", seedswap.GetPath(broken))
}
