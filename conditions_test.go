package seedswap_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/swaptest/assert"
)

func TestConditionParse(t *testing.T) {
	cond := seedswap.NewCondition("escrow", "seed", []byte{1, 2, 3, 4})
	assert.Nil(t, cond.Validate())

	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "escrow", ext)
	assert.Equal(t, "seed", typ)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	// data containing a newline must still parse
	nl := seedswap.NewCondition("escrow", "seed", []byte{1, 0x20, 0x0a, 4})
	assert.Nil(t, nl.Validate())

	var invalid seedswap.Condition = []byte("badformat")
	if invalid.Validate() == nil {
		t.Fatal("want validation error")
	}
}

func TestConditionAddress(t *testing.T) {
	cond := seedswap.NewCondition("escrow", "seed", []byte{1, 2, 3, 4})

	addr := cond.Address()
	assert.Nil(t, addr.Validate())
	assert.Equal(t, seedswap.AddressLength, len(addr))

	// derivation is deterministic and input-sensitive
	assert.Equal(t, addr, cond.Address())
	other := seedswap.NewCondition("escrow", "seed", []byte{1, 2, 3, 5}).Address()
	if addr.Equals(other) {
		t.Fatal("distinct conditions must derive distinct addresses")
	}
}

func TestAddressBech32(t *testing.T) {
	addr := seedswap.Address{
		0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13,
		0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d,
	}
	enc, err := addr.Bech32("swap")
	assert.Nil(t, err)
	assert.Equal(t, "swap1pg9scrgwpugpzysnzs23v9ccrydpk8qajxyvjl", enc)
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  bool
		wantAddr seedswap.Address
	}{
		"default hex": {
			json:     `"8d0d55645dc86980fb1786399b434ef20aff4a79"`,
			wantAddr: fromHex(t, "8d0d55645dc86980fb1786399b434ef20aff4a79"),
		},
		"hex prefix": {
			json:     `"hex:8d0d55645dc86980fb1786399b434ef20aff4a79"`,
			wantAddr: fromHex(t, "8d0d55645dc86980fb1786399b434ef20aff4a79"),
		},
		"condition": {
			json:     `"cond:escrow/seed/01020304"`,
			wantAddr: seedswap.NewCondition("escrow", "seed", []byte{1, 2, 3, 4}).Address(),
		},
		"bech32": {
			json: `"bech32:swap1pg9scrgwpugpzysnzs23v9ccrydpk8qajxyvjl"`,
			wantAddr: seedswap.Address{
				0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13,
				0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d,
			},
		},
		"zero value": {
			json:     `""`,
			wantAddr: nil,
		},
		"wrong length": {
			json:    `"0102"`,
			wantErr: true,
		},
		"unknown format": {
			json:    `"base64:AAAA"`,
			wantErr: true,
		},
		"not hex": {
			json:    `"zz0d55645dc86980fb1786399b434ef20aff4a79"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var addr seedswap.Address
			err := json.Unmarshal([]byte(tc.json), &addr)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAddr, addr)
		})
	}
}

func fromHex(t testing.TB, s string) seedswap.Address {
	t.Helper()
	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decode %q: %+v", s, err)
	}
	return seedswap.Address(raw)
}
