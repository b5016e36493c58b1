package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestBech32EncodeDecode(t *testing.T) {
	const enc = `swap1w3jhxapdwpshjmr0v9jq5tkwke`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(want, payload) {
		t.Logf("want %d", want)
		t.Logf("got  %d", payload)
		t.Fatal("invalid decode")
	}
	if hrp != "swap" {
		t.Fatalf("invalid human readable part: %q", hrp)
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != enc {
		t.Fatalf("invalid encode: %s", raw)
	}
}
