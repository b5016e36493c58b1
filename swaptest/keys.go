package swaptest

import (
	"crypto/rand"

	"github.com/seedswap/seedswap"
)

// NewCondition returns a random signature condition, standing in for the
// condition a real signature extension would produce for a keypair.
func NewCondition() seedswap.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return seedswap.NewCondition("sigs", "ed25519", data)
}
