package token

import "github.com/seedswap/seedswap/errors"

// Extension specific errors. Codes 1020-1029 are reserved for the token
// extension.
var (
	// ErrMintMismatch is returned when a holding stores a different asset
	// than the operation refers to.
	ErrMintMismatch = errors.Register(1020, "mint mismatch")

	// ErrNotEmpty is returned when closing a holding that still has a
	// balance.
	ErrNotEmpty = errors.Register(1021, "holding not empty")
)
