package escrow

import "github.com/seedswap/seedswap/errors"

// Extension specific errors. Codes 1010-1019 are reserved for the escrow
// extension.
var (
	// ErrTermMismatch is returned when a terminal operation names terms
	// that do not match the stored escrow record.
	ErrTermMismatch = errors.Register(1010, "escrow term mismatch")

	// ErrCustodyNotEmpty is returned when the custody holding still has a
	// balance after the terminal sweep.
	ErrCustodyNotEmpty = errors.Register(1011, "custody holding not empty")
)
