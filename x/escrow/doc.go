/*
Package escrow implements a two-party conditional asset swap.

A maker locks a deposit of asset X in a custody holding and names a
price in asset Y. Any taker can complete the swap by paying the price
straight to the maker, which releases the whole deposit to the taker.
Until then the maker can refund the deposit and cancel the offer.

The escrow record is the lock: it is written on create and deleted on
the first terminal operation (take or refund), so the loser of a race
between the two fails with a not found error. The custody holding is
controlled by a re-derived condition built from the escrow inputs and a
persisted bump, so no key material exists that could move the deposit
outside the two terminal operations.
*/
package escrow
