package app

import (
	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
)

// DeliverTx executes the transaction against a cache wrap of the given
// store. The cache is written through only when the handler succeeds, so
// any failure leaves no partial state change visible to anyone else.
func DeliverTx(h seedswap.Deliverer, ctx seedswap.Context, db seedswap.CacheableKVStore, tx seedswap.Tx) (res *seedswap.DeliverResult, err error) {
	defer errors.Recover(&err)

	cache := db.CacheWrap()
	res, err = h.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return res, nil
}

// CheckTx validates the transaction against a throwaway cache wrap of the
// given store. Checks never modify the backing state.
func CheckTx(h seedswap.Checker, ctx seedswap.Context, db seedswap.CacheableKVStore, tx seedswap.Tx) (res *seedswap.CheckResult, err error) {
	defer errors.Recover(&err)

	cache := db.CacheWrap()
	defer cache.Discard()
	return h.Check(ctx, cache, tx)
}
