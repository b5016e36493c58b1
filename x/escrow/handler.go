package escrow

import (
	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
	"github.com/seedswap/seedswap/orm"
	"github.com/seedswap/seedswap/x"
	"github.com/seedswap/seedswap/x/token"
)

const (
	// pay escrow cost up-front
	createEscrowCost int64 = 300
	takeEscrowCost   int64 = 0
	refundEscrowCost int64 = 0
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r seedswap.Registry, auth x.Authenticator, ctrl token.Controller) {
	bucket := NewBucket()

	r.Handle(&CreateMsg{}, CreateHandler{auth, bucket, ctrl})
	r.Handle(&TakeMsg{}, TakeHandler{auth, bucket, ctrl})
	r.Handle(&RefundMsg{}, RefundHandler{auth, bucket, ctrl})
}

// conditionFor returns the authenticated condition deriving to the given
// address, or nil if the context holds none.
func conditionFor(ctx seedswap.Context, auth x.Authenticator, addr seedswap.Address) seedswap.Condition {
	for _, c := range auth.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return c
		}
	}
	return nil
}

//---- create

// CreateHandler opens an escrow and funds its custody holding.
type CreateHandler struct {
	auth   x.Authenticator
	bucket orm.Bucket
	ctrl   token.Controller
}

var _ seedswap.Handler = CreateHandler{}

// Check does the validation and sets the cost of the transaction.
func (h CreateHandler) Check(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*seedswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &seedswap.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver moves the deposit into custody and writes the escrow record,
// all within the transaction's cache wrap.
func (h CreateHandler) Deliver(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*seedswap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	bump, err := h.findBump(db, msg.Maker, msg.Seed, msg.AssetX)
	if err != nil {
		return nil, err
	}

	makerCond := conditionFor(ctx, h.auth, msg.Maker)
	if makerCond == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no maker condition")
	}

	key := Addr(msg.Maker, msg.Seed)
	esc := &Escrow{
		Seed:          msg.Seed,
		Maker:         msg.Maker,
		AssetX:        msg.AssetX,
		AssetY:        msg.AssetY,
		ReceiveAmount: msg.ReceiveAmount,
		Bump:          bump,
	}
	if err := h.bucket.Save(db, orm.NewSimpleObj(key, esc)); err != nil {
		return nil, err
	}

	custody := CustodyCondition(msg.Maker, msg.Seed, bump).Address()
	if err := h.ctrl.Transfer(db, makerCond, msg.Maker, custody, msg.AssetX, msg.DepositAmount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	// return the escrow address to use in future calls
	return &seedswap.DeliverResult{Data: key}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateHandler) validate(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := seedswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Maker must authorize this
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.ErrUnauthorized
	}

	// Both asset kinds must resolve in the registry, or the escrow could
	// never be filled.
	if !h.ctrl.HasToken(db, msg.AssetX) {
		return nil, errors.Wrapf(errors.ErrAsset, "asset x %s", msg.AssetX)
	}
	if !h.ctrl.HasToken(db, msg.AssetY) {
		return nil, errors.Wrapf(errors.ErrAsset, "asset y %s", msg.AssetY)
	}

	// The record slot is the lock. A live record under the same
	// derivation means the seed is taken.
	if h.bucket.Has(db, Addr(msg.Maker, msg.Seed)) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "seed %d", msg.Seed)
	}

	return &msg, nil
}

// findBump returns the highest bump whose derived custody holding slot
// is unoccupied, searching downward from 255 the way the original
// derivation scheme does.
func (h CreateHandler) findBump(db seedswap.KVStore, maker seedswap.Address, seed uint64, assetX seedswap.Address) (uint8, error) {
	for i := 255; i >= 0; i-- {
		custody := CustodyCondition(maker, seed, uint8(i)).Address()
		if !h.ctrl.HasHolding(db, custody, assetX) {
			return uint8(i), nil
		}
	}
	return 0, errors.Wrap(errors.ErrDuplicate, "custody derivation space exhausted")
}

//---- take

// TakeHandler completes an open escrow: price to the maker, deposit to
// the taker, record deleted.
type TakeHandler struct {
	auth   x.Authenticator
	bucket orm.Bucket
	ctrl   token.Controller
}

var _ seedswap.Handler = TakeHandler{}

// Check does the validation and sets the cost of the transaction.
func (h TakeHandler) Check(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*seedswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &seedswap.CheckResult{GasAllocated: takeEscrowCost}, nil
}

// Deliver executes the swap. Any failure on either leg discards the
// whole cache wrap, so a taker can never pay without receiving.
func (h TakeHandler) Deliver(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*seedswap.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	taker := x.MainSigner(ctx, h.auth)

	// price leg: taker pays the maker in asset Y
	if err := h.ctrl.Transfer(db, taker, taker.Address(), esc.Maker, esc.AssetY, esc.ReceiveAmount); err != nil {
		return nil, errors.Wrap(err, "price")
	}

	// deposit leg: the whole custody balance of asset X to the taker,
	// authorized by the re-derived custody condition
	custodyCond := CustodyCondition(esc.Maker, esc.Seed, esc.Bump)
	custody := custodyCond.Address()
	balance, err := h.ctrl.Balance(db, custody, esc.AssetX)
	if err != nil {
		return nil, err
	}
	if balance == 0 {
		return nil, errors.Wrap(errors.ErrState, "custody holding is empty")
	}
	if err := h.ctrl.Transfer(db, custodyCond, custody, taker.Address(), esc.AssetX, balance); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	// custody reservation to the taker, record reservation to the maker
	if err := h.ctrl.Close(db, custodyCond, custody, esc.AssetX, taker.Address()); err != nil {
		if token.ErrNotEmpty.Is(err) {
			return nil, errors.Wrap(ErrCustodyNotEmpty, "after sweep")
		}
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, err
	}

	return &seedswap.DeliverResult{Data: msg.EscrowID, Log: "escrow completed"}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h TakeHandler) validate(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*TakeMsg, *Escrow, error) {
	var msg TakeMsg
	if err := seedswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	obj, err := h.bucket.Get(db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	if obj == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", msg.EscrowID)
	}
	esc := AsEscrow(obj)

	// the terms the taker reviewed must be the terms on record
	if !msg.Maker.Equals(esc.Maker) {
		return nil, nil, errors.Wrap(ErrTermMismatch, "maker")
	}
	if !msg.AssetX.Equals(esc.AssetX) {
		return nil, nil, errors.Wrap(ErrTermMismatch, "asset x")
	}
	if !msg.AssetY.Equals(esc.AssetY) {
		return nil, nil, errors.Wrap(ErrTermMismatch, "asset y")
	}

	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no taker")
	}

	return &msg, esc, nil
}

//---- refund

// RefundHandler cancels an open escrow, returning the deposit to the
// maker.
type RefundHandler struct {
	auth   x.Authenticator
	bucket orm.Bucket
	ctrl   token.Controller
}

var _ seedswap.Handler = RefundHandler{}

// Check does the validation and sets the cost of the transaction.
func (h RefundHandler) Check(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*seedswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &seedswap.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver returns the custody balance to the maker and deletes the
// record.
func (h RefundHandler) Deliver(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*seedswap.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	custodyCond := CustodyCondition(esc.Maker, esc.Seed, esc.Bump)
	custody := custodyCond.Address()
	balance, err := h.ctrl.Balance(db, custody, esc.AssetX)
	if err != nil {
		return nil, err
	}
	if balance > 0 {
		if err := h.ctrl.Transfer(db, custodyCond, custody, esc.Maker, esc.AssetX, balance); err != nil {
			return nil, errors.Wrap(err, "refund")
		}
	}

	// both reservations go back to the maker
	if err := h.ctrl.Close(db, custodyCond, custody, esc.AssetX, esc.Maker); err != nil {
		if token.ErrNotEmpty.Is(err) {
			return nil, errors.Wrap(ErrCustodyNotEmpty, "after sweep")
		}
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, err
	}

	return &seedswap.DeliverResult{Data: msg.EscrowID, Log: "escrow refunded"}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h RefundHandler) validate(ctx seedswap.Context, db seedswap.KVStore, tx seedswap.Tx) (*RefundMsg, *Escrow, error) {
	var msg RefundMsg
	if err := seedswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	obj, err := h.bucket.Get(db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	if obj == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", msg.EscrowID)
	}
	esc := AsEscrow(obj)

	if !msg.AssetX.Equals(esc.AssetX) {
		return nil, nil, errors.Wrap(ErrTermMismatch, "asset x")
	}

	// only the maker can refund
	if !h.auth.HasAddress(ctx, esc.Maker) {
		return nil, nil, errors.ErrUnauthorized
	}

	return &msg, esc, nil
}
