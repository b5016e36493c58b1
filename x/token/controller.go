package token

import (
	"math"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
	"github.com/seedswap/seedswap/orm"
)

// Controller is the functionality other extensions need to move funds
// between holdings. Src and dest are owner addresses; the holdings are
// located by derivation, the way the holdings were funded in the first
// place.
type Controller interface {
	// Transfer moves amount of asset from the src owner's holding to the
	// dest owner's holding, creating the destination holding if needed.
	// The presented authority condition must resolve to the authority
	// recorded on the source holding.
	Transfer(db seedswap.KVStore, authority seedswap.Condition, src, dest, asset seedswap.Address, amount uint64) error

	// Close removes the owner's empty holding of the given asset. The
	// storage reservation is released to rentDest.
	Close(db seedswap.KVStore, authority seedswap.Condition, owner, asset, rentDest seedswap.Address) error

	// Balance returns the amount stored in the owner's holding of the
	// given asset, or zero if no such holding exists.
	Balance(db seedswap.ReadOnlyKVStore, owner, asset seedswap.Address) (uint64, error)

	// HasHolding returns true if the owner has a holding of the given
	// asset, even an empty one.
	HasHolding(db seedswap.ReadOnlyKVStore, owner, asset seedswap.Address) bool

	// HasToken returns true if the asset resolves to a registered token.
	HasToken(db seedswap.ReadOnlyKVStore, asset seedswap.Address) bool
}

// BaseController implements Controller on top of the token and holding
// buckets.
type BaseController struct {
	tokens   orm.Bucket
	holdings orm.Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the standard buckets.
func NewController() BaseController {
	return BaseController{
		tokens:   NewTokenBucket(),
		holdings: NewHoldingBucket(),
	}
}

// Register stores a new token under its derived asset address. The asset
// address doubles as the unique identity of the token kind.
func (c BaseController) Register(db seedswap.KVStore, t Token) (seedswap.Address, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	addr := AssetAddr(t.Ticker)
	if c.tokens.Has(db, addr) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %q", t.Ticker)
	}
	obj := orm.NewSimpleObj(addr, &t)
	if err := c.tokens.Save(db, obj); err != nil {
		return nil, err
	}
	return addr, nil
}

// Issue credits the owner's holding of the given asset, creating the
// holding if needed. Used from genesis to set up initial balances.
func (c BaseController) Issue(db seedswap.KVStore, owner, asset seedswap.Address, amount uint64) error {
	if !c.tokens.Has(db, asset) {
		return errors.Wrapf(errors.ErrAsset, "asset %s", asset)
	}
	return c.credit(db, owner, asset, amount)
}

// Transfer implements Controller.
func (c BaseController) Transfer(db seedswap.KVStore, authority seedswap.Condition, src, dest, asset seedswap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInput, "zero amount")
	}
	if !c.tokens.Has(db, asset) {
		return errors.Wrapf(errors.ErrAsset, "asset %s", asset)
	}

	h, err := c.holding(db, src, asset)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if !authority.Address().Equals(h.Authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "condition %s", authority)
	}
	if h.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "balance %d, want %d", h.Balance, amount)
	}
	h.Balance -= amount
	if err := c.save(db, src, asset, h); err != nil {
		return err
	}
	return c.credit(db, dest, asset, amount)
}

// Close implements Controller. The release of the storage reservation to
// rentDest is tracked by the host ledger, not by this extension, so only
// the destination validity is enforced here.
func (c BaseController) Close(db seedswap.KVStore, authority seedswap.Condition, owner, asset, rentDest seedswap.Address) error {
	if err := rentDest.Validate(); err != nil {
		return errors.Wrap(err, "rent destination")
	}
	h, err := c.holding(db, owner, asset)
	if err != nil {
		return err
	}
	if !authority.Address().Equals(h.Authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "condition %s", authority)
	}
	if h.Balance != 0 {
		return errors.Wrapf(ErrNotEmpty, "balance %d", h.Balance)
	}
	return c.holdings.Delete(db, HoldingAddr(owner, asset))
}

// Balance implements Controller.
func (c BaseController) Balance(db seedswap.ReadOnlyKVStore, owner, asset seedswap.Address) (uint64, error) {
	obj, err := c.holdings.Get(db, HoldingAddr(owner, asset))
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	h := AsHolding(obj)
	if !h.Asset.Equals(asset) {
		return 0, errors.Wrapf(ErrMintMismatch, "holding stores %s", h.Asset)
	}
	return h.Balance, nil
}

// HasHolding implements Controller.
func (c BaseController) HasHolding(db seedswap.ReadOnlyKVStore, owner, asset seedswap.Address) bool {
	return c.holdings.Has(db, HoldingAddr(owner, asset))
}

// HasToken implements Controller.
func (c BaseController) HasToken(db seedswap.ReadOnlyKVStore, asset seedswap.Address) bool {
	return c.tokens.Has(db, asset)
}

// save writes the owner's holding back under its derived key.
func (c BaseController) save(db seedswap.KVStore, owner, asset seedswap.Address, h *Holding) error {
	return c.holdings.Save(db, orm.NewSimpleObj(HoldingAddr(owner, asset), h))
}

// credit adds amount to the owner's holding, creating it if needed.
func (c BaseController) credit(db seedswap.KVStore, owner, asset seedswap.Address, amount uint64) error {
	key := HoldingAddr(owner, asset)
	obj, err := c.holdings.Get(db, key)
	if err != nil {
		return err
	}
	var h *Holding
	if obj == nil {
		h = &Holding{
			Asset:     asset.Clone(),
			Authority: owner.Clone(),
		}
	} else {
		h = AsHolding(obj)
		if !h.Asset.Equals(asset) {
			return errors.Wrapf(ErrMintMismatch, "holding stores %s", h.Asset)
		}
	}
	if h.Balance > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "balance %d + %d", h.Balance, amount)
	}
	h.Balance += amount
	return c.holdings.Save(db, orm.NewSimpleObj(key, h))
}

// holding loads the owner's holding of the given asset. Missing holdings
// are an error here, unlike in Balance.
func (c BaseController) holding(db seedswap.ReadOnlyKVStore, owner, asset seedswap.Address) (*Holding, error) {
	obj, err := c.holdings.Get(db, HoldingAddr(owner, asset))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrEmpty, "no holding of %s for %s", asset, owner)
	}
	h := AsHolding(obj)
	if !h.Asset.Equals(asset) {
		return nil, errors.Wrapf(ErrMintMismatch, "holding stores %s", h.Asset)
	}
	return h, nil
}
