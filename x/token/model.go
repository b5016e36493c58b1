package token

import (
	"encoding/binary"
	"regexp"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
	"github.com/seedswap/seedswap/orm"
)

// Record kind tags prefix every persisted value so that raw store entries
// can never be confused across record kinds.
const (
	tagToken   byte = 0x01
	tagHolding byte = 0x02
)

// tickerRe restricts tickers to short uppercase symbols.
var tickerRe = regexp.MustCompile(`^[A-Z]{3,8}$`)

// Token is the description of one fungible asset kind. It is stored under
// the asset address, which is derived from the ticker.
type Token struct {
	Ticker   string
	Decimals uint8
}

var _ orm.CloneableData = (*Token)(nil)

// Validate ensures the token is valid.
func (t *Token) Validate() error {
	if !tickerRe.MatchString(t.Ticker) {
		return errors.Wrapf(errors.ErrAsset, "ticker %q", t.Ticker)
	}
	if t.Decimals > 18 {
		return errors.Wrapf(errors.ErrInput, "decimals %d", t.Decimals)
	}
	return nil
}

// Copy makes a new token with the same content.
func (t *Token) Copy() orm.CloneableData {
	return &Token{
		Ticker:   t.Ticker,
		Decimals: t.Decimals,
	}
}

// Marshal serializes the token into its fixed record layout:
// kind tag, decimals, ticker length, ticker bytes padded to 8.
func (t *Token) Marshal() ([]byte, error) {
	if len(t.Ticker) > 8 {
		return nil, errors.Wrapf(errors.ErrAsset, "ticker %q", t.Ticker)
	}
	bz := make([]byte, 11)
	bz[0] = tagToken
	bz[1] = t.Decimals
	bz[2] = byte(len(t.Ticker))
	copy(bz[3:], t.Ticker)
	return bz, nil
}

// Unmarshal restores the token from its fixed record layout.
func (t *Token) Unmarshal(bz []byte) error {
	if len(bz) != 11 || bz[0] != tagToken {
		return errors.Wrapf(errors.ErrModel, "token record: %X", bz)
	}
	n := int(bz[2])
	if n > 8 {
		return errors.Wrapf(errors.ErrModel, "token ticker length %d", n)
	}
	t.Decimals = bz[1]
	t.Ticker = string(bz[3 : 3+n])
	return nil
}

// Holding is one owner's account of a single asset.
type Holding struct {
	// Asset is the address of the token this holding stores.
	Asset seedswap.Address
	// Authority is the address controlling outgoing transfers. It equals
	// the owner address the holding was derived from.
	Authority seedswap.Address
	// Balance is the stored amount, in the token's smallest unit.
	Balance uint64
}

var _ orm.CloneableData = (*Holding)(nil)

// Validate ensures the holding is valid.
func (h *Holding) Validate() error {
	if err := h.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := h.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// Copy makes a new holding with the same content.
func (h *Holding) Copy() orm.CloneableData {
	return &Holding{
		Asset:     h.Asset.Clone(),
		Authority: h.Authority.Clone(),
		Balance:   h.Balance,
	}
}

// Marshal serializes the holding into its fixed record layout:
// kind tag, asset address, authority address, balance (little endian).
func (h *Holding) Marshal() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	bz := make([]byte, 1+2*seedswap.AddressLength+8)
	bz[0] = tagHolding
	copy(bz[1:], h.Asset)
	copy(bz[1+seedswap.AddressLength:], h.Authority)
	binary.LittleEndian.PutUint64(bz[1+2*seedswap.AddressLength:], h.Balance)
	return bz, nil
}

// Unmarshal restores the holding from its fixed record layout.
func (h *Holding) Unmarshal(bz []byte) error {
	want := 1 + 2*seedswap.AddressLength + 8
	if len(bz) != want || bz[0] != tagHolding {
		return errors.Wrapf(errors.ErrModel, "holding record: %X", bz)
	}
	h.Asset = append(seedswap.Address{}, bz[1:1+seedswap.AddressLength]...)
	h.Authority = append(seedswap.Address{}, bz[1+seedswap.AddressLength:1+2*seedswap.AddressLength]...)
	h.Balance = binary.LittleEndian.Uint64(bz[1+2*seedswap.AddressLength:])
	return nil
}

// AssetAddr derives the address a token with this ticker is registered
// under.
func AssetAddr(ticker string) seedswap.Address {
	return seedswap.NewCondition("token", "mint", []byte(ticker)).Address()
}

// HoldingAddr derives the address of the holding storing the given asset
// for the given owner, the way associated token accounts are derived from
// (wallet, mint).
func HoldingAddr(owner, asset seedswap.Address) seedswap.Address {
	data := make([]byte, 0, len(owner)+len(asset))
	data = append(data, owner...)
	data = append(data, asset...)
	return seedswap.NewCondition("token", "acct", data).Address()
}

// NewTokenBucket initializes the bucket storing all registered tokens.
func NewTokenBucket() orm.Bucket {
	return orm.NewBucket("tok", orm.NewSimpleObj(nil, &Token{}))
}

// NewHoldingBucket initializes the bucket storing all holdings.
func NewHoldingBucket() orm.Bucket {
	return orm.NewBucket("hold", orm.NewSimpleObj(nil, &Holding{}))
}

// AsToken extracts a *Token value or nil from the object.
func AsToken(obj orm.Object) *Token {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Token)
}

// AsHolding extracts a *Holding value or nil from the object.
func AsHolding(obj orm.Object) *Holding {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Holding)
}
