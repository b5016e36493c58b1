package escrow

import (
	"encoding/binary"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
	"github.com/seedswap/seedswap/orm"
)

// tagEscrow is the record-kind tag prefixing every persisted escrow.
const tagEscrow byte = 0x03

// escrowSize is the fixed length of a serialized escrow record.
const escrowSize = 1 + 8 + 3*20 + 8 + 1

// Escrow is one open swap offer. It exists from create until the first
// terminal operation deletes it.
type Escrow struct {
	// Seed distinguishes concurrent offers by the same maker.
	Seed uint64
	// Maker is the party that funded the custody holding.
	Maker seedswap.Address
	// AssetX is the deposited asset, held in custody.
	AssetX seedswap.Address
	// AssetY is the asset the maker wants in return.
	AssetY seedswap.Address
	// ReceiveAmount is the price in asset Y, paid to the maker on take.
	ReceiveAmount uint64
	// Bump is the derivation offset chosen at create time so the custody
	// holding slot was unoccupied. It is persisted so the custody
	// condition can be re-derived on the terminal operations.
	Bump uint8
}

var _ orm.CloneableData = (*Escrow)(nil)

// Validate ensures the escrow is valid.
func (e *Escrow) Validate() error {
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := e.AssetX.Validate(); err != nil {
		return errors.Wrap(err, "asset x")
	}
	if err := e.AssetY.Validate(); err != nil {
		return errors.Wrap(err, "asset y")
	}
	if e.ReceiveAmount == 0 {
		return errors.Wrap(errors.ErrInput, "receive amount")
	}
	return nil
}

// Copy makes a new escrow with the same content.
func (e *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Seed:          e.Seed,
		Maker:         e.Maker.Clone(),
		AssetX:        e.AssetX.Clone(),
		AssetY:        e.AssetY.Clone(),
		ReceiveAmount: e.ReceiveAmount,
		Bump:          e.Bump,
	}
}

// Marshal serializes the escrow into its fixed record layout: kind tag,
// seed (little endian), maker, asset x, asset y, receive amount (little
// endian), bump.
func (e *Escrow) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	bz := make([]byte, escrowSize)
	bz[0] = tagEscrow
	binary.LittleEndian.PutUint64(bz[1:], e.Seed)
	copy(bz[9:], e.Maker)
	copy(bz[29:], e.AssetX)
	copy(bz[49:], e.AssetY)
	binary.LittleEndian.PutUint64(bz[69:], e.ReceiveAmount)
	bz[77] = e.Bump
	return bz, nil
}

// Unmarshal restores the escrow from its fixed record layout.
func (e *Escrow) Unmarshal(bz []byte) error {
	if len(bz) != escrowSize || bz[0] != tagEscrow {
		return errors.Wrapf(errors.ErrModel, "escrow record: %X", bz)
	}
	e.Seed = binary.LittleEndian.Uint64(bz[1:])
	e.Maker = append(seedswap.Address{}, bz[9:29]...)
	e.AssetX = append(seedswap.Address{}, bz[29:49]...)
	e.AssetY = append(seedswap.Address{}, bz[49:69]...)
	e.ReceiveAmount = binary.LittleEndian.Uint64(bz[69:77])
	e.Bump = bz[77]
	return nil
}

// Condition returns the condition the escrow record address is derived
// from. Anyone knowing the maker and the seed can re-derive it.
func Condition(maker seedswap.Address, seed uint64) seedswap.Condition {
	data := make([]byte, 0, len(maker)+8)
	data = append(data, maker...)
	data = binary.LittleEndian.AppendUint64(data, seed)
	return seedswap.NewCondition("escrow", "seed", data)
}

// Addr returns the address the escrow record is stored under.
func Addr(maker seedswap.Address, seed uint64) seedswap.Address {
	return Condition(maker, seed).Address()
}

// CustodyCondition returns the condition controlling the custody holding
// of the escrow. The bump extends the record derivation so the custody
// slot can be moved if the default derivation is occupied.
func CustodyCondition(maker seedswap.Address, seed uint64, bump uint8) seedswap.Condition {
	data := make([]byte, 0, len(maker)+9)
	data = append(data, maker...)
	data = binary.LittleEndian.AppendUint64(data, seed)
	data = append(data, bump)
	return seedswap.NewCondition("escrow", "seed", data)
}

// NewBucket initializes the bucket storing all open escrows, keyed by
// the derived escrow address.
func NewBucket() orm.Bucket {
	return orm.NewBucket("esc", orm.NewSimpleObj(nil, &Escrow{}))
}

// AsEscrow extracts an *Escrow value or nil from the object.
func AsEscrow(obj orm.Object) *Escrow {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Escrow)
}
