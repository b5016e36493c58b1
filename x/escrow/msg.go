package escrow

import (
	"encoding/binary"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
)

const (
	pathCreate = "escrow/create"
	pathTake   = "escrow/take"
	pathRefund = "escrow/refund"
)

var _ seedswap.Msg = (*CreateMsg)(nil)
var _ seedswap.Msg = (*TakeMsg)(nil)
var _ seedswap.Msg = (*RefundMsg)(nil)

// CreateMsg opens a new escrow: the deposit is moved from the maker's
// holding into custody and the record is written under the derived
// escrow address.
type CreateMsg struct {
	Seed          uint64
	Maker         seedswap.Address
	AssetX        seedswap.Address
	AssetY        seedswap.Address
	DepositAmount uint64
	ReceiveAmount uint64
}

func (CreateMsg) Path() string {
	return pathCreate
}

func (m *CreateMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.AssetX.Validate(); err != nil {
		return errors.Wrap(err, "asset x")
	}
	if err := m.AssetY.Validate(); err != nil {
		return errors.Wrap(err, "asset y")
	}
	if m.DepositAmount == 0 {
		return errors.Wrap(errors.ErrInput, "deposit amount")
	}
	if m.ReceiveAmount == 0 {
		return errors.Wrap(errors.ErrInput, "receive amount")
	}
	return nil
}

// TakeMsg completes an open escrow: the taker pays the price in asset Y
// to the maker and receives the whole custody balance of asset X. The
// terms are repeated in the message and verified against the record, so
// a taker never completes against an offer other than the one reviewed.
type TakeMsg struct {
	EscrowID seedswap.Address
	Maker    seedswap.Address
	AssetX   seedswap.Address
	AssetY   seedswap.Address
}

func (TakeMsg) Path() string {
	return pathTake
}

func (m *TakeMsg) Validate() error {
	if err := m.EscrowID.Validate(); err != nil {
		return errors.Wrap(err, "escrow id")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.AssetX.Validate(); err != nil {
		return errors.Wrap(err, "asset x")
	}
	if err := m.AssetY.Validate(); err != nil {
		return errors.Wrap(err, "asset y")
	}
	return nil
}

// RefundMsg cancels an open escrow: the whole custody balance of asset X
// goes back to the maker and the record is deleted. Only the maker can
// refund.
type RefundMsg struct {
	EscrowID seedswap.Address
	AssetX   seedswap.Address
}

func (RefundMsg) Path() string {
	return pathRefund
}

func (m *RefundMsg) Validate() error {
	if err := m.EscrowID.Validate(); err != nil {
		return errors.Wrap(err, "escrow id")
	}
	if err := m.AssetX.Validate(); err != nil {
		return errors.Wrap(err, "asset x")
	}
	return nil
}

// Message marshalling uses the same fixed little-endian layout as the
// models, with the path as implicit framing: the transaction carries the
// path next to the serialized message.

func (m *CreateMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	bz := make([]byte, 8+3*seedswap.AddressLength+16)
	binary.LittleEndian.PutUint64(bz, m.Seed)
	copy(bz[8:], m.Maker)
	copy(bz[28:], m.AssetX)
	copy(bz[48:], m.AssetY)
	binary.LittleEndian.PutUint64(bz[68:], m.DepositAmount)
	binary.LittleEndian.PutUint64(bz[76:], m.ReceiveAmount)
	return bz, nil
}

func (m *CreateMsg) Unmarshal(bz []byte) error {
	if len(bz) != 8+3*seedswap.AddressLength+16 {
		return errors.Wrapf(errors.ErrInput, "create message: %X", bz)
	}
	m.Seed = binary.LittleEndian.Uint64(bz)
	m.Maker = append(seedswap.Address{}, bz[8:28]...)
	m.AssetX = append(seedswap.Address{}, bz[28:48]...)
	m.AssetY = append(seedswap.Address{}, bz[48:68]...)
	m.DepositAmount = binary.LittleEndian.Uint64(bz[68:76])
	m.ReceiveAmount = binary.LittleEndian.Uint64(bz[76:])
	return nil
}

func (m *TakeMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	bz := make([]byte, 4*seedswap.AddressLength)
	copy(bz, m.EscrowID)
	copy(bz[20:], m.Maker)
	copy(bz[40:], m.AssetX)
	copy(bz[60:], m.AssetY)
	return bz, nil
}

func (m *TakeMsg) Unmarshal(bz []byte) error {
	if len(bz) != 4*seedswap.AddressLength {
		return errors.Wrapf(errors.ErrInput, "take message: %X", bz)
	}
	m.EscrowID = append(seedswap.Address{}, bz[:20]...)
	m.Maker = append(seedswap.Address{}, bz[20:40]...)
	m.AssetX = append(seedswap.Address{}, bz[40:60]...)
	m.AssetY = append(seedswap.Address{}, bz[60:]...)
	return nil
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	bz := make([]byte, 2*seedswap.AddressLength)
	copy(bz, m.EscrowID)
	copy(bz[20:], m.AssetX)
	return bz, nil
}

func (m *RefundMsg) Unmarshal(bz []byte) error {
	if len(bz) != 2*seedswap.AddressLength {
		return errors.Wrapf(errors.ErrInput, "refund message: %X", bz)
	}
	m.EscrowID = append(seedswap.Address{}, bz[:20]...)
	m.AssetX = append(seedswap.Address{}, bz[20:]...)
	return nil
}
