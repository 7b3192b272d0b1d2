package transaction

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/TopiaNetwork/topia-costmodel/codec"
	tpcmm "github.com/TopiaNetwork/topia-costmodel/common"
)

const (
	AddressLen   = 32 //32 bytes
	SignatureLen = 64 //64 bytes
)

var UndefAddress = Address{}

// Address is the opaque key of an account; program identifiers are account
// addresses of the executable account an instruction invokes.
type Address [AddressLen]byte

func NewAddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return UndefAddress, fmt.Errorf("Invalid address payload %d, expected %d", len(b), AddressLen)
	}

	var a Address
	copy(a[:], b)
	return a, nil
}

func NewAddressFromString(s string) (Address, error) {
	if len(s) == 0 {
		return UndefAddress, errors.New("Invalid address: len 0")
	}

	payload, err := base58.Decode(s)
	if err != nil {
		return UndefAddress, err
	}

	return NewAddressFromBytes(payload)
}

// NativeProgramAddress derives the well-known address of a built-in program
// from its ASCII name, right padded with zero bytes.
func NativeProgramAddress(name string) Address {
	if len(name) > AddressLen {
		panic("Native program name too long: " + name)
	}

	var a Address
	copy(a[:], name)
	return a
}

func (a Address) Bytes() []byte {
	return tpcmm.BytesCopy(a[:])
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddressFromString(string(text))
	if err != nil {
		return err
	}

	*a = addr
	return nil
}

type Signature [SignatureLen]byte

type Transaction struct {
	Signatures []Signature `json:"signatures"`
	Message    TxMessage   `json:"message"`
}

func (tx *Transaction) HashBytes() ([]byte, error) {
	marshaler := codec.CreateMarshaler(codec.CodecType_JSON)
	txBytes, err := marshaler.Marshal(tx)
	if err != nil {
		return nil, err
	}

	hasher := tpcmm.NewBlake2bHasher(0)

	return hasher.Compute(string(txBytes)), nil
}

func (tx *Transaction) HashHex() (string, error) {
	hashBytes, err := tx.HashBytes()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(hashBytes), nil
}
