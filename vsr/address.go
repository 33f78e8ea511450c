// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vsr

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// AddressLength length of address in bytes.
const AddressLength = 32

// Address is a 32 bytes account key. Its text form is base58.
type Address [AddressLength]byte

// String implements the stringer interface
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bytes returns byte slice form of address.
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero returns if address has all zero bytes.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress convert base58 string presented address into Address type.
func ParseAddress(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, errors.Wrap(err, "decode base58")
	}
	if len(b) != AddressLength {
		return Address{}, errors.New("invalid length")
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// MustParseAddress convert string presented into Address type, panic on error.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress converts bytes slice into address.
// If b is larger than address length, b will be cropped (from the left).
// If b is smaller than address length, b will be extended (from the left).
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// DeriveAddress derives a program owned address from the given seeds.
// The same seeds always derive the same address.
func DeriveAddress(seeds ...[]byte) Address {
	return Address(Blake2b(seeds...))
}
