package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AddressKind tags the two address families the marketplace understands
type AddressKind string

const (
	AddressKindSubstrate AddressKind = "substrate"
	AddressKindEthereum  AddressKind = "ethereum"
)

// Address is a tagged chain address: either a Substrate SS58 address or an
// Ethereum hex address. Construct it through ParseAddress so unrecognized
// shapes are rejected instead of falling through silently.
type Address struct {
	Kind  AddressKind
	Value string
}

// ErrUnrecognizedAddress is returned by ParseAddress for inputs that are
// neither a valid Ethereum hex address nor a plausible SS58 address.
type ErrUnrecognizedAddress struct {
	Input string
}

func (e *ErrUnrecognizedAddress) Error() string {
	return fmt.Sprintf("unrecognized address shape: %q", e.Input)
}

// ParseAddress normalizes a raw address string into a tagged Address.
// Ethereum addresses are checksummed via go-ethereum; Substrate addresses are
// accepted as-is after a basic shape check (base58, 47-48 chars).
func ParseAddress(raw string) (Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}, &ErrUnrecognizedAddress{Input: raw}
	}

	if strings.HasPrefix(raw, "0x") {
		if !common.IsHexAddress(raw) {
			return Address{}, &ErrUnrecognizedAddress{Input: raw}
		}
		return Address{Kind: AddressKindEthereum, Value: common.HexToAddress(raw).Hex()}, nil
	}

	if validSS58(raw) {
		return Address{Kind: AddressKindSubstrate, Value: raw}, nil
	}

	return Address{}, &ErrUnrecognizedAddress{Input: raw}
}

// MustParseAddress is ParseAddress for statically known inputs (config values)
func MustParseAddress(raw string) Address {
	addr, err := ParseAddress(raw)
	if err != nil {
		panic(err)
	}
	return addr
}

// String returns the normalized address value
func (a Address) String() string {
	return a.Value
}

// Equal compares two addresses after normalization
func (a Address) Equal(other Address) bool {
	return a.Kind == other.Kind && a.Value == other.Value
}

// NormalizeAddress returns the canonical form of raw when it parses as a
// known address shape, and raw unchanged otherwise. Use it where the input
// has already been validated upstream or comes from operator config.
func NormalizeAddress(raw string) string {
	if addr, err := ParseAddress(raw); err == nil {
		return addr.Value
	}
	return raw
}

// SameAddress reports whether two raw address strings name the same account.
// Ethereum hex addresses carry an EIP-55 mixed-case checksum, so they compare
// through their decoded form; everything else compares exactly (SS58 is
// case-sensitive base58).
func SameAddress(a, b string) bool {
	if common.IsHexAddress(a) && common.IsHexAddress(b) {
		return common.HexToAddress(a) == common.HexToAddress(b)
	}
	return a == b
}

const ss58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// validSS58 performs a shape check on an SS58 address: base58 alphabet,
// typical length range. Full checksum validation belongs to the chain client.
func validSS58(raw string) bool {
	if len(raw) < 46 || len(raw) > 49 {
		return false
	}
	for _, r := range raw {
		if !strings.ContainsRune(ss58Alphabet, r) {
			return false
		}
	}
	return true
}
