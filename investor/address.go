package investor

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// AddressSize is the byte length of an investor address.
const AddressSize = 20

// Address is a 20-byte account identifier. The zero value is the zero
// address, which is never a valid payee.
type Address [AddressSize]byte

// ParseAddress parses a 0x-prefixed 40-digit hex address string.
//
// All-lowercase and all-uppercase hex digits are accepted as-is. Mixed-case
// input must carry a valid EIP-55 checksum; a checksum mismatch fails with
// ErrInvalidAddress. The zero address is rejected.
func ParseAddress(s string) (Address, error) {
	var addr Address

	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return addr, fmt.Errorf("%w: missing 0x prefix: %q", ErrInvalidAddress, s)
	}
	body := s[2:]
	if len(body) != AddressSize*2 {
		return addr, fmt.Errorf("%w: expected %d hex digits, got %d", ErrInvalidAddress, AddressSize*2, len(body))
	}

	raw, err := hex.DecodeString(body)
	if err != nil {
		return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	copy(addr[:], raw)

	if addr == (Address{}) {
		return addr, fmt.Errorf("%w: zero address", ErrInvalidAddress)
	}

	// Mixed-case input carries a checksum; verify it.
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if body != checksumHex(addr) {
			return addr, fmt.Errorf("%w: bad checksum: %q", ErrInvalidAddress, s)
		}
	}

	return addr, nil
}

// Bytes returns the raw 20-byte address.
func (a Address) Bytes() []byte {
	return a[:]
}

// Hex returns the lowercase 0x-prefixed hex form.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// String returns the EIP-55 checksummed form. This is the canonical
// display representation.
func (a Address) String() string {
	return "0x" + checksumHex(a)
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// checksumHex returns the EIP-55 mixed-case hex digits (without prefix):
// a hex letter is uppercased when the corresponding nibble of
// keccak256(lowercase hex digits) is >= 8.
func checksumHex(a Address) string {
	lower := hex.EncodeToString(a[:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - ('a' - 'A')
		}
	}
	return string(out)
}
