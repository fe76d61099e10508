package commitment

import (
	"fmt"
	"math/big"

	"github.com/privestorg/libprivest-go/investor"
)

// EncodeCallback serializes the commitment into the callback payload the
// confidential-execution network delivers to the submission gateway:
// the canonical encoding of (address list, amount list, hash) in that
// field order. The head section holds the two array offsets and the
// inline hash; the tail holds the arrays themselves.
func EncodeCallback(c *Commitment) ([]byte, error) {
	if len(c.Investors) == 0 || len(c.Investors) != len(c.Amounts) {
		return nil, fmt.Errorf("%w: %d investors, %d amounts", ErrLengthMismatch, len(c.Investors), len(c.Amounts))
	}

	n := len(c.Investors)
	head := 3 * wordSize
	addrTail := wordSize * (1 + n)
	total := head + addrTail + wordSize*(1+n)

	buf := make([]byte, total)
	putUint(buf[0:wordSize], uint64(head))
	putUint(buf[wordSize:2*wordSize], uint64(head+addrTail))
	copy(buf[2*wordSize:3*wordSize], c.Hash[:])

	off := head
	putUint(buf[off:off+wordSize], uint64(n))
	off += wordSize
	for _, a := range c.Investors {
		copy(buf[off+wordSize-investor.AddressSize:off+wordSize], a.Bytes())
		off += wordSize
	}

	putUint(buf[off:off+wordSize], uint64(n))
	off += wordSize
	for i, amt := range c.Amounts {
		if amt == nil || amt.Sign() < 0 || amt.Cmp(maxUint256) >= 0 {
			return nil, fmt.Errorf("%w: amount %d out of uint256 range", ErrInvalidAmount, i)
		}
		amt.FillBytes(buf[off : off+wordSize])
		off += wordSize
	}

	return buf, nil
}

// DecodeCallback parses a callback payload. The decoder fails closed: any
// non-canonical offset, inconsistent length, non-zero address padding, or
// trailing data is rejected with ErrEncoding. Offsets are pinned to their
// canonical positions so that exactly one byte string decodes to any given
// commitment. The returned commitment has not been verified; callers must
// invoke Verify before trusting it.
func DecodeCallback(data []byte) (*Commitment, error) {
	if len(data) < 3*wordSize || len(data)%wordSize != 0 {
		return nil, fmt.Errorf("%w: callback length %d", ErrEncoding, len(data))
	}

	addrOff, err := readUint(data[0:wordSize])
	if err != nil {
		return nil, err
	}
	amtOff, err := readUint(data[wordSize : 2*wordSize])
	if err != nil {
		return nil, err
	}
	if addrOff != 3*wordSize {
		return nil, fmt.Errorf("%w: address array offset %d, canonical is %d", ErrEncoding, addrOff, 3*wordSize)
	}

	c := &Commitment{}
	copy(c.Hash[:], data[2*wordSize:3*wordSize])

	c.Investors, err = decodeAddressArray(data, addrOff)
	if err != nil {
		return nil, err
	}

	wantAmtOff := addrOff + wordSize*uint64(1+len(c.Investors))
	if amtOff != wantAmtOff {
		return nil, fmt.Errorf("%w: amount array offset %d, canonical is %d", ErrEncoding, amtOff, wantAmtOff)
	}
	c.Amounts, err = decodeAmountArray(data, amtOff)
	if err != nil {
		return nil, err
	}

	if len(c.Investors) != len(c.Amounts) {
		return nil, fmt.Errorf("%w: %d investors, %d amounts", ErrLengthMismatch, len(c.Investors), len(c.Amounts))
	}

	// Reject trailing or overlapping data: the payload must be exactly
	// the canonical size for its element counts.
	expected := 3*wordSize + wordSize*(2+len(c.Investors)+len(c.Amounts))
	if len(data) != expected {
		return nil, fmt.Errorf("%w: callback is %d bytes, canonical form is %d", ErrEncoding, len(data), expected)
	}

	return c, nil
}

// decodeAddressArray reads a length-prefixed address array at off.
func decodeAddressArray(data []byte, off uint64) ([]investor.Address, error) {
	n, err := arrayLen(data, off)
	if err != nil {
		return nil, err
	}

	addrs := make([]investor.Address, n)
	base := off + wordSize
	for i := uint64(0); i < n; i++ {
		word := data[base+i*wordSize : base+(i+1)*wordSize]
		for _, b := range word[:wordSize-investor.AddressSize] {
			if b != 0 {
				return nil, fmt.Errorf("%w: address %d has non-zero padding", ErrEncoding, i)
			}
		}
		copy(addrs[i][:], word[wordSize-investor.AddressSize:])
	}
	return addrs, nil
}

// decodeAmountArray reads a length-prefixed uint256 array at off.
func decodeAmountArray(data []byte, off uint64) ([]*big.Int, error) {
	n, err := arrayLen(data, off)
	if err != nil {
		return nil, err
	}

	amounts := make([]*big.Int, n)
	base := off + wordSize
	for i := uint64(0); i < n; i++ {
		amounts[i] = new(big.Int).SetBytes(data[base+i*wordSize : base+(i+1)*wordSize])
	}
	return amounts, nil
}

// arrayLen validates an array offset and returns the element count after
// bounds-checking the whole array body. All comparisons are subtractive:
// an attacker-controlled offset or count near 2^64 must not wrap a sum
// past the bounds check.
func arrayLen(data []byte, off uint64) (uint64, error) {
	size := uint64(len(data))
	if off%wordSize != 0 || off > size || size-off < wordSize {
		return 0, fmt.Errorf("%w: bad array offset %d", ErrEncoding, off)
	}
	n, err := readUint(data[off : off+wordSize])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: empty array", ErrEncoding)
	}
	if n > size/wordSize || n*wordSize > size-off-wordSize {
		return 0, fmt.Errorf("%w: array of %d elements overruns payload", ErrEncoding, n)
	}
	return n, nil
}
