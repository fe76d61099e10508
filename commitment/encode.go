package commitment

import (
	"fmt"
	"math/big"

	"github.com/privestorg/libprivest-go/investor"
)

// wordSize is the width of one encoding word. Every value in the canonical
// encoding occupies exactly one big-endian 32-byte word.
const wordSize = 32

// maxUint256 bounds amounts to one encoding word.
var maxUint256 = new(big.Int).Lsh(big.NewInt(1), 256)

// encodeAddresses produces the canonical byte encoding of an address list:
// a word holding the offset 0x20, a word holding the element count, then
// one word per address, left-padded with zeros. This layout is frozen as a
// wire protocol — both halves of the distribution protocol hash it, so any
// change breaks every stored commitment.
func encodeAddresses(addrs []investor.Address) []byte {
	buf := make([]byte, wordSize*(2+len(addrs)))
	buf[wordSize-1] = wordSize // offset of the dynamic data
	putUint(buf[wordSize:wordSize*2], uint64(len(addrs)))
	for i, a := range addrs {
		word := buf[wordSize*(2+i) : wordSize*(3+i)]
		copy(word[wordSize-investor.AddressSize:], a.Bytes())
	}
	return buf
}

// encodeAmounts produces the canonical byte encoding of an amount list,
// with the same offset/length/words layout as encodeAddresses. Every
// amount must fit in one unsigned word.
func encodeAmounts(amounts []*big.Int) ([]byte, error) {
	buf := make([]byte, wordSize*(2+len(amounts)))
	buf[wordSize-1] = wordSize
	putUint(buf[wordSize:wordSize*2], uint64(len(amounts)))
	for i, amt := range amounts {
		if amt == nil || amt.Sign() < 0 || amt.Cmp(maxUint256) >= 0 {
			return nil, fmt.Errorf("%w: amount %d out of uint256 range", ErrInvalidAmount, i)
		}
		amt.FillBytes(buf[wordSize*(2+i) : wordSize*(3+i)])
	}
	return buf, nil
}

// putUint writes v into the low-order bytes of a 32-byte word.
func putUint(word []byte, v uint64) {
	for i := 0; i < 8; i++ {
		word[wordSize-1-i] = byte(v >> (8 * i))
	}
}

// readUint reads a word as uint64, failing if any higher-order byte is set.
func readUint(word []byte) (uint64, error) {
	for _, b := range word[:wordSize-8] {
		if b != 0 {
			return 0, fmt.Errorf("%w: oversized word value", ErrEncoding)
		}
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(word[wordSize-8+i])
	}
	return v, nil
}
