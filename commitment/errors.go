package commitment

import "errors"

var (
	// ErrEncoding indicates callback data or commitment fields that do not
	// match the canonical encoding.
	ErrEncoding = errors.New("commitment: encoding error")

	// ErrInvalidAmount indicates an amount that is non-positive or does
	// not fit in a 256-bit word.
	ErrInvalidAmount = errors.New("commitment: invalid amount")

	// ErrInvalidAddress indicates a zero or malformed address.
	ErrInvalidAddress = errors.New("commitment: invalid address")

	// ErrLengthMismatch indicates the investor and amount lists differ in
	// length or are empty.
	ErrLengthMismatch = errors.New("commitment: investor/amount length mismatch")

	// ErrHashMismatch indicates the stored hash does not equal the hash
	// recomputed from the investor and amount lists.
	ErrHashMismatch = errors.New("commitment: result hash mismatch")
)
