package investor

import "errors"

var (
	// ErrInvalidAddress indicates the address is malformed, fails its
	// checksum, or is the zero address.
	ErrInvalidAddress = errors.New("investor: invalid address")

	// ErrInvalidStake indicates the stake is non-positive or exceeds the
	// configured maximum.
	ErrInvalidStake = errors.New("investor: invalid stake")

	// ErrDuplicateInvestor indicates the same address appears more than
	// once in one computation input.
	ErrDuplicateInvestor = errors.New("investor: duplicate investor address")

	// ErrMalformedInput indicates the input document does not match the
	// expected keyed-object shape.
	ErrMalformedInput = errors.New("investor: malformed input")

	// ErrInputTooLarge indicates the input document exceeds the size cap.
	ErrInputTooLarge = errors.New("investor: input too large")
)
