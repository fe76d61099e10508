package gateway

import "errors"

var (
	// ErrNotAuthorized indicates the caller is not the configured
	// result-submission authority.
	ErrNotAuthorized = errors.New("gateway: caller not authorized")

	// ErrDuplicateInvestor indicates the same address appears more than
	// once in the submitted result.
	ErrDuplicateInvestor = errors.New("gateway: duplicate investor in result")

	// ErrRejected indicates the submission failed structural validation.
	ErrRejected = errors.New("gateway: submission rejected")
)
