package apperrs

import "errors"

// Business-rule and validation errors the HTTP layer maps to client
// responses. Infrastructure failures are wrapped with pkg/errs instead
// and surface as internal errors.
var (
	ErrEmptySymbol          = errors.New("symbol is required")
	ErrInvalidBody          = errors.New("malformed request body")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrInvalidPrice         = errors.New("price must be positive")
	ErrInvalidKind          = errors.New("unknown transaction type")
	ErrInvalidDate          = errors.New("unrecognized date format")
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrInvalidLimit         = errors.New("limit must be positive")
	ErrInsufficientHoldings = errors.New("insufficient quantity")
	ErrQuoteUnavailable     = errors.New("quote unavailable")
	ErrUnauthorized         = errors.New("unauthorized")
)

// IsValidation reports whether err is a caller-input error, i.e. the
// operation was rejected before any state was touched.
func IsValidation(err error) bool {
	for _, verr := range []error{
		ErrEmptySymbol,
		ErrInvalidBody,
		ErrInvalidQuantity,
		ErrInvalidPrice,
		ErrInvalidKind,
		ErrInvalidDate,
		ErrInvalidPage,
		ErrInvalidLimit,
	} {
		if errors.Is(err, verr) {
			return true
		}
	}

	return false
}
