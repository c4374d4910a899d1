package action

import "errors"

// Integrity rejections. Handlers map these to client-visible failures;
// everything else coming out of Apply is an internal error.
var (
	ErrUnknownKind        = errors.New("action: unknown kind")
	ErrNotFound           = errors.New("action: referenced entity not found")
	ErrInsufficientPoints = errors.New("action: not enough spendable points")
	ErrRewardSoldOut      = errors.New("action: unique reward already sold")
	ErrAlreadyOwned       = errors.New("action: item already owned")
	ErrTaskTaken          = errors.New("action: unique task already completed today")
)

// IsRejection reports whether err is a data-integrity rejection rather than
// an internal failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientPoints) ||
		errors.Is(err, ErrRewardSoldOut) ||
		errors.Is(err, ErrAlreadyOwned) ||
		errors.Is(err, ErrTaskTaken)
}
