package service

import "errors"

// Sentinel errors for the relay pipeline. Every error returned by ContactService wraps exactly one of them.
var (
	ErrValidation   = errors.New("validation error")
	ErrVerification = errors.New("verification error")
	ErrDelivery     = errors.New("delivery error")
	ErrTransport    = errors.New("transport error")
)

// Category classifies a failed submission
type Category string

const (
	CategoryNone         Category = ""
	CategoryValidation   Category = "validation"
	CategoryVerification Category = "verification"
	CategoryDelivery     Category = "delivery"
	CategoryTransport    Category = "transport"
)

// CategoryOf maps an error to its failure category. Unknown errors are transport failures.
func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrValidation):
		return CategoryValidation
	case errors.Is(err, ErrVerification):
		return CategoryVerification
	case errors.Is(err, ErrDelivery):
		return CategoryDelivery
	default:
		return CategoryTransport
	}
}
