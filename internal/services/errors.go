package services

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrZoneNotFound        = errors.New("shipping zone not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrShippingUnavailable = errors.New("shipping not available for this location")

	ErrOutOfStock         = errors.New("product is out of stock")
	ErrAlreadyInWishlist  = errors.New("product already in wishlist")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSKUTaken           = errors.New("sku already in use")
	ErrProductInUse       = errors.New("product is referenced by existing orders")
	ErrDuplicateRequest   = errors.New("duplicate request: idempotency key already used")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailRejected is wrapped by EmailValidator implementations when the
	// address itself is refused.
	ErrEmailRejected = errors.New("email rejected")
)

// ValidationError reports bad client input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsNotFound reports whether err is one of the not-found errors above.
func IsNotFound(err error) bool {
	for _, target := range []error{ErrOrderNotFound, ErrProductNotFound, ErrMessageNotFound, ErrZoneNotFound, ErrUserNotFound, ErrShippingUnavailable} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err conflicts with existing state.
func IsConflict(err error) bool {
	for _, target := range []error{ErrOutOfStock, ErrAlreadyInWishlist, ErrEmailTaken, ErrSKUTaken, ErrProductInUse, ErrDuplicateRequest} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
