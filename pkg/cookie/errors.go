package cookie

import (
	"errors"
	"fmt"
)

// Manager errors.
var (
	ErrNotFound = errors.New("cookie: not found")
	ErrNoSecret = errors.New("cookie: secret required")
	ErrBadSig   = errors.New("cookie: invalid signature")
	ErrDecrypt  = errors.New("cookie: decryption failed")
)

// ErrInvalidArgument is the root of every serialization validation error.
var ErrInvalidArgument = errors.New("cookie: invalid argument")

// Validation errors. Each wraps ErrInvalidArgument.
var (
	ErrInvalidName     = fmt.Errorf("%w: name", ErrInvalidArgument)
	ErrInvalidValue    = fmt.Errorf("%w: value", ErrInvalidArgument)
	ErrInvalidMaxAge   = fmt.Errorf("%w: maxAge", ErrInvalidArgument)
	ErrInvalidDomain   = fmt.Errorf("%w: domain", ErrInvalidArgument)
	ErrInvalidPath     = fmt.Errorf("%w: path", ErrInvalidArgument)
	ErrInvalidExpires  = fmt.Errorf("%w: expires", ErrInvalidArgument)
	ErrInvalidPriority = fmt.Errorf("%w: priority", ErrInvalidArgument)
	ErrInvalidSameSite = fmt.Errorf("%w: sameSite", ErrInvalidArgument)
)

// invalid annotates a validation sentinel with the offending input.
func invalid(sentinel error, v any) error {
	return fmt.Errorf("%w: %q", sentinel, fmt.Sprint(v))
}
