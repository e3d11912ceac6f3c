package console

import "errors"

// ErrDuplicateToken is returned when two commands normalize to the same token.
var ErrDuplicateToken = errors.New("duplicate command token")
