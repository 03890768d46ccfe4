package tex2soy

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySourcePath = errors.New("source path cannot be empty")
	ErrInvalidMode     = errors.New("invalid conversion mode")
	ErrInvalidRules    = errors.New("invalid rule tables")
)
