package usecase

import "errors"

// ErrInvalidParams marks requests rejected before any I/O.
var ErrInvalidParams = errors.New("invalid parameters")
