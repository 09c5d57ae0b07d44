package subscription

import "errors"

var (
	ErrNotFound     = errors.New("subscription not found")
	ErrInvalidInput = errors.New("invalid input")
)
