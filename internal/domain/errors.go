package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a request that failed validation and must
	// not be retried as-is.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOrderExists indicates an order identifier collision. The write is
	// aborted; an existing order is never overwritten.
	ErrOrderExists = errors.New("order already exists")

	// ErrMergeInProgress indicates a cart merge is already running for the
	// same owner.
	ErrMergeInProgress = errors.New("cart merge already in progress")
)
