package usecase

import "errors"

var (
	// ErrProductNotFound is returned when no product matches the given id.
	ErrProductNotFound = errors.New("product not found")

	// ErrNotProductOwner is returned when a write targets a product the
	// requester does not own.
	ErrNotProductOwner = errors.New("product can only be changed by its owner")
)
