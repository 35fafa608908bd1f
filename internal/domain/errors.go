package domain

import "errors"

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidImageIndex is returned when an image index is out of range
	ErrInvalidImageIndex = errors.New("invalid image index")

	// ErrNotDelivered is returned when a review is submitted for a product
	// absent from the caller's delivered orders
	ErrNotDelivered = errors.New("product not found in user's delivered orders")

	// ErrNoFiles is returned when an image upload carries no files
	ErrNoFiles = errors.New("no files were uploaded")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)
