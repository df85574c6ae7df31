package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrMaterialNotFound  = errors.New("material not found in movement data")
	ErrMalformedQuantity = errors.New("malformed quantity value")
	ErrMissingColumn     = errors.New("required column missing")
	ErrNoMovements       = errors.New("material has no movement records")
	ErrFamilyNotFound    = errors.New("substrate family not found")
)
