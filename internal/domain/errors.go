// internal/domain/errors.go
package domain

import "errors"

// Engine error taxonomy. All of these are local, recoverable conditions:
// the ledger is left untouched whenever one of them is returned.
var (
	// ErrMalformedCommand means the scan text could not be parsed
	ErrMalformedCommand = errors.New("malformed command")

	// ErrInvalidQuantity means a scan carried a zero or negative quantity
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrBinNotFound means an explicitly targeted bin does not exist
	ErrBinNotFound = errors.New("bin not found")

	// ErrInvalidCapacity means a bin was seeded or created with a
	// non-positive capacity, or quantity exceeding capacity
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrInvalidDemandProfile means a demand profile has a non-positive
	// lead time; the recommendation for that SKU is omitted
	ErrInvalidDemandProfile = errors.New("invalid demand profile")
)
