package units

import "errors"

// Error kinds shared by every package of the module. Concrete errors wrap one
// of these so callers can classify a failure with errors.Is.
var (
	// ErrConfiguration marks setup-time mistakes: duplicate registrations,
	// conversions before a base unit exists, zero-scale converters.
	ErrConfiguration = errors.New("configuration error")

	// ErrMismatch marks operands whose dimensions or units are incompatible.
	ErrMismatch = errors.New("dimension or unit mismatch")

	// ErrNotFound marks lookups of units, converters or operations that are
	// not registered.
	ErrNotFound = errors.New("not found")

	// ErrInvariant marks internal inconsistencies that a well-formed graph or
	// registry never produces.
	ErrInvariant = errors.New("invariant violation")
)
