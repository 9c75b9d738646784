package gravity

import "errors"

// Domain errors for system construction and operations.
var (
	// ErrDuplicateName indicates two bodies with the same name at construction.
	ErrDuplicateName = errors.New("gravity: duplicate body name")

	// ErrDimensionMismatch indicates bodies with differing vector lengths.
	ErrDimensionMismatch = errors.New("gravity: dimension mismatch between bodies")

	// ErrNegativeMass indicates a body with mass below zero.
	ErrNegativeMass = errors.New("gravity: negative mass")

	// ErrEmptySystem indicates construction from zero bodies.
	ErrEmptySystem = errors.New("gravity: system needs at least one body")

	// ErrUnknownBody indicates a lookup for a name not in the system.
	ErrUnknownBody = errors.New("gravity: unknown body")

	// ErrDegenerateSystem indicates zero total mass where a mass-weighted
	// average is required.
	ErrDegenerateSystem = errors.New("gravity: total mass is zero")

	// ErrCoincidentBodies indicates two distinct bodies at the same position,
	// where the pairwise force is singular.
	ErrCoincidentBodies = errors.New("gravity: coincident bodies")
)
