package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ConstraintViolationKind abstracts the backend's constraint error codes so
// the engines never inspect driver-specific values.
type ConstraintViolationKind int

const (
	NoViolation ConstraintViolationKind = iota
	CheckFailed
	UniqueViolated
	ForeignKeyViolated
	// ExclusionViolated is part of the taxonomy for backends with exclusion
	// constraints. sqlite has none, so period overlaps are asserted in the
	// transaction instead and never reach this mapping.
	ExclusionViolated
)

// ViolationKind normalizes a storage error into a ConstraintViolationKind.
// Returns NoViolation for anything that is not a constraint failure.
func ViolationKind(err error) ConstraintViolationKind {
	if err == nil {
		return NoViolation
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NoViolation
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintCheck:
		return CheckFailed
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolated
	case sqlite3.ErrConstraintForeignKey:
		return ForeignKeyViolated
	default:
		return NoViolation
	}
}
