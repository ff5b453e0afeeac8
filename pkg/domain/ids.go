// Package domain holds identifier primitives shared across the service.
// IDs are distinct string types so the compiler rejects cross-assignment
// (an EntityID can never be passed where a ListID is expected).
package domain

import (
	dErrors "watchlist/pkg/domain-errors"
)

const maxIDLength = 64

// EntityID identifies one reference-list entity within the system.
// It is opaque: ingestion assigns it and matching only ever compares it.
type EntityID string

// ParseEntityID validates an entity ID at a trust boundary.
func ParseEntityID(s string) (EntityID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "entity id is required")
	}
	if len(s) > maxIDLength {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "entity id exceeds %d characters", maxIDLength)
	}
	return EntityID(s), nil
}

func (e EntityID) String() string { return string(e) }

// IsNil returns true for the zero value.
func (e EntityID) IsNil() bool { return e == "" }

// ListID identifies the source designation list an entity was published on
// (e.g. "ofac-sdn", "eu-consolidated").
type ListID string

// ParseListID validates a list ID at a trust boundary.
func ParseListID(s string) (ListID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "list id is required")
	}
	if len(s) > maxIDLength {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "list id exceeds %d characters", maxIDLength)
	}
	return ListID(s), nil
}

func (l ListID) String() string { return string(l) }

// IsNil returns true for the zero value.
func (l ListID) IsNil() bool { return l == "" }
