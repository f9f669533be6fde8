package storage

import (
	"context"
	"errors"
)

// Collection names used across the application.
const (
	Users  = "users"
	Tokens = "tokens"
	Carts  = "shoppingcart"
	Orders = "orders"
	Menu   = "menu"
)

// MenuKey is the single record id holding the menu catalogue.
const MenuKey = "menu"

var (
	// ErrAlreadyExists is returned by Create when the record id is taken.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrNotFound is returned by Update when the record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Store persists JSON records grouped into named collections. Create is the
// only atomic primitive: it fails with ErrAlreadyExists when the id is taken,
// which is what guards duplicate signups and double cart initialisation.
// Update is a plain overwrite of an existing record.
type Store interface {
	// Create persists a new record, failing with ErrAlreadyExists if the id
	// is already present in the collection.
	Create(ctx context.Context, collection, id string, value any) error

	// Read unmarshals the record into out and reports whether it was found.
	// Absent or unreadable records yield (false, nil), never an error.
	Read(ctx context.Context, collection, id string, out any) (bool, error)

	// Update overwrites an existing record, failing with ErrNotFound if the
	// record is not present.
	Update(ctx context.Context, collection, id string, value any) error

	// Delete removes the record and reports whether a deletion occurred. It
	// never fails on absence.
	Delete(ctx context.Context, collection, id string) bool

	// List returns the ids of every record in the collection; an empty or
	// missing collection yields an empty slice.
	List(ctx context.Context, collection string) ([]string, error)
}
