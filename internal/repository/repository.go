package repository

import (
	"context"

	"cereal-api/internal/model"
	"cereal-api/internal/query"
)

// CerealRepository defines the interface for cereal data access operations.
type CerealRepository interface {
	// List retrieves cereals matching the optional filter. A nil filter
	// returns every record.
	List(ctx context.Context, filter *query.Filter) ([]model.Cereal, error)

	// GetByID retrieves a single cereal by its identifier. Returns nil
	// when no record matches.
	GetByID(ctx context.Context, id int) (*model.Cereal, error)

	// Insert creates a new cereal and returns its assigned identifier.
	// A duplicate name surfaces as a constraint error.
	Insert(ctx context.Context, c *model.Cereal) (int, error)

	// Update overwrites every field of the record with the given ID.
	Update(ctx context.Context, c *model.Cereal) error

	// DeleteByName removes the record with the given name and reports the
	// number of rows affected.
	DeleteByName(ctx context.Context, name string) (int64, error)

	// ExistsByID reports whether a record with the given identifier exists.
	ExistsByID(ctx context.Context, id int) (bool, error)

	// ExistsByName reports whether a record with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Count returns the total number of cereal records.
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for credential data access operations.
type UserRepository interface {
	// GetByUsername retrieves a credential by username. Returns nil when
	// no record matches.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Create inserts a new credential.
	Create(ctx context.Context, user *model.User) error
}
