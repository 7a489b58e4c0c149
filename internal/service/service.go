package service

import (
	"context"

	"cereal-api/internal/model"
)

// ListParams carries the raw filter and sort parameters of the list
// endpoint. Empty strings mean "not provided".
type ListParams struct {
	Column   string
	Value    string
	Operator string
	SortBy   string
}

// CerealService defines the business logic for cereal operations.
type CerealService interface {
	// List returns cereals matching the optional filter, ordered per the
	// optional sort directive.
	List(ctx context.Context, params ListParams) ([]model.Cereal, error)

	// GetByID returns a single cereal or ErrCerealNotFound.
	GetByID(ctx context.Context, id int) (*model.Cereal, error)

	// CreateOrUpdate inserts a new record when the request has no ID, or
	// overwrites all fields of the identified record.
	CreateOrUpdate(ctx context.Context, req *model.CerealRequest) (*model.Cereal, error)

	// DeleteByName removes the named record or returns ErrCerealNotFound.
	DeleteByName(ctx context.Context, name string) error
}

// UserService defines the business logic for credential registration.
type UserService interface {
	// Register validates and stores a new credential.
	Register(ctx context.Context, req *model.RegisterRequest) error
}
