package repository

import (
	"context"

	"clinic-api/pkg/jsonpatch"
)

// CrudRepository is the persistence contract shared by every clinic entity.
// FindByID returns (nil, nil) when no row matches.
type CrudRepository[E any] interface {
	Insert(ctx context.Context, item *E) error
	ListAll(ctx context.Context) ([]E, error)
	FindByID(ctx context.Context, id int) (*E, error)
	Update(ctx context.Context, item *E) error
	PartialUpdate(ctx context.Context, patch jsonpatch.Patch, item *E) error
	Delete(ctx context.Context, item *E) error
}
