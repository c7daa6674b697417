package repository

import (
	"context"

	"coursedocs/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
// Lookups of a missing row return sql.ErrNoRows.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByIDForUpdate is FindByID with a row lock; only meaningful inside a transaction.
	FindByIDForUpdate(ctx context.Context, id string) (*model.Document, error)

	// Update writes the mutable columns of doc (metadata, review state, paths).
	Update(ctx context.Context, doc *model.Document) error

	// List returns a paginated list of documents and total rows count for the given filter.
	List(ctx context.Context, f DocumentFilter, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// DocumentFilter narrows List. Zero values match everything.
type DocumentFilter struct {
	Status   model.Status
	CourseID string
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
