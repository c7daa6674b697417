package repository

import (
	"context"
	"errors"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.

// ErrPersistence is returned when a transaction cannot be opened or committed.
var ErrPersistence = errors.New("persistence failed")

// UnitOfWork runs fn inside a single database transaction.
// The repository handed to fn is bound to that transaction; it is committed when fn returns nil
// and rolled back otherwise. Commit failures surface as ErrPersistence.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(docs DocumentRepository) error) error
}
