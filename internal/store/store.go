// Package store persists document metadata records keyed uniquely by
// filename.
package store

import (
	"context"

	"docrag/internal/models"
)

// Store is the metadata record store the orchestrators depend on. Filename is
// unique: Insert for an existing filename fails with a conflict, it never
// overwrites. The uniqueness constraint is the authority for resolving
// concurrent uploads of the same name (the second writer loses).
type Store interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, meta *models.DocumentMetadata) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]models.DocumentMetadata, error)
	Close() error
}
