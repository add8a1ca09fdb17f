// Package lookuptable stores finalized lookup tables by name
package lookuptable

import (
	"context"

	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=lookuptablemock github.com/KirkDiggler/rpg-tables/internal/repositories/lookup_table Repository

// SaveInput contains the table to store
type SaveInput struct {
	Table *tables.LookupTable
}

// SaveOutput reports whether the table was new
type SaveOutput struct {
	Created bool
}

// GetInput identifies a table
type GetInput struct {
	Name string
}

// GetOutput contains the stored table
type GetOutput struct {
	Table *tables.LookupTable
}

// ListInput is empty; tables are few enough to list in one call
type ListInput struct{}

// ListOutput contains table names in ascending order
type ListOutput struct {
	Names []string
}

// DeleteInput identifies the table to remove
type DeleteInput struct {
	Name string
}

// DeleteOutput is returned on successful delete
type DeleteOutput struct{}

// Repository defines storage for lookup tables
type Repository interface {
	// Save validates and stores a table, replacing one with the same name
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get returns a table or NOT_FOUND
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns the names of all stored tables
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a table or returns NOT_FOUND
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
