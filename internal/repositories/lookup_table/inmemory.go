package lookuptable

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

// InMemoryRepository implements Repository with a process-local map. Tables
// are copied on the way in and out so callers never share row maps.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*tables.LookupTable
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates an empty in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*tables.LookupTable),
	}
}

// Save validates and stores a copy of the table
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := input.Table.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.Table.Name]
	r.store[input.Table.Name] = copyTable(input.Table)

	return &SaveOutput{Created: !exists}, nil
}

// Get returns a copy of the named table
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	table, exists := r.store[input.Name]
	if !exists {
		return nil, errors.NotFoundf("table %q not found", input.Name).
			WithMeta("table", input.Name)
	}

	return &GetOutput{Table: copyTable(table)}, nil
}

// List returns stored names in ascending order
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.store))
	for name := range r.store {
		names = append(names, name)
	}
	sort.Strings(names)

	return &ListOutput{Names: names}, nil
}

// Delete removes the named table
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Name]; !exists {
		return nil, errors.NotFoundf("table %q not found", input.Name).
			WithMeta("table", input.Name)
	}
	delete(r.store, input.Name)

	return &DeleteOutput{}, nil
}

func copyTable(src *tables.LookupTable) *tables.LookupTable {
	dst := &tables.LookupTable{
		Name:     src.Name,
		Notation: src.Notation,
		Columns:  append([]string(nil), src.Columns...),
		Rows:     make([]tables.TableRow, len(src.Rows)),
	}
	for i, row := range src.Rows {
		results := make(map[string]string, len(row.Results))
		for k, v := range row.Results {
			results[k] = v
		}
		dst.Rows[i] = tables.TableRow{Range: row.Range, Results: results}
	}
	return dst
}
