package tables

import (
	"log/slog"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-tables/internal/dice"
	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

// Config holds the dependencies for a Resolver
type Config struct {
	// Logger receives debug records for row scans. Defaults to discarding them.
	Logger *slog.Logger
}

// Resolver finds the row of a LookupTable covering a roll. It keeps no
// state between calls and may be shared.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a Resolver. cfg may be nil.
func NewResolver(cfg *Config) *Resolver {
	logger := slog.New(slog.DiscardHandler)
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}
	return &Resolver{logger: logger}
}

// Resolve returns the result column of the row covering roll. A table with
// a single result column reads that column, otherwise DefaultResultColumn.
func (r *Resolver) Resolve(table *LookupTable, roll int) (*Result, error) {
	if table == nil {
		return nil, errors.InvalidArgument("table is required")
	}

	column := DefaultResultColumn
	if len(table.Columns) == 1 {
		column = table.Columns[0]
	}

	return r.ResolveColumn(table, roll, column)
}

// ResolveColumn returns column of the row covering roll
func (r *Resolver) ResolveColumn(table *LookupTable, roll int, column string) (*Result, error) {
	if table == nil {
		return nil, errors.InvalidArgument("table is required")
	}
	if !table.HasColumn(column) {
		return nil, errors.WrapWithCodef(ErrMissingColumn, errors.CodeInvalidArgument,
			"table %q has no column %q", table.Name, column).
			WithMeta("table", table.Name).
			WithMeta("column", column)
	}

	idx, err := r.matchRow(table, roll)
	if err != nil {
		return nil, err
	}

	fields := normalizedFields(table, idx)
	result := &Result{
		Table:  table.Name,
		Roll:   roll,
		Row:    idx,
		Column: column,
		Value:  fields[column],
		Fields: fields,
	}

	r.logger.Debug("table resolved",
		"table", table.Name,
		"roll", roll,
		"row", idx,
		"column", column,
		"value", result.Value,
	)

	return result, nil
}

// ResolveComposite joins every result column of the matched row, in
// declared order, as "Column: value" pairs separated by CompositeSeparator.
// A single-column table resolves to the plain value.
func (r *Resolver) ResolveComposite(table *LookupTable, roll int) (*Result, error) {
	if table == nil {
		return nil, errors.InvalidArgument("table is required")
	}
	if len(table.Columns) == 0 {
		return nil, errors.WrapWithCodef(ErrMissingColumn, errors.CodeInvalidArgument,
			"table %q has no result columns", table.Name).
			WithMeta("table", table.Name)
	}
	if len(table.Columns) == 1 {
		return r.ResolveColumn(table, roll, table.Columns[0])
	}

	idx, err := r.matchRow(table, roll)
	if err != nil {
		return nil, err
	}

	fields := normalizedFields(table, idx)
	parts := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		parts = append(parts, col+": "+fields[col])
	}

	result := &Result{
		Table:  table.Name,
		Roll:   roll,
		Row:    idx,
		Value:  strings.Join(parts, CompositeSeparator),
		Fields: fields,
	}

	r.logger.Debug("table resolved",
		"table", table.Name,
		"roll", roll,
		"row", idx,
		"composite", true,
		"value", result.Value,
	)

	return result, nil
}

// RollAndResolve rolls the table's own notation with source and resolves the
// total with ResolveDefault.
func (r *Resolver) RollAndResolve(table *LookupTable, source toolkitdice.Roller) (*Result, error) {
	if table == nil {
		return nil, errors.InvalidArgument("table is required")
	}

	spec, err := dice.ParseNotation(table.Notation)
	if err != nil {
		return nil, errors.Wrapf(err, "table %q has an invalid roll header", table.Name)
	}

	roller, err := dice.NewRoller(&dice.Config{
		Spec:   spec,
		Source: source,
		Logger: r.logger,
	})
	if err != nil {
		return nil, err
	}

	roll, err := roller.Roll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s for table %q", table.Notation, table.Name)
	}

	return r.ResolveDefault(table, roll)
}

// ResolveDefault resolves as a composite when the table has several result
// columns and no DefaultResultColumn, otherwise as Resolve does.
func (r *Resolver) ResolveDefault(table *LookupTable, roll int) (*Result, error) {
	if table == nil {
		return nil, errors.InvalidArgument("table is required")
	}
	if len(table.Columns) > 1 && !table.HasColumn(DefaultResultColumn) {
		return r.ResolveComposite(table, roll)
	}
	return r.Resolve(table, roll)
}

// matchRow returns the index of the first row covering roll. Placeholder
// rows are skipped and an unreadable first range counts as 1.
func (r *Resolver) matchRow(table *LookupTable, roll int) (int, error) {
	for i, row := range table.Rows {
		cell := strings.TrimSpace(row.Range)
		if cell == NothingSentinel {
			continue
		}

		bounds, err := ParseRange(cell)
		if err != nil {
			if i != 0 {
				return -1, errors.Wrapf(err, "table %q row %d", table.Name, i)
			}
			r.logger.Debug("first row range unreadable, treating as 1",
				"table", table.Name,
				"range", row.Range,
			)
			bounds = Bounds{Low: 1, High: 1}
		}

		if bounds.Contains(roll) {
			return i, nil
		}
	}

	return -1, errors.WrapWithCodef(ErrNoMatchingRow, errors.CodeNotFound,
		"no row in table %q covers roll %d", table.Name, roll).
		WithMeta("table", table.Name).
		WithMeta("roll", roll)
}

func normalizedFields(table *LookupTable, idx int) map[string]string {
	row := table.Rows[idx]
	fields := make(map[string]string, len(table.Columns))
	for _, col := range table.Columns {
		fields[col] = Normalize(row.Results[col])
	}
	return fields
}
