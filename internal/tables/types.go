// Package tables resolves dice rolls against row-range lookup tables.
package tables

import (
	stderrors "errors"
	"strings"

	"github.com/KirkDiggler/rpg-tables/internal/dice"
	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

const (
	// NothingSentinel in a result cell means "no effect". As a range cell it
	// marks a placeholder row that never matches.
	NothingSentinel = "-"

	// NothingResult replaces NothingSentinel in resolved values
	NothingResult = "nothing"

	// DefaultResultColumn is read when a table has more than one result
	// column and the caller names none
	DefaultResultColumn = "Results"

	// CompositeSeparator joins "Column: value" pairs in composite results
	CompositeSeparator = "; "
)

var (
	// ErrMalformedRange is returned for range cells outside the r / r-s grammar
	ErrMalformedRange = stderrors.New("malformed range")

	// ErrNoMatchingRow is returned when no row covers the roll
	ErrNoMatchingRow = stderrors.New("no matching row")

	// ErrMissingColumn is returned when the requested result column does not exist
	ErrMissingColumn = stderrors.New("missing result column")
)

// TableRow is one row of a lookup table
type TableRow struct {
	// Range is the raw range cell: "r", "r-s" or "-". It may be empty on the
	// first row when the import lost a leading 1.
	Range string `json:"range"`

	// Results maps result column name to cell value
	Results map[string]string `json:"results"`
}

// LookupTable is an ordered set of rows covering a roll domain. Rows are
// expected to ascend without gaps from 1 to the maximum of Notation.
type LookupTable struct {
	Name string `json:"name"`

	// Notation is the header of the range column, e.g. "2d10"
	Notation string `json:"notation"`

	// Columns are the result column names in declared order
	Columns []string `json:"columns"`

	Rows []TableRow `json:"rows"`
}

// Validate checks the table has what resolution needs: a name, a parseable
// notation, at least one result column and row, and range cells that follow
// the grammar. The first row's range is not checked since resolution reads
// an unparseable one as 1. Contiguity is the caller's responsibility.
func (t *LookupTable) Validate() error {
	if t == nil {
		return errors.InvalidArgument("table is required")
	}

	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", t.Name, vb)
	if strings.TrimSpace(t.Notation) == "" {
		vb.RequiredField("notation")
	} else if _, err := dice.ParseNotation(t.Notation); err != nil {
		vb.Field("notation", errors.GetMessage(err))
	}

	if len(t.Columns) == 0 {
		vb.Field("columns", "must have at least one result column")
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		if strings.TrimSpace(col) == "" {
			vb.Field("columns", "column names must not be empty")
			continue
		}
		if seen[col] {
			vb.Fieldf("columns", "duplicate column %q", col)
		}
		seen[col] = true
	}

	if len(t.Rows) == 0 {
		vb.Field("rows", "must have at least one row")
	}
	for i, row := range t.Rows {
		cell := strings.TrimSpace(row.Range)
		if i == 0 || cell == NothingSentinel {
			continue
		}
		if _, err := ParseRange(cell); err != nil {
			vb.Fieldf("rows", "row %d: %s", i, errors.GetMessage(err))
		}
	}

	return vb.Build()
}

// HasColumn reports whether the table declares column
func (t *LookupTable) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Result is the outcome of resolving a roll against a table
type Result struct {
	Table string `json:"table"`
	Roll  int    `json:"roll"`

	// Row is the index of the matched row
	Row int `json:"row"`

	// Column is the column Value came from; empty for composite results
	Column string `json:"column,omitempty"`

	// Value is the normalized result
	Value string `json:"value"`

	// Fields holds every result column of the matched row, normalized
	Fields map[string]string `json:"fields"`
}

// Normalize replaces the "no effect" sentinel with NothingResult
func Normalize(value string) string {
	if strings.TrimSpace(value) == NothingSentinel {
		return NothingResult
	}
	return value
}
