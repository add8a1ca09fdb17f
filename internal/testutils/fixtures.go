package testutils

import (
	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

// CreateTestTable returns a valid single-column d6 table. Rolls of 6 land on
// the nothing sentinel.
func CreateTestTable(name string) *tables.LookupTable {
	return &tables.LookupTable{
		Name:     name,
		Notation: "d6",
		Columns:  []string{tables.DefaultResultColumn},
		Rows: []tables.TableRow{
			{Range: "1-3", Results: map[string]string{tables.DefaultResultColumn: "clear"}},
			{Range: "4-5", Results: map[string]string{tables.DefaultResultColumn: "rain"}},
			{Range: "6", Results: map[string]string{tables.DefaultResultColumn: tables.NothingSentinel}},
		},
	}
}

// CreateTestCompositeTable returns a valid 2d6 table with three result
// columns and no Results column, so it resolves as a composite
func CreateTestCompositeTable(name string) *tables.LookupTable {
	return &tables.LookupTable{
		Name:     name,
		Notation: "2d6",
		Columns:  []string{"Faction", "Attitude", "Strength"},
		Rows: []tables.TableRow{
			{Range: "2-4", Results: map[string]string{"Faction": "Bandits", "Attitude": "hostile", "Strength": "weak"}},
			{Range: "5-9", Results: map[string]string{"Faction": "-", "Attitude": "-", "Strength": "-"}},
			{Range: "10-12", Results: map[string]string{"Faction": "Crown", "Attitude": "wary", "Strength": "strong"}},
		},
	}
}
