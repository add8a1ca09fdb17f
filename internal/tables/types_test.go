package tables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
	"github.com/KirkDiggler/rpg-tables/internal/tables"
)

func TestLookupTable_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*tables.LookupTable)
		wantFields []string
	}{
		{
			name:   "valid",
			mutate: func(*tables.LookupTable) {},
		},
		{
			name: "empty first range and placeholder rows are allowed",
			mutate: func(lt *tables.LookupTable) {
				lt.Rows[0].Range = ""
				lt.Rows = append(lt.Rows, tables.TableRow{Range: "-"})
			},
		},
		{
			name:   "unreadable first range is allowed",
			mutate: func(lt *tables.LookupTable) { lt.Rows[0].Range = "nan" },
		},
		{
			name:       "missing name",
			mutate:     func(lt *tables.LookupTable) { lt.Name = " " },
			wantFields: []string{"name"},
		},
		{
			name:       "missing notation",
			mutate:     func(lt *tables.LookupTable) { lt.Notation = "" },
			wantFields: []string{"notation"},
		},
		{
			name:       "bad notation",
			mutate:     func(lt *tables.LookupTable) { lt.Notation = "2x6" },
			wantFields: []string{"notation"},
		},
		{
			name:       "no columns",
			mutate:     func(lt *tables.LookupTable) { lt.Columns = nil },
			wantFields: []string{"columns"},
		},
		{
			name:       "duplicate column",
			mutate:     func(lt *tables.LookupTable) { lt.Columns = []string{"Results", "Results"} },
			wantFields: []string{"columns"},
		},
		{
			name:       "no rows",
			mutate:     func(lt *tables.LookupTable) { lt.Rows = nil },
			wantFields: []string{"rows"},
		},
		{
			name:       "malformed later range",
			mutate:     func(lt *tables.LookupTable) { lt.Rows[1].Range = "6-8-10" },
			wantFields: []string{"rows"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := simpleTable()
			tt.mutate(table)

			err := table.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))

			fieldErrors, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
			require.True(t, ok)
			for _, field := range tt.wantFields {
				assert.Contains(t, fieldErrors, field)
			}
		})
	}
}

func TestLookupTable_ValidateNil(t *testing.T) {
	var table *tables.LookupTable
	assert.True(t, errors.IsInvalidArgument(table.Validate()))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, tables.NothingResult, tables.Normalize("-"))
	assert.Equal(t, tables.NothingResult, tables.Normalize(" - "))
	assert.Equal(t, "--", tables.Normalize("--"))
	assert.Equal(t, "a cave", tables.Normalize("a cave"))
	assert.Equal(t, "", tables.Normalize(""))
}
