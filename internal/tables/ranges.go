package tables

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

// Bounds is an inclusive roll range
type Bounds struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Contains reports whether roll falls inside the bounds
func (b Bounds) Contains(roll int) bool {
	return b.Low <= roll && roll <= b.High
}

// ParseRange parses a range cell of the form "r" or "r-s". Whitespace
// anywhere in the cell is ignored. Bounds are not checked for order.
func ParseRange(cell string) (Bounds, error) {
	s := strings.Join(strings.Fields(cell), "")
	if s == "" {
		return Bounds{}, malformedRange(cell, "range is empty")
	}

	sep := -1
	for i, c := range s {
		if c == '-' {
			if sep >= 0 {
				return Bounds{}, malformedRange(cell, "more than one separator")
			}
			sep = i
			continue
		}
		if c < '0' || c > '9' {
			return Bounds{}, malformedRange(cell, "only digits and a single '-' are allowed")
		}
	}

	if sep < 0 {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Bounds{}, malformedRange(cell, "value out of range")
		}
		return Bounds{Low: n, High: n}, nil
	}

	low, err := strconv.Atoi(s[:sep])
	if err != nil {
		return Bounds{}, malformedRange(cell, "missing or invalid low bound")
	}
	high, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return Bounds{}, malformedRange(cell, "missing or invalid high bound")
	}

	return Bounds{Low: low, High: high}, nil
}

func malformedRange(cell, reason string) error {
	return errors.WrapWithCodef(ErrMalformedRange, errors.CodeInvalidArgument,
		"range %q: %s", cell, reason).
		WithMeta("range", cell)
}
