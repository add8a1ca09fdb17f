package dice

import (
	"log/slog"
	"strconv"
	"strings"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

// ParseNotation parses "NdM" or "dM" (case-insensitive) into a plain spec
// with no drops. The count defaults to 1 and the string is split on the
// first d.
func ParseNotation(s string) (RollSpec, error) {
	trimmed := strings.TrimSpace(s)

	sep := strings.IndexAny(trimmed, "dD")
	if sep < 0 {
		return RollSpec{}, malformedNotation(s, "missing die separator")
	}

	count := 1
	if countPart := trimmed[:sep]; countPart != "" {
		n, err := strconv.Atoi(countPart)
		if err != nil {
			return RollSpec{}, malformedNotation(s, "dice count is not an integer")
		}
		if n < 1 {
			return RollSpec{}, malformedNotation(s, "dice count must be positive")
		}
		if n > MaxCount {
			return RollSpec{}, malformedNotation(s, "dice count exceeds "+strconv.Itoa(MaxCount))
		}
		count = n
	}

	size, err := strconv.Atoi(trimmed[sep+1:])
	if err != nil {
		return RollSpec{}, malformedNotation(s, "die size is not an integer")
	}
	if size < 2 {
		return RollSpec{}, malformedNotation(s, "die size must be at least 2")
	}

	return RollSpec{
		DieFaces: size,
		Policy:   PolicyPlain,
		Count:    count,
	}, nil
}

// MustParseNotation parses s and panics on error. Useful for package-level
// values.
func MustParseNotation(s string) RollSpec {
	spec, err := ParseNotation(s)
	if err != nil {
		panic("dice: MustParseNotation(" + strconv.Quote(s) + "): " + err.Error())
	}
	return spec
}

// RollNotation parses s and rolls it once with source
func RollNotation(s string, source toolkitdice.Roller, logger *slog.Logger) (int, error) {
	spec, err := ParseNotation(s)
	if err != nil {
		return 0, err
	}

	roller, err := NewRoller(&Config{
		Spec:   spec,
		Source: source,
		Logger: logger,
	})
	if err != nil {
		return 0, err
	}

	return roller.Roll()
}

func malformedNotation(s, reason string) error {
	return errors.WrapWithCodef(ErrMalformedNotation, errors.CodeInvalidArgument,
		"dice notation %q: %s (expected NdM or dM)", s, reason).
		WithMeta("notation", s)
}
