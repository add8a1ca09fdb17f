package dice

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

// Policy decides how the value of a single die is drawn
type Policy string

const (
	// PolicyPlain draws once
	PolicyPlain Policy = "normal"
	// PolicyAdvantage draws twice and keeps the higher value
	PolicyAdvantage Policy = "advantage"
	// PolicyDisadvantage draws twice and keeps the lower value
	PolicyDisadvantage Policy = "disadvantage"
)

// MaxCount bounds the number of dice in one roll
const MaxCount = 1000

// Configuration errors. They are returned wrapped in an INVALID_ARGUMENT
// *errors.Error, so match them with errors.Is.
var (
	ErrInvalidDieSize    = stderrors.New("invalid die size")
	ErrInvalidPolicy     = stderrors.New("invalid roll policy")
	ErrInvalidCount      = stderrors.New("invalid dice count")
	ErrInvalidDropCount  = stderrors.New("invalid drop count")
	ErrDropExceedsCount  = stderrors.New("drop count exceeds dice count")
	ErrMalformedNotation = stderrors.New("malformed dice notation")
)

// ParsePolicy converts a case-insensitive policy name. An empty string is
// the plain policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPlain:
		return PolicyPlain, nil
	case PolicyAdvantage:
		return PolicyAdvantage, nil
	case PolicyDisadvantage:
		return PolicyDisadvantage, nil
	default:
		return "", errors.WrapWithCodef(ErrInvalidPolicy, errors.CodeInvalidArgument,
			"roll policy must be %q, %q or %q, got %q", PolicyPlain, PolicyAdvantage, PolicyDisadvantage, s).
			WithMeta("policy", s)
	}
}

// Valid reports whether p is one of the known policies
func (p Policy) Valid() bool {
	switch p {
	case PolicyPlain, PolicyAdvantage, PolicyDisadvantage:
		return true
	default:
		return false
	}
}

// RollSpec configures a batch of dice. The zero Policy means plain.
type RollSpec struct {
	DieFaces int
	Policy   Policy
	Count    int

	// DropCount extreme values are discarded from the sorted results
	// before summing.
	DropCount int

	// DropFromLow discards the DropCount lowest values when true (keep the
	// highest) and the DropCount highest values when false.
	DropFromLow bool
}

// Validate returns the first configuration error in the spec
func (s RollSpec) Validate() error {
	if s.DieFaces <= 1 {
		return errors.WrapWithCodef(ErrInvalidDieSize, errors.CodeInvalidArgument,
			"die faces must be greater than 1, got %d", s.DieFaces).
			WithMeta("die_faces", s.DieFaces)
	}
	if !s.policy().Valid() {
		return errors.WrapWithCodef(ErrInvalidPolicy, errors.CodeInvalidArgument,
			"roll policy must be %q, %q or %q, got %q", PolicyPlain, PolicyAdvantage, PolicyDisadvantage, s.Policy).
			WithMeta("policy", string(s.Policy))
	}
	if s.Count < 1 {
		return errors.WrapWithCodef(ErrInvalidCount, errors.CodeInvalidArgument,
			"dice count must be at least 1, got %d", s.Count).
			WithMeta("count", s.Count)
	}
	if s.Count > MaxCount {
		return errors.WrapWithCodef(ErrInvalidCount, errors.CodeInvalidArgument,
			"dice count must be at most %d, got %d", MaxCount, s.Count).
			WithMeta("count", s.Count)
	}
	if s.DropCount < 0 {
		return errors.WrapWithCodef(ErrInvalidDropCount, errors.CodeInvalidArgument,
			"drop count must be 0 or greater, got %d", s.DropCount).
			WithMeta("drop_count", s.DropCount)
	}
	if s.DropCount >= s.Count {
		return errors.WrapWithCodef(ErrDropExceedsCount, errors.CodeInvalidArgument,
			"drop count must be less than dice count, got drop %d of %d", s.DropCount, s.Count).
			WithMeta("drop_count", s.DropCount).
			WithMeta("count", s.Count)
	}
	return nil
}

// String renders the spec in dice notation, e.g. "4d6dl1" or "1d20adv"
func (s RollSpec) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", s.Count, s.DieFaces)

	switch s.policy() {
	case PolicyAdvantage:
		b.WriteString("adv")
	case PolicyDisadvantage:
		b.WriteString("dis")
	}

	if s.DropCount > 0 {
		if s.DropFromLow {
			fmt.Fprintf(&b, "dl%d", s.DropCount)
		} else {
			fmt.Fprintf(&b, "dh%d", s.DropCount)
		}
	}

	return b.String()
}

func (s RollSpec) policy() Policy {
	if s.Policy == "" {
		return PolicyPlain
	}
	return s.Policy
}
