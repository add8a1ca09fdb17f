// Package dice rolls batches of dice under plain, advantage and
// disadvantage policies, optionally dropping extreme results, and parses
// compact dice notation.
package dice

import (
	"log/slog"
	"sort"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

// Config holds the dependencies for a Roller
type Config struct {
	Spec RollSpec

	// Source provides the randomness. Defaults to the toolkit's
	// DefaultRoller.
	Source toolkitdice.Roller

	// Logger receives debug records for every draw and roll. Defaults to
	// discarding them.
	Logger *slog.Logger
}

// Validate ensures the spec is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	return c.Spec.Validate()
}

// Roller executes a validated RollSpec. It holds no per-roll state; every
// Roll call draws fresh values from the source.
type Roller struct {
	spec   RollSpec
	source toolkitdice.Roller
	logger *slog.Logger
}

// Result is the audit record of one roll
type Result struct {
	Spec RollSpec

	// Draws holds the raw values per die: one for plain, two otherwise
	Draws [][]int

	// Kept are the values summed into Total, ascending
	Kept []int

	// Dropped are the discarded extremes, ascending
	Dropped []int

	Total int
}

// NewRoller validates the config and returns a Roller
func NewRoller(cfg *Config) (*Roller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spec := cfg.Spec
	spec.Policy = spec.policy()

	source := cfg.Source
	if source == nil {
		source = toolkitdice.DefaultRoller
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Roller{
		spec:   spec,
		source: source,
		logger: logger,
	}, nil
}

// Spec returns the roller's configuration
func (r *Roller) Spec() RollSpec {
	return r.spec
}

// Roll executes the batch and returns the summed total
func (r *Roller) Roll() (int, error) {
	result, err := r.RollDetailed()
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// RollDetailed executes the batch and returns every intermediate value.
// Values are sorted ascending, then DropCount are removed from the low end
// when DropFromLow is set and from the high end otherwise.
func (r *Roller) RollDetailed() (*Result, error) {
	draws := make([][]int, 0, r.spec.Count)
	values := make([]int, 0, r.spec.Count)

	for i := 0; i < r.spec.Count; i++ {
		raw, value, err := r.drawDie()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll die %d of %s", i+1, r.spec)
		}
		draws = append(draws, raw)
		values = append(values, value)
	}

	sort.Ints(values)

	kept := values
	var dropped []int
	if n := r.spec.DropCount; n > 0 {
		if r.spec.DropFromLow {
			dropped = values[:n]
			kept = values[n:]
		} else {
			kept = values[:len(values)-n]
			dropped = values[len(values)-n:]
		}
	}

	total := 0
	for _, v := range kept {
		total += v
	}

	r.logger.Debug("dice rolled",
		"spec", r.spec.String(),
		"sorted", values,
		"kept", kept,
		"dropped", dropped,
		"total", total,
	)

	return &Result{
		Spec:    r.spec,
		Draws:   draws,
		Kept:    kept,
		Dropped: dropped,
		Total:   total,
	}, nil
}

// drawDie returns the raw draws for one die and the value the policy keeps
func (r *Roller) drawDie() ([]int, int, error) {
	first, err := r.drawOne()
	if err != nil {
		return nil, 0, err
	}
	if r.spec.Policy == PolicyPlain {
		return []int{first}, first, nil
	}

	second, err := r.drawOne()
	if err != nil {
		return nil, 0, err
	}

	kept := first
	switch r.spec.Policy {
	case PolicyAdvantage:
		if second > kept {
			kept = second
		}
	case PolicyDisadvantage:
		if second < kept {
			kept = second
		}
	}

	r.logger.Debug("dice draw",
		"policy", string(r.spec.Policy),
		"die", r.spec.DieFaces,
		"first", first,
		"second", second,
		"kept", kept,
	)

	return []int{first, second}, kept, nil
}

func (r *Roller) drawOne() (int, error) {
	v, err := r.source.Roll(r.spec.DieFaces)
	if err != nil {
		return 0, errors.Wrap(err, "dice source failed")
	}
	if v < 1 || v > r.spec.DieFaces {
		return 0, errors.Internalf("dice source returned %d for a d%d", v, r.spec.DieFaces)
	}
	return v, nil
}
