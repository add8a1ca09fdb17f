package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tables/internal/dice"
	"github.com/KirkDiggler/rpg-tables/internal/errors"
)

func TestRollSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    dice.RollSpec
		wantErr error
	}{
		{
			name: "single d20",
			spec: dice.RollSpec{DieFaces: 20, Count: 1},
		},
		{
			name: "4d6 drop lowest",
			spec: dice.RollSpec{DieFaces: 6, Count: 4, DropCount: 1, DropFromLow: true},
		},
		{
			name: "advantage",
			spec: dice.RollSpec{DieFaces: 20, Count: 1, Policy: dice.PolicyAdvantage},
		},
		{
			name:    "one-sided die",
			spec:    dice.RollSpec{DieFaces: 1, Count: 1},
			wantErr: dice.ErrInvalidDieSize,
		},
		{
			name:    "zero-sided die",
			spec:    dice.RollSpec{DieFaces: 0, Count: 1},
			wantErr: dice.ErrInvalidDieSize,
		},
		{
			name:    "unknown policy",
			spec:    dice.RollSpec{DieFaces: 6, Count: 1, Policy: "lucky"},
			wantErr: dice.ErrInvalidPolicy,
		},
		{
			name:    "zero dice",
			spec:    dice.RollSpec{DieFaces: 6, Count: 0},
			wantErr: dice.ErrInvalidCount,
		},
		{
			name:    "too many dice",
			spec:    dice.RollSpec{DieFaces: 6, Count: dice.MaxCount + 1},
			wantErr: dice.ErrInvalidCount,
		},
		{
			name: "max dice",
			spec: dice.RollSpec{DieFaces: 6, Count: dice.MaxCount},
		},
		{
			name:    "negative drop",
			spec:    dice.RollSpec{DieFaces: 6, Count: 3, DropCount: -1},
			wantErr: dice.ErrInvalidDropCount,
		},
		{
			name:    "drop equals count",
			spec:    dice.RollSpec{DieFaces: 6, Count: 3, DropCount: 3},
			wantErr: dice.ErrDropExceedsCount,
		},
		{
			name:    "die size checked before count",
			spec:    dice.RollSpec{DieFaces: 1, Count: 0},
			wantErr: dice.ErrInvalidDieSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestRollSpec_String(t *testing.T) {
	tests := []struct {
		spec dice.RollSpec
		want string
	}{
		{dice.RollSpec{DieFaces: 20, Count: 1}, "1d20"},
		{dice.RollSpec{DieFaces: 6, Count: 4, DropCount: 1, DropFromLow: true}, "4d6dl1"},
		{dice.RollSpec{DieFaces: 6, Count: 5, DropCount: 2}, "5d6dh2"},
		{dice.RollSpec{DieFaces: 8, Count: 12, Policy: dice.PolicyAdvantage}, "12d8adv"},
		{dice.RollSpec{DieFaces: 20, Count: 1, Policy: dice.PolicyDisadvantage}, "1d20dis"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.String())
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    dice.Policy
		wantErr bool
	}{
		{"", dice.PolicyPlain, false},
		{"normal", dice.PolicyPlain, false},
		{"Advantage", dice.PolicyAdvantage, false},
		{" DISADVANTAGE ", dice.PolicyDisadvantage, false},
		{"double", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dice.ParsePolicy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, dice.ErrInvalidPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
