package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tables/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("roll")

	id := gen.Generate()
	require.True(t, strings.HasPrefix(id, "roll_"))

	_, err := uuid.Parse(strings.TrimPrefix(id, "roll_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, gen.Generate())
}

func TestUUIDGenerator_NoPrefix(t *testing.T) {
	_, err := uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("roll")
	assert.Equal(t, "roll_1", gen.Generate())
	assert.Equal(t, "roll_2", gen.Generate())

	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestSequentialGenerator_Concurrent(t *testing.T) {
	gen := idgen.NewSequential("")

	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(gen.Generate(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
}
