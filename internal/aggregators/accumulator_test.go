package aggregators

import (
	"sync"
	"testing"

	"webstrate-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulator_AddCreatesEntriesLazily(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	assert.Equal(t, 0, acc.Size())

	acc.Add("frontpage", "github:1", models.KindDom)
	acc.Add("frontpage", "github:1", models.KindDom)
	acc.Add("frontpage", "github:1", models.KindSignal)
	acc.Add("frontpage", "github:2", models.KindSignal)
	acc.Add("notes", "github:1", models.KindDom)

	taken := acc.Swap()
	require.Len(t, taken, 2)
	require.Len(t, taken["frontpage"], 2)

	assert.Equal(t, int64(2), taken["frontpage"]["github:1"].Dom)
	assert.Equal(t, int64(1), taken["frontpage"]["github:1"].Signal)
	assert.Equal(t, int64(1), taken["frontpage"]["github:2"].Signal)
	assert.Equal(t, int64(0), taken["frontpage"]["github:2"].Dom)
	assert.Equal(t, int64(1), taken["notes"]["github:1"].Dom)
}

func TestAccumulator_SwapInstallsFreshStructure(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.Add("frontpage", "github:1", models.KindDom)

	first := acc.Swap()
	require.Len(t, first, 1)
	assert.Equal(t, 0, acc.Size(), "swap must leave an empty accumulator behind")

	// Entries taken by a swap never reappear in a later one.
	acc.Add("notes", "github:2", models.KindSignal)
	second := acc.Swap()
	require.Len(t, second, 1)
	assert.NotContains(t, second, "frontpage")
	assert.Equal(t, int64(1), second["notes"]["github:2"].Signal)
}

func TestAccumulator_SwapOnEmpty(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	assert.Empty(t, acc.Swap())
}

// Every Add lands in exactly one swap interval: summing counters across all
// swapped-out structures plus the live accumulator always equals the number of
// Add calls, regardless of how adds and swaps interleave.
func TestAccumulator_NoLossNoDoubleCountAcrossSwaps(t *testing.T) {
	t.Parallel()

	const (
		writers        = 8
		addsPerWriter  = 1000
		concurrentSwap = 50
	)

	acc := NewAccumulator()

	var wg sync.WaitGroup
	swapped := make(chan map[string]map[string]*models.UserCounts, concurrentSwap)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < addsPerWriter; i++ {
				kind := models.KindDom
				if i%2 == 0 {
					kind = models.KindSignal
				}
				acc.Add("webstrate", "user", kind)
			}
		}(w)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < concurrentSwap; i++ {
			swapped <- acc.Swap()
		}
	}()

	wg.Wait()
	close(swapped)

	total := int64(0)
	for taken := range swapped {
		for _, users := range taken {
			for _, counts := range users {
				total += counts.Total()
			}
		}
	}
	for _, users := range acc.Swap() {
		for _, counts := range users {
			total += counts.Total()
		}
	}

	assert.Equal(t, int64(writers*addsPerWriter), total)
}

func TestAccumulator_UncountedKindIgnored(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.Add("frontpage", "github:1", models.KindClientJoin)
	acc.Add("frontpage", "github:1", models.KindClientPart)

	assert.Empty(t, acc.Swap(), "transitions must not create accumulator entries")
}
