package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var clockStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestClock_FirstCallReturnsStart(t *testing.T) {
	clock := NewClock(clockStart, time.Second)
	assert.Equal(t, clockStart, clock.Now())
}

func TestClock_AdvancesByStep(t *testing.T) {
	clock := NewClock(clockStart, time.Minute)

	assert.Equal(t, clockStart, clock.Now())
	assert.Equal(t, clockStart.Add(time.Minute), clock.Now())
	assert.Equal(t, clockStart.Add(2*time.Minute), clock.Now())
	assert.Equal(t, clockStart.Add(3*time.Minute), clock.Current())
}

func TestClock_Reset(t *testing.T) {
	clock := NewClock(clockStart, time.Second)

	clock.Now()
	clock.Now()
	clock.Reset()

	assert.Equal(t, clockStart, clock.Now())
}

func TestClock_NormalizesToUTC(t *testing.T) {
	pacific := time.FixedZone("PST", -8*3600)
	local := time.Date(2026, 3, 1, 4, 0, 0, 0, pacific)

	clock := NewClock(local, time.Second)
	got := clock.Now()
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
}

func TestClock_ThreadSafe(t *testing.T) {
	clock := NewClock(clockStart, time.Second)
	const goroutines = 50
	const callsEach = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)

	seen := make([]map[time.Time]bool, goroutines)
	for i := 0; i < goroutines; i++ {
		seen[i] = make(map[time.Time]bool, callsEach)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				seen[idx][clock.Now()] = true
			}
		}(i)
	}
	wg.Wait()

	// Every instant handed out exactly once.
	all := make(map[time.Time]bool)
	for _, m := range seen {
		for ts := range m {
			assert.False(t, all[ts], "duplicate instant %v", ts)
			all[ts] = true
		}
	}
	assert.Len(t, all, goroutines*callsEach)
}
