package obs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatencyStatsEmpty(t *testing.T) {
	var l LatencyStats
	snap := l.Snapshot()
	assert.Zero(t, snap.Count)
	assert.Zero(t, snap.Min)
	assert.Zero(t, snap.Max)
	assert.Zero(t, snap.Avg)
}

func TestLatencyStatsAggregates(t *testing.T) {
	var l LatencyStats
	l.Observe(10 * time.Microsecond)
	l.Observe(30 * time.Microsecond)
	l.Observe(20 * time.Microsecond)
	l.Observe(-time.Second)

	snap := l.Snapshot()
	assert.Equal(t, uint64(3), snap.Count)
	assert.Equal(t, 10*time.Microsecond, snap.Min)
	assert.Equal(t, 30*time.Microsecond, snap.Max)
	assert.Equal(t, 20*time.Microsecond, snap.Avg)
}

func TestLatencyStatsConcurrent(t *testing.T) {
	var l LatencyStats
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 1; i <= 1000; i++ {
				l.Observe(time.Duration(i) * time.Nanosecond)
			}
		}(w)
	}
	wg.Wait()

	snap := l.Snapshot()
	assert.Equal(t, uint64(8000), snap.Count)
	assert.Equal(t, time.Nanosecond, snap.Min)
	assert.Equal(t, 1000*time.Nanosecond, snap.Max)
}
