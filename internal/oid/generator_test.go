package oid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorStartsAtOne(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, uint64(1), g.Next())
	assert.Equal(t, uint64(2), g.Next())
}

func TestGeneratorUniqueUnderConcurrency(t *testing.T) {
	const (
		workers = 8
		rounds  = 1000
	)

	g := NewGenerator()
	var (
		mu   sync.Mutex
		seen = make(map[uint64]struct{}, workers*rounds)
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				id := g.Next()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*rounds)
	for id := range seen {
		assert.LessOrEqual(t, id, uint64(workers*rounds))
		assert.Greater(t, id, uint64(0))
	}
}

func TestGeneratorNilSafe(t *testing.T) {
	var g *Generator
	assert.Equal(t, uint64(0), g.Next())
}
