package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidNode(t *testing.T) {
	gen, err := New(5000)
	assert.Error(t, err)
	assert.Nil(t, gen)
}

func TestGenerator_NewUserID_UniqueAndIncreasing(t *testing.T) {
	gen, err := New(1)
	require.NoError(t, err)

	prev := gen.NewUserID()
	for range 1000 {
		next := gen.NewUserID()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestGenerator_NewUserID_Concurrent(t *testing.T) {
	gen, err := New(2)
	require.NoError(t, err)

	const workers, perWorker = 8, 200
	var (
		mu   sync.Mutex
		seen = make(map[int64]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				id := gen.NewUserID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestGenerator_NewRequestID(t *testing.T) {
	gen, err := New(1)
	require.NoError(t, err)

	id := gen.NewRequestID(PrefixDoctorRequest)
	require.True(t, strings.HasPrefix(id, "REQ-"))

	_, err = ksuid.Parse(strings.TrimPrefix(id, "REQ-"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, gen.NewRequestID(PrefixDoctorRequest))
}
