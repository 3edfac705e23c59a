package viewer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heightgen/internal/config"
	"heightgen/internal/terrain"
	"heightgen/internal/timing"
)

type memRecorder struct {
	mu      sync.Mutex
	samples []timing.Sample
}

func (m *memRecorder) Record(_ context.Context, s timing.Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, s)
	return nil
}

func (m *memRecorder) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.samples)
}

func waitResult(t *testing.T, g *Regenerator) Result {
	t.Helper()
	var res Result
	require.Eventually(t, func() bool {
		var ok bool
		res, ok = g.Poll()
		return ok
	}, 10*time.Second, time.Millisecond)
	return res
}

func quickRun(seed int64) config.RunConfig {
	run := config.DefaultRunConfig()
	run.Size = 17
	run.Seed = seed
	run.Fault.Iterations = 20
	return run
}

// TestRegeneratorDelivers verifies a request produces the same field as a direct run.
func TestRegeneratorDelivers(t *testing.T) {
	rec := &memRecorder{}
	g := NewRegenerator(rec)
	defer g.Close()

	run := quickRun(7)
	g.Request(run)
	res := waitResult(t, g)
	require.NoError(t, res.Err)
	assert.False(t, g.Busy())

	gen, err := run.Generator()
	require.NoError(t, err)
	want, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, want.Equal(res.Field))

	assert.Equal(t, "fault", res.Sample.Algorithm)
	assert.Equal(t, 17, res.Sample.Size)
	assert.Equal(t, int64(7), res.Sample.Seed)
	assert.Equal(t, 1, rec.len())
}

// TestRegeneratorSupersedes verifies a new request cancels the slow one and only the newest is delivered.
func TestRegeneratorSupersedes(t *testing.T) {
	rec := &memRecorder{}
	g := NewRegenerator(rec)
	defer g.Close()

	slow := config.DefaultRunConfig()
	slow.Algorithm = string(terrain.AlgorithmErosion)
	slow.Size = 200
	slow.Erosion.Iterations = 1_000_000
	g.Request(slow)
	assert.True(t, g.Busy())

	g.Request(quickRun(9))
	res := waitResult(t, g)
	require.NoError(t, res.Err)
	assert.Equal(t, int64(9), res.Config.Seed)

	g.Close()
	_, ok := g.Poll()
	assert.False(t, ok, "cancelled run must not be delivered")
	assert.Equal(t, 1, rec.len())
}

// TestRegeneratorRecordsOnlyDelivered verifies a run finishing after a newer
// request is neither published nor written to the timing log
func TestRegeneratorRecordsOnlyDelivered(t *testing.T) {
	rec := &memRecorder{}
	g := NewRegenerator(rec)
	defer g.Close()

	g.mu.Lock()
	g.seq = 2
	g.mu.Unlock()

	stale := Result{Sample: timing.Sample{Algorithm: "fault", Seed: 1, Elapsed: time.Second}}
	g.deliver(1, stale)
	_, ok := g.Poll()
	assert.False(t, ok)
	assert.Equal(t, 0, rec.len())
	assert.True(t, g.Busy())

	fresh := Result{Sample: timing.Sample{Algorithm: "fault", Seed: 2, Elapsed: time.Second}}
	g.deliver(2, fresh)
	res, ok := g.Poll()
	require.True(t, ok)
	assert.Equal(t, int64(2), res.Sample.Seed)
	require.Equal(t, 1, rec.len())
	assert.Equal(t, int64(2), rec.samples[0].Seed)
	assert.False(t, g.Busy())

	g.mu.Lock()
	g.seq = 3
	g.mu.Unlock()
	g.deliver(3, Result{Err: context.Canceled})
	assert.Equal(t, 1, rec.len(), "failed runs are not recorded")
}

// TestRegeneratorConfigError verifies invalid runs come back as errors.
func TestRegeneratorConfigError(t *testing.T) {
	g := NewRegenerator(timing.Discard)
	defer g.Close()

	run := config.DefaultRunConfig()
	run.Algorithm = string(terrain.AlgorithmDiamondSquare)
	run.Size = 10
	g.Request(run)
	res := waitResult(t, g)
	assert.ErrorIs(t, res.Err, terrain.ErrConfig)
	assert.Nil(t, res.Field)
}
