package poller

import (
	"context"
	"sync"
	"testing"
	"time"
	"warboard/internal/models"
	"warboard/internal/providers"
	"warboard/internal/structures"
	"warboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu        sync.Mutex
	snapshots []*models.WarSnapshot
	notFound  int
}

func (r *recorder) update(s *models.WarSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
}

func (r *recorder) missing() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound++
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots), r.notFound
}

func newTestPoller(fetcher *testutil.MockFetcher, interval time.Duration) (Interface, *recorder, *testutil.MockLogger, *testutil.MockMetrics) {
	conf := &structures.Config{Poller: structures.PollerConfig{Interval: interval}}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	rec := &recorder{}
	p := NewFactory(conf, fetcher, logger, metrics).New("#2PP", rec.update, rec.missing)
	return p, rec, logger, metrics
}

func TestEvery_KeepsSubSecondPrecision(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(1500*time.Millisecond), every(1500*time.Millisecond).Next(now))
}

func TestPoller_FetchesImmediatelyOnStart(t *testing.T) {
	fetcher := &testutil.MockFetcher{Results: []models.FetchResult{
		models.Found(&models.WarSnapshot{State: models.StateInWar}),
	}}
	p, rec, _, metrics := newTestPoller(fetcher, time.Hour)

	p.Start(context.Background())
	defer p.Stop()

	updates, _ := rec.counts()
	assert.Equal(t, 1, updates)
	assert.Equal(t, []string{"#2PP"}, fetcher.Calls)
	assert.Equal(t, 1, metrics.Polls(providers.PollFound))
	assert.True(t, p.Running())
}

func TestPoller_KeepsPollingAfterFailures(t *testing.T) {
	fetcher := &testutil.MockFetcher{Results: []models.FetchResult{
		models.Failed(500, "Unknown error."),
		models.Failed(0, "connection refused"),
		models.NotFound(),
		models.Found(&models.WarSnapshot{State: models.StatePreparation}),
	}}
	p, rec, logger, metrics := newTestPoller(fetcher, 10*time.Millisecond)

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool {
		updates, _ := rec.counts()
		return updates > 0
	}, 2*time.Second, 5*time.Millisecond)

	_, notFound := rec.counts()
	assert.Equal(t, 1, notFound)
	assert.Equal(t, 2, metrics.Polls(providers.PollFailed))
	assert.Equal(t, 1, metrics.Polls(providers.PollNotFound))
	assert.Equal(t, 2, logger.Count("error"))
}

func TestPoller_StopHaltsTicks(t *testing.T) {
	fetcher := &testutil.MockFetcher{Results: []models.FetchResult{models.NotFound()}}
	p, _, _, _ := newTestPoller(fetcher, 10*time.Millisecond)

	p.Start(context.Background())
	require.Eventually(t, func() bool { return fetcher.CallCount() >= 3 }, 2*time.Second, 5*time.Millisecond)

	p.Stop()
	p.Stop()
	assert.False(t, p.Running())

	time.Sleep(30 * time.Millisecond)
	settled := fetcher.CallCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, fetcher.CallCount())
}

func TestPoller_ContextCancelStops(t *testing.T) {
	fetcher := &testutil.MockFetcher{Results: []models.FetchResult{models.NotFound()}}
	p, _, _, _ := newTestPoller(fetcher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool { return !p.Running() }, time.Second, 5*time.Millisecond)
}

func TestPoller_StartTwiceIsNoop(t *testing.T) {
	fetcher := &testutil.MockFetcher{Results: []models.FetchResult{models.NotFound()}}
	p, _, _, _ := newTestPoller(fetcher, time.Hour)

	p.Start(context.Background())
	p.Start(context.Background())
	defer p.Stop()

	assert.Equal(t, 1, fetcher.CallCount())
}
