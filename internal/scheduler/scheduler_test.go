package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"codetrack/internal/models"
	"codetrack/internal/structures"
	"codetrack/internal/testutil"
)

type stubDashboard struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
	lastCtx context.Context
	mu      sync.Mutex
}

func (s *stubDashboard) Refresh(ctx context.Context) (*models.RefreshResult, error) {
	s.calls.Inc()
	s.mu.Lock()
	s.lastCtx = ctx
	s.mu.Unlock()
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.RefreshResult{CycleID: "cycle"}, nil
}

func (s *stubDashboard) Config() (models.UserConfig, error)                       { return models.UserConfig{}, nil }
func (s *stubDashboard) SetConfig(c models.UserConfig) (models.UserConfig, error) { return c, nil }
func (s *stubDashboard) History() ([]models.LedgerSnapshot, error)                { return nil, nil }
func (s *stubDashboard) Summary() (models.LedgerSummary, error)                   { return models.LedgerSummary{}, nil }
func (s *stubDashboard) DailyDeltas() ([]models.DailyDelta, error)                { return nil, nil }
func (s *stubDashboard) ClearHistory() error                                      { return nil }
func (s *stubDashboard) Generation() uint64                                       { return 0 }

func testConfig(interval time.Duration) *structures.Config {
	return &structures.Config{Refresh: structures.RefreshConfig{Interval: interval}}
}

func TestScheduler_TickRunsRefresh(t *testing.T) {
	dash := &stubDashboard{}
	s := NewScheduler(testConfig(0), &testutil.MockLogger{}, dash)

	assert.True(t, s.Tick())
	assert.Equal(t, int32(1), dash.calls.Load())
}

func TestScheduler_TickLogsFailure(t *testing.T) {
	dash := &stubDashboard{err: errors.New("store down")}
	logger := &testutil.MockLogger{}
	s := NewScheduler(testConfig(0), logger, dash)

	assert.True(t, s.Tick())
	assert.Equal(t, 1, logger.Count("error"))
}

func TestScheduler_OverlappingTickIsSkipped(t *testing.T) {
	dash := &stubDashboard{release: make(chan struct{})}
	s := NewScheduler(testConfig(0), &testutil.MockLogger{}, dash)

	done := make(chan bool)
	go func() { done <- s.Tick() }()
	require.Eventually(t, func() bool { return dash.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	assert.False(t, s.Tick())
	close(dash.release)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), dash.calls.Load())
}

func TestScheduler_StopCancelsContext(t *testing.T) {
	dash := &stubDashboard{}
	s := NewScheduler(testConfig(0), &testutil.MockLogger{}, dash)
	s.Tick()

	s.Stop()
	s.Stop()

	dash.mu.Lock()
	defer dash.mu.Unlock()
	assert.Error(t, dash.lastCtx.Err())
}

func TestScheduler_DisabledIntervalNeverFires(t *testing.T) {
	dash := &stubDashboard{}
	s := NewScheduler(testConfig(0), &testutil.MockLogger{}, dash)
	s.Init()
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	assert.Equal(t, int32(0), dash.calls.Load())
}

func TestScheduler_InitAndStop(t *testing.T) {
	dash := &stubDashboard{}
	s := NewScheduler(testConfig(time.Second), &testutil.MockLogger{}, dash)
	s.Init()
	// Give the cron a moment to start
	time.Sleep(50 * time.Millisecond)
	s.Stop()
}
