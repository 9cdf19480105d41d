package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/service"
)

type stubDistributor struct {
	calls  atomic.Int64
	result *service.DistributionResult
	err    error
}

var _ service.DistributorService = (*stubDistributor)(nil)

func (s *stubDistributor) Distribute(ctx context.Context) (*service.DistributionResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &service.DistributionResult{}, nil
}

type stubDaily struct {
	refreshes atomic.Int64
}

var _ service.DailyService = (*stubDaily)(nil)

func (s *stubDaily) View(ctx context.Context, actorID string) (*service.DailyView, error) {
	return nil, nil
}

func (s *stubDaily) Claim(ctx context.Context, actor domain.Actor) (*domain.DailyForecast, error) {
	return nil, nil
}

func (s *stubDaily) Refresh(ctx context.Context) error {
	s.refreshes.Add(1)
	return nil
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires distributor", func(t *testing.T) {
		t.Parallel()
		_, err := New(nil, &stubDaily{}, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("requires daily service", func(t *testing.T) {
		t.Parallel()
		_, err := New(&stubDistributor{}, nil, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()
		s, err := New(&stubDistributor{}, &stubDaily{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	t.Run("accepts five-field expressions", func(t *testing.T) {
		t.Parallel()
		s, err := New(&stubDistributor{}, &stubDaily{}, nil)
		require.NoError(t, err)

		err = s.RegisterAll("0 18 * * 0", "5 * * * *")
		assert.NoError(t, err)
	})

	t.Run("rejects malformed weekly expression", func(t *testing.T) {
		t.Parallel()
		s, err := New(&stubDistributor{}, &stubDaily{}, nil)
		require.NoError(t, err)

		err = s.RegisterAll("not a cron line", "5 * * * *")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "weekly distribution")
	})

	t.Run("rejects malformed forecast expression", func(t *testing.T) {
		t.Parallel()
		s, err := New(&stubDistributor{}, &stubDaily{}, nil)
		require.NoError(t, err)

		err = s.RegisterAll("0 18 * * 0", "61 * * * *")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "forecast refresh")
	})
}

func TestRunWeeklyNow(t *testing.T) {
	t.Parallel()

	distributor := &stubDistributor{
		result: &service.DistributionResult{PoolConsumed: 40},
	}
	s, err := New(distributor, &stubDaily{}, nil)
	require.NoError(t, err)

	result, err := s.RunWeeklyNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), result.PoolConsumed)
	assert.Equal(t, int64(1), distributor.calls.Load())
}

func TestJobsSwallowErrors(t *testing.T) {
	t.Parallel()

	// A failed run must not panic or stop the runner; the next tick should
	// still fire.
	distributor := &stubDistributor{err: assert.AnError}
	s, err := New(distributor, &stubDaily{}, nil)
	require.NoError(t, err)

	s.weeklyDistribution()
	s.weeklyDistribution()
	assert.Equal(t, int64(2), distributor.calls.Load())
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	s, err := New(&stubDistributor{}, &stubDaily{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.RegisterAll("0 18 * * 0", "5 * * * *"))

	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}
