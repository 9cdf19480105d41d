package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/service"
)

// stubDailyService implements service.DailyService with function fields so
// each test scripts exactly the behavior it needs.
type stubDailyService struct {
	viewFn  func(ctx context.Context, actorID string) (*service.DailyView, error)
	claimFn func(ctx context.Context, actor domain.Actor) (*domain.DailyForecast, error)
}

func (s *stubDailyService) View(ctx context.Context, actorID string) (*service.DailyView, error) {
	return s.viewFn(ctx, actorID)
}

func (s *stubDailyService) Claim(ctx context.Context, actor domain.Actor) (*domain.DailyForecast, error) {
	return s.claimFn(ctx, actor)
}

func (s *stubDailyService) Refresh(ctx context.Context) error {
	return nil
}

func newDailyRouter(svc *stubDailyService) http.Handler {
	h := NewDailyHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/daily/{actorID}", h.View)
	r.Post("/api/daily/claim", h.Claim)
	return r
}

func TestDailyViewEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubDailyService{
		viewFn: func(ctx context.Context, actorID string) (*service.DailyView, error) {
			assert.Equal(t, "alice", actorID)
			return &service.DailyView{
				Day:     20_000,
				Claimed: true,
				Forecast: []domain.DailyForecast{
					{Day: 20_000, Money: 12_50, Tokens: 20},
					{Day: 20_001, Money: 30_00, Tokens: 5},
				},
			}, nil
		},
	}
	router := newDailyRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/daily/alice", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DailyViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(20_000), resp.Day)
	assert.True(t, resp.Claimed)
	require.Len(t, resp.Forecast, 2)
	assert.InDelta(t, 12.50, resp.Forecast[0].Money, 1e-9)
	assert.Equal(t, int64(5), resp.Forecast[1].Tokens)
}

func TestDailyClaimEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubDailyService{
		claimFn: func(ctx context.Context, actor domain.Actor) (*domain.DailyForecast, error) {
			assert.Equal(t, "alice", actor.ID())
			return &domain.DailyForecast{Day: 20_000, Money: 7_50, Tokens: 15}, nil
		},
	}
	router := newDailyRouter(svc)

	body := `{"actor": {"id": "alice", "display_name": "Alice"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/daily/claim", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClaimResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(20_000), resp.Day)
	assert.InDelta(t, 7.50, resp.Money, 1e-9)
	assert.Equal(t, int64(15), resp.Tokens)
}

func TestDailyClaimEndpointErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "malformed body",
			body:       `{"actor": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing actor id",
			body:       `{"actor": {"display_name": "Alice"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "already claimed today",
			body:       `{"actor": {"id": "alice", "display_name": "Alice"}}`,
			serviceErr: domain.ErrAlreadyClaimed,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "bot actors are ineligible",
			body:       `{"actor": {"id": "bot", "display_name": "Bot", "bot": true}}`,
			serviceErr: domain.ErrTargetNotEligible,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubDailyService{
				claimFn: func(ctx context.Context, actor domain.Actor) (*domain.DailyForecast, error) {
					return nil, tc.serviceErr
				},
			}
			router := newDailyRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/daily/claim", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
