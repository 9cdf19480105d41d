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
)

// stubEconomyService implements service.EconomyService with function fields
// so each test scripts exactly the behavior it needs.
type stubEconomyService struct {
	payFn     func(ctx context.Context, payer, payee domain.Actor, amount domain.Cents) (domain.Cents, domain.Cents, error)
	balanceFn func(ctx context.Context, actorID string) (domain.Cents, error)
}

func (s *stubEconomyService) Pay(ctx context.Context, payer, payee domain.Actor, amount domain.Cents) (domain.Cents, domain.Cents, error) {
	return s.payFn(ctx, payer, payee, amount)
}

func (s *stubEconomyService) Balance(ctx context.Context, actorID string) (domain.Cents, error) {
	return s.balanceFn(ctx, actorID)
}

func (s *stubEconomyService) Leaderboard(ctx context.Context) ([]domain.LedgerEntry, error) {
	return []domain.LedgerEntry{
		{ActorID: "rich", DisplayName: "Rich", Balance: 100_00, Tokens: 5},
		{ActorID: "poor", DisplayName: "Poor", Balance: 1_00},
	}, nil
}

func (s *stubEconomyService) History(ctx context.Context, actorID string, limit int) ([]domain.Transaction, error) {
	return nil, nil
}

func (s *stubEconomyService) Greet(ctx context.Context, actor domain.Actor) (domain.Cents, error) {
	return 1_50, nil
}

func newEconomyRouter(svc *stubEconomyService) http.Handler {
	h := NewEconomyHandler(svc)
	r := chi.NewRouter()
	r.Post("/api/pay", h.Pay)
	r.Post("/api/hello", h.Greet)
	r.Get("/api/balance/{actorID}", h.Balance)
	r.Get("/api/leaderboard", h.Leaderboard)
	return r
}

func TestPayEndpoint(t *testing.T) {
	t.Parallel()

	var gotAmount domain.Cents
	svc := &stubEconomyService{
		payFn: func(ctx context.Context, payer, payee domain.Actor, amount domain.Cents) (domain.Cents, domain.Cents, error) {
			gotAmount = amount
			assert.Equal(t, "alice", payer.ID())
			assert.Equal(t, "bob", payee.ID())
			return 6_50, 3_50, nil
		},
	}
	router := newEconomyRouter(svc)

	body := `{
		"payer": {"id": "alice", "display_name": "Alice"},
		"payee": {"id": "bob", "display_name": "Bob"},
		"amount": 3.509
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/pay", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Fractions beyond cents are floored before the service sees them.
	assert.Equal(t, domain.Cents(3_50), gotAmount)

	var resp PayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 6.50, resp.PayerBalance, 1e-9)
	assert.InDelta(t, 3.50, resp.PayeeBalance, 1e-9)
}

func TestPayEndpointErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "malformed JSON",
			body:       `{"payer": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing payer id",
			body:       `{"payer": {"display_name": "Alice"}, "payee": {"id": "bob", "display_name": "Bob"}, "amount": 1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "insufficient funds",
			body:       `{"payer": {"id": "alice", "display_name": "Alice"}, "payee": {"id": "bob", "display_name": "Bob"}, "amount": 100}`,
			serviceErr: domain.ErrInsufficientFunds,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "bot payee",
			body:       `{"payer": {"id": "alice", "display_name": "Alice"}, "payee": {"id": "bot", "display_name": "Bot", "bot": true}, "amount": 1}`,
			serviceErr: domain.ErrTargetNotEligible,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubEconomyService{
				payFn: func(ctx context.Context, payer, payee domain.Actor, amount domain.Cents) (domain.Cents, domain.Cents, error) {
					return 0, 0, tc.serviceErr
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/api/pay", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			newEconomyRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestBalanceEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubEconomyService{
		balanceFn: func(ctx context.Context, actorID string) (domain.Cents, error) {
			assert.Equal(t, "alice", actorID)
			return 12_34, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/balance/alice", nil)
	rec := httptest.NewRecorder()
	newEconomyRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.ActorID)
	assert.InDelta(t, 12.34, resp.Balance, 1e-9)
}

func TestLeaderboardEndpoint(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	newEconomyRouter(&stubEconomyService{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []LeaderboardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "rich", rows[0].ActorID)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestGreetEndpoint(t *testing.T) {
	t.Parallel()

	body := `{"actor": {"id": "alice", "display_name": "Alice"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/hello", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newEconomyRouter(&stubEconomyService{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp GreetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 1.50, resp.Balance, 1e-9)
}
