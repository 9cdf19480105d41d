package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LasseVKP/LDCBots/internal/domain"
	"github.com/LasseVKP/LDCBots/internal/domain/blackjack"
	"github.com/LasseVKP/LDCBots/internal/platform/logger"
	"github.com/LasseVKP/LDCBots/internal/store"
)

// defaultSessionTimeout bounds how long an untouched session may stay
// active before it is forced through a stand.
const defaultSessionTimeout = 2 * time.Minute

// BlackjackService runs blackjack sessions against the token ledger. The
// wager is debited up front; resolution credits the payout. Sessions are
// ephemeral in-memory objects, discarded once resolved and settled.
type BlackjackService interface {
	// Start debits the wager and deals a new session for the actor. Natural
	// twenty-ones resolve (and pay out) immediately. Fails with
	// domain.ErrInvalidAmount or domain.ErrInsufficientFunds.
	Start(ctx context.Context, actor domain.Actor, wager int64) (blackjack.View, error)

	// Hit draws a card for the player. Actions by anyone but the session
	// owner are silently ignored: the unchanged view comes back with no
	// error. Fails with ErrSessionNotFound for unknown sessions.
	Hit(ctx context.Context, sessionID uuid.UUID, actor domain.Actor) (blackjack.View, error)

	// Stand ends the player's turn and resolves the session. Ownership
	// handling matches Hit.
	Stand(ctx context.Context, sessionID uuid.UUID, actor domain.Actor) (blackjack.View, error)

	// Stop cancels all timeout timers and force-resolves remaining
	// sessions. Called on shutdown so no wager stays stranded.
	Stop()
}

// blackjackService implements the BlackjackService interface.
type blackjackService struct {
	ledger  store.LedgerStore
	audit   store.TransactionStore
	timeout time.Duration
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*blackjack.Session
	timers   map[uuid.UUID]*time.Timer
}

// NewBlackjackService creates a new BlackjackService. A non-positive timeout
// falls back to the default. It returns an error if any of the required
// dependencies are nil.
func NewBlackjackService(
	ledger store.LedgerStore,
	audit store.TransactionStore,
	timeout time.Duration,
	log *slog.Logger,
) (BlackjackService, error) {
	if ledger == nil {
		return nil, domain.NewValidationError("ledger", "cannot be nil", nil)
	}
	if audit == nil {
		return nil, domain.NewValidationError("audit", "cannot be nil", nil)
	}
	if timeout <= 0 {
		timeout = defaultSessionTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return &blackjackService{
		ledger:   ledger,
		audit:    audit,
		timeout:  timeout,
		logger:   log.With(slog.String("component", "blackjack_service")),
		sessions: make(map[uuid.UUID]*blackjack.Session),
		timers:   make(map[uuid.UUID]*time.Timer),
	}, nil
}

// Start implements BlackjackService.Start
func (s *blackjackService) Start(ctx context.Context, actor domain.Actor, wager int64) (blackjack.View, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if wager <= 0 {
		return blackjack.View{}, domain.ErrInvalidAmount
	}

	if _, err := s.ledger.DebitTokens(ctx, actor, wager); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return blackjack.View{}, err
		}
		return blackjack.View{}, NewServiceError("blackjack", "start", err)
	}
	session := blackjack.NewSession(actor, wager, nil)
	s.record(ctx, domain.NewTransaction(actor.ID(), domain.TransactionTypeBlackjackBet, 0, -wager, session.ID().String()))

	if session.Resolved() {
		// Natural blackjack on either side: settle without registering.
		s.settle(ctx, session)
		return session.View(), nil
	}

	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.timers[session.ID()] = time.AfterFunc(s.timeout, func() {
		s.expire(session.ID())
	})
	s.mu.Unlock()

	log.Info("blackjack session started",
		slog.String("session_id", session.ID().String()),
		slog.String("actor_id", actor.ID()),
		slog.Int64("wager", wager))
	return session.View(), nil
}

// Hit implements BlackjackService.Hit
func (s *blackjackService) Hit(ctx context.Context, sessionID uuid.UUID, actor domain.Actor) (blackjack.View, error) {
	return s.act(ctx, sessionID, actor, (*blackjack.Session).Hit)
}

// Stand implements BlackjackService.Stand
func (s *blackjackService) Stand(ctx context.Context, sessionID uuid.UUID, actor domain.Actor) (blackjack.View, error) {
	return s.act(ctx, sessionID, actor, (*blackjack.Session).Stand)
}

// act performs a player action and settles the session if it resolved.
// Ownership violations and actions racing the timeout both degrade to "return
// the current view unchanged".
func (s *blackjackService) act(
	ctx context.Context,
	sessionID uuid.UUID,
	actor domain.Actor,
	action func(*blackjack.Session, string) error,
) (blackjack.View, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return blackjack.View{}, ErrSessionNotFound
	}

	if err := action(session, actor.ID()); err != nil {
		if errors.Is(err, domain.ErrSessionNotOwned) || errors.Is(err, domain.ErrSessionResolved) {
			return session.View(), nil
		}
		return blackjack.View{}, NewServiceError("blackjack", "act", err)
	}

	if session.Resolved() {
		s.finish(ctx, session)
	}
	return session.View(), nil
}

// Stop implements BlackjackService.Stop
func (s *blackjackService) Stop() {
	s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.expire(id)
	}
}

// expire is the timeout path: the session is forced through a stand so its
// wager settles deterministically.
func (s *blackjackService) expire(sessionID uuid.UUID) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return
	}

	session.ForceStand()

	// Detached from any request by now. A player action may have resolved
	// the session in the meantime; finish lets only one of the two paths
	// settle it.
	if !s.finish(context.Background(), session) {
		return
	}
	s.logger.Info("blackjack session timed out",
		slog.String("session_id", sessionID.String()),
		slog.String("actor_id", session.OwnerID()))
}

// finish removes the session from the registry and, if this caller was the
// one that removed it, settles the payout. The removal is the single-shot
// gate: a player action racing the timeout (or shutdown) can both reach here,
// but only the remover credits the ledger.
func (s *blackjackService) finish(ctx context.Context, session *blackjack.Session) bool {
	if !s.unregister(session.ID()) {
		return false
	}
	s.settle(ctx, session)
	return true
}

// unregister removes the session and its timer, reporting whether the
// session was still registered.
func (s *blackjackService) unregister(sessionID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[sessionID]; ok {
		timer.Stop()
		delete(s.timers, sessionID)
	}
	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}

// settle credits the payout of a resolved session back to its owner.
func (s *blackjackService) settle(ctx context.Context, session *blackjack.Session) {
	payout := session.Payout()
	if payout == 0 {
		return
	}

	owner := session.OwnerActor()
	if _, err := s.ledger.AddTokens(ctx, owner, payout, false); err != nil {
		// The wager is already debited; a failed payout must not vanish
		// silently.
		s.logger.Error("failed to credit blackjack payout",
			slog.String("session_id", session.ID().String()),
			slog.String("actor_id", owner.ID()),
			slog.Int64("payout", payout),
			slog.String("error", err.Error()))
		return
	}
	s.record(ctx, domain.NewTransaction(owner.ID(), domain.TransactionTypeBlackjackPayout, 0, payout, session.ID().String()))
}

func (s *blackjackService) record(ctx context.Context, tx *domain.Transaction) {
	if err := s.audit.Record(ctx, tx); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to record transaction",
			slog.String("actor_id", tx.ActorID),
			slog.String("type", string(tx.Type)),
			slog.String("error", err.Error()))
	}
}
