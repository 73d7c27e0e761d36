package farm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// ErrFarmNotFound is returned by repositories for unknown farms
var ErrFarmNotFound = errors.New("farm not found")

// FarmRepository loads and stores farm snapshots
type FarmRepository interface {
	Load(ctx context.Context, farmID shared.FarmID) (*game.FarmState, error)
	Save(ctx context.Context, farmID shared.FarmID, state *game.FarmState) error
}

// ActionRecorder observes applied and rejected actions
type ActionRecorder interface {
	RecordAction(action string, success bool)
}

// ChangeListener is told about every applied action. It runs while the
// session is locked and must not block or call back into the session.
type ChangeListener func(farmID shared.FarmID, event string, state *game.FarmState)

// Store keeps one in-memory session per farm
type Store struct {
	repo     FarmRepository
	clock    shared.Clock
	recorder ActionRecorder

	mu        sync.Mutex
	sessions  map[int]*Session
	listeners []ChangeListener
}

// NewStore creates a store. recorder may be nil.
func NewStore(repo FarmRepository, clock shared.Clock, recorder ActionRecorder) *Store {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Store{
		repo:     repo,
		clock:    clock,
		recorder: recorder,
		sessions: make(map[int]*Session),
	}
}

// Clock returns the store's time source
func (s *Store) Clock() shared.Clock {
	return s.clock
}

// Session returns the farm's session, loading the snapshot on first use
func (s *Store) Session(ctx context.Context, farmID shared.FarmID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[farmID.Value()]; ok {
		return session, nil
	}

	state, err := s.repo.Load(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to load farm %s: %w", farmID, err)
	}

	session := &Session{farmID: farmID, state: state, store: s}
	s.sessions[farmID.Value()] = session
	return session, nil
}

// AddListener registers fn for changes on every farm
func (s *Store) AddListener(fn ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(farmID shared.FarmID, event string, state *game.FarmState) {
	s.mu.Lock()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(farmID, event, state.Clone())
	}
}

// Evict drops a cached session so the next access reloads it
func (s *Store) Evict(farmID shared.FarmID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, farmID.Value())
}

// Session holds the live snapshot of one farm. Actions are applied one at a
// time; a rejected action leaves the snapshot as it was.
type Session struct {
	farmID shared.FarmID
	store  *Store

	mu    sync.Mutex
	state *game.FarmState
}

// FarmID returns the farm the session belongs to
func (s *Session) FarmID() shared.FarmID {
	return s.farmID
}

// State returns a copy of the current snapshot
func (s *Session) State() *game.FarmState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Send applies an action and returns a copy of the resulting snapshot.
// SAVE persists the snapshot instead of changing it.
func (s *Session) Send(ctx context.Context, action Action) (*game.FarmState, error) {
	if action == nil {
		return nil, fmt.Errorf("action cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger := logging.LoggerFromContext(ctx)
	event := action.Type()

	if event == SaveEvent {
		if err := s.store.repo.Save(ctx, s.farmID, s.state); err != nil {
			s.record(event, false)
			return nil, fmt.Errorf("failed to save farm %s: %w", s.farmID, err)
		}
		s.record(event, true)
		logger.Log(logging.LevelInfo, "farm saved", map[string]interface{}{"farm_id": s.farmID.Value()})
		return s.state.Clone(), nil
	}

	reduce, ok := reducers[event]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", event)
	}

	next, err := reduce(s.state, action, s.store.clock.Now())
	if err != nil {
		s.record(event, false)
		logger.Log(logging.LevelWarn, "action rejected", map[string]interface{}{
			"farm_id": s.farmID.Value(),
			"action":  event,
			"error":   err.Error(),
		})
		return nil, shared.NewGameEventError(event, err)
	}

	s.state = next
	s.record(event, true)
	s.store.notify(s.farmID, event, next)
	logger.Log(logging.LevelDebug, "action applied", map[string]interface{}{
		"farm_id": s.farmID.Value(),
		"action":  event,
	})
	return next.Clone(), nil
}

func (s *Session) record(event string, success bool) {
	if s.store.recorder != nil {
		s.store.recorder.RecordAction(event, success)
	}
}
