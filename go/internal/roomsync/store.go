package roomsync

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/planpoker/go/internal/cards"
	"github.com/mcdev12/planpoker/go/internal/models"
)

// DefaultPollInterval is how often the store reconciles with the backend.
const DefaultPollInterval = 3 * time.Second

var (
	ErrNotInitialized    = errors.New("roomsync: store not initialized")
	ErrClosed            = errors.New("roomsync: store closed")
	ErrAlreadySubscribed = errors.New("roomsync: already subscribed")
)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock driving the reconciliation poll.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithErrorHandler receives failures of background vote writes after they
// have been rolled back locally.
func WithErrorHandler(fn func(err error)) Option {
	return func(s *Store) { s.onError = fn }
}

// Store holds one client's view of a room and keeps it converged with the
// backend through change notifications, optimistic writes and a periodic poll.
type Store struct {
	backend      Backend
	subscriber   Subscriber
	clock        clockwork.Clock
	pollInterval time.Duration
	onError      func(err error)

	mu           sync.RWMutex
	initialized  bool
	subscribed   bool
	closed       bool
	room         models.Room
	participants []models.Participant
	session      *models.VotingSession
	votes        map[uuid.UUID]*LocalVote
	selfID       uuid.UUID
	seq          uint64

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	sub       Subscription
	closeOnce sync.Once
	updates   chan struct{}
}

// New creates an empty store. Call Initialize before using it.
func New(backend Backend, subscriber Subscriber, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		backend:      backend,
		subscriber:   subscriber,
		clock:        clockwork.NewRealClock(),
		pollInterval: DefaultPollInterval,
		votes:        make(map[uuid.UUID]*LocalVote),
		ctx:          ctx,
		cancel:       cancel,
		updates:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize seeds the store from a server snapshot, replacing any prior state.
func (s *Store) Initialize(snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.room = snap.Room
	s.room.RoomSettings = snap.Room.Settings()
	s.participants = append([]models.Participant(nil), snap.Participants...)
	s.selfID = snap.CurrentParticipantID
	s.session = nil
	if snap.CurrentSession != nil {
		session := *snap.CurrentSession
		s.session = &session
	}
	s.votes = make(map[uuid.UUID]*LocalVote, len(snap.Votes))
	for _, v := range snap.Votes {
		if s.session != nil && v.SessionID == s.session.ID {
			s.votes[v.ParticipantID] = confirmed(v)
		}
	}
	s.initialized = true
	s.notify()
	return nil
}

// Subscribe opens the change feed and starts the reconciliation poll. The
// returned teardown is the same as Close. A feed that fails to open is
// logged and the store converges through the poll alone.
func (s *Store) Subscribe(ctx context.Context) (func(), error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if !s.initialized {
		s.mu.Unlock()
		return nil, ErrNotInitialized
	}
	if s.subscribed {
		s.mu.Unlock()
		return nil, ErrAlreadySubscribed
	}
	s.subscribed = true
	roomID := s.room.ID
	s.mu.Unlock()

	// The dial runs unlocked so projections and votes stay usable meanwhile.
	var sub Subscription
	if s.subscriber != nil {
		var err error
		sub, err = s.subscriber.Subscribe(ctx, roomID)
		if err != nil {
			log.Debug().Err(err).Str("room_id", roomID.String()).Msg("change feed unavailable, relying on poll")
			sub = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		if sub != nil {
			if err := sub.Close(); err != nil {
				log.Debug().Err(err).Msg("failed to close change feed")
			}
		}
		return nil, ErrClosed
	}
	if sub != nil {
		s.sub = sub
		s.wg.Add(1)
		go s.consume(sub)
	}

	s.wg.Add(1)
	go s.pollLoop()

	return s.Close, nil
}

// Close stops the change feed, the poll and any in-flight writes. Once it
// returns the store no longer changes. Safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		sub := s.sub
		s.mu.Unlock()

		s.cancel()
		if sub != nil {
			if err := sub.Close(); err != nil {
				log.Debug().Err(err).Msg("failed to close change feed")
			}
		}
		s.wg.Wait()
		close(s.updates)
	})
}

// Updates signals after every state change. Signals coalesce, so readers
// should re-read the projections they care about. Closed by Close.
func (s *Store) Updates() <-chan struct{} {
	return s.updates
}

// notify must be called with mu held.
func (s *Store) notify() {
	if s.closed {
		return
	}
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func (s *Store) consume(sub Subscription) {
	defer s.wg.Done()
	events := sub.Events()
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				log.Debug().Str("room_id", s.room.ID.String()).Msg("change feed ended, relying on poll")
				return
			}
			s.Apply(ev)
		}
	}
}

func (s *Store) pollLoop() {
	defer s.wg.Done()
	ticker := s.clock.NewTicker(s.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.Chan():
			s.Poll(s.ctx)
		}
	}
}

// Room returns the tracked room, settings included.
func (s *Store) Room() models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room := s.room
	room.RoomSettings = s.room.Settings()
	return room
}

// Settings returns the tracked room settings.
func (s *Store) Settings() models.RoomSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.Settings()
}

// Participants returns the active roster in join order.
func (s *Store) Participants() []models.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Participant(nil), s.participants...)
}

// Self returns the local user's participant, if still on the roster.
func (s *Store) Self() (models.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.self()
}

func (s *Store) self() (models.Participant, bool) {
	for _, p := range s.participants {
		if p.ID == s.selfID {
			return p, true
		}
	}
	return models.Participant{}, false
}

// CurrentSession returns a copy of the tracked session, or nil before the first round.
func (s *Store) CurrentSession() *models.VotingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// Votes returns one entry per participant with a vote, roster order first.
func (s *Store) Votes() []LocalVote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := make(map[uuid.UUID]int, len(s.participants))
	for i, p := range s.participants {
		order[p.ID] = i
	}
	out := make([]LocalVote, 0, len(s.votes))
	for _, v := range s.votes {
		out = append(out, v.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iok := order[out[i].ParticipantID]
		oj, jok := order[out[j].ParticipantID]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return bytes.Compare(out[i].ParticipantID[:], out[j].ParticipantID[:]) < 0
		}
	})
	return out
}

// VoteValues returns the card values of every tracked vote.
func (s *Store) VoteValues() []string {
	votes := s.Votes()
	values := make([]string, 0, len(votes))
	for _, v := range votes {
		values = append(values, v.Value)
	}
	return values
}

// VoteFor returns the vote tracked for a participant.
func (s *Store) VoteFor(participantID uuid.UUID) (LocalVote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.votes[participantID]
	if !ok {
		return LocalVote{}, false
	}
	return v.clone(), true
}

// CardValues returns the deck for the room's current settings.
func (s *Store) CardValues() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cards.ForSettings(s.room.RoomSettings)
}

// CanControl reports whether the local user may reveal or reset rounds.
// The server enforces the same rule.
func (s *Store) CanControl() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	self, ok := s.self()
	if !ok {
		return false
	}
	return self.CanControl(s.room.RoomSettings)
}

// target returns the ids a command acts on.
func (s *Store) target() (roomID, sessionID uuid.UUID, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return uuid.Nil, uuid.Nil, ErrClosed
	}
	if !s.initialized {
		return uuid.Nil, uuid.Nil, ErrNotInitialized
	}
	if s.session == nil {
		return s.room.ID, uuid.Nil, models.ErrSessionNotFound
	}
	return s.room.ID, s.session.ID, nil
}
