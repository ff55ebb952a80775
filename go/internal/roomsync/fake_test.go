package roomsync

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/planpoker/go/internal/models"
)

// fakeBackend holds authoritative state in memory. Vote writes block on
// gate when it is set so tests can observe the pending state.
type fakeBackend struct {
	mu           sync.Mutex
	settings     models.RoomSettings
	participants []models.Participant
	sessions     []models.VotingSession
	votes        map[uuid.UUID][]models.Vote
	gate         chan struct{}
	voteErr      error
	fetchErr     error
	submitted    []string
	reveals      int
	expiryCalls  []uuid.UUID
	// afterSessionRead runs once the latest session has been read, before
	// the rest of a poll's reads.
	afterSessionRead func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{votes: make(map[uuid.UUID][]models.Vote)}
}

func (b *fakeBackend) latest() *models.VotingSession {
	if len(b.sessions) == 0 {
		return nil
	}
	s := b.sessions[len(b.sessions)-1]
	return &s
}

func (b *fakeBackend) FetchVotes(_ context.Context, sessionID uuid.UUID) ([]models.Vote, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return append([]models.Vote(nil), b.votes[sessionID]...), nil
}

func (b *fakeBackend) FetchParticipants(context.Context, uuid.UUID) ([]models.Participant, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return append([]models.Participant(nil), b.participants...), nil
}

func (b *fakeBackend) FetchLatestSession(context.Context, uuid.UUID) (*models.VotingSession, error) {
	b.mu.Lock()
	if b.fetchErr != nil {
		b.mu.Unlock()
		return nil, b.fetchErr
	}
	latest, hook := b.latest(), b.afterSessionRead
	b.mu.Unlock()
	if hook != nil {
		hook()
	}
	return latest, nil
}

func (b *fakeBackend) FetchRoomSettings(context.Context, uuid.UUID) (models.RoomSettings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fetchErr != nil {
		return models.RoomSettings{}, b.fetchErr
	}
	return b.settings, nil
}

func (b *fakeBackend) SubmitVote(ctx context.Context, _, sessionID uuid.UUID, card string) (*models.Vote, error) {
	b.mu.Lock()
	gate := b.gate
	b.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitted = append(b.submitted, card)
	if b.voteErr != nil {
		return nil, b.voteErr
	}
	vote := b.putVote(sessionID, selfID, card)
	return &vote, nil
}

// putVote must be called with mu held.
func (b *fakeBackend) putVote(sessionID, participantID uuid.UUID, card string) models.Vote {
	rows := b.votes[sessionID]
	for i := range rows {
		if rows[i].ParticipantID == participantID {
			rows[i].CardValue = card
			return rows[i]
		}
	}
	vote := models.Vote{
		ID:            uuid.New(),
		SessionID:     sessionID,
		ParticipantID: participantID,
		CardValue:     card,
		VotedAt:       time.Now(),
	}
	b.votes[sessionID] = append(rows, vote)
	return vote
}

func (b *fakeBackend) Reveal(_ context.Context, _, sessionID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reveals++
	for i := range b.sessions {
		if b.sessions[i].ID == sessionID {
			b.sessions[i].IsRevealed = true
		}
	}
	return nil
}

func (b *fakeBackend) RevealOnTimerExpiry(_ context.Context, sessionID uuid.UUID) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expiryCalls = append(b.expiryCalls, sessionID)
	for i := range b.sessions {
		if b.sessions[i].ID == sessionID && !b.sessions[i].IsRevealed {
			b.sessions[i].IsRevealed = true
			return true, nil
		}
	}
	return false, nil
}

func (b *fakeBackend) Reset(_ context.Context, _ uuid.UUID, topic string) (*models.VotingSession, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := models.VotingSession{ID: uuid.New(), RoomID: roomID, Topic: topic, CreatedAt: time.Now()}
	b.sessions = append(b.sessions, s)
	return &s, nil
}

type fakeSubscription struct {
	events chan models.ChangeEvent
	mu     sync.Mutex
	closed int
}

func (f *fakeSubscription) Events() <-chan models.ChangeEvent { return f.events }

func (f *fakeSubscription) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// fakeSubscriber hands out sub. When dialing is set, Subscribe signals it
// and then waits for release, like a slow handshake.
type fakeSubscriber struct {
	sub     *fakeSubscription
	err     error
	dialing chan struct{}
	release chan struct{}
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, _ uuid.UUID) (Subscription, error) {
	if f.dialing != nil {
		close(f.dialing)
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

var (
	roomID  = uuid.MustParse("6f1c2b1e-0000-4000-8000-000000000001")
	selfID  = uuid.MustParse("6f1c2b1e-0000-4000-8000-0000000000a1")
	otherID = uuid.MustParse("6f1c2b1e-0000-4000-8000-0000000000b2")
)

type fixture struct {
	backend *fakeBackend
	session models.VotingSession
	snap    models.Snapshot
}

func newFixture() *fixture {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session := models.VotingSession{ID: uuid.New(), RoomID: roomID, CreatedAt: created}
	participants := []models.Participant{
		{ID: selfID, RoomID: roomID, UserID: "u-self", DisplayName: "Ana", IsFacilitator: true, IsActive: true, JoinedAt: created},
		{ID: otherID, RoomID: roomID, UserID: "u-other", DisplayName: "Ben", IsActive: true, JoinedAt: created.Add(time.Minute)},
	}
	settings := models.RoomSettings{CardSet: models.CardSetFibonacci, AutoReveal: true}

	backend := newFakeBackend()
	backend.settings = settings
	backend.participants = participants
	backend.sessions = []models.VotingSession{session}

	return &fixture{
		backend: backend,
		session: session,
		snap: models.Snapshot{
			Room:                 models.Room{ID: roomID, Code: "ABCDEF", Name: "Sprint 12", RoomSettings: settings, IsActive: true},
			Participants:         participants,
			CurrentSession:       &session,
			CurrentParticipantID: selfID,
		},
	}
}

func event(t *testing.T, table string, op models.ChangeOp, record, old any) models.ChangeEvent {
	t.Helper()
	ev := models.ChangeEvent{ID: uuid.New(), RoomID: roomID, Table: table, Operation: op}
	if record != nil {
		raw, err := json.Marshal(record)
		require.NoError(t, err)
		ev.Record = raw
	}
	if old != nil {
		raw, err := json.Marshal(old)
		require.NoError(t, err)
		ev.OldRecord = raw
	}
	return ev
}
