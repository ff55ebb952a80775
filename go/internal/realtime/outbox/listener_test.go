package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/planpoker/go/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	events  map[uuid.UUID]models.ChangeEvent
	order   []uuid.UUID
	sent    map[uuid.UUID]bool
	markErr error
}

func newFakeStore(events ...models.ChangeEvent) *fakeStore {
	s := &fakeStore{events: make(map[uuid.UUID]models.ChangeEvent), sent: make(map[uuid.UUID]bool)}
	for _, ev := range events {
		s.events[ev.ID] = ev
		s.order = append(s.order, ev.ID)
	}
	return s
}

func (s *fakeStore) FetchEvent(_ context.Context, id uuid.UUID) (*models.ChangeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok || s.sent[id] {
		return nil, nil
	}
	return &ev, nil
}

func (s *fakeStore) FetchUnsent(_ context.Context, limit int32) ([]models.ChangeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ChangeEvent
	for _, id := range s.order {
		if !s.sent[id] && int32(len(out)) < limit {
			out = append(out, s.events[id])
		}
	}
	return out, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	s.sent[id] = true
	return nil
}

func (s *fakeStore) isSent(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[id]
}

type fakePublisher struct {
	mu        sync.Mutex
	failures  int
	published []models.ChangeEvent
	attempts  int
}

func (p *fakePublisher) Publish(_ context.Context, ev models.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts++
	if p.failures > 0 {
		p.failures--
		return errors.New("nats: timeout")
	}
	p.published = append(p.published, ev)
	return nil
}

func (p *fakePublisher) ids() []uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]uuid.UUID, len(p.published))
	for i, ev := range p.published {
		out[i] = ev.ID
	}
	return out
}

type fakeNotifier struct {
	ch     chan *pq.Notification
	closed bool
}

func (n *fakeNotifier) NotificationChannel() <-chan *pq.Notification { return n.ch }
func (n *fakeNotifier) Ping() error                                  { return nil }
func (n *fakeNotifier) Close() error {
	n.closed = true
	return nil
}

func changeEvent(table string) models.ChangeEvent {
	return models.ChangeEvent{
		ID:        uuid.New(),
		RoomID:    uuid.MustParse("0b8a3f9e-5d2c-4c71-9a55-1f2e3d4c5b6a"),
		Table:     table,
		Operation: models.ChangeOpInsert,
		Record:    json.RawMessage(`{"card_value":"5"}`),
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func testConfig() ListenerConfig {
	cfg := DefaultListenerConfig()
	cfg.MaxRetries = 2
	return cfg
}

func TestHandleNotification_PublishesAndMarksSent(t *testing.T) {
	ev := changeEvent(models.TableVotes)
	store := newFakeStore(ev)
	pub := &fakePublisher{}
	l := newListener(store, &fakeNotifier{}, pub, testConfig(), clockwork.NewFakeClock())

	require.NoError(t, l.handleNotification(context.Background(), ev.ID.String()))
	assert.Equal(t, []uuid.UUID{ev.ID}, pub.ids())
	assert.True(t, store.isSent(ev.ID))

	require.NoError(t, l.handleNotification(context.Background(), ev.ID.String()), "already sent events are skipped")
	assert.Len(t, pub.ids(), 1)

	published, _, _ := l.Stats()
	assert.Equal(t, uint64(1), published)
}

func TestHandleNotification_InvalidPayload(t *testing.T) {
	l := newListener(newFakeStore(), &fakeNotifier{}, &fakePublisher{}, testConfig(), clockwork.NewFakeClock())
	assert.Error(t, l.handleNotification(context.Background(), "not-a-uuid"))
}

func TestProcessUnsent_PublishesInOrder(t *testing.T) {
	first, second := changeEvent(models.TableVotingSessions), changeEvent(models.TableVotes)
	store := newFakeStore(first, second)
	pub := &fakePublisher{}
	l := newListener(store, &fakeNotifier{}, pub, testConfig(), clockwork.NewFakeClock())

	require.NoError(t, l.processUnsent(context.Background()))
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, pub.ids())
}

func TestProcessUnsent_LeavesEventUnsentWhenMarkFails(t *testing.T) {
	ev := changeEvent(models.TableVotes)
	store := newFakeStore(ev)
	store.markErr = errors.New("connection reset")
	l := newListener(store, &fakeNotifier{}, &fakePublisher{}, testConfig(), clockwork.NewFakeClock())

	require.NoError(t, l.processUnsent(context.Background()))
	assert.False(t, store.isSent(ev.ID))
}

func TestPublishWithRetry_BacksOffLinearly(t *testing.T) {
	ev := changeEvent(models.TableVotes)
	clock := clockwork.NewFakeClock()
	pub := &fakePublisher{failures: 2}
	l := newListener(newFakeStore(ev), &fakeNotifier{}, pub, testConfig(), clock)

	done := make(chan error, 1)
	go func() { done <- l.publishWithRetry(context.Background(), ev) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(200 * time.Millisecond)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(400 * time.Millisecond)

	require.NoError(t, <-done)
	assert.Equal(t, 3, pub.attempts)
	assert.Equal(t, []uuid.UUID{ev.ID}, pub.ids())
}

func TestPublishWithRetry_GivesUp(t *testing.T) {
	ev := changeEvent(models.TableVotes)
	cfg := testConfig()
	cfg.MaxRetries = 0
	pub := &fakePublisher{failures: 1}
	l := newListener(newFakeStore(ev), &fakeNotifier{}, pub, cfg, clockwork.NewFakeClock())

	err := l.publishWithRetry(context.Background(), ev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish failed after 1 attempts")
}

func TestStart_RelaysNotificationsUntilCanceled(t *testing.T) {
	backlog, live := changeEvent(models.TableRooms), changeEvent(models.TableParticipants)
	store := newFakeStore(backlog)
	pub := &fakePublisher{}
	n := &fakeNotifier{ch: make(chan *pq.Notification)}
	l := newListener(store, n, pub, testConfig(), clockwork.NewFakeClock())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Start(ctx) }()

	store.mu.Lock()
	store.events[live.ID] = live
	store.order = append(store.order, live.ID)
	store.mu.Unlock()
	n.ch <- &pq.Notification{Channel: "room_events", Extra: live.ID.String()}

	require.Eventually(t, func() bool { return len(pub.ids()) == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []uuid.UUID{backlog.ID, live.ID}, pub.ids())

	cancel()
	require.NoError(t, <-done)
	assert.True(t, n.closed)
}

func TestNewMessage(t *testing.T) {
	ev := changeEvent(models.TableVotes)
	msg, err := newMessage("room.events", ev)
	require.NoError(t, err)

	assert.Equal(t, "room.events.0b8a3f9e-5d2c-4c71-9a55-1f2e3d4c5b6a.votes", msg.Subject)
	assert.Equal(t, ev.ID.String(), msg.Header.Get(HeaderEventID))
	assert.Equal(t, "INSERT", msg.Header.Get(HeaderOperation))

	var decoded models.ChangeEvent
	require.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
	assert.JSONEq(t, `{"card_value":"5"}`, string(decoded.Record))
	assert.Nil(t, decoded.OldRecord)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

type stubCounter int64

func (c stubCounter) CountUnsent(context.Context) (int64, error) { return int64(c), nil }

func TestHealthChecker(t *testing.T) {
	l := newListener(newFakeStore(), &fakeNotifier{}, &fakePublisher{}, testConfig(), clockwork.NewFakeClock())
	l.setRunning(true)

	h := NewHealthChecker(l, stubPinger{}, stubCounter(3), func() bool { return true }, time.Minute)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Healthy)
	assert.Equal(t, int64(3), status.PendingEvents)

	h = NewHealthChecker(l, stubPinger{err: errors.New("down")}, stubCounter(0), func() bool { return false }, time.Minute)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
