package countdown

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/planpoker/go/internal/models"
)

// Resolution is how often the countdown is re-derived.
const Resolution = time.Second

// Source is the room state a Driver reads. *roomsync.Store satisfies it.
type Source interface {
	CurrentSession() *models.VotingSession
	Settings() models.RoomSettings
	RequestTimerExpiryReveal(ctx context.Context) error
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock sets the clock used for both reading time and ticking.
func WithClock(clock clockwork.Clock) Option {
	return func(d *Driver) { d.clock = clock }
}

// WithOnTick registers a callback run after every evaluation with the
// current countdown, for rendering.
func WithOnTick(fn func(seconds int, ok bool)) Option {
	return func(d *Driver) { d.onTick = fn }
}

// Driver derives a round's remaining time from its start and the room's
// timer setting, and asks for a reveal once when it runs out.
type Driver struct {
	source Source
	clock  clockwork.Clock
	onTick func(seconds int, ok bool)

	mu       sync.Mutex
	firedFor uuid.UUID
}

func New(source Source, opts ...Option) *Driver {
	d := &Driver{
		source: source,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Remaining returns whole seconds left in the current round, rounded up and
// clamped at zero. ok is false when the round has no timer or is revealed.
// A timer changed mid-round counts from the round's original start.
func (d *Driver) Remaining() (seconds int, ok bool) {
	return d.remainingFor(d.source.CurrentSession())
}

func (d *Driver) remainingFor(session *models.VotingSession) (int, bool) {
	if session == nil || session.IsRevealed {
		return 0, false
	}
	deadline, ok := session.Deadline(d.source.Settings())
	if !ok {
		return 0, false
	}
	return remaining(deadline, d.clock.Now()), true
}

func remaining(deadline, now time.Time) int {
	left := deadline.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

// Check evaluates the countdown and, the first time it reaches zero for a
// session, requests the expiry reveal. It reports whether it fired.
func (d *Driver) Check(ctx context.Context) bool {
	session := d.source.CurrentSession()
	seconds, ok := d.remainingFor(session)
	if d.onTick != nil {
		d.onTick(seconds, ok)
	}
	if !ok || seconds > 0 {
		return false
	}

	d.mu.Lock()
	if d.firedFor == session.ID {
		d.mu.Unlock()
		return false
	}
	d.firedFor = session.ID
	d.mu.Unlock()

	log.Debug().Str("session_id", session.ID.String()).Msg("round timer elapsed, requesting reveal")
	if err := d.source.RequestTimerExpiryReveal(ctx); err != nil {
		// Other clients fire too and the poll picks up whichever reveal lands.
		log.Debug().Err(err).Str("session_id", session.ID.String()).Msg("timer expiry reveal failed")
	}
	return true
}

// Run re-evaluates the countdown every Resolution until ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	d.Check(ctx)

	ticker := d.clock.NewTicker(Resolution)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			d.Check(ctx)
		}
	}
}
