package roomsync

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
)

// Backend is the authoritative store the sync core reads from and writes through.
type Backend interface {
	FetchVotes(ctx context.Context, sessionID uuid.UUID) ([]models.Vote, error)
	FetchParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error)
	FetchLatestSession(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, error)
	FetchRoomSettings(ctx context.Context, roomID uuid.UUID) (models.RoomSettings, error)
	SubmitVote(ctx context.Context, roomID, sessionID uuid.UUID, cardValue string) (*models.Vote, error)
	Reveal(ctx context.Context, roomID, sessionID uuid.UUID) error
	RevealOnTimerExpiry(ctx context.Context, sessionID uuid.UUID) (bool, error)
	Reset(ctx context.Context, roomID uuid.UUID, topic string) (*models.VotingSession, error)
}

// Subscriber opens a change feed for one room.
type Subscriber interface {
	Subscribe(ctx context.Context, roomID uuid.UUID) (Subscription, error)
}

// Subscription delivers change events until closed. Delivery may drop,
// duplicate or reorder events.
type Subscription interface {
	Events() <-chan models.ChangeEvent
	Close() error
}
