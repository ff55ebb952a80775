package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant is one user's membership in a room.
type Participant struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"room_id"`
	UserID        string    `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	IsFacilitator bool      `json:"is_facilitator"`
	IsObserver    bool      `json:"is_observer"`
	IsActive      bool      `json:"is_active"`
	JoinedAt      time.Time `json:"joined_at"`
	LastActiveAt  time.Time `json:"last_active_at"`
}

// CanVote reports whether the participant counts towards round completion.
func (p *Participant) CanVote() bool {
	return p.IsActive && !p.IsObserver
}

// CanControl reports whether the participant may reveal or reset rounds in a room with the given settings.
func (p *Participant) CanControl(settings RoomSettings) bool {
	return p.IsFacilitator || settings.AllowAllControl
}
