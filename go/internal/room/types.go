package room

import (
	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
)

const (
	MaxRoomNameLength    = 100
	MaxDisplayNameLength = 20
	maxCodeAttempts      = 5
)

// CreateRoomRequest represents the data needed to open a new room.
// Nil AutoReveal and AllowAllControl default to true.
type CreateRoomRequest struct {
	Name            string         `json:"name"`
	UserID          string         `json:"user_id"`
	DisplayName     string         `json:"display_name"`
	CardSet         models.CardSet `json:"card_set"`
	CustomCards     []string       `json:"custom_cards"`
	AutoReveal      *bool          `json:"auto_reveal"`
	TimerDuration   *int           `json:"timer_duration"`
	AllowAllControl *bool          `json:"allow_all_control"`
}

// JoinRoomRequest represents a user joining an existing room by code.
type JoinRoomRequest struct {
	Code        string `json:"code"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// UpdateSettingsRequest replaces a room's settings on behalf of UserID.
type UpdateSettingsRequest struct {
	RoomID   uuid.UUID           `json:"room_id"`
	UserID   string              `json:"user_id"`
	Settings models.RoomSettings `json:"settings"`
}

// UpdateParticipantRequest toggles observer or active flags. Nil fields are left unchanged.
type UpdateParticipantRequest struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	UserID        string    `json:"user_id"`
	IsObserver    *bool     `json:"is_observer"`
	IsActive      *bool     `json:"is_active"`
}

// newRoom is what the repository needs to insert a room and its facilitator.
type newRoom struct {
	Code        string
	Name        string
	UserID      string
	DisplayName string
	Settings    models.RoomSettings
}
