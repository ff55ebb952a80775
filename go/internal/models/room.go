package models

import (
	"time"

	"github.com/google/uuid"
)

// CardSet identifies which deck a room votes with.
type CardSet string

const (
	CardSetFibonacci CardSet = "fibonacci"
	CardSetTShirt    CardSet = "tshirt"
	CardSetPowerOf2  CardSet = "powerOf2"
	CardSetCustom    CardSet = "custom"
)

// TimerDurations lists the allowed round timers in seconds. A nil timer means no countdown.
var TimerDurations = []int{30, 60, 120, 300}

// RoomSettings is the facilitator-controlled part of a room.
type RoomSettings struct {
	CardSet         CardSet  `json:"card_set"`
	CustomCards     []string `json:"custom_cards"`
	AutoReveal      bool     `json:"auto_reveal"`
	TimerDuration   *int     `json:"timer_duration"`
	AllowAllControl bool     `json:"allow_all_control"`
}

// Room represents a shared estimation workspace.
type Room struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	RoomSettings
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Settings returns a copy of the room's settings.
func (r *Room) Settings() RoomSettings {
	s := r.RoomSettings
	if r.CustomCards != nil {
		s.CustomCards = append([]string(nil), r.CustomCards...)
	}
	if r.TimerDuration != nil {
		d := *r.TimerDuration
		s.TimerDuration = &d
	}
	return s
}

// TimerDurationValue returns the configured round timer, or zero when the room has none.
func (s RoomSettings) TimerDurationValue() time.Duration {
	if s.TimerDuration == nil {
		return 0
	}
	return time.Duration(*s.TimerDuration) * time.Second
}
