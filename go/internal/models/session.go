package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a voting round.
type SessionState string

const (
	SessionStateOpen     SessionState = "open"
	SessionStateRevealed SessionState = "revealed"
)

// VotingSession is one round of voting within a room.
// IsRevealed only ever moves from false to true.
type VotingSession struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	Topic      string    `json:"topic"`
	IsRevealed bool      `json:"is_revealed"`
	CreatedAt  time.Time `json:"created_at"`
}

// State returns the session's lifecycle state.
func (s *VotingSession) State() SessionState {
	if s.IsRevealed {
		return SessionStateRevealed
	}
	return SessionStateOpen
}

// CanAcceptVotes reports whether votes may still change the round's outcome.
func (s *VotingSession) CanAcceptVotes() bool {
	return !s.IsRevealed
}

// Deadline returns when the round timer elapses, or false when no timer applies.
func (s *VotingSession) Deadline(settings RoomSettings) (time.Time, bool) {
	if settings.TimerDuration == nil {
		return time.Time{}, false
	}
	return s.CreatedAt.Add(settings.TimerDurationValue()), true
}

// Vote is a participant's card choice for one session.
type Vote struct {
	ID            uuid.UUID `json:"id"`
	SessionID     uuid.UUID `json:"session_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	CardValue     string    `json:"card_value"`
	VotedAt       time.Time `json:"voted_at"`
}

// HistoryVote is a vote as shown in session history.
type HistoryVote struct {
	ParticipantName string `json:"participant_name"`
	CardValue       string `json:"card_value"`
}

// SessionHistoryEntry is a revealed round with its votes.
type SessionHistoryEntry struct {
	ID        uuid.UUID     `json:"id"`
	Topic     string        `json:"topic"`
	CreatedAt time.Time     `json:"created_at"`
	Votes     []HistoryVote `json:"votes"`
}
