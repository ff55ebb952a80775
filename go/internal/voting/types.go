package voting

import "github.com/google/uuid"

// UnknownParticipant labels history votes whose participant row no longer exists.
const UnknownParticipant = "unknown"

const maxTopicLength = 200

// SubmitVoteRequest is a participant casting or changing their card for a round.
type SubmitVoteRequest struct {
	RoomID    uuid.UUID `json:"room_id"`
	SessionID uuid.UUID `json:"session_id"`
	UserID    string    `json:"user_id"`
	CardValue string    `json:"card_value"`
}

// ControlRequest identifies an actor asking to reveal or reset a round.
type ControlRequest struct {
	RoomID    uuid.UUID `json:"room_id"`
	SessionID uuid.UUID `json:"session_id"`
	UserID    string    `json:"user_id"`
	Topic     string    `json:"topic"`
}
