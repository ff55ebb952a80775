package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Table names carried on change events.
const (
	TableRooms          = "rooms"
	TableParticipants   = "participants"
	TableVotingSessions = "voting_sessions"
	TableVotes          = "votes"
)

// ChangeOp is the row operation a change event describes.
type ChangeOp string

const (
	ChangeOpInsert ChangeOp = "INSERT"
	ChangeOpUpdate ChangeOp = "UPDATE"
	ChangeOpDelete ChangeOp = "DELETE"
)

// ChangeEvent describes one committed row change in a room.
// Record is the new row (nil on delete), OldRecord the previous row (nil on insert).
type ChangeEvent struct {
	ID        uuid.UUID       `json:"id"`
	RoomID    uuid.UUID       `json:"room_id"`
	Table     string          `json:"table"`
	Operation ChangeOp        `json:"operation"`
	Record    json.RawMessage `json:"record,omitempty"`
	OldRecord json.RawMessage `json:"old_record,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Decode unmarshals the new row into v.
func (e *ChangeEvent) Decode(v any) error {
	return json.Unmarshal(e.Record, v)
}

// DecodeOld unmarshals the previous row into v.
func (e *ChangeEvent) DecodeOld(v any) error {
	return json.Unmarshal(e.OldRecord, v)
}

// Snapshot is the server-side view of a room used to seed a client.
type Snapshot struct {
	Room                 Room           `json:"room"`
	Participants         []Participant  `json:"participants"`
	CurrentSession       *VotingSession `json:"current_session"`
	Votes                []Vote         `json:"votes"`
	CurrentParticipantID uuid.UUID      `json:"current_participant_id"`
}
