package roomsync

import (
	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
)

// VoteState tells a locally cast vote apart from one storage has confirmed.
type VoteState int

const (
	VotePending VoteState = iota
	VoteConfirmed
)

func (s VoteState) String() string {
	if s == VotePending {
		return "pending"
	}
	return "confirmed"
}

// LocalVote is the single vote the store holds for a participant.
// Row is set only when State is VoteConfirmed.
type LocalVote struct {
	ParticipantID uuid.UUID
	State         VoteState
	Value         string
	Row           *models.Vote

	seq      uint64
	previous *models.Vote
}

func confirmed(row models.Vote) *LocalVote {
	return &LocalVote{
		ParticipantID: row.ParticipantID,
		State:         VoteConfirmed,
		Value:         row.CardValue,
		Row:           &row,
	}
}

// lastConfirmed is the storage row a failed write falls back to.
func (v *LocalVote) lastConfirmed() *models.Vote {
	if v == nil {
		return nil
	}
	if v.State == VoteConfirmed {
		return v.Row
	}
	return v.previous
}

func (v *LocalVote) clone() LocalVote {
	out := *v
	if v.Row != nil {
		row := *v.Row
		out.Row = &row
	}
	out.previous = nil
	return out
}
