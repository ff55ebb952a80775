package roomsync

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/planpoker/go/internal/models"
)

// Apply folds one change notification into the store. Events for other
// rooms, stale sessions or unknown tables are ignored, as are duplicates.
func (s *Store) Apply(ev models.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.initialized {
		return
	}
	if ev.RoomID != uuid.Nil && ev.RoomID != s.room.ID {
		return
	}

	var err error
	switch ev.Table {
	case models.TableRooms:
		err = s.applyRoom(ev)
	case models.TableParticipants:
		err = s.applyParticipant(ev)
	case models.TableVotingSessions:
		err = s.applySession(ev)
	case models.TableVotes:
		err = s.applyVote(ev)
	default:
		log.Debug().Str("table", ev.Table).Msg("ignoring change event for unknown table")
		return
	}
	if err != nil {
		log.Debug().Err(err).
			Str("table", ev.Table).
			Str("operation", string(ev.Operation)).
			Msg("failed to decode change event")
	}
}

func (s *Store) applyRoom(ev models.ChangeEvent) error {
	if ev.Operation != models.ChangeOpUpdate {
		return nil
	}
	var room models.Room
	if err := ev.Decode(&room); err != nil {
		return err
	}
	if room.ID != s.room.ID {
		return nil
	}
	s.room.Name = room.Name
	s.room.IsActive = room.IsActive
	s.room.ExpiresAt = room.ExpiresAt
	s.room.RoomSettings = room.Settings()
	s.notify()
	return nil
}

func (s *Store) applyParticipant(ev models.ChangeEvent) error {
	var p models.Participant
	if ev.Operation == models.ChangeOpDelete {
		if err := ev.DecodeOld(&p); err != nil {
			return err
		}
		s.removeParticipant(p.ID)
		return nil
	}
	if err := ev.Decode(&p); err != nil {
		return err
	}
	if p.RoomID != s.room.ID {
		return nil
	}
	if !p.IsActive {
		s.removeParticipant(p.ID)
		return nil
	}
	for i := range s.participants {
		if s.participants[i].ID == p.ID {
			if ev.Operation == models.ChangeOpUpdate {
				s.participants[i] = p
				s.notify()
			}
			return nil
		}
	}
	s.participants = append(s.participants, p)
	s.notify()
	return nil
}

func (s *Store) removeParticipant(id uuid.UUID) {
	for i := range s.participants {
		if s.participants[i].ID == id {
			s.participants = append(s.participants[:i], s.participants[i+1:]...)
			s.notify()
			return
		}
	}
}

func (s *Store) applySession(ev models.ChangeEvent) error {
	if ev.Operation == models.ChangeOpDelete {
		return nil
	}
	var session models.VotingSession
	if err := ev.Decode(&session); err != nil {
		return err
	}
	if session.RoomID != s.room.ID {
		return nil
	}

	if s.session != nil && s.session.ID == session.ID {
		s.updateSession(session)
		return nil
	}
	if ev.Operation == models.ChangeOpInsert && newerSession(session, s.session) {
		s.startSession(session)
	}
	return nil
}

// newerSession reports whether a sorts after b in the room's
// (created_at, id) order, which decides the current round.
func newerSession(a models.VotingSession, b *models.VotingSession) bool {
	if b == nil {
		return true
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}

// startSession must be called with mu held.
func (s *Store) startSession(session models.VotingSession) {
	if s.session != nil && s.session.ID == session.ID {
		s.updateSession(session)
		return
	}
	s.session = &session
	s.votes = make(map[uuid.UUID]*LocalVote)
	s.notify()
}

// updateSession must be called with mu held. A revealed round never reopens.
func (s *Store) updateSession(session models.VotingSession) {
	session.IsRevealed = session.IsRevealed || s.session.IsRevealed
	if *s.session == session {
		return
	}
	*s.session = session
	s.notify()
}

func (s *Store) applyVote(ev models.ChangeEvent) error {
	var vote models.Vote
	if ev.Operation == models.ChangeOpDelete {
		if err := ev.DecodeOld(&vote); err != nil {
			return err
		}
		entry := s.votes[vote.ParticipantID]
		if entry != nil && entry.State == VoteConfirmed && entry.Row.ID == vote.ID {
			delete(s.votes, vote.ParticipantID)
			s.notify()
		}
		return nil
	}

	if err := ev.Decode(&vote); err != nil {
		return err
	}
	if s.session == nil || vote.SessionID != s.session.ID {
		return nil
	}
	s.mergeVote(vote)
	return nil
}

// mergeVote must be called with mu held. A pending local vote is only
// replaced by a row carrying the same value; any other row is older than
// the local write.
func (s *Store) mergeVote(vote models.Vote) {
	entry := s.votes[vote.ParticipantID]
	if entry != nil && entry.State == VotePending {
		if entry.Value != vote.CardValue {
			row := vote
			entry.previous = &row
			return
		}
	} else if entry != nil && *entry.Row == vote {
		return
	}
	s.votes[vote.ParticipantID] = confirmed(vote)
	s.notify()
}

// Poll re-reads the room from the backend and overwrites local state,
// keeping only pending local votes the backend has not caught up with.
// A polled round older than the local one is ignored. Failures are logged
// and left for the next tick.
func (s *Store) Poll(ctx context.Context) {
	s.mu.RLock()
	roomID, ready := s.room.ID, s.initialized && !s.closed
	s.mu.RUnlock()
	if !ready {
		return
	}

	session, err := s.backend.FetchLatestSession(ctx, roomID)
	if err != nil {
		log.Debug().Err(err).Str("room_id", roomID.String()).Msg("poll: failed to fetch latest session")
		return
	}
	var votes []models.Vote
	if session != nil {
		if votes, err = s.backend.FetchVotes(ctx, session.ID); err != nil {
			log.Debug().Err(err).Str("room_id", roomID.String()).Msg("poll: failed to fetch votes")
			return
		}
	}
	participants, err := s.backend.FetchParticipants(ctx, roomID)
	if err != nil {
		log.Debug().Err(err).Str("room_id", roomID.String()).Msg("poll: failed to fetch participants")
		return
	}
	settings, err := s.backend.FetchRoomSettings(ctx, roomID)
	if err != nil {
		log.Debug().Err(err).Str("room_id", roomID.String()).Msg("poll: failed to fetch room settings")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.room.RoomSettings = settings
	s.participants = append([]models.Participant(nil), participants...)

	// Rounds only move forward. A read that started before a reveal or a
	// newer round arrived must not undo either.
	if session == nil || (s.session != nil && s.session.ID != session.ID && !newerSession(*session, s.session)) {
		s.notify()
		return
	}
	if s.session == nil || s.session.ID != session.ID {
		s.session = session
		s.votes = make(map[uuid.UUID]*LocalVote)
	} else {
		session.IsRevealed = session.IsRevealed || s.session.IsRevealed
		*s.session = *session
	}

	next := make(map[uuid.UUID]*LocalVote, len(votes))
	for _, v := range votes {
		next[v.ParticipantID] = confirmed(v)
	}
	for pid, entry := range s.votes {
		if entry.State != VotePending {
			continue
		}
		polled, ok := next[pid]
		if ok && polled.Value == entry.Value {
			continue
		}
		if ok {
			entry.previous = polled.Row
		}
		next[pid] = entry
	}
	s.votes = next
	s.notify()
}
