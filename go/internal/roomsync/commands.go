package roomsync

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/planpoker/go/internal/models"
)

// SubmitVote records the local user's card immediately and writes it to the
// backend in the background. A failed write restores the previous vote and is
// reported to the error handler.
func (s *Store) SubmitVote(ctx context.Context, card string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	card = strings.TrimSpace(card)
	if card == "" {
		return models.ErrCardValueRequired
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	if s.session == nil {
		s.mu.Unlock()
		return models.ErrSessionNotFound
	}

	s.seq++
	seq := s.seq
	roomID, sessionID, selfID := s.room.ID, s.session.ID, s.selfID
	s.votes[selfID] = &LocalVote{
		ParticipantID: selfID,
		State:         VotePending,
		Value:         card,
		seq:           seq,
		previous:      s.votes[selfID].lastConfirmed(),
	}
	s.notify()
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		// Outlives the caller's context; Close cancels it.
		vote, err := s.backend.SubmitVote(s.ctx, roomID, sessionID, card)
		if s.settleVote(seq, sessionID, vote, err) && s.onError != nil {
			s.onError(err)
		}
	}()
	return nil
}

// settleVote applies a finished write and reports whether it was rolled back.
func (s *Store) settleVote(seq uint64, sessionID uuid.UUID, vote *models.Vote, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.session == nil || s.session.ID != sessionID {
		return false
	}

	entry := s.votes[s.selfID]
	if entry == nil || entry.State != VotePending || entry.seq != seq {
		// A later write owns the entry. Remember the confirmed row in
		// case that write fails.
		if err == nil && vote != nil && entry != nil && entry.State == VotePending {
			row := *vote
			entry.previous = &row
		}
		return false
	}

	if err != nil {
		log.Debug().Err(err).Str("session_id", s.session.ID.String()).Msg("vote write failed, rolling back")
		if entry.previous != nil {
			s.votes[s.selfID] = confirmed(*entry.previous)
		} else {
			delete(s.votes, s.selfID)
		}
		s.notify()
		return true
	}

	if vote != nil {
		s.votes[s.selfID] = confirmed(*vote)
		s.notify()
	}
	return false
}

// RequestReveal reveals the current round. Revealing twice is a no-op.
func (s *Store) RequestReveal(ctx context.Context) error {
	roomID, sessionID, err := s.target()
	if err != nil {
		return err
	}
	if err := s.backend.Reveal(ctx, roomID, sessionID); err != nil {
		return err
	}
	s.markRevealed(sessionID)
	return nil
}

// RequestTimerExpiryReveal asks the backend to reveal the current round
// because its timer elapsed. The backend decides whether it actually has.
func (s *Store) RequestTimerExpiryReveal(ctx context.Context) error {
	_, sessionID, err := s.target()
	if err != nil {
		return err
	}
	revealed, err := s.backend.RevealOnTimerExpiry(ctx, sessionID)
	if err != nil {
		return err
	}
	if revealed {
		s.markRevealed(sessionID)
	}
	return nil
}

// RequestReset starts a new round with an optional topic.
func (s *Store) RequestReset(ctx context.Context, topic string) error {
	roomID, _, err := s.target()
	if err != nil && !errors.Is(err, models.ErrSessionNotFound) {
		return err
	}
	session, err := s.backend.Reset(ctx, roomID, strings.TrimSpace(topic))
	if err != nil {
		return err
	}
	if session != nil {
		s.mu.Lock()
		if !s.closed && (s.session == nil || s.session.ID == session.ID || newerSession(*session, s.session)) {
			s.startSession(*session)
		}
		s.mu.Unlock()
	}
	return nil
}

func (s *Store) markRevealed(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.session == nil || s.session.ID != sessionID || s.session.IsRevealed {
		return
	}
	s.session.IsRevealed = true
	s.notify()
}
