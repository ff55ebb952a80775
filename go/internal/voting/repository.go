package voting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/db"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/sqlutil"
)

// Repository implements voting round data access.
type Repository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

// NewRepository creates a new voting repository
func NewRepository(queries *db.Queries, sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// SubmitVote upserts the participant's vote and evaluates round completion in the same
// transaction. It reports whether this vote revealed the round. The session row stays
// locked for the whole transaction, so a vote never lands in a round that a concurrent
// reveal has closed, nor in a round a reset has superseded.
func (r *Repository) SubmitVote(ctx context.Context, sessionID, participantID uuid.UUID, cardValue string) (*models.Vote, bool, error) {
	var (
		vote     db.Vote
		revealed bool
	)
	err := sqlutil.Run(ctx, r.sqlDB, r.queries.WithTx, func(q *db.Queries) error {
		session, err := q.LockVotingSessionForVote(ctx, sessionID)
		if err != nil {
			if sqlutil.IsNoRows(err) {
				return models.ErrSessionNotFound
			}
			return fmt.Errorf("failed to lock session: %w", err)
		}
		if session.IsRevealed {
			return models.Wrap(models.ErrInvalidInput, errSessionRevealed)
		}
		if !session.IsCurrent {
			return models.Wrap(models.ErrInvalidInput, errSessionSuperseded)
		}

		vote, err = q.UpsertVote(ctx, db.UpsertVoteParams{
			SessionID:     sessionID,
			ParticipantID: participantID,
			CardValue:     cardValue,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert vote: %w", err)
		}

		revealed, err = q.AutoRevealIfComplete(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to check round completion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	v := models.Vote(vote)
	return &v, revealed, nil
}

// RevealSession marks a session revealed. Revealing twice is harmless.
func (r *Repository) RevealSession(ctx context.Context, sessionID uuid.UUID) (*models.VotingSession, error) {
	session, err := r.queries.RevealVotingSession(ctx, sessionID)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to reveal session: %w", err)
	}
	s := models.VotingSession(session)
	return &s, nil
}

// RevealOnTimerExpiry reveals the session if its timer has run out. Only the call that
// performed the transition gets true.
func (r *Repository) RevealOnTimerExpiry(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	revealed, err := r.queries.RevealOnTimerExpiry(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to reveal on timer expiry: %w", err)
	}
	return revealed, nil
}

// CreateSession starts a new round, superseding the room's current one
func (r *Repository) CreateSession(ctx context.Context, roomID uuid.UUID, topic string) (*models.VotingSession, error) {
	session, err := r.queries.CreateVotingSession(ctx, db.CreateVotingSessionParams{
		RoomID: roomID,
		Topic:  topic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s := models.VotingSession(session)
	return &s, nil
}

// GetSession retrieves a session by ID
func (r *Repository) GetSession(ctx context.Context, id uuid.UUID) (*models.VotingSession, error) {
	session, err := r.queries.GetVotingSession(ctx, id)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s := models.VotingSession(session)
	return &s, nil
}

// GetLatestSession returns the room's current round, or nil if it has none
func (r *Repository) GetLatestSession(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, error) {
	session, err := r.queries.GetLatestVotingSession(ctx, roomID)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}
	s := models.VotingSession(session)
	return &s, nil
}

// ListVotes returns a session's votes in the order they were cast
func (r *Repository) ListVotes(ctx context.Context, sessionID uuid.UUID) ([]models.Vote, error) {
	rows, err := r.queries.ListVotesBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return dbVotesToModels(rows), nil
}

// GetSessionHistory returns revealed rounds newest first, each with its votes labelled by display name
func (r *Repository) GetSessionHistory(ctx context.Context, roomID uuid.UUID) ([]models.SessionHistoryEntry, error) {
	sessions, err := r.queries.ListRevealedVotingSessions(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list revealed sessions: %w", err)
	}
	if len(sessions) == 0 {
		return []models.SessionHistoryEntry{}, nil
	}

	ids := make([]uuid.UUID, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	votes, err := r.queries.ListVotesBySessions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list history votes: %w", err)
	}

	participants, err := r.queries.ListParticipantsByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	names := make(map[uuid.UUID]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.DisplayName
	}

	bySession := make(map[uuid.UUID][]models.HistoryVote, len(sessions))
	for _, v := range votes {
		name, ok := names[v.ParticipantID]
		if !ok {
			name = UnknownParticipant
		}
		bySession[v.SessionID] = append(bySession[v.SessionID], models.HistoryVote{
			ParticipantName: name,
			CardValue:       v.CardValue,
		})
	}

	history := make([]models.SessionHistoryEntry, len(sessions))
	for i, s := range sessions {
		entryVotes := bySession[s.ID]
		if entryVotes == nil {
			entryVotes = []models.HistoryVote{}
		}
		history[i] = models.SessionHistoryEntry{
			ID:        s.ID,
			Topic:     s.Topic,
			CreatedAt: s.CreatedAt,
			Votes:     entryVotes,
		}
	}
	return history, nil
}

func dbVotesToModels(rows []db.Vote) []models.Vote {
	votes := make([]models.Vote, len(rows))
	for i, row := range rows {
		votes[i] = models.Vote(row)
	}
	return votes
}
