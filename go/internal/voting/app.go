package voting

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/cards"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	errSessionRevealed   = errors.New("round already revealed")
	errSessionSuperseded = errors.New("round superseded by a newer round")
)

// VotingRepository defines what the app layer needs from the repository
type VotingRepository interface {
	SubmitVote(ctx context.Context, sessionID, participantID uuid.UUID, cardValue string) (*models.Vote, bool, error)
	RevealSession(ctx context.Context, sessionID uuid.UUID) (*models.VotingSession, error)
	RevealOnTimerExpiry(ctx context.Context, sessionID uuid.UUID) (bool, error)
	CreateSession(ctx context.Context, roomID uuid.UUID, topic string) (*models.VotingSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.VotingSession, error)
	GetLatestSession(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, error)
	ListVotes(ctx context.Context, sessionID uuid.UUID) ([]models.Vote, error)
	GetSessionHistory(ctx context.Context, roomID uuid.UUID) ([]models.SessionHistoryEntry, error)
}

// RoomReader is the slice of the room app that voting rules depend on
type RoomReader interface {
	GetRoomSettings(ctx context.Context, roomID uuid.UUID) (models.RoomSettings, error)
	GetCurrentParticipant(ctx context.Context, roomID uuid.UUID, userID string) (*models.Participant, error)
}

// App enforces the voting round state machine
type App struct {
	repo  VotingRepository
	rooms RoomReader
}

// NewApp creates a new voting App
func NewApp(repo VotingRepository, rooms RoomReader) *App {
	return &App{
		repo:  repo,
		rooms: rooms,
	}
}

// SubmitVote records the caller's card for an open round and reports whether the vote
// completed the round.
func (a *App) SubmitVote(ctx context.Context, req SubmitVoteRequest) (*models.Vote, bool, error) {
	cardValue := strings.TrimSpace(req.CardValue)
	if cardValue == "" {
		return nil, false, models.ErrCardValueRequired
	}

	voter, err := a.participant(ctx, req.RoomID, req.UserID)
	if err != nil {
		return nil, false, err
	}
	if !voter.CanVote() {
		return nil, false, models.Wrap(models.ErrPermissionDenied, errors.New("observers and inactive participants cannot vote"))
	}

	settings, err := a.rooms.GetRoomSettings(ctx, req.RoomID)
	if err != nil {
		return nil, false, err
	}
	if !slices.Contains(cards.ForSettings(settings), cardValue) {
		return nil, false, models.Wrap(models.ErrInvalidInput, fmt.Errorf("card %q is not in the room's deck", cardValue))
	}

	session, err := a.sessionInRoom(ctx, req.RoomID, req.SessionID)
	if err != nil {
		return nil, false, err
	}
	if !session.CanAcceptVotes() {
		return nil, false, models.Wrap(models.ErrInvalidInput, errSessionRevealed)
	}

	vote, revealed, err := a.repo.SubmitVote(ctx, session.ID, voter.ID, cardValue)
	if err != nil {
		return nil, false, fmt.Errorf("failed to submit vote: %w", err)
	}

	if revealed {
		log.Info().Str("session_id", session.ID.String()).Msg("round complete, auto revealed")
	} else {
		log.Debug().
			Str("session_id", session.ID.String()).
			Str("participant_id", voter.ID.String()).
			Msg("vote recorded")
	}
	return vote, revealed, nil
}

// RevealVotes reveals a round on behalf of an authorized actor. Already revealed rounds are a no-op.
func (a *App) RevealVotes(ctx context.Context, req ControlRequest) (*models.VotingSession, error) {
	if err := a.authorizeControl(ctx, req.RoomID, req.UserID); err != nil {
		return nil, err
	}

	session, err := a.sessionInRoom(ctx, req.RoomID, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.IsRevealed {
		return session, nil
	}

	session, err = a.repo.RevealSession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reveal votes: %w", err)
	}

	log.Info().Str("room_id", req.RoomID.String()).Str("session_id", session.ID.String()).Msg("revealed votes")
	return session, nil
}

// RevealOnTimerExpiry asks storage to reveal a round whose timer ran out.
// Many clients fire this for the same round; only one gets true.
func (a *App) RevealOnTimerExpiry(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	if sessionID == uuid.Nil {
		return false, models.Wrap(models.ErrInvalidInput, errors.New("session id is required"))
	}

	revealed, err := a.repo.RevealOnTimerExpiry(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if revealed {
		log.Info().Str("session_id", sessionID.String()).Msg("round revealed on timer expiry")
	}
	return revealed, nil
}

// ResetVoting starts a new round. Concurrent resets each create a round; the latest one is current.
func (a *App) ResetVoting(ctx context.Context, req ControlRequest) (*models.VotingSession, error) {
	topic := strings.TrimSpace(req.Topic)
	if utf8.RuneCountInString(topic) > maxTopicLength {
		return nil, models.Wrap(models.ErrInvalidInput, errors.New("topic too long"))
	}
	if err := a.authorizeControl(ctx, req.RoomID, req.UserID); err != nil {
		return nil, err
	}

	session, err := a.repo.CreateSession(ctx, req.RoomID, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to reset voting: %w", err)
	}

	log.Info().
		Str("room_id", req.RoomID.String()).
		Str("session_id", session.ID.String()).
		Str("topic", topic).
		Msg("started new round")
	return session, nil
}

// GetLatestSession returns the current round of a room, or nil if none exists
func (a *App) GetLatestSession(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, error) {
	return a.repo.GetLatestSession(ctx, roomID)
}

// ListVotes returns the votes of one round
func (a *App) ListVotes(ctx context.Context, sessionID uuid.UUID) ([]models.Vote, error) {
	return a.repo.ListVotes(ctx, sessionID)
}

// GetSessionHistory returns revealed rounds newest first
func (a *App) GetSessionHistory(ctx context.Context, roomID uuid.UUID) ([]models.SessionHistoryEntry, error) {
	return a.repo.GetSessionHistory(ctx, roomID)
}

func (a *App) authorizeControl(ctx context.Context, roomID uuid.UUID, userID string) error {
	actor, err := a.participant(ctx, roomID, userID)
	if err != nil {
		return err
	}
	settings, err := a.rooms.GetRoomSettings(ctx, roomID)
	if err != nil {
		return err
	}
	if !actor.CanControl(settings) {
		return models.ErrPermissionDenied
	}
	return nil
}

func (a *App) participant(ctx context.Context, roomID uuid.UUID, userID string) (*models.Participant, error) {
	p, err := a.rooms.GetCurrentParticipant(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, models.ErrParticipantNotFound) {
			return nil, models.ErrPermissionDenied
		}
		return nil, err
	}
	return p, nil
}

func (a *App) sessionInRoom(ctx context.Context, roomID, sessionID uuid.UUID) (*models.VotingSession, error) {
	session, err := a.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.RoomID != roomID {
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}
