package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/db"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/sqlutil"
)

const (
	roomCodeConstraint        = "rooms_code_key"
	displayNameConstraint     = "participants_room_display_name_key"
	participantUserConstraint = "participants_room_user_key"
)

// errCodeTaken signals that a generated room code collided with an existing room.
var errCodeTaken = errors.New("room code already in use")

// Repository implements room and roster data access.
type Repository struct {
	queries *db.Queries
	sqlDB   *sql.DB
}

// NewRepository creates a new room repository
func NewRepository(queries *db.Queries, sqlDB *sql.DB) *Repository {
	return &Repository{
		queries: queries,
		sqlDB:   sqlDB,
	}
}

// CreateRoom inserts the room, its facilitator and the first empty round in one transaction.
func (r *Repository) CreateRoom(ctx context.Context, req newRoom) (*models.Room, *models.Participant, error) {
	customCards, err := sqlutil.ToNullJSON(req.Settings.CustomCards)
	if err != nil {
		return nil, nil, err
	}

	var (
		dbRoom        db.Room
		dbParticipant db.Participant
	)
	err = sqlutil.Run(ctx, r.sqlDB, r.queries.WithTx, func(q *db.Queries) error {
		var err error
		dbRoom, err = q.CreateRoom(ctx, db.CreateRoomParams{
			Code:            req.Code,
			Name:            req.Name,
			CreatedBy:       req.UserID,
			CardSet:         string(req.Settings.CardSet),
			CustomCards:     customCards,
			AutoReveal:      req.Settings.AutoReveal,
			TimerDuration:   sqlutil.ToSqlInt32(req.Settings.TimerDuration),
			AllowAllControl: req.Settings.AllowAllControl,
		})
		if err != nil {
			if sqlutil.IsUniqueViolation(err, roomCodeConstraint) {
				return errCodeTaken
			}
			return fmt.Errorf("failed to insert room: %w", err)
		}

		dbParticipant, err = q.CreateParticipant(ctx, db.CreateParticipantParams{
			RoomID:        dbRoom.ID,
			UserID:        req.UserID,
			DisplayName:   req.DisplayName,
			IsFacilitator: true,
		})
		if err != nil {
			return fmt.Errorf("failed to insert facilitator: %w", err)
		}

		if _, err := q.CreateVotingSession(ctx, db.CreateVotingSessionParams{RoomID: dbRoom.ID}); err != nil {
			return fmt.Errorf("failed to insert first session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	room, err := dbRoomToModel(dbRoom)
	if err != nil {
		return nil, nil, err
	}
	return room, dbParticipantToModel(dbParticipant), nil
}

// GetRoom retrieves a room by ID
func (r *Repository) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := r.queries.GetRoom(ctx, id)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, models.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return dbRoomToModel(room)
}

// GetActiveRoomByCode retrieves an active room by its join code
func (r *Repository) GetActiveRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	room, err := r.queries.GetActiveRoomByCode(ctx, code)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, models.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by code: %w", err)
	}
	return dbRoomToModel(room)
}

// UpdateRoomSettings overwrites the facilitator-controlled settings of a room
func (r *Repository) UpdateRoomSettings(ctx context.Context, id uuid.UUID, settings models.RoomSettings) (*models.Room, error) {
	customCards, err := sqlutil.ToNullJSON(settings.CustomCards)
	if err != nil {
		return nil, err
	}

	var dbRoom db.Room
	err = sqlutil.Run(ctx, r.sqlDB, r.queries.WithTx, func(q *db.Queries) error {
		var err error
		dbRoom, err = q.UpdateRoomSettings(ctx, db.UpdateRoomSettingsParams{
			ID:              id,
			CardSet:         string(settings.CardSet),
			CustomCards:     customCards,
			AutoReveal:      settings.AutoReveal,
			TimerDuration:   sqlutil.ToSqlInt32(settings.TimerDuration),
			AllowAllControl: settings.AllowAllControl,
		})
		if err != nil {
			if sqlutil.IsNoRows(err) {
				return models.ErrRoomNotFound
			}
			return fmt.Errorf("failed to update room settings: %w", err)
		}
		// Turning auto reveal on can complete a round that already has every vote.
		return autoRevealLatest(ctx, q, id)
	})
	if err != nil {
		return nil, err
	}
	return dbRoomToModel(dbRoom)
}

// CreateParticipant adds a non-facilitator participant to a room
func (r *Repository) CreateParticipant(ctx context.Context, roomID uuid.UUID, userID, displayName string) (*models.Participant, error) {
	p, err := r.queries.CreateParticipant(ctx, db.CreateParticipantParams{
		RoomID:      roomID,
		UserID:      userID,
		DisplayName: displayName,
	})
	if err != nil {
		switch {
		case sqlutil.IsUniqueViolation(err, displayNameConstraint):
			return nil, models.Wrap(models.ErrDuplicateDisplayName, err)
		case sqlutil.IsUniqueViolation(err, participantUserConstraint):
			return nil, models.Wrap(models.ErrInvalidInput, fmt.Errorf("user already joined room: %w", err))
		}
		return nil, fmt.Errorf("failed to insert participant: %w", err)
	}
	return dbParticipantToModel(p), nil
}

// GetParticipant retrieves a participant by ID
func (r *Repository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	p, err := r.queries.GetParticipant(ctx, id)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, models.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return dbParticipantToModel(p), nil
}

// GetParticipantByUser retrieves the participant a user holds in a room
func (r *Repository) GetParticipantByUser(ctx context.Context, roomID uuid.UUID, userID string) (*models.Participant, error) {
	p, err := r.queries.GetParticipantByUser(ctx, db.GetParticipantByUserParams{
		RoomID: roomID,
		UserID: userID,
	})
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, models.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant by user: %w", err)
	}
	return dbParticipantToModel(p), nil
}

// ListActiveParticipants returns active participants ordered by join time
func (r *Repository) ListActiveParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error) {
	rows, err := r.queries.ListActiveParticipants(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]models.Participant, len(rows))
	for i, row := range rows {
		participants[i] = *dbParticipantToModel(row)
	}
	return participants, nil
}

// UpdateParticipantFlags sets observer and active flags, then re-checks completion of the current round.
func (r *Repository) UpdateParticipantFlags(ctx context.Context, id uuid.UUID, isObserver, isActive bool) (*models.Participant, error) {
	var dbParticipant db.Participant
	err := sqlutil.Run(ctx, r.sqlDB, r.queries.WithTx, func(q *db.Queries) error {
		var err error
		dbParticipant, err = q.UpdateParticipantFlags(ctx, db.UpdateParticipantFlagsParams{
			ID:         id,
			IsObserver: isObserver,
			IsActive:   isActive,
		})
		if err != nil {
			if sqlutil.IsNoRows(err) {
				return models.ErrParticipantNotFound
			}
			return fmt.Errorf("failed to update participant: %w", err)
		}
		return autoRevealLatest(ctx, q, dbParticipant.RoomID)
	})
	if err != nil {
		return nil, err
	}
	return dbParticipantToModel(dbParticipant), nil
}

// GetCurrentRound returns the latest session of a room and its votes. A room without sessions yields nil.
func (r *Repository) GetCurrentRound(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, []models.Vote, error) {
	session, err := r.queries.GetLatestVotingSession(ctx, roomID)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, []models.Vote{}, nil
		}
		return nil, nil, fmt.Errorf("failed to get latest session: %w", err)
	}

	rows, err := r.queries.ListVotesBySession(ctx, session.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list votes: %w", err)
	}

	votes := make([]models.Vote, len(rows))
	for i, row := range rows {
		votes[i] = models.Vote(row)
	}
	s := models.VotingSession(session)
	return &s, votes, nil
}

func autoRevealLatest(ctx context.Context, q *db.Queries, roomID uuid.UUID) error {
	session, err := q.GetLatestVotingSession(ctx, roomID)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil
		}
		return fmt.Errorf("failed to get latest session: %w", err)
	}
	if session.IsRevealed {
		return nil
	}
	if _, err := q.AutoRevealIfComplete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to check round completion: %w", err)
	}
	return nil
}

func dbRoomToModel(row db.Room) (*models.Room, error) {
	customCards, err := sqlutil.FromNullJSON[string](row.CustomCards)
	if err != nil {
		return nil, err
	}

	return &models.Room{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		CreatedBy: row.CreatedBy,
		RoomSettings: models.RoomSettings{
			CardSet:         models.CardSet(row.CardSet),
			CustomCards:     customCards,
			AutoReveal:      row.AutoReveal,
			TimerDuration:   sqlutil.FromSqlInt32(row.TimerDuration),
			AllowAllControl: row.AllowAllControl,
		},
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func dbParticipantToModel(row db.Participant) *models.Participant {
	p := models.Participant(row)
	return &p
}
