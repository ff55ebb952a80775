package room

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
	"github.com/mcdev12/planpoker/go/internal/roomcode"
	"github.com/rs/zerolog/log"
)

// RoomRepository defines what the app layer needs from the repository
type RoomRepository interface {
	CreateRoom(ctx context.Context, req newRoom) (*models.Room, *models.Participant, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetActiveRoomByCode(ctx context.Context, code string) (*models.Room, error)
	UpdateRoomSettings(ctx context.Context, id uuid.UUID, settings models.RoomSettings) (*models.Room, error)
	CreateParticipant(ctx context.Context, roomID uuid.UUID, userID, displayName string) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	GetParticipantByUser(ctx context.Context, roomID uuid.UUID, userID string) (*models.Participant, error)
	ListActiveParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error)
	UpdateParticipantFlags(ctx context.Context, id uuid.UUID, isObserver, isActive bool) (*models.Participant, error)
	GetCurrentRound(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, []models.Vote, error)
}

// App handles room lifecycle and roster rules
type App struct {
	repo         RoomRepository
	generateCode func() string
}

// NewApp creates a new room App
func NewApp(repo RoomRepository) *App {
	return &App{
		repo:         repo,
		generateCode: roomcode.Generate,
	}
}

// CreateRoom validates the request, then inserts the room with its facilitator and first round.
// Code collisions are retried with a fresh code.
func (a *App) CreateRoom(ctx context.Context, req CreateRoomRequest) (*models.Room, *models.Participant, error) {
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) > MaxRoomNameLength {
		return nil, nil, models.ErrRoomNameTooLong
	}
	displayName, err := validateDisplayName(req.DisplayName)
	if err != nil {
		return nil, nil, err
	}
	if req.UserID == "" {
		return nil, nil, models.Wrap(models.ErrInvalidInput, errors.New("user id is required"))
	}

	settings := models.RoomSettings{
		CardSet:         req.CardSet,
		CustomCards:     req.CustomCards,
		AutoReveal:      boolOr(req.AutoReveal, true),
		TimerDuration:   req.TimerDuration,
		AllowAllControl: boolOr(req.AllowAllControl, true),
	}
	if settings.CardSet == "" {
		settings.CardSet = models.CardSetFibonacci
	}
	settings, err = normalizeSettings(settings)
	if err != nil {
		return nil, nil, err
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		room, facilitator, err := a.repo.CreateRoom(ctx, newRoom{
			Code:        a.generateCode(),
			Name:        name,
			UserID:      req.UserID,
			DisplayName: displayName,
			Settings:    settings,
		})
		if errors.Is(err, errCodeTaken) {
			log.Debug().Int("attempt", attempt).Msg("room code collision, regenerating")
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create room: %w", err)
		}

		log.Info().
			Str("room_id", room.ID.String()).
			Str("code", room.Code).
			Str("card_set", string(room.CardSet)).
			Msg("created room")
		return room, facilitator, nil
	}
	return nil, nil, fmt.Errorf("failed to create room: %w after %d attempts", errCodeTaken, maxCodeAttempts)
}

// JoinRoom adds the user to the room with the given code.
// A user who already holds a participant row gets it back, reactivated if it had left.
func (a *App) JoinRoom(ctx context.Context, req JoinRoomRequest) (*models.Room, *models.Participant, error) {
	displayName, err := validateDisplayName(req.DisplayName)
	if err != nil {
		return nil, nil, err
	}
	if req.UserID == "" {
		return nil, nil, models.Wrap(models.ErrInvalidInput, errors.New("user id is required"))
	}

	room, err := a.GetRoomByCode(ctx, req.Code)
	if err != nil {
		return nil, nil, err
	}

	existing, err := a.repo.GetParticipantByUser(ctx, room.ID, req.UserID)
	switch {
	case err == nil:
		if existing.IsActive {
			return room, existing, nil
		}
		p, err := a.repo.UpdateParticipantFlags(ctx, existing.ID, existing.IsObserver, true)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to reactivate participant: %w", err)
		}
		log.Info().Str("room_id", room.ID.String()).Str("participant_id", p.ID.String()).Msg("participant rejoined")
		return room, p, nil
	case !errors.Is(err, models.ErrParticipantNotFound):
		return nil, nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	p, err := a.repo.CreateParticipant(ctx, room.ID, req.UserID, displayName)
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("room_id", room.ID.String()).
		Str("participant_id", p.ID.String()).
		Msg("participant joined")
	return room, p, nil
}

// GetRoomByCode resolves a code to an active room
func (a *App) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	code = roomcode.Normalize(code)
	if code == "" {
		return nil, models.ErrRoomCodeRequired
	}
	if !roomcode.Valid(code) {
		return nil, models.ErrRoomNotFound
	}
	return a.repo.GetActiveRoomByCode(ctx, code)
}

// GetRoomSnapshot assembles everything a client needs to seed its room state
func (a *App) GetRoomSnapshot(ctx context.Context, code, userID string) (*models.Snapshot, error) {
	room, err := a.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	me, err := a.repo.GetParticipantByUser(ctx, room.ID, userID)
	if err != nil {
		return nil, err
	}

	participants, err := a.repo.ListActiveParticipants(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	session, votes, err := a.repo.GetCurrentRound(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current round: %w", err)
	}

	return &models.Snapshot{
		Room:                 *room,
		Participants:         participants,
		CurrentSession:       session,
		Votes:                votes,
		CurrentParticipantID: me.ID,
	}, nil
}

// GetRoomSettings returns the current settings of a room
func (a *App) GetRoomSettings(ctx context.Context, roomID uuid.UUID) (models.RoomSettings, error) {
	room, err := a.repo.GetRoom(ctx, roomID)
	if err != nil {
		return models.RoomSettings{}, err
	}
	return room.Settings(), nil
}

// ListParticipants returns the active roster ordered by join time
func (a *App) ListParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error) {
	return a.repo.ListActiveParticipants(ctx, roomID)
}

// GetCurrentParticipant returns the caller's participant row in a room
func (a *App) GetCurrentParticipant(ctx context.Context, roomID uuid.UUID, userID string) (*models.Participant, error) {
	return a.repo.GetParticipantByUser(ctx, roomID, userID)
}

// UpdateRoomSettings replaces a room's settings. Only the facilitator may do this.
func (a *App) UpdateRoomSettings(ctx context.Context, req UpdateSettingsRequest) (*models.Room, error) {
	settings, err := normalizeSettings(req.Settings)
	if err != nil {
		return nil, err
	}

	actor, err := a.repo.GetParticipantByUser(ctx, req.RoomID, req.UserID)
	if err != nil {
		if errors.Is(err, models.ErrParticipantNotFound) {
			return nil, models.ErrPermissionDenied
		}
		return nil, err
	}
	if !actor.IsFacilitator {
		return nil, models.ErrPermissionDenied
	}

	room, err := a.repo.UpdateRoomSettings(ctx, req.RoomID, settings)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("room_id", room.ID.String()).
		Str("card_set", string(room.CardSet)).
		Bool("auto_reveal", room.AutoReveal).
		Msg("updated room settings")
	return room, nil
}

// UpdateParticipant changes observer or active flags. Users may change their own row;
// the facilitator may change anyone's.
func (a *App) UpdateParticipant(ctx context.Context, req UpdateParticipantRequest) (*models.Participant, error) {
	target, err := a.repo.GetParticipant(ctx, req.ParticipantID)
	if err != nil {
		return nil, err
	}

	if target.UserID != req.UserID {
		actor, err := a.repo.GetParticipantByUser(ctx, target.RoomID, req.UserID)
		if err != nil {
			if errors.Is(err, models.ErrParticipantNotFound) {
				return nil, models.ErrPermissionDenied
			}
			return nil, err
		}
		if !actor.IsFacilitator {
			return nil, models.ErrPermissionDenied
		}
	}

	isObserver := boolOr(req.IsObserver, target.IsObserver)
	isActive := boolOr(req.IsActive, target.IsActive)

	p, err := a.repo.UpdateParticipantFlags(ctx, target.ID, isObserver, isActive)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("participant_id", p.ID.String()).
		Bool("is_observer", p.IsObserver).
		Bool("is_active", p.IsActive).
		Msg("updated participant")
	return p, nil
}

// normalizeSettings validates settings and drops custom cards when the set is not custom.
func normalizeSettings(s models.RoomSettings) (models.RoomSettings, error) {
	if !cards.IsKnownSet(s.CardSet) {
		return s, models.ErrCardSetInvalid
	}
	if s.CardSet == models.CardSetCustom {
		trimmed := make([]string, 0, len(s.CustomCards))
		for _, c := range s.CustomCards {
			trimmed = append(trimmed, strings.TrimSpace(c))
		}
		if err := cards.ValidateCustom(trimmed); err != nil {
			return s, err
		}
		s.CustomCards = trimmed
	} else {
		s.CustomCards = nil
	}
	if s.TimerDuration != nil && !slices.Contains(models.TimerDurations, *s.TimerDuration) {
		return s, models.ErrTimerInvalid
	}
	return s, nil
}

func validateDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.ErrDisplayNameRequired
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return "", models.ErrDisplayNameTooLong
	}
	return name, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
