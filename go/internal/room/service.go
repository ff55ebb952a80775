package room

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/rpc"
)

// RoomApp defines what the service layer needs from the room application
type RoomApp interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*models.Room, *models.Participant, error)
	JoinRoom(ctx context.Context, req JoinRoomRequest) (*models.Room, *models.Participant, error)
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)
	GetRoomSnapshot(ctx context.Context, code, userID string) (*models.Snapshot, error)
	GetRoomSettings(ctx context.Context, roomID uuid.UUID) (models.RoomSettings, error)
	ListParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error)
	GetCurrentParticipant(ctx context.Context, roomID uuid.UUID, userID string) (*models.Participant, error)
	UpdateRoomSettings(ctx context.Context, req UpdateSettingsRequest) (*models.Room, error)
	UpdateParticipant(ctx context.Context, req UpdateParticipantRequest) (*models.Participant, error)
}

// Service implements the RoomService connect interface
type Service struct {
	app RoomApp
}

// NewService creates a new room service
func NewService(app RoomApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the RoomServiceHandler interface
var _ rpc.RoomServiceHandler = (*Service)(nil)

func (s *Service) CreateRoom(ctx context.Context, req *connect.Request[rpc.CreateRoomRequest]) (*connect.Response[rpc.CreateRoomResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	room, participant, err := s.app.CreateRoom(ctx, CreateRoomRequest{
		Name:            req.Msg.Name,
		UserID:          userID,
		DisplayName:     req.Msg.DisplayName,
		CardSet:         req.Msg.CardSet,
		CustomCards:     req.Msg.CustomCards,
		AutoReveal:      req.Msg.AutoReveal,
		TimerDuration:   req.Msg.TimerDuration,
		AllowAllControl: req.Msg.AllowAllControl,
	})
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}

	return connect.NewResponse(&rpc.CreateRoomResponse{
		Room:        *room,
		Participant: *participant,
	}), nil
}

func (s *Service) JoinRoom(ctx context.Context, req *connect.Request[rpc.JoinRoomRequest]) (*connect.Response[rpc.JoinRoomResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	room, participant, err := s.app.JoinRoom(ctx, JoinRoomRequest{
		Code:        req.Msg.Code,
		UserID:      userID,
		DisplayName: req.Msg.DisplayName,
	})
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}

	return connect.NewResponse(&rpc.JoinRoomResponse{
		Room:        *room,
		Participant: *participant,
	}), nil
}

func (s *Service) GetRoom(ctx context.Context, req *connect.Request[rpc.GetRoomRequest]) (*connect.Response[rpc.GetRoomResponse], error) {
	room, err := s.app.GetRoomByCode(ctx, req.Msg.Code)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.GetRoomResponse{Room: *room}), nil
}

func (s *Service) GetRoomSnapshot(ctx context.Context, req *connect.Request[rpc.GetRoomSnapshotRequest]) (*connect.Response[rpc.GetRoomSnapshotResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.app.GetRoomSnapshot(ctx, req.Msg.Code, userID)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.GetRoomSnapshotResponse{Snapshot: *snapshot}), nil
}

func (s *Service) GetRoomSettings(ctx context.Context, req *connect.Request[rpc.GetRoomSettingsRequest]) (*connect.Response[rpc.GetRoomSettingsResponse], error) {
	settings, err := s.app.GetRoomSettings(ctx, req.Msg.RoomID)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.GetRoomSettingsResponse{Settings: settings}), nil
}

func (s *Service) ListParticipants(ctx context.Context, req *connect.Request[rpc.ListParticipantsRequest]) (*connect.Response[rpc.ListParticipantsResponse], error) {
	participants, err := s.app.ListParticipants(ctx, req.Msg.RoomID)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.ListParticipantsResponse{Participants: participants}), nil
}

func (s *Service) GetCurrentParticipant(ctx context.Context, req *connect.Request[rpc.GetCurrentParticipantRequest]) (*connect.Response[rpc.GetCurrentParticipantResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	participant, err := s.app.GetCurrentParticipant(ctx, req.Msg.RoomID, userID)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.GetCurrentParticipantResponse{Participant: *participant}), nil
}

func (s *Service) UpdateRoomSettings(ctx context.Context, req *connect.Request[rpc.UpdateRoomSettingsRequest]) (*connect.Response[rpc.UpdateRoomSettingsResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	room, err := s.app.UpdateRoomSettings(ctx, UpdateSettingsRequest{
		RoomID:   req.Msg.RoomID,
		UserID:   userID,
		Settings: req.Msg.Settings,
	})
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.UpdateRoomSettingsResponse{Room: *room}), nil
}

func (s *Service) UpdateParticipant(ctx context.Context, req *connect.Request[rpc.UpdateParticipantRequest]) (*connect.Response[rpc.UpdateParticipantResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	participant, err := s.app.UpdateParticipant(ctx, UpdateParticipantRequest{
		ParticipantID: req.Msg.ParticipantID,
		UserID:        userID,
		IsObserver:    req.Msg.IsObserver,
		IsActive:      req.Msg.IsActive,
	})
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.UpdateParticipantResponse{Participant: *participant}), nil
}
