package room

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

var _ RoomRepository = (*mockRepository)(nil)

func (m *mockRepository) CreateRoom(ctx context.Context, req newRoom) (*models.Room, *models.Participant, error) {
	args := m.Called(ctx, req)
	room, _ := args.Get(0).(*models.Room)
	p, _ := args.Get(1).(*models.Participant)
	return room, p, args.Error(2)
}

func (m *mockRepository) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*models.Room)
	return room, args.Error(1)
}

func (m *mockRepository) GetActiveRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	args := m.Called(ctx, code)
	room, _ := args.Get(0).(*models.Room)
	return room, args.Error(1)
}

func (m *mockRepository) UpdateRoomSettings(ctx context.Context, id uuid.UUID, settings models.RoomSettings) (*models.Room, error) {
	args := m.Called(ctx, id, settings)
	room, _ := args.Get(0).(*models.Room)
	return room, args.Error(1)
}

func (m *mockRepository) CreateParticipant(ctx context.Context, roomID uuid.UUID, userID, displayName string) (*models.Participant, error) {
	args := m.Called(ctx, roomID, userID, displayName)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}

func (m *mockRepository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}

func (m *mockRepository) GetParticipantByUser(ctx context.Context, roomID uuid.UUID, userID string) (*models.Participant, error) {
	args := m.Called(ctx, roomID, userID)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}

func (m *mockRepository) ListActiveParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error) {
	args := m.Called(ctx, roomID)
	ps, _ := args.Get(0).([]models.Participant)
	return ps, args.Error(1)
}

func (m *mockRepository) UpdateParticipantFlags(ctx context.Context, id uuid.UUID, isObserver, isActive bool) (*models.Participant, error) {
	args := m.Called(ctx, id, isObserver, isActive)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}

func (m *mockRepository) GetCurrentRound(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, []models.Vote, error) {
	args := m.Called(ctx, roomID)
	s, _ := args.Get(0).(*models.VotingSession)
	votes, _ := args.Get(1).([]models.Vote)
	return s, votes, args.Error(2)
}
