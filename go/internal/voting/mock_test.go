package voting

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

var _ VotingRepository = (*mockRepository)(nil)

func (m *mockRepository) SubmitVote(ctx context.Context, sessionID, participantID uuid.UUID, cardValue string) (*models.Vote, bool, error) {
	args := m.Called(ctx, sessionID, participantID, cardValue)
	v, _ := args.Get(0).(*models.Vote)
	return v, args.Bool(1), args.Error(2)
}

func (m *mockRepository) RevealSession(ctx context.Context, sessionID uuid.UUID) (*models.VotingSession, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(*models.VotingSession)
	return s, args.Error(1)
}

func (m *mockRepository) RevealOnTimerExpiry(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CreateSession(ctx context.Context, roomID uuid.UUID, topic string) (*models.VotingSession, error) {
	args := m.Called(ctx, roomID, topic)
	s, _ := args.Get(0).(*models.VotingSession)
	return s, args.Error(1)
}

func (m *mockRepository) GetSession(ctx context.Context, id uuid.UUID) (*models.VotingSession, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.VotingSession)
	return s, args.Error(1)
}

func (m *mockRepository) GetLatestSession(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, error) {
	args := m.Called(ctx, roomID)
	s, _ := args.Get(0).(*models.VotingSession)
	return s, args.Error(1)
}

func (m *mockRepository) ListVotes(ctx context.Context, sessionID uuid.UUID) ([]models.Vote, error) {
	args := m.Called(ctx, sessionID)
	v, _ := args.Get(0).([]models.Vote)
	return v, args.Error(1)
}

func (m *mockRepository) GetSessionHistory(ctx context.Context, roomID uuid.UUID) ([]models.SessionHistoryEntry, error) {
	args := m.Called(ctx, roomID)
	h, _ := args.Get(0).([]models.SessionHistoryEntry)
	return h, args.Error(1)
}

type mockRooms struct {
	mock.Mock
}

var _ RoomReader = (*mockRooms)(nil)

func (m *mockRooms) GetRoomSettings(ctx context.Context, roomID uuid.UUID) (models.RoomSettings, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(models.RoomSettings), args.Error(1)
}

func (m *mockRooms) GetCurrentParticipant(ctx context.Context, roomID uuid.UUID, userID string) (*models.Participant, error) {
	args := m.Called(ctx, roomID, userID)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}
