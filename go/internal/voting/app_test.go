package voting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo    *mockRepository
	rooms   *mockRooms
	app     *App
	ctx     context.Context
	roomID  uuid.UUID
	session *models.VotingSession
	voter   *models.Participant
}

func newFixture() *fixture {
	repo := new(mockRepository)
	rooms := new(mockRooms)
	roomID := uuid.New()
	return &fixture{
		repo:    repo,
		rooms:   rooms,
		app:     NewApp(repo, rooms),
		ctx:     context.Background(),
		roomID:  roomID,
		session: &models.VotingSession{ID: uuid.New(), RoomID: roomID},
		voter:   &models.Participant{ID: uuid.New(), RoomID: roomID, UserID: "voter", IsActive: true},
	}
}

func TestSubmitVote_RecordsVote(t *testing.T) {
	f := newFixture()
	vote := &models.Vote{ID: uuid.New(), SessionID: f.session.ID, ParticipantID: f.voter.ID, CardValue: "5"}

	f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
	f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{CardSet: models.CardSetFibonacci}, nil).Once()
	f.repo.On("GetSession", f.ctx, f.session.ID).Return(f.session, nil).Once()
	f.repo.On("SubmitVote", f.ctx, f.session.ID, f.voter.ID, "5").Return(vote, true, nil).Once()

	got, revealed, err := f.app.SubmitVote(f.ctx, SubmitVoteRequest{
		RoomID:    f.roomID,
		SessionID: f.session.ID,
		UserID:    "voter",
		CardValue: " 5 ",
	})

	require.NoError(t, err)
	assert.True(t, revealed)
	assert.Equal(t, vote, got)
	f.repo.AssertExpectations(t)
	f.rooms.AssertExpectations(t)
}

func TestSubmitVote_Rejections(t *testing.T) {
	t.Run("empty card", func(t *testing.T) {
		f := newFixture()
		_, _, err := f.app.SubmitVote(f.ctx, SubmitVoteRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter", CardValue: "  "})
		assert.ErrorIs(t, err, models.ErrCardValueRequired)
	})

	t.Run("observer", func(t *testing.T) {
		f := newFixture()
		f.voter.IsObserver = true
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()

		_, _, err := f.app.SubmitVote(f.ctx, SubmitVoteRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter", CardValue: "5"})

		assert.ErrorIs(t, err, models.ErrPermissionDenied)
		f.repo.AssertNotCalled(t, "SubmitVote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not a member", func(t *testing.T) {
		f := newFixture()
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "stranger").Return(nil, models.ErrParticipantNotFound).Once()

		_, _, err := f.app.SubmitVote(f.ctx, SubmitVoteRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "stranger", CardValue: "5"})

		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("card outside deck", func(t *testing.T) {
		f := newFixture()
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
		f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{CardSet: models.CardSetTShirt}, nil).Once()

		_, _, err := f.app.SubmitVote(f.ctx, SubmitVoteRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter", CardValue: "13"})

		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("session from another room", func(t *testing.T) {
		f := newFixture()
		other := &models.VotingSession{ID: f.session.ID, RoomID: uuid.New()}
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
		f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{CardSet: models.CardSetFibonacci}, nil).Once()
		f.repo.On("GetSession", f.ctx, f.session.ID).Return(other, nil).Once()

		_, _, err := f.app.SubmitVote(f.ctx, SubmitVoteRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter", CardValue: "5"})

		assert.ErrorIs(t, err, models.ErrSessionNotFound)
	})

	t.Run("revealed session", func(t *testing.T) {
		f := newFixture()
		f.session.IsRevealed = true
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
		f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{CardSet: models.CardSetFibonacci}, nil).Once()
		f.repo.On("GetSession", f.ctx, f.session.ID).Return(f.session, nil).Once()

		_, _, err := f.app.SubmitVote(f.ctx, SubmitVoteRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter", CardValue: "5"})

		assert.ErrorIs(t, err, errSessionRevealed)
		assert.Equal(t, models.KindValidation, models.KindOf(err))
	})

	t.Run("round closed while voting", func(t *testing.T) {
		f := newFixture()
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
		f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{CardSet: models.CardSetFibonacci}, nil).Once()
		f.repo.On("GetSession", f.ctx, f.session.ID).Return(f.session, nil).Once()
		f.repo.On("SubmitVote", f.ctx, f.session.ID, f.voter.ID, "5").
			Return(nil, false, models.Wrap(models.ErrInvalidInput, errSessionSuperseded)).Once()

		vote, revealed, err := f.app.SubmitVote(f.ctx, SubmitVoteRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter", CardValue: "5"})

		assert.Nil(t, vote)
		assert.False(t, revealed)
		assert.ErrorIs(t, err, errSessionSuperseded)
		assert.Equal(t, models.KindValidation, models.KindOf(err))
	})
}

func TestRevealVotes(t *testing.T) {
	t.Run("already revealed is a no-op", func(t *testing.T) {
		f := newFixture()
		f.session.IsRevealed = true
		f.voter.IsFacilitator = true
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
		f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{}, nil).Once()
		f.repo.On("GetSession", f.ctx, f.session.ID).Return(f.session, nil).Once()

		got, err := f.app.RevealVotes(f.ctx, ControlRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter"})

		require.NoError(t, err)
		assert.True(t, got.IsRevealed)
		f.repo.AssertNotCalled(t, "RevealSession", mock.Anything, mock.Anything)
	})

	t.Run("non facilitator without allow all control", func(t *testing.T) {
		f := newFixture()
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
		f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{AllowAllControl: false}, nil).Once()

		_, err := f.app.RevealVotes(f.ctx, ControlRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter"})

		assert.ErrorIs(t, err, models.ErrPermissionDenied)
	})

	t.Run("any participant with allow all control", func(t *testing.T) {
		f := newFixture()
		revealed := &models.VotingSession{ID: f.session.ID, RoomID: f.roomID, IsRevealed: true}
		f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
		f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{AllowAllControl: true}, nil).Once()
		f.repo.On("GetSession", f.ctx, f.session.ID).Return(f.session, nil).Once()
		f.repo.On("RevealSession", f.ctx, f.session.ID).Return(revealed, nil).Once()

		got, err := f.app.RevealVotes(f.ctx, ControlRequest{RoomID: f.roomID, SessionID: f.session.ID, UserID: "voter"})

		require.NoError(t, err)
		assert.Equal(t, models.SessionStateRevealed, got.State())
		f.repo.AssertExpectations(t)
	})
}

func TestResetVoting(t *testing.T) {
	f := newFixture()
	f.voter.IsFacilitator = true
	next := &models.VotingSession{ID: uuid.New(), RoomID: f.roomID, Topic: "Login page"}

	f.rooms.On("GetCurrentParticipant", f.ctx, f.roomID, "voter").Return(f.voter, nil).Once()
	f.rooms.On("GetRoomSettings", f.ctx, f.roomID).Return(models.RoomSettings{}, nil).Once()
	f.repo.On("CreateSession", f.ctx, f.roomID, "Login page").Return(next, nil).Once()

	got, err := f.app.ResetVoting(f.ctx, ControlRequest{RoomID: f.roomID, UserID: "voter", Topic: "  Login page "})

	require.NoError(t, err)
	assert.Equal(t, next, got)
	assert.Equal(t, models.SessionStateOpen, got.State())
	f.repo.AssertExpectations(t)
}

func TestRevealOnTimerExpiry(t *testing.T) {
	f := newFixture()

	_, err := f.app.RevealOnTimerExpiry(f.ctx, uuid.Nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	f.repo.On("RevealOnTimerExpiry", f.ctx, f.session.ID).Return(true, nil).Once()
	f.repo.On("RevealOnTimerExpiry", f.ctx, f.session.ID).Return(false, nil).Once()

	first, err := f.app.RevealOnTimerExpiry(f.ctx, f.session.ID)
	require.NoError(t, err)
	second, err := f.app.RevealOnTimerExpiry(f.ctx, f.session.ID)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	f.repo.AssertExpectations(t)
}
