package voting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/db"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/room"
	"github.com/mcdev12/planpoker/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type integration struct {
	rooms  *room.App
	voting *App
	repo   *Repository
}

func setupIntegration(t *testing.T) *integration {
	pg := testutil.StartPostgres(t)
	queries := db.New(pg.DB)

	roomRepo := room.NewRepository(queries, pg.DB)
	roomApp := room.NewApp(roomRepo)
	repo := NewRepository(queries, pg.DB)
	return &integration{
		rooms:  roomApp,
		voting: NewApp(repo, roomApp),
		repo:   repo,
	}
}

func (it *integration) openRoom(t *testing.T, req room.CreateRoomRequest) (*models.Room, *models.Participant, *models.VotingSession) {
	t.Helper()
	ctx := context.Background()
	r, facilitator, err := it.rooms.CreateRoom(ctx, req)
	require.NoError(t, err)
	session, err := it.voting.GetLatestSession(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	return r, facilitator, session
}

func (it *integration) sessionState(t *testing.T, session *models.VotingSession) models.SessionState {
	t.Helper()
	s, err := it.repo.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	return s.State()
}

func TestIntegration_SoloAutoReveal(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, _, session := it.openRoom(t, room.CreateRoomRequest{Name: "Solo", UserID: "ana", DisplayName: "Ana"})
	assert.True(t, r.AutoReveal)
	assert.Equal(t, models.SessionStateOpen, session.State())

	_, revealed, err := it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: session.ID, UserID: "ana", CardValue: "8"})

	require.NoError(t, err)
	assert.True(t, revealed)
	assert.Equal(t, models.SessionStateRevealed, it.sessionState(t, session))
}

func TestIntegration_MultiPartyAutoReveal(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, _, session := it.openRoom(t, room.CreateRoomRequest{Name: "Pair", UserID: "ana", DisplayName: "Ana"})
	_, _, err := it.rooms.JoinRoom(ctx, room.JoinRoomRequest{Code: r.Code, UserID: "bo", DisplayName: "Bo"})
	require.NoError(t, err)

	_, revealed, err := it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: session.ID, UserID: "ana", CardValue: "3"})
	require.NoError(t, err)
	assert.False(t, revealed)
	assert.Equal(t, models.SessionStateOpen, it.sessionState(t, session))

	// Changing a vote does not complete the round on its own.
	_, revealed, err = it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: session.ID, UserID: "ana", CardValue: "5"})
	require.NoError(t, err)
	assert.False(t, revealed)

	_, revealed, err = it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: session.ID, UserID: "bo", CardValue: "8"})
	require.NoError(t, err)
	assert.True(t, revealed)

	votes, err := it.voting.ListVotes(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, votes, 2)
	values := []string{votes[0].CardValue, votes[1].CardValue}
	assert.ElementsMatch(t, []string{"5", "8"}, values)
}

func TestIntegration_ConcurrentFinalVotesReveal(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, _, session := it.openRoom(t, room.CreateRoomRequest{Name: "Race", UserID: "ana", DisplayName: "Ana"})
	_, _, err := it.rooms.JoinRoom(ctx, room.JoinRoomRequest{Code: r.Code, UserID: "bo", DisplayName: "Bo"})
	require.NoError(t, err)

	errs := make(chan error, 2)
	for _, user := range []string{"ana", "bo"} {
		go func(user string) {
			_, _, err := it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: session.ID, UserID: user, CardValue: "13"})
			errs <- err
		}(user)
	}
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	assert.Equal(t, models.SessionStateRevealed, it.sessionState(t, session))
}

func TestIntegration_AutoRevealDisabled(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()
	off := false

	r, _, session := it.openRoom(t, room.CreateRoomRequest{Name: "Manual", UserID: "ana", DisplayName: "Ana", AutoReveal: &off})

	_, revealed, err := it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: session.ID, UserID: "ana", CardValue: "1"})
	require.NoError(t, err)
	assert.False(t, revealed)
	assert.Equal(t, models.SessionStateOpen, it.sessionState(t, session))
}

func TestIntegration_LeavingNonVoterCompletesRound(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, _, session := it.openRoom(t, room.CreateRoomRequest{Name: "Leave", UserID: "ana", DisplayName: "Ana"})
	_, bo, err := it.rooms.JoinRoom(ctx, room.JoinRoomRequest{Code: r.Code, UserID: "bo", DisplayName: "Bo"})
	require.NoError(t, err)

	_, revealed, err := it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: session.ID, UserID: "ana", CardValue: "2"})
	require.NoError(t, err)
	require.False(t, revealed)

	observer := true
	_, err = it.rooms.UpdateParticipant(ctx, room.UpdateParticipantRequest{ParticipantID: bo.ID, UserID: "bo", IsObserver: &observer})
	require.NoError(t, err)

	assert.Equal(t, models.SessionStateRevealed, it.sessionState(t, session))
}

func TestIntegration_ManualRevealIsIdempotent(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, _, session := it.openRoom(t, room.CreateRoomRequest{Name: "Reveal", UserID: "ana", DisplayName: "Ana"})
	req := ControlRequest{RoomID: r.ID, SessionID: session.ID, UserID: "ana"}

	first, err := it.voting.RevealVotes(ctx, req)
	require.NoError(t, err)
	second, err := it.voting.RevealVotes(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.IsRevealed)
	assert.True(t, second.IsRevealed)
}

func TestIntegration_RevealOnTimerExpiry(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()
	timer := 30

	r, _, session := it.openRoom(t, room.CreateRoomRequest{Name: "Timed", UserID: "ana", DisplayName: "Ana", TimerDuration: &timer})

	revealed, err := it.voting.RevealOnTimerExpiry(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, revealed, "timer has not elapsed yet")

	_, err = it.repo.sqlDB.ExecContext(ctx,
		`UPDATE voting_sessions SET created_at = now() - INTERVAL '31 seconds' WHERE id = $1`, session.ID)
	require.NoError(t, err)

	revealed, err = it.voting.RevealOnTimerExpiry(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, revealed)

	revealed, err = it.voting.RevealOnTimerExpiry(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, revealed, "second expiry signal must not transition again")

	// Rooms without a timer never reveal on expiry.
	untimed, _, untimedSession := it.openRoom(t, room.CreateRoomRequest{Name: "Untimed", UserID: "bo", DisplayName: "Bo"})
	_, err = it.repo.sqlDB.ExecContext(ctx,
		`UPDATE voting_sessions SET created_at = now() - INTERVAL '1 hour' WHERE id = $1`, untimedSession.ID)
	require.NoError(t, err)
	revealed, err = it.voting.RevealOnTimerExpiry(ctx, untimedSession.ID)
	require.NoError(t, err)
	assert.False(t, revealed)
	assert.NotEqual(t, r.ID, untimed.ID)
}

func TestIntegration_LastResetWins(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, _, first := it.openRoom(t, room.CreateRoomRequest{Name: "Reset", UserID: "ana", DisplayName: "Ana"})

	_, _, err := it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: first.ID, UserID: "ana", CardValue: "5"})
	require.NoError(t, err)

	a, err := it.voting.ResetVoting(ctx, ControlRequest{RoomID: r.ID, UserID: "ana", Topic: "A"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	b, err := it.voting.ResetVoting(ctx, ControlRequest{RoomID: r.ID, UserID: "ana", Topic: "B"})
	require.NoError(t, err)

	latest, err := it.voting.GetLatestSession(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, latest.ID)
	assert.NotEqual(t, a.ID, latest.ID)
	assert.False(t, latest.IsRevealed)

	votes, err := it.voting.ListVotes(ctx, latest.ID)
	require.NoError(t, err)
	assert.Empty(t, votes)

	// The superseded round keeps its votes for history.
	old, err := it.voting.ListVotes(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, old, 1)
}

func TestIntegration_VoteIntoRevealedRoundRejected(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, ana, session := it.openRoom(t, room.CreateRoomRequest{Name: "Closed", UserID: "ana", DisplayName: "Ana"})
	_, bo, err := it.rooms.JoinRoom(ctx, room.JoinRoomRequest{Code: r.Code, UserID: "bo", DisplayName: "Bo"})
	require.NoError(t, err)

	_, _, err = it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: session.ID, UserID: "ana", CardValue: "3"})
	require.NoError(t, err)
	_, err = it.voting.RevealVotes(ctx, ControlRequest{RoomID: r.ID, SessionID: session.ID, UserID: "ana"})
	require.NoError(t, err)

	// A request that passed its open-round check before the reveal committed
	// reaches the repository directly.
	_, revealed, err := it.repo.SubmitVote(ctx, session.ID, bo.ID, "13")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.ErrorIs(t, err, errSessionRevealed)
	assert.False(t, revealed)

	_, _, err = it.repo.SubmitVote(ctx, session.ID, ana.ID, "21")
	assert.ErrorIs(t, err, errSessionRevealed)

	votes, err := it.voting.ListVotes(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, ana.ID, votes[0].ParticipantID)
	assert.Equal(t, "3", votes[0].CardValue)
}

func TestIntegration_VoteIntoSupersededRoundRejected(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, ana, first := it.openRoom(t, room.CreateRoomRequest{Name: "Moved on", UserID: "ana", DisplayName: "Ana"})
	_, _, err := it.rooms.JoinRoom(ctx, room.JoinRoomRequest{Code: r.Code, UserID: "bo", DisplayName: "Bo"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	next, err := it.voting.ResetVoting(ctx, ControlRequest{RoomID: r.ID, UserID: "ana", Topic: "next"})
	require.NoError(t, err)

	_, _, err = it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: first.ID, UserID: "ana", CardValue: "5"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.ErrorIs(t, err, errSessionSuperseded)

	_, _, err = it.repo.SubmitVote(ctx, first.ID, ana.ID, "5")
	assert.ErrorIs(t, err, errSessionSuperseded)

	old, err := it.voting.ListVotes(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, old)

	_, revealed, err := it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: next.ID, UserID: "ana", CardValue: "5"})
	require.NoError(t, err)
	assert.False(t, revealed)
}

func TestIntegration_VoteForUnknownSession(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	_, ana, _ := it.openRoom(t, room.CreateRoomRequest{Name: "Ghost", UserID: "ana", DisplayName: "Ana"})

	_, _, err := it.repo.SubmitVote(ctx, uuid.New(), ana.ID, "5")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestIntegration_SessionHistory(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, _, first := it.openRoom(t, room.CreateRoomRequest{Name: "History", UserID: "ana", DisplayName: "Ana"})
	_, _, err := it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: first.ID, UserID: "ana", CardValue: "?"})
	require.NoError(t, err)

	second, err := it.voting.ResetVoting(ctx, ControlRequest{RoomID: r.ID, UserID: "ana", Topic: "Checkout"})
	require.NoError(t, err)
	_, _, err = it.voting.SubmitVote(ctx, SubmitVoteRequest{RoomID: r.ID, SessionID: second.ID, UserID: "ana", CardValue: "21"})
	require.NoError(t, err)

	// An open round never shows up in history.
	_, err = it.voting.ResetVoting(ctx, ControlRequest{RoomID: r.ID, UserID: "ana"})
	require.NoError(t, err)

	history, err := it.voting.GetSessionHistory(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, "Checkout", history[0].Topic)
	assert.Equal(t, []models.HistoryVote{{ParticipantName: "Ana", CardValue: "21"}}, history[0].Votes)
	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, []models.HistoryVote{{ParticipantName: "Ana", CardValue: "?"}}, history[1].Votes)
}

func TestIntegration_DuplicateDisplayName(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	r, _, _ := it.openRoom(t, room.CreateRoomRequest{Name: "Names", UserID: "ana", DisplayName: "Ana"})

	_, _, err := it.rooms.JoinRoom(ctx, room.JoinRoomRequest{Code: r.Code, UserID: "impostor", DisplayName: "Ana"})
	assert.ErrorIs(t, err, models.ErrDuplicateDisplayName)

	again, p, err := it.rooms.JoinRoom(ctx, room.JoinRoomRequest{Code: r.Code, UserID: "ana", DisplayName: "Whatever"})
	require.NoError(t, err)
	assert.Equal(t, r.ID, again.ID)
	assert.True(t, p.IsFacilitator)
}
