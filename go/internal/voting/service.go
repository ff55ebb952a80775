package voting

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/rpc"
)

// VotingApp defines what the service layer needs from the voting application
type VotingApp interface {
	SubmitVote(ctx context.Context, req SubmitVoteRequest) (*models.Vote, bool, error)
	RevealVotes(ctx context.Context, req ControlRequest) (*models.VotingSession, error)
	RevealOnTimerExpiry(ctx context.Context, sessionID uuid.UUID) (bool, error)
	ResetVoting(ctx context.Context, req ControlRequest) (*models.VotingSession, error)
	GetLatestSession(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, error)
	ListVotes(ctx context.Context, sessionID uuid.UUID) ([]models.Vote, error)
	GetSessionHistory(ctx context.Context, roomID uuid.UUID) ([]models.SessionHistoryEntry, error)
}

// Service implements the VotingService connect interface
type Service struct {
	app VotingApp
}

// NewService creates a new voting service
func NewService(app VotingApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the VotingServiceHandler interface
var _ rpc.VotingServiceHandler = (*Service)(nil)

func (s *Service) SubmitVote(ctx context.Context, req *connect.Request[rpc.SubmitVoteRequest]) (*connect.Response[rpc.SubmitVoteResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	vote, revealed, err := s.app.SubmitVote(ctx, SubmitVoteRequest{
		RoomID:    req.Msg.RoomID,
		SessionID: req.Msg.SessionID,
		UserID:    userID,
		CardValue: req.Msg.CardValue,
	})
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}

	return connect.NewResponse(&rpc.SubmitVoteResponse{
		Vote:     *vote,
		Revealed: revealed,
	}), nil
}

func (s *Service) RevealVotes(ctx context.Context, req *connect.Request[rpc.RevealVotesRequest]) (*connect.Response[rpc.RevealVotesResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	session, err := s.app.RevealVotes(ctx, ControlRequest{
		RoomID:    req.Msg.RoomID,
		SessionID: req.Msg.SessionID,
		UserID:    userID,
	})
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.RevealVotesResponse{Session: *session}), nil
}

func (s *Service) RevealOnTimerExpiry(ctx context.Context, req *connect.Request[rpc.RevealOnTimerExpiryRequest]) (*connect.Response[rpc.RevealOnTimerExpiryResponse], error) {
	revealed, err := s.app.RevealOnTimerExpiry(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.RevealOnTimerExpiryResponse{Revealed: revealed}), nil
}

func (s *Service) ResetVoting(ctx context.Context, req *connect.Request[rpc.ResetVotingRequest]) (*connect.Response[rpc.ResetVotingResponse], error) {
	userID, err := rpc.CallerID(req)
	if err != nil {
		return nil, err
	}

	session, err := s.app.ResetVoting(ctx, ControlRequest{
		RoomID: req.Msg.RoomID,
		UserID: userID,
		Topic:  req.Msg.Topic,
	})
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.ResetVotingResponse{Session: *session}), nil
}

func (s *Service) GetLatestSession(ctx context.Context, req *connect.Request[rpc.GetLatestSessionRequest]) (*connect.Response[rpc.GetLatestSessionResponse], error) {
	session, err := s.app.GetLatestSession(ctx, req.Msg.RoomID)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.GetLatestSessionResponse{Session: session}), nil
}

func (s *Service) ListVotes(ctx context.Context, req *connect.Request[rpc.ListVotesRequest]) (*connect.Response[rpc.ListVotesResponse], error) {
	votes, err := s.app.ListVotes(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.ListVotesResponse{Votes: votes}), nil
}

func (s *Service) GetSessionHistory(ctx context.Context, req *connect.Request[rpc.GetSessionHistoryRequest]) (*connect.Response[rpc.GetSessionHistoryResponse], error) {
	history, err := s.app.GetSessionHistory(ctx, req.Msg.RoomID)
	if err != nil {
		return nil, rpc.ToConnectError(err)
	}
	return connect.NewResponse(&rpc.GetSessionHistoryResponse{Sessions: history}), nil
}
