package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const VotingServiceName = "planpoker.voting.v1.VotingService"

const (
	VotingServiceSubmitVoteProcedure          = "/planpoker.voting.v1.VotingService/SubmitVote"
	VotingServiceRevealVotesProcedure         = "/planpoker.voting.v1.VotingService/RevealVotes"
	VotingServiceRevealOnTimerExpiryProcedure = "/planpoker.voting.v1.VotingService/RevealOnTimerExpiry"
	VotingServiceResetVotingProcedure         = "/planpoker.voting.v1.VotingService/ResetVoting"
	VotingServiceGetLatestSessionProcedure    = "/planpoker.voting.v1.VotingService/GetLatestSession"
	VotingServiceListVotesProcedure           = "/planpoker.voting.v1.VotingService/ListVotes"
	VotingServiceGetSessionHistoryProcedure   = "/planpoker.voting.v1.VotingService/GetSessionHistory"
)

// VotingServiceHandler is the server side of the voting service.
type VotingServiceHandler interface {
	SubmitVote(context.Context, *connect.Request[SubmitVoteRequest]) (*connect.Response[SubmitVoteResponse], error)
	RevealVotes(context.Context, *connect.Request[RevealVotesRequest]) (*connect.Response[RevealVotesResponse], error)
	RevealOnTimerExpiry(context.Context, *connect.Request[RevealOnTimerExpiryRequest]) (*connect.Response[RevealOnTimerExpiryResponse], error)
	ResetVoting(context.Context, *connect.Request[ResetVotingRequest]) (*connect.Response[ResetVotingResponse], error)
	GetLatestSession(context.Context, *connect.Request[GetLatestSessionRequest]) (*connect.Response[GetLatestSessionResponse], error)
	ListVotes(context.Context, *connect.Request[ListVotesRequest]) (*connect.Response[ListVotesResponse], error)
	GetSessionHistory(context.Context, *connect.Request[GetSessionHistoryRequest]) (*connect.Response[GetSessionHistoryResponse], error)
}

// NewVotingServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewVotingServiceHandler(svc VotingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(VotingServiceSubmitVoteProcedure, connect.NewUnaryHandler(VotingServiceSubmitVoteProcedure, svc.SubmitVote, opts...))
	mux.Handle(VotingServiceRevealVotesProcedure, connect.NewUnaryHandler(VotingServiceRevealVotesProcedure, svc.RevealVotes, opts...))
	mux.Handle(VotingServiceRevealOnTimerExpiryProcedure, connect.NewUnaryHandler(VotingServiceRevealOnTimerExpiryProcedure, svc.RevealOnTimerExpiry, opts...))
	mux.Handle(VotingServiceResetVotingProcedure, connect.NewUnaryHandler(VotingServiceResetVotingProcedure, svc.ResetVoting, opts...))
	mux.Handle(VotingServiceGetLatestSessionProcedure, connect.NewUnaryHandler(VotingServiceGetLatestSessionProcedure, svc.GetLatestSession, opts...))
	mux.Handle(VotingServiceListVotesProcedure, connect.NewUnaryHandler(VotingServiceListVotesProcedure, svc.ListVotes, opts...))
	mux.Handle(VotingServiceGetSessionHistoryProcedure, connect.NewUnaryHandler(VotingServiceGetSessionHistoryProcedure, svc.GetSessionHistory, opts...))
	return "/" + VotingServiceName + "/", mux
}

// VotingServiceClient calls the voting service over connect.
type VotingServiceClient struct {
	submitVote          *connect.Client[SubmitVoteRequest, SubmitVoteResponse]
	revealVotes         *connect.Client[RevealVotesRequest, RevealVotesResponse]
	revealOnTimerExpiry *connect.Client[RevealOnTimerExpiryRequest, RevealOnTimerExpiryResponse]
	resetVoting         *connect.Client[ResetVotingRequest, ResetVotingResponse]
	getLatestSession    *connect.Client[GetLatestSessionRequest, GetLatestSessionResponse]
	listVotes           *connect.Client[ListVotesRequest, ListVotesResponse]
	getSessionHistory   *connect.Client[GetSessionHistoryRequest, GetSessionHistoryResponse]
}

// NewVotingServiceClient constructs a client for the voting service at baseURL.
func NewVotingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *VotingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &VotingServiceClient{
		submitVote:          connect.NewClient[SubmitVoteRequest, SubmitVoteResponse](httpClient, baseURL+VotingServiceSubmitVoteProcedure, opts...),
		revealVotes:         connect.NewClient[RevealVotesRequest, RevealVotesResponse](httpClient, baseURL+VotingServiceRevealVotesProcedure, opts...),
		revealOnTimerExpiry: connect.NewClient[RevealOnTimerExpiryRequest, RevealOnTimerExpiryResponse](httpClient, baseURL+VotingServiceRevealOnTimerExpiryProcedure, opts...),
		resetVoting:         connect.NewClient[ResetVotingRequest, ResetVotingResponse](httpClient, baseURL+VotingServiceResetVotingProcedure, opts...),
		getLatestSession:    connect.NewClient[GetLatestSessionRequest, GetLatestSessionResponse](httpClient, baseURL+VotingServiceGetLatestSessionProcedure, opts...),
		listVotes:           connect.NewClient[ListVotesRequest, ListVotesResponse](httpClient, baseURL+VotingServiceListVotesProcedure, opts...),
		getSessionHistory:   connect.NewClient[GetSessionHistoryRequest, GetSessionHistoryResponse](httpClient, baseURL+VotingServiceGetSessionHistoryProcedure, opts...),
	}
}

func (c *VotingServiceClient) SubmitVote(ctx context.Context, req *connect.Request[SubmitVoteRequest]) (*connect.Response[SubmitVoteResponse], error) {
	return c.submitVote.CallUnary(ctx, req)
}

func (c *VotingServiceClient) RevealVotes(ctx context.Context, req *connect.Request[RevealVotesRequest]) (*connect.Response[RevealVotesResponse], error) {
	return c.revealVotes.CallUnary(ctx, req)
}

func (c *VotingServiceClient) RevealOnTimerExpiry(ctx context.Context, req *connect.Request[RevealOnTimerExpiryRequest]) (*connect.Response[RevealOnTimerExpiryResponse], error) {
	return c.revealOnTimerExpiry.CallUnary(ctx, req)
}

func (c *VotingServiceClient) ResetVoting(ctx context.Context, req *connect.Request[ResetVotingRequest]) (*connect.Response[ResetVotingResponse], error) {
	return c.resetVoting.CallUnary(ctx, req)
}

func (c *VotingServiceClient) GetLatestSession(ctx context.Context, req *connect.Request[GetLatestSessionRequest]) (*connect.Response[GetLatestSessionResponse], error) {
	return c.getLatestSession.CallUnary(ctx, req)
}

func (c *VotingServiceClient) ListVotes(ctx context.Context, req *connect.Request[ListVotesRequest]) (*connect.Response[ListVotesResponse], error) {
	return c.listVotes.CallUnary(ctx, req)
}

func (c *VotingServiceClient) GetSessionHistory(ctx context.Context, req *connect.Request[GetSessionHistoryRequest]) (*connect.Response[GetSessionHistoryResponse], error) {
	return c.getSessionHistory.CallUnary(ctx, req)
}
