package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
)

// Client is a typed facade over both services for Go callers.
// Every call carries the configured user id and returns domain errors.
type Client struct {
	rooms  *RoomServiceClient
	voting *VotingServiceClient
}

// NewClient creates a Client for the API server at baseURL acting as userID.
func NewClient(httpClient connect.HTTPClient, baseURL, userID string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	interceptors := connect.WithInterceptors(NewUserInterceptor(userID))
	return &Client{
		rooms:  NewRoomServiceClient(httpClient, baseURL, interceptors),
		voting: NewVotingServiceClient(httpClient, baseURL, interceptors),
	}
}

func (c *Client) CreateRoom(ctx context.Context, req CreateRoomRequest) (*models.Room, *models.Participant, error) {
	resp, err := c.rooms.CreateRoom(ctx, connect.NewRequest(&req))
	if err != nil {
		return nil, nil, FromConnectError(err)
	}
	return &resp.Msg.Room, &resp.Msg.Participant, nil
}

func (c *Client) JoinRoom(ctx context.Context, code, displayName string) (*models.Room, *models.Participant, error) {
	resp, err := c.rooms.JoinRoom(ctx, connect.NewRequest(&JoinRoomRequest{
		Code:        code,
		DisplayName: displayName,
	}))
	if err != nil {
		return nil, nil, FromConnectError(err)
	}
	return &resp.Msg.Room, &resp.Msg.Participant, nil
}

func (c *Client) GetRoom(ctx context.Context, code string) (*models.Room, error) {
	resp, err := c.rooms.GetRoom(ctx, connect.NewRequest(&GetRoomRequest{Code: code}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return &resp.Msg.Room, nil
}

func (c *Client) GetRoomSnapshot(ctx context.Context, code string) (*models.Snapshot, error) {
	resp, err := c.rooms.GetRoomSnapshot(ctx, connect.NewRequest(&GetRoomSnapshotRequest{Code: code}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return &resp.Msg.Snapshot, nil
}

func (c *Client) UpdateRoomSettings(ctx context.Context, roomID uuid.UUID, settings models.RoomSettings) (*models.Room, error) {
	resp, err := c.rooms.UpdateRoomSettings(ctx, connect.NewRequest(&UpdateRoomSettingsRequest{
		RoomID:   roomID,
		Settings: settings,
	}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return &resp.Msg.Room, nil
}

func (c *Client) UpdateParticipant(ctx context.Context, req UpdateParticipantRequest) (*models.Participant, error) {
	resp, err := c.rooms.UpdateParticipant(ctx, connect.NewRequest(&req))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return &resp.Msg.Participant, nil
}

func (c *Client) GetSessionHistory(ctx context.Context, roomID uuid.UUID) ([]models.SessionHistoryEntry, error) {
	resp, err := c.voting.GetSessionHistory(ctx, connect.NewRequest(&GetSessionHistoryRequest{RoomID: roomID}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return resp.Msg.Sessions, nil
}

// The methods below back the room sync store.

func (c *Client) FetchVotes(ctx context.Context, sessionID uuid.UUID) ([]models.Vote, error) {
	resp, err := c.voting.ListVotes(ctx, connect.NewRequest(&ListVotesRequest{SessionID: sessionID}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return resp.Msg.Votes, nil
}

func (c *Client) FetchParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error) {
	resp, err := c.rooms.ListParticipants(ctx, connect.NewRequest(&ListParticipantsRequest{RoomID: roomID}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return resp.Msg.Participants, nil
}

func (c *Client) FetchLatestSession(ctx context.Context, roomID uuid.UUID) (*models.VotingSession, error) {
	resp, err := c.voting.GetLatestSession(ctx, connect.NewRequest(&GetLatestSessionRequest{RoomID: roomID}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return resp.Msg.Session, nil
}

func (c *Client) FetchRoomSettings(ctx context.Context, roomID uuid.UUID) (models.RoomSettings, error) {
	resp, err := c.rooms.GetRoomSettings(ctx, connect.NewRequest(&GetRoomSettingsRequest{RoomID: roomID}))
	if err != nil {
		return models.RoomSettings{}, FromConnectError(err)
	}
	return resp.Msg.Settings, nil
}

func (c *Client) SubmitVote(ctx context.Context, roomID, sessionID uuid.UUID, cardValue string) (*models.Vote, error) {
	resp, err := c.voting.SubmitVote(ctx, connect.NewRequest(&SubmitVoteRequest{
		RoomID:    roomID,
		SessionID: sessionID,
		CardValue: cardValue,
	}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return &resp.Msg.Vote, nil
}

func (c *Client) Reveal(ctx context.Context, roomID, sessionID uuid.UUID) error {
	_, err := c.voting.RevealVotes(ctx, connect.NewRequest(&RevealVotesRequest{
		RoomID:    roomID,
		SessionID: sessionID,
	}))
	return FromConnectError(err)
}

func (c *Client) RevealOnTimerExpiry(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	resp, err := c.voting.RevealOnTimerExpiry(ctx, connect.NewRequest(&RevealOnTimerExpiryRequest{SessionID: sessionID}))
	if err != nil {
		return false, FromConnectError(err)
	}
	return resp.Msg.Revealed, nil
}

func (c *Client) Reset(ctx context.Context, roomID uuid.UUID, topic string) (*models.VotingSession, error) {
	resp, err := c.voting.ResetVoting(ctx, connect.NewRequest(&ResetVotingRequest{
		RoomID: roomID,
		Topic:  topic,
	}))
	if err != nil {
		return nil, FromConnectError(err)
	}
	return &resp.Msg.Session, nil
}
