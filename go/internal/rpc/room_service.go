package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const RoomServiceName = "planpoker.room.v1.RoomService"

const (
	RoomServiceCreateRoomProcedure            = "/planpoker.room.v1.RoomService/CreateRoom"
	RoomServiceJoinRoomProcedure              = "/planpoker.room.v1.RoomService/JoinRoom"
	RoomServiceGetRoomProcedure               = "/planpoker.room.v1.RoomService/GetRoom"
	RoomServiceGetRoomSnapshotProcedure       = "/planpoker.room.v1.RoomService/GetRoomSnapshot"
	RoomServiceGetRoomSettingsProcedure       = "/planpoker.room.v1.RoomService/GetRoomSettings"
	RoomServiceListParticipantsProcedure      = "/planpoker.room.v1.RoomService/ListParticipants"
	RoomServiceGetCurrentParticipantProcedure = "/planpoker.room.v1.RoomService/GetCurrentParticipant"
	RoomServiceUpdateRoomSettingsProcedure    = "/planpoker.room.v1.RoomService/UpdateRoomSettings"
	RoomServiceUpdateParticipantProcedure     = "/planpoker.room.v1.RoomService/UpdateParticipant"
)

// RoomServiceHandler is the server side of the room service.
type RoomServiceHandler interface {
	CreateRoom(context.Context, *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error)
	JoinRoom(context.Context, *connect.Request[JoinRoomRequest]) (*connect.Response[JoinRoomResponse], error)
	GetRoom(context.Context, *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error)
	GetRoomSnapshot(context.Context, *connect.Request[GetRoomSnapshotRequest]) (*connect.Response[GetRoomSnapshotResponse], error)
	GetRoomSettings(context.Context, *connect.Request[GetRoomSettingsRequest]) (*connect.Response[GetRoomSettingsResponse], error)
	ListParticipants(context.Context, *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error)
	GetCurrentParticipant(context.Context, *connect.Request[GetCurrentParticipantRequest]) (*connect.Response[GetCurrentParticipantResponse], error)
	UpdateRoomSettings(context.Context, *connect.Request[UpdateRoomSettingsRequest]) (*connect.Response[UpdateRoomSettingsResponse], error)
	UpdateParticipant(context.Context, *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error)
}

// NewRoomServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewRoomServiceHandler(svc RoomServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(RoomServiceCreateRoomProcedure, connect.NewUnaryHandler(RoomServiceCreateRoomProcedure, svc.CreateRoom, opts...))
	mux.Handle(RoomServiceJoinRoomProcedure, connect.NewUnaryHandler(RoomServiceJoinRoomProcedure, svc.JoinRoom, opts...))
	mux.Handle(RoomServiceGetRoomProcedure, connect.NewUnaryHandler(RoomServiceGetRoomProcedure, svc.GetRoom, opts...))
	mux.Handle(RoomServiceGetRoomSnapshotProcedure, connect.NewUnaryHandler(RoomServiceGetRoomSnapshotProcedure, svc.GetRoomSnapshot, opts...))
	mux.Handle(RoomServiceGetRoomSettingsProcedure, connect.NewUnaryHandler(RoomServiceGetRoomSettingsProcedure, svc.GetRoomSettings, opts...))
	mux.Handle(RoomServiceListParticipantsProcedure, connect.NewUnaryHandler(RoomServiceListParticipantsProcedure, svc.ListParticipants, opts...))
	mux.Handle(RoomServiceGetCurrentParticipantProcedure, connect.NewUnaryHandler(RoomServiceGetCurrentParticipantProcedure, svc.GetCurrentParticipant, opts...))
	mux.Handle(RoomServiceUpdateRoomSettingsProcedure, connect.NewUnaryHandler(RoomServiceUpdateRoomSettingsProcedure, svc.UpdateRoomSettings, opts...))
	mux.Handle(RoomServiceUpdateParticipantProcedure, connect.NewUnaryHandler(RoomServiceUpdateParticipantProcedure, svc.UpdateParticipant, opts...))
	return "/" + RoomServiceName + "/", mux
}

// RoomServiceClient calls the room service over connect.
type RoomServiceClient struct {
	createRoom            *connect.Client[CreateRoomRequest, CreateRoomResponse]
	joinRoom              *connect.Client[JoinRoomRequest, JoinRoomResponse]
	getRoom               *connect.Client[GetRoomRequest, GetRoomResponse]
	getRoomSnapshot       *connect.Client[GetRoomSnapshotRequest, GetRoomSnapshotResponse]
	getRoomSettings       *connect.Client[GetRoomSettingsRequest, GetRoomSettingsResponse]
	listParticipants      *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
	getCurrentParticipant *connect.Client[GetCurrentParticipantRequest, GetCurrentParticipantResponse]
	updateRoomSettings    *connect.Client[UpdateRoomSettingsRequest, UpdateRoomSettingsResponse]
	updateParticipant     *connect.Client[UpdateParticipantRequest, UpdateParticipantResponse]
}

// NewRoomServiceClient constructs a client for the room service at baseURL.
func NewRoomServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RoomServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &RoomServiceClient{
		createRoom:            connect.NewClient[CreateRoomRequest, CreateRoomResponse](httpClient, baseURL+RoomServiceCreateRoomProcedure, opts...),
		joinRoom:              connect.NewClient[JoinRoomRequest, JoinRoomResponse](httpClient, baseURL+RoomServiceJoinRoomProcedure, opts...),
		getRoom:               connect.NewClient[GetRoomRequest, GetRoomResponse](httpClient, baseURL+RoomServiceGetRoomProcedure, opts...),
		getRoomSnapshot:       connect.NewClient[GetRoomSnapshotRequest, GetRoomSnapshotResponse](httpClient, baseURL+RoomServiceGetRoomSnapshotProcedure, opts...),
		getRoomSettings:       connect.NewClient[GetRoomSettingsRequest, GetRoomSettingsResponse](httpClient, baseURL+RoomServiceGetRoomSettingsProcedure, opts...),
		listParticipants:      connect.NewClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL+RoomServiceListParticipantsProcedure, opts...),
		getCurrentParticipant: connect.NewClient[GetCurrentParticipantRequest, GetCurrentParticipantResponse](httpClient, baseURL+RoomServiceGetCurrentParticipantProcedure, opts...),
		updateRoomSettings:    connect.NewClient[UpdateRoomSettingsRequest, UpdateRoomSettingsResponse](httpClient, baseURL+RoomServiceUpdateRoomSettingsProcedure, opts...),
		updateParticipant:     connect.NewClient[UpdateParticipantRequest, UpdateParticipantResponse](httpClient, baseURL+RoomServiceUpdateParticipantProcedure, opts...),
	}
}

func (c *RoomServiceClient) CreateRoom(ctx context.Context, req *connect.Request[CreateRoomRequest]) (*connect.Response[CreateRoomResponse], error) {
	return c.createRoom.CallUnary(ctx, req)
}

func (c *RoomServiceClient) JoinRoom(ctx context.Context, req *connect.Request[JoinRoomRequest]) (*connect.Response[JoinRoomResponse], error) {
	return c.joinRoom.CallUnary(ctx, req)
}

func (c *RoomServiceClient) GetRoom(ctx context.Context, req *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error) {
	return c.getRoom.CallUnary(ctx, req)
}

func (c *RoomServiceClient) GetRoomSnapshot(ctx context.Context, req *connect.Request[GetRoomSnapshotRequest]) (*connect.Response[GetRoomSnapshotResponse], error) {
	return c.getRoomSnapshot.CallUnary(ctx, req)
}

func (c *RoomServiceClient) GetRoomSettings(ctx context.Context, req *connect.Request[GetRoomSettingsRequest]) (*connect.Response[GetRoomSettingsResponse], error) {
	return c.getRoomSettings.CallUnary(ctx, req)
}

func (c *RoomServiceClient) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *RoomServiceClient) GetCurrentParticipant(ctx context.Context, req *connect.Request[GetCurrentParticipantRequest]) (*connect.Response[GetCurrentParticipantResponse], error) {
	return c.getCurrentParticipant.CallUnary(ctx, req)
}

func (c *RoomServiceClient) UpdateRoomSettings(ctx context.Context, req *connect.Request[UpdateRoomSettingsRequest]) (*connect.Response[UpdateRoomSettingsResponse], error) {
	return c.updateRoomSettings.CallUnary(ctx, req)
}

func (c *RoomServiceClient) UpdateParticipant(ctx context.Context, req *connect.Request[UpdateParticipantRequest]) (*connect.Response[UpdateParticipantResponse], error) {
	return c.updateParticipant.CallUnary(ctx, req)
}
