package rpc

import (
	"github.com/google/uuid"
	"github.com/mcdev12/planpoker/go/internal/models"
)

type CreateRoomRequest struct {
	Name            string         `json:"name"`
	DisplayName     string         `json:"display_name"`
	CardSet         models.CardSet `json:"card_set"`
	CustomCards     []string       `json:"custom_cards,omitempty"`
	AutoReveal      *bool          `json:"auto_reveal,omitempty"`
	TimerDuration   *int           `json:"timer_duration,omitempty"`
	AllowAllControl *bool          `json:"allow_all_control,omitempty"`
}

type CreateRoomResponse struct {
	Room        models.Room        `json:"room"`
	Participant models.Participant `json:"participant"`
}

type JoinRoomRequest struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

type JoinRoomResponse struct {
	Room        models.Room        `json:"room"`
	Participant models.Participant `json:"participant"`
}

type GetRoomRequest struct {
	Code string `json:"code"`
}

type GetRoomResponse struct {
	Room models.Room `json:"room"`
}

type GetRoomSnapshotRequest struct {
	Code string `json:"code"`
}

type GetRoomSnapshotResponse struct {
	Snapshot models.Snapshot `json:"snapshot"`
}

type GetRoomSettingsRequest struct {
	RoomID uuid.UUID `json:"room_id"`
}

type GetRoomSettingsResponse struct {
	Settings models.RoomSettings `json:"settings"`
}

type ListParticipantsRequest struct {
	RoomID uuid.UUID `json:"room_id"`
}

type ListParticipantsResponse struct {
	Participants []models.Participant `json:"participants"`
}

type GetCurrentParticipantRequest struct {
	RoomID uuid.UUID `json:"room_id"`
}

type GetCurrentParticipantResponse struct {
	Participant models.Participant `json:"participant"`
}

type UpdateRoomSettingsRequest struct {
	RoomID   uuid.UUID           `json:"room_id"`
	Settings models.RoomSettings `json:"settings"`
}

type UpdateRoomSettingsResponse struct {
	Room models.Room `json:"room"`
}

type UpdateParticipantRequest struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	IsObserver    *bool     `json:"is_observer,omitempty"`
	IsActive      *bool     `json:"is_active,omitempty"`
}

type UpdateParticipantResponse struct {
	Participant models.Participant `json:"participant"`
}

type SubmitVoteRequest struct {
	RoomID    uuid.UUID `json:"room_id"`
	SessionID uuid.UUID `json:"session_id"`
	CardValue string    `json:"card_value"`
}

type SubmitVoteResponse struct {
	Vote     models.Vote `json:"vote"`
	Revealed bool        `json:"revealed"`
}

type RevealVotesRequest struct {
	RoomID    uuid.UUID `json:"room_id"`
	SessionID uuid.UUID `json:"session_id"`
}

type RevealVotesResponse struct {
	Session models.VotingSession `json:"session"`
}

type RevealOnTimerExpiryRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

type RevealOnTimerExpiryResponse struct {
	Revealed bool `json:"revealed"`
}

type ResetVotingRequest struct {
	RoomID uuid.UUID `json:"room_id"`
	Topic  string    `json:"topic"`
}

type ResetVotingResponse struct {
	Session models.VotingSession `json:"session"`
}

type GetLatestSessionRequest struct {
	RoomID uuid.UUID `json:"room_id"`
}

type GetLatestSessionResponse struct {
	Session *models.VotingSession `json:"session"`
}

type ListVotesRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

type ListVotesResponse struct {
	Votes []models.Vote `json:"votes"`
}

type GetSessionHistoryRequest struct {
	RoomID uuid.UUID `json:"room_id"`
}

type GetSessionHistoryResponse struct {
	Sessions []models.SessionHistoryEntry `json:"sessions"`
}
