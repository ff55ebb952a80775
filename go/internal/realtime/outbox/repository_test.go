package outbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/planpoker/go/internal/db"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/room"
	"github.com/mcdev12/planpoker/go/internal/testutil"
)

func TestIntegration_TriggersFillOutbox(t *testing.T) {
	pg := testutil.StartPostgres(t)
	ctx := context.Background()
	queries := db.New(pg.DB)
	repo := NewRepository(queries)

	rooms := room.NewApp(room.NewRepository(queries, pg.DB))
	r, facilitator, err := rooms.CreateRoom(ctx, room.CreateRoomRequest{Name: "Relay", UserID: "ana", DisplayName: "Ana"})
	require.NoError(t, err)

	events, err := repo.FetchUnsent(ctx, 100)
	require.NoError(t, err)

	tables := make(map[string]int)
	for _, ev := range events {
		assert.Equal(t, r.ID, ev.RoomID)
		assert.Equal(t, models.ChangeOpInsert, ev.Operation)
		tables[ev.Table]++
	}
	assert.Equal(t, map[string]int{
		models.TableRooms:          1,
		models.TableParticipants:   1,
		models.TableVotingSessions: 1,
	}, tables)

	var participantEvent *models.ChangeEvent
	for i := range events {
		if events[i].Table == models.TableParticipants {
			participantEvent = &events[i]
		}
	}
	require.NotNil(t, participantEvent)
	var p models.Participant
	require.NoError(t, participantEvent.Decode(&p))
	assert.Equal(t, facilitator.ID, p.ID)
	assert.Equal(t, "Ana", p.DisplayName)
	assert.True(t, p.IsFacilitator)
	assert.Empty(t, participantEvent.OldRecord)

	count, err := repo.CountUnsent(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(events), count)

	first := events[0]
	got, err := repo.FetchEvent(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.Table, got.Table)

	require.NoError(t, repo.MarkSent(ctx, first.ID))
	got, err = repo.FetchEvent(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "sent events are no longer fetched")

	count, err = repo.CountUnsent(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(events)-1, count)
}

func TestIntegration_UpdateCarriesOldRecord(t *testing.T) {
	pg := testutil.StartPostgres(t)
	ctx := context.Background()
	queries := db.New(pg.DB)
	repo := NewRepository(queries)

	rooms := room.NewApp(room.NewRepository(queries, pg.DB))
	r, _, err := rooms.CreateRoom(ctx, room.CreateRoomRequest{Name: "Relay", UserID: "ana", DisplayName: "Ana"})
	require.NoError(t, err)

	events, err := repo.FetchUnsent(ctx, 100)
	require.NoError(t, err)
	for _, ev := range events {
		require.NoError(t, repo.MarkSent(ctx, ev.ID))
	}

	settings := r.Settings()
	settings.CardSet = models.CardSetTShirt
	_, err = rooms.UpdateRoomSettings(ctx, room.UpdateSettingsRequest{RoomID: r.ID, UserID: "ana", Settings: settings})
	require.NoError(t, err)

	events, err = repo.FetchUnsent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, models.TableRooms, ev.Table)
	assert.Equal(t, models.ChangeOpUpdate, ev.Operation)

	var before, after models.Room
	require.NoError(t, ev.DecodeOld(&before))
	require.NoError(t, ev.Decode(&after))
	assert.Equal(t, models.CardSetFibonacci, before.CardSet)
	assert.Equal(t, models.CardSetTShirt, after.CardSet)
}
