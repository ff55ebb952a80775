package outbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/planpoker/go/internal/db"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/sqlutil"
)

// Repository reads the room_events table filled by the row triggers.
type Repository struct {
	queries *db.Queries
}

func NewRepository(queries *db.Queries) *Repository {
	return &Repository{
		queries: queries,
	}
}

// FetchEvent returns the unsent event with the given id, or nil when it was
// already published by another path.
func (r *Repository) FetchEvent(ctx context.Context, id uuid.UUID) (*models.ChangeEvent, error) {
	row, err := r.queries.FetchRoomEventByID(ctx, id)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch room event: %w", err)
	}
	event := dbEventToModel(row)
	return &event, nil
}

func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]models.ChangeEvent, error) {
	rows, err := r.queries.FetchUnsentRoomEvents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent room events: %w", err)
	}
	events := make([]models.ChangeEvent, len(rows))
	for i, row := range rows {
		events[i] = dbEventToModel(row)
	}
	return events, nil
}

func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkRoomEventSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark room event sent: %w", err)
	}
	return nil
}

func (r *Repository) CountUnsent(ctx context.Context) (int64, error) {
	count, err := r.queries.CountUnsentRoomEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unsent room events: %w", err)
	}
	return count, nil
}

func dbEventToModel(row db.RoomEvent) models.ChangeEvent {
	return models.ChangeEvent{
		ID:        row.ID,
		RoomID:    row.RoomID,
		Table:     row.TableName,
		Operation: models.ChangeOp(row.Operation),
		Record:    sqlutil.FromNullRaw(row.Record),
		OldRecord: sqlutil.FromNullRaw(row.OldRecord),
		CreatedAt: row.CreatedAt,
	}
}
