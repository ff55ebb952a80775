package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/mcdev12/planpoker/go/internal/dbconfig"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/roomcode"
)

// DemoRoom mirrors the JSON seed file.
type DemoRoom struct {
	Code         string         `json:"code"`
	Name         string         `json:"name"`
	CardSet      models.CardSet `json:"card_set"`
	CustomCards  []string       `json:"custom_cards,omitempty"`
	TimerSeconds *int           `json:"timer_duration,omitempty"`
	Facilitator  string         `json:"facilitator"`
	Participants []string       `json:"participants"`
}

func main() {
	path := flag.String("file", "", "JSON file with an array of demo rooms; a single default room when empty")
	flag.Parse()

	_ = godotenv.Load()

	// 1) Load the rooms to seed
	rooms := []DemoRoom{{
		Code:         "PLANPK",
		Name:         "Demo room",
		CardSet:      models.CardSetFibonacci,
		Facilitator:  "Ana",
		Participants: []string{"Ben", "Cleo"},
	}}
	if *path != "" {
		data, err := os.ReadFile(*path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &rooms); err != nil {
			fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
			os.Exit(1)
		}
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	pool, err := dbconfig.NewConfigFromEnv().OpenPool(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert and count
	var inserted, skipped, errs int
	for _, r := range rooms {
		ok, err := seedRoom(ctx, pool, r)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "error seeding room %s: %v\n", r.Code, err)
			errs++
		case ok:
			inserted++
		default:
			skipped++
		}
	}

	fmt.Printf("Rooms: total=%d inserted=%d skipped=%d errors=%d\n", len(rooms), inserted, skipped, errs)
	if errs > 0 {
		os.Exit(1)
	}
}

// seedRoom inserts the room, its roster and a first round. Existing codes are skipped.
func seedRoom(ctx context.Context, pool *pgxpool.Pool, r DemoRoom) (bool, error) {
	code := roomcode.Normalize(r.Code)
	if !roomcode.Valid(code) {
		return false, fmt.Errorf("invalid room code %q", r.Code)
	}

	var customCards []byte
	if r.CardSet == models.CardSetCustom {
		var err error
		if customCards, err = json.Marshal(r.CustomCards); err != nil {
			return false, err
		}
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	facilitator := strings.TrimSpace(r.Facilitator)
	var roomID string
	err = tx.QueryRow(ctx, `
        INSERT INTO rooms (code, name, created_by, card_set, custom_cards, timer_duration)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (code) DO NOTHING
        RETURNING id
    `, code, r.Name, "seed:"+facilitator, string(r.CardSet), customCards, r.TimerSeconds).Scan(&roomID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	names := append([]string{facilitator}, r.Participants...)
	for i, name := range names {
		_, err := tx.Exec(ctx, `
            INSERT INTO participants (room_id, user_id, display_name, is_facilitator)
            VALUES ($1, $2, $3, $4)
        `, roomID, "seed:"+strings.ToLower(name), name, i == 0)
		if err != nil {
			return false, fmt.Errorf("participant %s: %w", name, err)
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO voting_sessions (room_id) VALUES ($1)`, roomID); err != nil {
		return false, fmt.Errorf("first session: %w", err)
	}

	return true, tx.Commit(ctx)
}
