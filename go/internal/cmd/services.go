package main

import (
	"database/sql"

	"github.com/mcdev12/planpoker/go/internal/db"
	"github.com/mcdev12/planpoker/go/internal/room"
	"github.com/mcdev12/planpoker/go/internal/voting"
)

type Services struct {
	Rooms  *room.Service
	Voting *voting.Service
}

func setupServices(database *sql.DB) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer
	queries := db.New(database)

	// Rooms
	roomRepo := room.NewRepository(queries, database)
	roomApp := room.NewApp(roomRepo)
	roomService := room.NewService(roomApp)

	// Voting rules read room settings and the caller's participant
	votingRepo := voting.NewRepository(queries, database)
	votingApp := voting.NewApp(votingRepo, roomApp)
	votingService := voting.NewService(votingApp)

	return &Services{
		Rooms:  roomService,
		Voting: votingService,
	}
}
