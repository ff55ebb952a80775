package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/mcdev12/planpoker/go/internal/dbconfig"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "count expired rooms without deactivating them")
	flag.Parse()

	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := dbconfig.NewConfigFromEnv().OpenPool(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *dryRun {
		var n int64
		err := pool.QueryRow(ctx, `SELECT count(*) FROM rooms WHERE is_active AND expires_at < now()`).Scan(&n)
		if err != nil {
			fmt.Fprintf(os.Stderr, "count expired rooms: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d expired rooms would be deactivated\n", n)
		return
	}

	// The room trigger records one UPDATE event per room, so connected
	// clients see the room go inactive.
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "begin: %v\n", err)
		os.Exit(1)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE rooms
           SET is_active = FALSE
         WHERE is_active
           AND expires_at < now()
    `)
	if err != nil {
		fmt.Fprintf(os.Stderr, "expire rooms: %v\n", err)
		os.Exit(1)
	}
	if err := tx.Commit(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "commit: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("deactivated %d expired rooms\n", tag.RowsAffected())
}
