package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/planpoker/go/internal/cards"
	"github.com/mcdev12/planpoker/go/internal/countdown"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/realtime/gateway"
	"github.com/mcdev12/planpoker/go/internal/roomsync"
	"github.com/mcdev12/planpoker/go/internal/rpc"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", getEnv("POKER_API_URL", "http://localhost:8080"), "API server base URL")
	gatewayURL := flag.String("gateway", getEnv("POKER_GATEWAY_URL", "http://localhost:8081"), "realtime gateway base URL")
	userID := flag.String("user", getEnv("POKER_USER_ID", ""), "user id; random when empty")
	name := flag.String("name", "", "display name")
	join := flag.String("join", "", "room code to join")
	create := flag.String("create", "", "create a room with this name")
	cardSet := flag.String("cards", string(models.CardSetFibonacci), "card set for -create")
	custom := flag.String("custom", "", "comma separated numeric cards for -create with -cards custom")
	timer := flag.Int("timer", 0, "round timer in seconds for -create (30, 60, 120 or 300)")
	poll := flag.Duration("poll", roomsync.DefaultPollInterval, "reconciliation poll interval")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if *userID == "" {
		*userID = uuid.NewString()
	}
	if (*join == "") == (*create == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -join or -create is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := rpc.NewClient(&http.Client{Timeout: 10 * time.Second}, *apiURL, *userID)

	code := *join
	if *create != "" {
		req, err := createRequest(*create, *name, *cardSet, *custom, *timer)
		if err != nil {
			fatal("create room", err)
		}
		room, _, err := api.CreateRoom(ctx, req)
		if err != nil {
			fatal("create room", err)
		}
		code = room.Code
		fmt.Printf("created room %s\n", code)
	} else if _, _, err := api.JoinRoom(ctx, code, *name); err != nil {
		fatal("join room", err)
	}

	snap, err := api.GetRoomSnapshot(ctx, code)
	if err != nil {
		fatal("load room", err)
	}

	store := roomsync.New(api, gateway.NewClient(*gatewayURL, *userID),
		roomsync.WithPollInterval(*poll),
		roomsync.WithErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "vote not saved: %s\n", describe(err))
		}),
	)
	if err := store.Initialize(*snap); err != nil {
		fatal("initialize room", err)
	}
	teardown, err := store.Subscribe(ctx)
	if err != nil {
		fatal("subscribe", err)
	}
	defer teardown()

	var mu sync.Mutex
	var remaining int
	var timerShown bool
	driver := countdown.New(store, countdown.WithOnTick(func(seconds int, ok bool) {
		mu.Lock()
		remaining, timerShown = seconds, ok
		mu.Unlock()
	}))
	go func() {
		if err := driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Debug().Err(err).Msg("countdown stopped")
		}
	}()

	go func() {
		for range store.Updates() {
			mu.Lock()
			v := snapshotView(store, remaining, timerShown)
			mu.Unlock()
			renderRoom(os.Stdout, v)
		}
	}()

	fmt.Println("commands: vote <card> | reveal | reset [topic] | observe | participate | quit")
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if quit := runCommand(ctx, api, store, line); quit {
				return
			}
		}
	}
}

func runCommand(ctx context.Context, api *rpc.Client, store *roomsync.Store, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	cmd = strings.ToLower(cmd)
	var err error
	switch cmd {
	case "":
		return false
	case "quit", "exit":
		return true
	case "vote", "v":
		err = store.SubmitVote(ctx, arg)
	case "reveal":
		err = store.RequestReveal(ctx)
	case "reset":
		err = store.RequestReset(ctx, arg)
	case "observe", "participate":
		self, ok := store.Self()
		if !ok {
			err = models.ErrParticipantNotFound
			break
		}
		observer := cmd == "observe"
		_, err = api.UpdateParticipant(ctx, rpc.UpdateParticipantRequest{ParticipantID: self.ID, IsObserver: &observer})
	default:
		fmt.Printf("unknown command %q\n", cmd)
		return false
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %s\n", cmd, describe(err))
	}
	return false
}

// createRequest builds a room creation request from flags. Custom decks are
// checked here so a typo fails before any network call.
func createRequest(name, displayName, cardSet, custom string, timer int) (rpc.CreateRoomRequest, error) {
	req := rpc.CreateRoomRequest{Name: name, DisplayName: displayName, CardSet: models.CardSet(cardSet)}
	if req.CardSet == models.CardSetCustom {
		req.CustomCards = cards.ParseCustom(custom)
		if err := cards.ValidateCustom(req.CustomCards); err != nil {
			return req, err
		}
	} else if custom != "" {
		return req, models.Wrap(models.ErrInvalidInput, errors.New("-custom needs -cards custom"))
	}
	if timer > 0 {
		req.TimerDuration = &timer
	}
	return req, nil
}

func describe(err error) string {
	var perr *models.Error
	if errors.As(err, &perr) {
		return perr.Reason
	}
	return err.Error()
}

func fatal(action string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", action, describe(err))
	os.Exit(1)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
