package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/roomsync"
)

// Client opens room change feeds against a gateway. It satisfies
// roomsync.Subscriber.
type Client struct {
	baseURL string
	userID  string
	dialer  *websocket.Dialer
}

// NewClient accepts an http(s) or ws(s) base URL.
func NewClient(baseURL, userID string) *Client {
	base := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return &Client{
		baseURL: base,
		userID:  userID,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

func (c *Client) Subscribe(ctx context.Context, roomID uuid.UUID) (roomsync.Subscription, error) {
	u := c.baseURL + "/ws/rooms/" + url.PathEscape(roomID.String())
	header := http.Header{}
	if c.userID != "" {
		header.Set(UserIDHeader, c.userID)
	}

	conn, resp, err := c.dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to dial room feed: %s: %w", resp.Status, err)
		}
		return nil, fmt.Errorf("failed to dial room feed: %w", err)
	}

	sub := &subscription{
		conn:   conn,
		roomID: roomID,
		events: make(chan models.ChangeEvent, 64),
		done:   make(chan struct{}),
	}
	sub.wg.Add(1)
	go sub.readLoop()
	return sub, nil
}

type subscription struct {
	conn   *websocket.Conn
	roomID uuid.UUID
	events chan models.ChangeEvent
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func (s *subscription) Events() <-chan models.ChangeEvent {
	return s.events
}

func (s *subscription) readLoop() {
	defer s.wg.Done()
	defer close(s.events)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				log.Debug().Err(err).Str("room_id", s.roomID.String()).Msg("room feed closed")
			}
			return
		}

		var ev models.ChangeEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Debug().Err(err).Str("room_id", s.roomID.String()).Msg("dropping malformed room feed frame")
			continue
		}

		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Close ends the feed and waits for the read loop to exit.
func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = s.conn.Close()
		s.wg.Wait()
	})
	return err
}
