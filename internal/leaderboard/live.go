package leaderboard

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
)

// LiveURL returns the websocket URL of the live feed.
func (c *Client) LiveURL() (string, error) {
	u, err := url.Parse(c.baseURL + PathLive)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("leaderboard: unsupported scheme %q", u.Scheme)
	}
	return u.String(), nil
}

// Watch subscribes to board updates. The channel yields the current board
// first and then every change; it is closed when ctx ends or the
// connection drops.
func (c *Client) Watch(ctx context.Context) (<-chan []Entry, error) {
	u, err := c.LiveURL()
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing live feed: %w", err)
	}

	out := make(chan []Entry, 1)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = conn.Close()
	}()

	go func() {
		defer close(out)
		defer close(done)
		for {
			var msg LiveMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if ctx.Err() == nil {
					c.logger.Debug().Err(err).Msg("live feed closed")
				}
				return
			}
			if msg.Type != LiveMessageBoard {
				continue
			}
			select {
			case out <- Cap(msg.Payload, MaxEntries):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
