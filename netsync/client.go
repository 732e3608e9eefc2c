package netsync

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/milk9111/backwardroyal/ecs"
)

const forwardTimeout = 2 * time.Second

// Client is a proxy's connection to the authoritative server. It forwards
// intents that a proxy world may not resolve itself.
type Client struct {
	conn *websocket.Conn
}

var _ ecs.IntentForwarder = (*Client)(nil)

func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("netsync: dial %s: %w", url, err)
	}
	conn.SetReadLimit(1 << 20)
	return &Client{conn: conn}, nil
}

func (c *Client) Send(ctx context.Context, kind Kind, body any) error {
	data, err := Encode(kind, body)
	if err != nil {
		return err
	}
	return c.conn.Write(ctx, websocket.MessageBinary, data)
}

// Read blocks for the next server message.
func (c *Client) Read(ctx context.Context) (Envelope, error) {
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return Envelope{}, err
	}
	return Decode(data)
}

func (c *Client) ForwardAttackDetection(attacker ecs.Entity, enabled bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
	defer cancel()
	return c.Send(ctx, KindDetection, Detection{Attacker: uint64(attacker), Enabled: enabled})
}

func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
