// Package pgnotify fans chat messages out across API instances with
// PostgreSQL LISTEN/NOTIFY. Every instance relays notifications into its own
// in-process hub, so local subscribers see messages sent through any instance.
package pgnotify

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MrJamesThe3rd/haggle/internal/message"
)

// NOTIFY payloads must stay under 8000 bytes. Larger messages are sent by
// id and re-read by the listener.
const maxPayload = 7900

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// Loader re-reads a message that was too large to inline.
type Loader interface {
	GetMessage(ctx context.Context, id uuid.UUID) (*message.Message, error)
}

type envelope struct {
	Message *message.Message `json:"message,omitempty"`
	Ref     *uuid.UUID       `json:"ref,omitempty"`
}

type Broker struct {
	db      *sql.DB
	connStr string
	channel string
	hub     *message.Hub
	loader  Loader

	// live is set while the listener holds LISTEN; notifications sent
	// outside that window never reach this instance.
	live atomic.Bool
}

func New(db *sql.DB, connStr, channel string, loader Loader) *Broker {
	return &Broker{
		db:      db,
		connStr: connStr,
		channel: channel,
		hub:     message.NewHub(),
		loader:  loader,
	}
}

// Publish notifies every listening instance, this one included.
func (b *Broker) Publish(ctx context.Context, m *message.Message) error {
	payload, err := encode(m)
	if err != nil {
		return err
	}

	if _, err := b.db.ExecContext(ctx, "SELECT pg_notify($1, $2)", b.channel, payload); err != nil {
		return fmt.Errorf("notifying %s: %w", b.channel, err)
	}

	return nil
}

// Subscribe opens a local feed. While the listener is down the feed is
// closed at once with message.ErrLagged, since messages sent meanwhile would
// never arrive.
func (b *Broker) Subscribe(negotiationID uuid.UUID) *message.Subscription {
	s := b.hub.Subscribe(negotiationID)
	if !b.live.Load() {
		b.hub.Drop(s, message.ErrLagged)
	}

	return s
}

// Run listens until ctx is done, reconnecting with exponential backoff.
func (b *Broker) Run(ctx context.Context) error {
	backoff := minBackoff

	for {
		err := b.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}

		slog.Error("message listener disconnected", "channel", b.channel, "retry_in", backoff, "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *Broker) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, b.connStr)
	if err != nil {
		return fmt.Errorf("connecting listener: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{b.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listening on %s: %w", b.channel, err)
	}

	b.live.Store(true)
	defer b.interrupt()

	slog.Info("message listener connected", "channel", b.channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("waiting for notification: %w", err)
		}

		m, err := b.decode(ctx, n.Payload)
		if err != nil {
			slog.Error("failed to decode notification", "channel", b.channel, "error", err)
			continue
		}

		_ = b.hub.Publish(ctx, m)
	}
}

// interrupt marks the listener down and ends every local feed, so consumers
// re-fetch history instead of waiting on notifications that are lost.
func (b *Broker) interrupt() {
	b.live.Store(false)
	b.hub.CloseAll(message.ErrLagged)
}

func encode(m *message.Message) (string, error) {
	raw, err := json.Marshal(envelope{Message: m})
	if err != nil {
		return "", fmt.Errorf("encoding message: %w", err)
	}

	if len(raw) <= maxPayload {
		return string(raw), nil
	}

	raw, err = json.Marshal(envelope{Ref: &m.ID})
	if err != nil {
		return "", fmt.Errorf("encoding message ref: %w", err)
	}

	return string(raw), nil
}

func (b *Broker) decode(ctx context.Context, payload string) (*message.Message, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	switch {
	case env.Message != nil:
		return env.Message, nil
	case env.Ref != nil:
		return b.loader.GetMessage(ctx, *env.Ref)
	default:
		return nil, errors.New("empty notification payload")
	}
}
