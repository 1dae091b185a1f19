package message

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
	"github.com/MrJamesThe3rd/haggle/internal/message"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second

	// dedupeWindow is how many recent ids a live feed remembers. Redelivery
	// only overlaps the tail of history, so older ids are never needed.
	dedupeWindow = 256
)

type Handler struct {
	svc            *message.Service
	originPatterns []string
}

// NewHandler serves chat history, sending and the live feed. originPatterns
// lists the hosts allowed to open the feed from a browser.
func NewHandler(svc *message.Service, originPatterns []string) *Handler {
	return &Handler{svc: svc, originPatterns: originPatterns}
}

// Routes expects an authenticated router mounted at /negotiations. The
// feed is routed separately, see Feed.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}/messages", h.history)
	r.Post("/{id}/messages", h.send)
}

type sendRequest struct {
	Content string `json:"content"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	negID, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req sendRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	m, err := h.svc.Send(r.Context(), auth.FromContext(r.Context()), negID, req.Content)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, m)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	negID, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ms, err := h.svc.History(r.Context(), auth.FromContext(r.Context()), negID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if ms == nil {
		ms = []*message.Message{}
	}

	respond.JSON(w, http.StatusOK, ms)
}

type event struct {
	Type string           `json:"type"`
	Data *message.Message `json:"data"`
}

// Feed streams a negotiation's chat over a WebSocket. It subscribes before
// loading history and merges both through a Timeline, so messages sent
// while history loads are neither lost nor sent twice.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	negID, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	caller := auth.FromContext(r.Context())

	sub, err := h.svc.Subscribe(r.Context(), caller, negID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer sub.Close()

	history, err := h.svc.History(r.Context(), caller, negID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		return
	}
	defer conn.CloseNow()

	// The feed is push-only; reading still handles close and ping frames.
	ctx := conn.CloseRead(r.Context())

	timeline := message.NewTimeline(history)
	for _, m := range timeline.Flush(dedupeWindow) {
		if err := write(ctx, conn, m); err != nil {
			return
		}
	}

	err = stream(ctx, conn, sub, timeline)

	switch {
	case errors.Is(err, message.ErrLagged):
		conn.Close(websocket.StatusTryAgainLater, "feed lagged, reconnect")
	case err != nil && ctx.Err() == nil:
		slog.Warn("message feed ended", "negotiation_id", negID, "user_id", caller.UserID, "error", err)
		conn.Close(websocket.StatusInternalError, "feed closed")
	default:
		conn.Close(websocket.StatusNormalClosure, "")
	}
}

func stream(ctx context.Context, conn *websocket.Conn, sub *message.Subscription, timeline *message.Timeline) error {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ping.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pingCtx)
			cancel()

			if err != nil {
				return err
			}
		case m, ok := <-sub.C():
			if !ok {
				return sub.Err()
			}

			if !timeline.Add(m) {
				continue
			}

			if err := write(ctx, conn, m); err != nil {
				return err
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, m *message.Message) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return wsjson.Write(ctx, conn, event{Type: "message", Data: m})
}

