package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const writeTimeout = 60 * time.Second

// AdminChecker reports whether the request belongs to a signed-in admin.
type AdminChecker func(ctx context.Context) bool

// Handler streams the feed over GET /api/v1/events.
//
// Query parameter topics narrows delivery (products, settings, leads).
// A Last-Event-ID header, or last_event_id query parameter, replays
// remembered events the client missed.
type Handler struct {
	manager *Manager
	logger  *slog.Logger
	isAdmin AdminChecker
}

// NewHandler creates a Handler. A nil checker treats every client as public.
func NewHandler(manager *Manager, logger *slog.Logger, isAdmin AdminChecker) *Handler {
	if isAdmin == nil {
		isAdmin = func(context.Context) bool { return false }
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{manager: manager, logger: logger, isAdmin: isAdmin}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	topics, err := ParseTopics(r.URL.Query().Get("topics"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lastID := lastEventID(r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		h.logger.Error("streaming unsupported", slog.String("error", err.Error()))
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	client, backlog, err := h.manager.Connect(Subscription{
		Topics: topics,
		Admin:  h.isAdmin(r.Context()),
	}, lastID)
	if err != nil {
		h.logger.Error("feed connect failed", slog.String("error", err.Error()))
		http.Error(w, "Failed to establish connection", http.StatusInternalServerError)
		return
	}
	defer h.manager.Disconnect(client.ID)

	log := h.logger.With(slog.String("client_id", client.ID))

	hello := map[string]any{
		"clientId":    client.ID,
		"lastEventId": h.manager.LastEventID(),
	}
	if err := h.write(w, rc, Event{Type: "connected", Data: hello}); err != nil {
		log.Warn("feed greeting failed", slog.String("error", err.Error()))
		return
	}
	for _, evt := range backlog {
		if err := h.write(w, rc, evt); err != nil {
			return
		}
	}

	for {
		select {
		case evt, ok := <-client.EventChan:
			if !ok {
				return
			}
			if err := h.write(w, rc, evt); err != nil {
				log.Info("feed client went away")
				return
			}
		case <-client.Done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func lastEventID(r *http.Request) uint64 {
	raw := r.Header.Get("Last-Event-ID")
	if raw == "" {
		raw = r.URL.Query().Get("last_event_id")
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// write sends one frame and pushes the write deadline forward.
func (h *Handler) write(w io.Writer, rc *http.ResponseController, evt Event) error {
	payload := evt.Data
	if evt.Type != "connected" {
		payload = evt
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", evt.Type, err)
	}

	if evt.ID > 0 {
		if _, err := fmt.Fprintf(w, "id: %d\n", evt.ID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, data); err != nil {
		return err
	}
	if err := rc.Flush(); err != nil {
		return err
	}
	if err := rc.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		h.logger.Debug("write deadline unsupported", slog.String("error", err.Error()))
	}
	return nil
}
