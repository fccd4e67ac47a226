package sse

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/helojet/helojet-server/internal/id"
)

const (
	defaultHeartbeat  = 30 * time.Second
	defaultReplaySize = 64
	clientBuffer      = 64
	queueSize         = 256
)

// Subscription describes what a feed client wants to receive.
type Subscription struct {
	// Topics limits delivery; empty means every topic the client may see.
	Topics []Topic
	// Admin clients also receive lead events.
	Admin bool
}

func (s Subscription) wants(t Topic) bool {
	if t == TopicLeads && !s.Admin {
		return false
	}
	return len(s.Topics) == 0 || slices.Contains(s.Topics, t)
}

// Client is one open feed connection.
type Client struct {
	ConnectedAt time.Time
	EventChan   chan Event
	Done        chan struct{}
	ID          string
	Sub         Subscription
}

// Option configures a Manager.
type Option func(*Manager)

// WithHeartbeat sets the keepalive interval.
func WithHeartbeat(d time.Duration) Option {
	return func(m *Manager) { m.heartbeat = d }
}

// WithReplay sets how many recent events are kept for resuming clients.
func WithReplay(n int) Option {
	return func(m *Manager) { m.replaySize = n }
}

// Manager fans storefront change events out to feed clients.
type Manager struct {
	logger     *slog.Logger
	events     chan Event
	heartbeat  time.Duration
	replaySize int
	wg         sync.WaitGroup

	mu      sync.RWMutex
	clients map[string]*Client
	seq     uint64
	recent  []Event

	closeMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager. Call Start to begin delivery.
func NewManager(logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Manager{
		logger:     logger,
		events:     make(chan Event, queueSize),
		heartbeat:  defaultHeartbeat,
		replaySize: defaultReplaySize,
		clients:    make(map[string]*Client),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start runs the delivery loop until ctx is canceled.
func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	defer m.wg.Done()

	m.logger.Info("event feed started", slog.Duration("heartbeat", m.heartbeat))

	ticker := time.NewTicker(m.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case evt, ok := <-m.events:
			if !ok {
				return
			}
			m.publish(evt)
		case <-ticker.C:
			m.deliver(NewHeartbeatEvent())
		case <-ctx.Done():
			m.logger.Info("event feed stopping")
			m.dropAll()
			return
		}
	}
}

// Shutdown stops intake, flushes queued events and disconnects every client.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.closeMu.Lock()
	if m.closed {
		m.closeMu.Unlock()
		return nil
	}
	m.closed = true
	close(m.events)
	m.closeMu.Unlock()

	flushed := make(chan struct{})
	go func() {
		for evt := range m.events {
			m.publish(evt)
		}
		close(flushed)
	}()

	select {
	case <-flushed:
	case <-ctx.Done():
		m.logger.Warn("event feed flush timed out")
	}

	m.wg.Wait()
	m.dropAll()
	m.logger.Info("event feed shut down")
	return nil
}

// publish stamps evt with the next sequence number, remembers it and delivers it.
func (m *Manager) publish(evt Event) {
	m.mu.Lock()
	m.seq++
	evt.ID = m.seq
	if m.replaySize > 0 {
		m.recent = append(m.recent, evt)
		if over := len(m.recent) - m.replaySize; over > 0 {
			m.recent = slices.Delete(m.recent, 0, over)
		}
	}
	m.mu.Unlock()

	m.deliver(evt)
}

func (m *Manager) deliver(evt Event) {
	topic := evt.Type.Topic()
	var sent, skipped, dropped int

	m.mu.RLock()
	for _, c := range m.clients {
		if topic != "" && !c.Sub.wants(topic) {
			skipped++
			continue
		}
		select {
		case c.EventChan <- evt:
			sent++
		default:
			dropped++
			m.logger.Warn("feed client too slow, event dropped",
				slog.String("client_id", c.ID),
				slog.String("event_type", string(evt.Type)))
		}
	}
	m.mu.RUnlock()

	if evt.Type != EventHeartbeat {
		m.logger.Debug("event delivered",
			slog.String("event_type", string(evt.Type)),
			slog.Uint64("event_id", evt.ID),
			slog.Int("sent", sent),
			slog.Int("skipped", skipped),
			slog.Int("dropped", dropped))
	}
}

// Connect registers a client. When lastID is non-zero the returned backlog holds
// the remembered events after it that the subscription allows.
func (m *Manager) Connect(sub Subscription, lastID uint64) (*Client, []Event, error) {
	clientID, err := id.Generate("feed")
	if err != nil {
		return nil, nil, err
	}

	c := &Client{
		ID:          clientID,
		Sub:         sub,
		EventChan:   make(chan Event, clientBuffer),
		Done:        make(chan struct{}),
		ConnectedAt: time.Now(),
	}

	m.mu.Lock()
	var backlog []Event
	if lastID > 0 {
		for _, evt := range m.recent {
			if evt.ID > lastID && sub.wants(evt.Type.Topic()) {
				backlog = append(backlog, evt)
			}
		}
	}
	m.clients[c.ID] = c
	total := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("feed client connected",
		slog.String("client_id", c.ID),
		slog.Bool("admin", sub.Admin),
		slog.Int("backlog", len(backlog)),
		slog.Int("clients", total))
	return c, backlog, nil
}

// Disconnect removes a client. Unknown ids are ignored.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	c, ok := m.clients[clientID]
	if ok {
		delete(m.clients, clientID)
	}
	total := len(m.clients)
	m.mu.Unlock()
	if !ok {
		return
	}

	close(c.Done)
	close(c.EventChan)

	m.logger.Info("feed client disconnected",
		slog.String("client_id", clientID),
		slog.Duration("connected_for", time.Since(c.ConnectedAt)),
		slog.Int("clients", total))
}

// Emit queues an event. It satisfies store.EventEmitter; non-Event values are ignored.
func (m *Manager) Emit(event any) {
	evt, ok := event.(Event)
	if !ok {
		m.logger.Error("ignoring non-feed event", slog.Any("value", event))
		return
	}

	m.closeMu.RLock()
	defer m.closeMu.RUnlock()
	if m.closed {
		return
	}

	select {
	case m.events <- evt:
	default:
		m.logger.Error("event queue full", slog.String("event_type", string(evt.Type)))
	}
}

// ClientCount returns the number of open connections.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// LastEventID returns the sequence number of the newest published event.
func (m *Manager) LastEventID() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seq
}

func (m *Manager) dropAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		close(c.Done)
		close(c.EventChan)
	}
	clear(m.clients)
}
