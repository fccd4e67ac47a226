package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/domain"
)

func startManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m := NewManager(nil, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	t.Cleanup(func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		_ = m.Shutdown(shutdownCtx)
		cancel()
	})
	return m
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt := <-c.EventChan:
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func connect(t *testing.T, m *Manager, sub Subscription) *Client {
	t.Helper()
	c, backlog, err := m.Connect(sub, 0)
	require.NoError(t, err)
	assert.Empty(t, backlog)
	return c
}

func TestManager_BroadcastsCatalogEventsToEveryone(t *testing.T) {
	m := startManager(t)

	public := connect(t, m, Subscription{})
	admin := connect(t, m, Subscription{Admin: true})
	assert.Equal(t, 2, m.ClientCount())

	m.Emit(NewProductDeletedEvent("p1"))

	evt := receive(t, public)
	assert.Equal(t, EventProductDeleted, evt.Type)
	assert.Equal(t, uint64(1), evt.ID)
	assert.Equal(t, EventProductDeleted, receive(t, admin).Type)
}

func TestManager_LeadEventsOnlyReachAdmins(t *testing.T) {
	m := startManager(t)

	public := connect(t, m, Subscription{})
	admin := connect(t, m, Subscription{Admin: true})

	m.Emit(NewLeadCapturedEvent(domain.Lead{Name: "Ann"}))
	m.Emit(NewSettingsUpdatedEvent(domain.SiteSettings{}))

	assert.Equal(t, EventLeadCaptured, receive(t, admin).Type)
	assert.Equal(t, EventSettingsUpdated, receive(t, admin).Type)
	// The public client skips the lead and sees the settings change first.
	assert.Equal(t, EventSettingsUpdated, receive(t, public).Type)
}

func TestManager_TopicFilter(t *testing.T) {
	m := startManager(t)

	settingsOnly := connect(t, m, Subscription{Topics: []Topic{TopicSettings}})

	m.Emit(NewProductDeletedEvent("p1"))
	m.Emit(NewSettingsUpdatedEvent(domain.SiteSettings{ChatWidgetCode: "<script></script>"}))

	evt := receive(t, settingsOnly)
	assert.Equal(t, EventSettingsUpdated, evt.Type)
	assert.Equal(t, uint64(2), evt.ID)
}

func TestManager_ReplaysMissedEvents(t *testing.T) {
	m := startManager(t, WithReplay(2))

	watcher := connect(t, m, Subscription{})
	for _, pid := range []string{"a", "b", "c"} {
		m.Emit(NewProductDeletedEvent(pid))
	}
	for range 3 {
		receive(t, watcher)
	}
	assert.Equal(t, uint64(3), m.LastEventID())

	_, backlog, err := m.Connect(Subscription{}, 1)
	require.NoError(t, err)
	require.Len(t, backlog, 2)
	assert.Equal(t, uint64(2), backlog[0].ID)
	assert.Equal(t, uint64(3), backlog[1].ID)

	// Replay respects the subscription.
	_, backlog, err = m.Connect(Subscription{Topics: []Topic{TopicSettings}}, 1)
	require.NoError(t, err)
	assert.Empty(t, backlog)
}

func TestManager_IgnoresForeignEventValues(t *testing.T) {
	m := startManager(t)
	c := connect(t, m, Subscription{Admin: true})

	m.Emit("not an event")
	m.Emit(NewProductDeletedEvent("p2"))

	assert.Equal(t, EventProductDeleted, receive(t, c).Type)
}

func TestManager_DisconnectRemovesClient(t *testing.T) {
	m := startManager(t)
	c := connect(t, m, Subscription{})

	m.Disconnect(c.ID)
	m.Disconnect(c.ID)

	assert.Zero(t, m.ClientCount())
	_, open := <-c.Done
	assert.False(t, open)
}

func TestManager_EmitAfterShutdownIsDropped(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))

	assert.NotPanics(t, func() { m.Emit(NewProductDeletedEvent("p")) })
}

func TestParseTopics(t *testing.T) {
	topics, err := ParseTopics("products, leads")
	require.NoError(t, err)
	assert.Equal(t, []Topic{TopicProducts, TopicLeads}, topics)

	topics, err = ParseTopics("")
	require.NoError(t, err)
	assert.Empty(t, topics)

	_, err = ParseTopics("books")
	assert.Error(t, err)
}

func TestEventType_Topic(t *testing.T) {
	assert.Equal(t, TopicProducts, EventProductUpdated.Topic())
	assert.Equal(t, TopicSettings, EventSettingsUpdated.Topic())
	assert.Equal(t, TopicLeads, EventLeadCaptured.Topic())
	assert.Equal(t, Topic(""), EventHeartbeat.Topic())
}
