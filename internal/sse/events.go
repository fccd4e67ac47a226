// Package sse implements Server-Sent Events for live catalog and settings updates.
package sse

import (
	"fmt"
	"strings"
	"time"

	"github.com/helojet/helojet-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventProductCreated is sent when a listing is added to the catalog.
	EventProductCreated EventType = "product.created"
	// EventProductUpdated is sent when a listing is replaced.
	EventProductUpdated EventType = "product.updated"
	// EventProductDeleted is sent when a listing is removed.
	EventProductDeleted EventType = "product.deleted"

	// EventSettingsUpdated is sent when site settings change.
	EventSettingsUpdated EventType = "settings.updated"

	// EventLeadCaptured is sent when a booking request is stored.
	// Only sent to admin clients.
	EventLeadCaptured EventType = "lead.captured"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Topic groups event types for subscriptions.
type Topic string

const (
	TopicProducts Topic = "products"
	TopicSettings Topic = "settings"
	TopicLeads    Topic = "leads"
)

// Topic returns the topic an event type belongs to. Heartbeats have none.
func (t EventType) Topic() Topic {
	switch {
	case strings.HasPrefix(string(t), "product."):
		return TopicProducts
	case strings.HasPrefix(string(t), "settings."):
		return TopicSettings
	case strings.HasPrefix(string(t), "lead."):
		return TopicLeads
	}
	return ""
}

// ParseTopics reads a comma separated topic list such as "products,settings".
func ParseTopics(raw string) ([]Topic, error) {
	var topics []Topic
	for part := range strings.SplitSeq(raw, ",") {
		switch t := Topic(strings.TrimSpace(part)); t {
		case "":
		case TopicProducts, TopicSettings, TopicLeads:
			topics = append(topics, t)
		default:
			return nil, fmt.Errorf("unknown topic %q", t)
		}
	}
	return topics, nil
}

// Event is one message on the feed. ID is assigned when the event is published;
// heartbeats keep ID 0.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
	ID        uint64    `json:"id,omitempty"`
}

// ProductEventData carries the listing for create and update events.
type ProductEventData struct {
	Product *domain.Product `json:"product"`
}

// ProductDeletedEventData carries the id of a removed listing.
type ProductDeletedEventData struct {
	ProductID string `json:"productId"`
}

// SettingsEventData carries the new site settings.
type SettingsEventData struct {
	Settings domain.SiteSettings `json:"settings"`
}

// LeadEventData carries a captured lead.
type LeadEventData struct {
	Lead domain.Lead `json:"lead"`
}

// HeartbeatEventData is the payload of keepalive events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"serverTime"`
}

// NewProductCreatedEvent creates a product.created event.
func NewProductCreatedEvent(p *domain.Product) Event {
	return Event{
		Type:      EventProductCreated,
		Data:      ProductEventData{Product: p},
		Timestamp: time.Now(),
	}
}

// NewProductUpdatedEvent creates a product.updated event.
func NewProductUpdatedEvent(p *domain.Product) Event {
	return Event{
		Type:      EventProductUpdated,
		Data:      ProductEventData{Product: p},
		Timestamp: time.Now(),
	}
}

// NewProductDeletedEvent creates a product.deleted event.
func NewProductDeletedEvent(productID string) Event {
	return Event{
		Type:      EventProductDeleted,
		Data:      ProductDeletedEventData{ProductID: productID},
		Timestamp: time.Now(),
	}
}

// NewSettingsUpdatedEvent creates a settings.updated event.
func NewSettingsUpdatedEvent(settings domain.SiteSettings) Event {
	return Event{
		Type:      EventSettingsUpdated,
		Data:      SettingsEventData{Settings: settings},
		Timestamp: time.Now(),
	}
}

// NewLeadCapturedEvent creates a lead.captured event.
func NewLeadCapturedEvent(lead domain.Lead) Event {
	return Event{
		Type:      EventLeadCaptured,
		Data:      LeadEventData{Lead: lead},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Data:      HeartbeatEventData{ServerTime: now},
		Timestamp: now,
	}
}
