// Package events fans out URL lifecycle events over watermill. The
// authoritative usage record is the row the redirect handler writes
// synchronously; these events are a secondary feed for observers.
package events

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Topics.
const (
	TopicURLCreated  = "url.created"
	TopicURLAccessed = "url.accessed"
)

// URLCreated is emitted when a short URL is persisted.
type URLCreated struct {
	URLID     int64     `json:"url_id"`
	Value     string    `json:"value"`
	Original  string    `json:"original"`
	CreatedAt time.Time `json:"created_at"`
	Host      string    `json:"host"`
	UserAgent string    `json:"user_agent"`
}

// URLAccessed is emitted for every successful redirect.
type URLAccessed struct {
	URLID      int64     `json:"url_id"`
	Host       string    `json:"host"`
	Port       int       `json:"port"`
	UserAgent  string    `json:"user_agent"`
	AccessedAt time.Time `json:"accessed_at"`
}

// Publish is a function that publishes one typed event.
type Publish[T any] func(event *T) error

// NewPublishFunc creates a typed publish function bound to a topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// PublisherGroup owns the underlying publisher's lifecycle.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a publisher for container-managed shutdown.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher returns the wrapped publisher for creating typed publish funcs.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher. Implements do.Shutdownable.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
