package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bellapacxx/jetlag-backend/models"
	"github.com/bellapacxx/jetlag-backend/utils/logger"
	"github.com/nats-io/nats.go"
)

// EventPublisher fans committed history entries out to other processes.
type EventPublisher interface {
	Publish(entry models.GameHistory) error
	Close()
}

// HistoryEvent is the payload published for each history entry.
type HistoryEvent struct {
	EventID    string                 `json:"event_id"`
	UserID     uint                   `json:"user_id"`
	ActionType string                 `json:"action_type"`
	ActionData map[string]interface{} `json:"action_data"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewHistoryEvent builds the wire payload for a history row.
func NewHistoryEvent(entry models.GameHistory) HistoryEvent {
	return HistoryEvent{
		EventID:    entry.EventID,
		UserID:     entry.UserID,
		ActionType: entry.ActionType,
		ActionData: entry.ActionData,
		CreatedAt:  entry.CreatedAt,
	}
}

// NATSPublisher publishes history events on "<prefix>.<user id>.<action>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("jetlag-backend"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warnf("[Events] NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Infof("[Events] NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	logger.Infof("[Events] Publishing history to %s.>", prefix)
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

// Subject returns the subject an entry is published on.
func (p *NATSPublisher) Subject(entry models.GameHistory) string {
	return fmt.Sprintf("%s.%d.%s", p.prefix, entry.UserID, entry.ActionType)
}

func (p *NATSPublisher) Publish(entry models.GameHistory) error {
	payload, err := json.Marshal(NewHistoryEvent(entry))
	if err != nil {
		return err
	}
	return p.conn.Publish(p.Subject(entry), payload)
}

// Close flushes pending messages before disconnecting.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		logger.Warnf("[Events] drain: %v", err)
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(models.GameHistory) error { return nil }
func (nopPublisher) Close()                           {}

// NopPublisher discards every event.
func NopPublisher() EventPublisher { return nopPublisher{} }
