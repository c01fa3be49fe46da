package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/shop-engine/pkg/shop"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeStateChanged         EventType = "shop.state_changed"
	EventTypeTransactionSucceeded EventType = "shop.transaction_succeeded"
	EventTypeTransactionRejected  EventType = "shop.transaction_rejected"
)

// Event is the JSON payload published for every shop update.
type Event struct {
	Type      EventType              `json:"type"`
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Channel returns the pub/sub channel for a session.
func Channel(sessionID uuid.UUID) string {
	return fmt.Sprintf("shop-events:%s", sessionID.String())
}

// StateChangedEvent summarizes a snapshot. Rows are left out; subscribers
// that need the full list can ask the session owner.
func StateChangedEvent(s shop.Snapshot) Event {
	data := map[string]interface{}{
		"tab":         s.Tab.String(),
		"mode":        s.Mode.String(),
		"selected":    s.SelectedIndex,
		"quantity":    s.Quantity,
		"money":       s.Money,
		"used_space":  s.UsedSpace,
		"total_space": s.TotalSpace,
		"player":      s.Player.String(),
		"closed":      s.Closed,
	}
	if row, ok := s.SelectedRow(); ok {
		data["entry"] = row.ID
	}
	return Event{
		Type:      EventTypeStateChanged,
		SessionID: s.SessionID.String(),
		Data:      data,
	}
}

// TransactionEvent describes a confirm outcome.
func TransactionEvent(r shop.Result) Event {
	event := Event{
		Type:      EventTypeTransactionRejected,
		SessionID: r.SessionID.String(),
		Data: map[string]interface{}{
			"kind":     r.Kind.String(),
			"mode":     r.Mode.String(),
			"entry":    r.EntryID,
			"name":     r.Name,
			"quantity": r.Quantity,
			"message":  r.Message,
		},
	}
	if r.OK() {
		event.Type = EventTypeTransactionSucceeded
		if r.Receipt != nil {
			event.Data["total"] = r.Receipt.Total
			event.Data["money_after"] = r.Receipt.MoneyAfter
			event.Data["owned_after"] = r.Receipt.OwnedAfter
			event.Data["stock_after"] = r.Receipt.StockAfter
		}
	}
	return event
}

// Broadcaster publishes shop events to Redis Pub/Sub
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishStateChanged publishes a shop.state_changed event
func (b *Broadcaster) PublishStateChanged(ctx context.Context, s shop.Snapshot) error {
	return b.publishToSession(ctx, s.SessionID, StateChangedEvent(s))
}

// PublishTransactionResult publishes a shop.transaction_succeeded or
// shop.transaction_rejected event
func (b *Broadcaster) PublishTransactionResult(ctx context.Context, r shop.Result) error {
	return b.publishToSession(ctx, r.SessionID, TransactionEvent(r))
}

func (b *Broadcaster) publishToSession(ctx context.Context, sessionID uuid.UUID, event Event) error {
	channel := Channel(sessionID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
	)

	return nil
}
