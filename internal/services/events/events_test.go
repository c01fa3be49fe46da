package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/shop-engine/pkg/catalog"
	"github.com/jwebster45206/shop-engine/pkg/shop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client, err := NewClient("redis://"+mr.Addr(), testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis client: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

func subscribe(t *testing.T, rdb *redis.Client, sessionID uuid.UUID) *redis.PubSub {
	t.Helper()
	ctx := context.Background()
	sub := rdb.Subscribe(ctx, Channel(sessionID))
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Close() })
	return sub
}

func receiveEvent(t *testing.T, sub *redis.PubSub) Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
	return event
}

func successResult(sessionID uuid.UUID) shop.Result {
	return shop.Result{
		SessionID: sessionID,
		Kind:      shop.Success,
		Mode:      shop.Buy,
		EntryID:   "herb",
		Name:      "Medical Herb",
		Quantity:  2,
		Message:   "Bought 2 Medical Herb. Thank you kindly!",
		Receipt: &shop.Receipt{
			Mode: shop.Buy, EntryID: "herb", Name: "Medical Herb", Quantity: 2,
			Total: 20, MoneyAfter: 980, OwnedAfter: 2, StockAfter: 3,
		},
	}
}

func TestNewClient_Errors(t *testing.T) {
	_, err := NewClient("not a url", testLogger())
	assert.ErrorContains(t, err, "failed to parse redis URL")

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewClient("redis://"+addr, testLogger())
	assert.ErrorContains(t, err, "failed to connect to redis")
}

func TestBroadcaster_PublishTransactionResult(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	b := NewBroadcaster(rdb, testLogger())
	sessionID := uuid.New()
	sub := subscribe(t, rdb, sessionID)

	require.NoError(t, b.PublishTransactionResult(context.Background(), successResult(sessionID)))

	event := receiveEvent(t, sub)
	assert.Equal(t, EventTypeTransactionSucceeded, event.Type)
	assert.Equal(t, sessionID.String(), event.SessionID)
	assert.Equal(t, "success", event.Data["kind"])
	assert.Equal(t, "herb", event.Data["entry"])
	assert.EqualValues(t, 980, event.Data["money_after"])

	rejected := shop.Result{SessionID: sessionID, Kind: shop.InsufficientFunds, Mode: shop.Buy, EntryID: "sword", Quantity: 1}
	require.NoError(t, b.PublishTransactionResult(context.Background(), rejected))

	event = receiveEvent(t, sub)
	assert.Equal(t, EventTypeTransactionRejected, event.Type)
	assert.Equal(t, "insufficient_funds", event.Data["kind"])
	assert.NotContains(t, event.Data, "money_after")
}

func TestBroadcaster_PublishStateChanged(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	b := NewBroadcaster(rdb, testLogger())
	sessionID := uuid.New()
	sub := subscribe(t, rdb, sessionID)

	snap := shop.Snapshot{
		SessionID:     sessionID,
		Tab:           shop.TabEquipment,
		Mode:          shop.Sell,
		SelectedIndex: 1,
		Quantity:      3,
		Rows:          []shop.Row{{ID: "sword"}, {ID: "spear"}},
		Money:         100,
		TotalSpace:    20,
		Player:        catalog.Purim,
	}
	require.NoError(t, b.PublishStateChanged(context.Background(), snap))

	event := receiveEvent(t, sub)
	assert.Equal(t, EventTypeStateChanged, event.Type)
	assert.Equal(t, "equipment", event.Data["tab"])
	assert.Equal(t, "sell", event.Data["mode"])
	assert.Equal(t, "spear", event.Data["entry"])
	assert.Equal(t, "purim", event.Data["player"])
}

func TestBroadcaster_PublishFailure(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	b := NewBroadcaster(rdb, testLogger())
	mr.Close()

	err := b.PublishStateChanged(context.Background(), shop.Snapshot{SessionID: uuid.New()})
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestJournal(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	j := NewJournal(rdb, 3)
	ctx := context.Background()
	sessionID := uuid.New()

	for i := 1; i <= 5; i++ {
		r := successResult(sessionID)
		r.Quantity = i
		require.NoError(t, j.Append(ctx, r))
	}

	depth, err := j.Depth(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, depth, "journal is capped")

	recent, err := j.Recent(ctx, sessionID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 4, recent[0].Quantity)
	assert.Equal(t, 5, recent[1].Quantity)
	assert.Equal(t, shop.Success, recent[1].Kind)
	require.NotNil(t, recent[1].Receipt)
	assert.Equal(t, 980, recent[1].Receipt.MoneyAfter)

	all, err := j.Recent(ctx, sessionID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, j.Clear(ctx, sessionID))
	none, err := j.Recent(ctx, sessionID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestObserver_PublishesAndJournals(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	b := NewBroadcaster(rdb, testLogger())
	j := NewJournal(rdb, 0)
	sessionID := uuid.New()
	sub := subscribe(t, rdb, sessionID)

	o := NewObserver(b, j, testLogger(), time.Second)
	o.OnStateChanged(shop.Snapshot{SessionID: sessionID})
	o.OnTransactionResult(successResult(sessionID))
	o.Close()
	o.Close()

	assert.Equal(t, EventTypeStateChanged, receiveEvent(t, sub).Type)
	assert.Equal(t, EventTypeTransactionSucceeded, receiveEvent(t, sub).Type)

	depth, err := j.Depth(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, depth)

	// Updates after close are ignored.
	o.OnTransactionResult(successResult(sessionID))
}

func TestObserver_DrivenBySession(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	o := NewObserver(NewBroadcaster(rdb, testLogger()), NewJournal(rdb, 0), testLogger(), time.Second)

	items := &catalog.Catalog{Name: "Goods", Kind: catalog.KindItems, Entries: []*catalog.Entry{
		{ID: "herb", Name: "Medical Herb", BuyPrice: 10, SellPrice: 5, Purchasable: true, Stock: 5},
	}}
	equipment := &catalog.Catalog{Name: "Arms", Kind: catalog.KindEquipment}
	ledger, err := shop.NewLedger(100, 10, catalog.Randi)
	require.NoError(t, err)

	s, err := shop.NewSession(shop.Config{Items: items, Equipment: equipment, Ledger: ledger, Observer: o, Logger: testLogger()})
	require.NoError(t, err)

	res, err := s.Confirm()
	require.NoError(t, err)
	require.True(t, res.OK())
	o.Close()

	recent, err := NewJournal(rdb, 0).Recent(context.Background(), s.ID, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "herb", recent[0].EntryID)
	assert.Equal(t, 90, recent[0].Receipt.MoneyAfter)
}
