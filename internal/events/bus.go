package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Event is a row-change notification, one per mutation. Consumers
// reload on receipt rather than applying the delta.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	ID     uint   `json:"id"`
}

// Bus fans row-change events out over redis pub/sub, one channel per
// table. Publishing is best effort: a failed publish is logged, never
// surfaced to the mutation that triggered it.
type Bus struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewBus(rdb *redis.Client, log *slog.Logger) *Bus {
	return &Bus{rdb: rdb, log: log}
}

func channelFor(table string) string {
	return "changes:" + table
}

func (b *Bus) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		b.log.Error("event marshal failed", "table", ev.Table, "err", err)
		return
	}
	if err := b.rdb.Publish(ctx, channelFor(ev.Table), payload).Err(); err != nil {
		b.log.Error("event publish failed", "table", ev.Table, "err", err)
	}
}

// Subscribe delivers events for one table to handler until the returned
// stop function is called. Malformed payloads are dropped.
func (b *Bus) Subscribe(ctx context.Context, table string, handler func(Event)) func() {
	sub := b.rdb.Subscribe(ctx, channelFor(table))

	go func() {
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Error("event decode failed", "table", table, "err", err)
				continue
			}
			handler(ev)
		}
	}()

	return func() {
		_ = sub.Close()
	}
}
