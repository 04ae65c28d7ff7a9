package appointment

import (
	"context"

	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/notify"
)

// Notifier emits client-facing notifications; delivery is best effort.
type Notifier interface {
	Dispatch(msg notify.Message)
}

// Publisher announces row changes on the realtime bus.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event)
}

func serviceSummary(items []models.LineItem) string {
	names := ""
	for i, item := range items {
		if i > 0 {
			names += ", "
		}
		names += item.Name
	}
	return names
}
