package notify

import (
	"context"

	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/models"
)

// Writer persists notification rows and announces them on the bus.
type Writer struct {
	db  *gorm.DB
	bus *events.Bus
}

func NewWriter(db *gorm.DB, bus *events.Bus) *Writer {
	return &Writer{db: db, bus: bus}
}

func (w *Writer) Write(msg Message) error {
	n := models.Notification{
		UserEmail:     msg.UserEmail,
		AppointmentID: msg.AppointmentID,
		Title:         msg.Title,
		Description:   msg.Description,
		Type:          msg.Type,
	}

	if err := w.db.Create(&n).Error; err != nil {
		return err
	}

	if w.bus != nil {
		w.bus.Publish(context.Background(), events.Event{
			Table:  "notifications",
			Action: events.ActionInsert,
			ID:     n.ID,
		})
	}
	return nil
}
