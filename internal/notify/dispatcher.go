package notify

import "log/slog"

// Message describes one client-facing notification to persist.
type Message struct {
	UserEmail     string
	AppointmentID uint
	Title         string
	Description   string
	Type          string
}

// Dispatcher decouples notification writes from status transitions:
// the transition has already committed by the time the row is written,
// so delivery is best effort and never blocks or fails the caller.
type Dispatcher struct {
	writer *Writer
	log    *slog.Logger
	queue  chan Message
}

func NewDispatcher(writer *Writer, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		log:    log,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.writer.Write(msg); err != nil {
			d.log.Error("notification write failed",
				"email", msg.UserEmail,
				"appointment_id", msg.AppointmentID,
				"err", err,
			)
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	if msg.UserEmail == "" {
		// Walk-ins without an email cannot be notified; the status
		// change itself must not be blocked by this.
		d.log.Error("notification skipped: appointment has no client email",
			"appointment_id", msg.AppointmentID,
		)
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.log.Error("notification queue full, dropping message",
			"appointment_id", msg.AppointmentID,
		)
	}
}
