package appointment

import (
	"context"
	"errors"
	"sync"

	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/models"
	"github.com/perfectlysalon/admin-api/internal/notify"
)

var errNotFound = errors.New("not found")

type mockRepo struct {
	appointments map[uint]*models.Appointment
	usages       map[uint][]models.ProductUsage
	services     map[uint]*models.Service
	addons       map[uint]*models.ServiceAddon
	accounts     map[uint]*models.Account
	inventory    map[uint]*models.InventoryItem

	nextID     uint
	updateErr  error
	deductions []uint
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		appointments: map[uint]*models.Appointment{},
		usages:       map[uint][]models.ProductUsage{},
		services:     map[uint]*models.Service{},
		addons:       map[uint]*models.ServiceAddon{},
		accounts:     map[uint]*models.Account{},
		inventory:    map[uint]*models.InventoryItem{},
	}
}

func (m *mockRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := m.appointments[id]
	if !ok {
		return nil, errNotFound
	}
	return ap, nil
}

func (m *mockRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	m.nextID++
	ap.ID = m.nextID
	m.appointments[ap.ID] = ap
	return nil
}

func (m *mockRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.appointments[ap.ID] = ap
	return nil
}

func (m *mockRepo) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range m.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

func (m *mockRepo) ListAppointmentsByStatus(_ context.Context, status domain.Status) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.Status == string(status) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (m *mockRepo) ListAppointmentsByDate(_ context.Context, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.Date == date {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (m *mockRepo) CountActiveAtSlot(_ context.Context, date, timeLabel string) (int64, error) {
	var count int64
	for _, ap := range m.appointments {
		if ap.Date == date && ap.Time == timeLabel && domain.IsActive(domain.Status(ap.Status)) {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) ListProductUsage(_ context.Context, appointmentID uint) ([]models.ProductUsage, error) {
	return m.usages[appointmentID], nil
}

func (m *mockRepo) ReplaceProductUsage(_ context.Context, appointmentID uint, rows []models.ProductUsage) error {
	m.usages[appointmentID] = rows
	return nil
}

func (m *mockRepo) DeductInventory(_ context.Context, productID uint, qty int) (bool, error) {
	item, ok := m.inventory[productID]
	if !ok {
		return false, errNotFound
	}
	m.deductions = append(m.deductions, productID)
	remaining := item.Quantity - qty
	if remaining < 0 {
		item.Quantity = 0
		return true, nil
	}
	item.Quantity = remaining
	return false, nil
}

func (m *mockRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := m.services[id]
	if !ok {
		return nil, errNotFound
	}
	return svc, nil
}

func (m *mockRepo) GetAddon(_ context.Context, id uint) (*models.ServiceAddon, error) {
	addon, ok := m.addons[id]
	if !ok {
		return nil, errNotFound
	}
	return addon, nil
}

func (m *mockRepo) GetAccount(_ context.Context, id uint) (*models.Account, error) {
	acc, ok := m.accounts[id]
	if !ok {
		return nil, errNotFound
	}
	return acc, nil
}

var _ domain.Repository = (*mockRepo)(nil)

type mockNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (n *mockNotifier) Dispatch(msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

type mockBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *mockBus) Publish(_ context.Context, ev events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}
