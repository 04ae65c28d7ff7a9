package appointment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/perfectlysalon/admin-api/internal/clock"
	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// ItemSelection is one wizard pick: a catalog id plus quantity.
type ItemSelection struct {
	ID       uint
	Quantity int
}

type CreateBookingInput struct {
	// Either an existing account (auto-fills the client fields below)
	// or ad hoc walk-in details.
	AccountID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Stylist string

	Services []ItemSelection
	Addons   []ItemSelection

	Date string // calendar date, 2006-01-02; today or later
	Time string // 24-hour slot on the booking grid, e.g. "13:05"

	PaymentMethod string // cash | card | online
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	bus   Publisher
	clock clock.Clock
}

func NewCreateBooking(repo domain.Repository, bus Publisher, clk clock.Clock) *CreateBooking {
	return &CreateBooking{repo: repo, bus: bus, clock: clk}
}

func paymentMethodName(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", "cash":
		return "Cash"
	case "card":
		return "Card"
	default:
		return "Online"
	}
}

// Execute aggregates the wizard's five steps into one priced pending
// reservation. Line items are copied by value from the catalog so later
// price or soft-delete changes never rewrite this booking.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// 1. Client identity: account-backed or ad hoc.
	if in.AccountID != nil {
		acc, err := uc.repo.GetAccount(ctx, *in.AccountID)
		if err != nil {
			return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "client account not found")
		}
		if in.ClientName == "" {
			in.ClientName = acc.FullName
		}
		if in.ClientPhone == "" {
			in.ClientPhone = acc.ContactNumber
		}
		if in.ClientEmail == "" {
			in.ClientEmail = acc.Email
		}
	}

	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.ClientName == "" {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "client name is required")
	}

	if len(in.Services) == 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "at least one service must be selected")
	}

	// 2. Date and time on the booking grid.
	now := uc.clock.Now()
	today := now.Format("2006-01-02")

	if _, err := time.ParseInLocation("2006-01-02", in.Date, time.Local); err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid appointment date")
	}
	if in.Date < today {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "appointment date must be today or later")
	}
	if !domain.IsBookableSlot(in.Time) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "time must be a 5-minute slot between 10:00 and 19:00")
	}

	timeLabel, err := domain.FormatSlot(in.Time)
	if err != nil {
		return nil, err
	}

	// 3. Snapshot line items from the catalog.
	items := make([]models.LineItem, 0, len(in.Services)+len(in.Addons))

	for _, sel := range in.Services {
		svc, err := uc.repo.GetService(ctx, sel.ID)
		if err != nil {
			return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "selected service not found")
		}
		if !svc.IsActive {
			return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "selected service is no longer offered")
		}
		items = append(items, models.LineItem{
			ID:       itemID("svc", svc.ID),
			Name:     svc.Name,
			Price:    svc.Price,
			Quantity: normalizeQty(sel.Quantity),
		})
	}

	for _, sel := range in.Addons {
		addon, err := uc.repo.GetAddon(ctx, sel.ID)
		if err != nil {
			return nil, httperr.ErrBusinessMsg(httperr.CodeNotFound, "selected add-on not found")
		}
		if !addon.IsActive {
			return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "selected add-on is no longer offered")
		}
		items = append(items, models.LineItem{
			ID:       itemID("addon", addon.ID),
			Name:     addon.Name,
			Price:    addon.Price,
			Quantity: normalizeQty(sel.Quantity),
			IsAddon:  true,
		})
	}

	// 4. Slot collision: pending/confirmed bookings hold the slot,
	// terminal ones release it.
	taken, err := uc.repo.CountActiveAtSlot(ctx, in.Date, timeLabel)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeTimeConflict, "that time slot is already booked")
	}

	// 5. Persist as pending. Product usage comes later, before completion.
	payment := paymentMethodName(in.PaymentMethod)

	stylist := strings.TrimSpace(in.Stylist)
	if stylist == "" {
		stylist = "Unassigned"
	}

	ap := &models.Appointment{
		OrderNumber:   domain.NewOrderNumber(now),
		AccountID:     in.AccountID,
		ClientName:    in.ClientName,
		ClientPhone:   strings.TrimSpace(in.ClientPhone),
		ClientEmail:   strings.ToLower(strings.TrimSpace(in.ClientEmail)),
		Stylist:       stylist,
		Services:      items,
		TotalAmount:   domain.Total(items),
		Date:          in.Date,
		Time:          timeLabel,
		PaymentMethod: payment,
		Status:        string(domain.InitialStatus()),
		Notes:         "Payment Method: " + payment,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.bus.Publish(ctx, events.Event{
		Table:  "appointments",
		Action: events.ActionInsert,
		ID:     ap.ID,
	})

	return ap, nil
}

func normalizeQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

func itemID(kind string, id uint) string {
	return kind + "-" + strconv.FormatUint(uint64(id), 10)
}
