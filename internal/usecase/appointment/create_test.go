package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfectlysalon/admin-api/internal/clock"
	"github.com/perfectlysalon/admin-api/internal/httperr"
	"github.com/perfectlysalon/admin-api/internal/models"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

func seedCatalog(repo *mockRepo) {
	repo.services[1] = &models.Service{
		ID: 1, Name: "Haircut", Price: decimal.NewFromFloat(25.50), IsActive: true,
	}
	repo.services[2] = &models.Service{
		ID: 2, Name: "Hair Color", Price: decimal.NewFromFloat(80), IsActive: true,
	}
	repo.services[3] = &models.Service{
		ID: 3, Name: "Old Perm", Price: decimal.NewFromFloat(60), IsActive: false,
	}
	repo.addons[1] = &models.ServiceAddon{
		ID: 1, Name: "Scalp Massage", Price: decimal.NewFromFloat(10), IsActive: true,
	}
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ClientName:  "Maria Santos",
		ClientPhone: "09171234567",
		ClientEmail: "maria@example.com",
		Services:    []ItemSelection{{ID: 1, Quantity: 1}},
		Date:        "2025-03-15",
		Time:        "13:05",
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	bus := &mockBus{}
	uc := NewCreateBooking(repo, bus, clock.Fixed(testNow))

	in := validInput()
	in.Services = []ItemSelection{{ID: 1, Quantity: 1}, {ID: 2, Quantity: 1}}
	in.Addons = []ItemSelection{{ID: 1, Quantity: 2}}

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, "1:05 PM", ap.Time)
	assert.Equal(t, "Cash", ap.PaymentMethod)
	assert.Equal(t, "Unassigned", ap.Stylist)
	assert.Contains(t, ap.OrderNumber, "ORD-")

	// 25.50 + 80 + 2×10
	assert.True(t, ap.TotalAmount.Equal(decimal.NewFromFloat(125.50)))

	require.Len(t, ap.Services, 3)
	assert.Equal(t, "svc-1", ap.Services[0].ID)
	assert.True(t, ap.Services[2].IsAddon)

	require.Len(t, bus.events, 1)
	assert.Equal(t, "appointments", bus.events[0].Table)
}

func TestCreateBooking_AccountAutoFill(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	repo.accounts[7] = &models.Account{
		ID: 7, Email: "ana@example.com", FullName: "Ana Cruz", ContactNumber: "09181112222",
	}
	uc := NewCreateBooking(repo, &mockBus{}, clock.Fixed(testNow))

	accountID := uint(7)
	in := validInput()
	in.AccountID = &accountID
	in.ClientName = ""
	in.ClientPhone = ""
	in.ClientEmail = ""

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", ap.ClientName)
	assert.Equal(t, "ana@example.com", ap.ClientEmail)
	assert.Equal(t, "09181112222", ap.ClientPhone)
}

func TestCreateBooking_RequiresName(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	uc := NewCreateBooking(repo, &mockBus{}, clock.Fixed(testNow))

	in := validInput()
	in.ClientName = "   "

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
}

func TestCreateBooking_RequiresService(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	uc := NewCreateBooking(repo, &mockBus{}, clock.Fixed(testNow))

	in := validInput()
	in.Services = nil

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
}

func TestCreateBooking_PastDate(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	uc := NewCreateBooking(repo, &mockBus{}, clock.Fixed(testNow))

	in := validInput()
	in.Date = "2025-03-09"

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
}

func TestCreateBooking_OffGridSlot(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	uc := NewCreateBooking(repo, &mockBus{}, clock.Fixed(testNow))

	in := validInput()
	in.Time = "09:00"

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
}

func TestCreateBooking_InactiveService(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	uc := NewCreateBooking(repo, &mockBus{}, clock.Fixed(testNow))

	in := validInput()
	in.Services = []ItemSelection{{ID: 3, Quantity: 1}}

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
}

func TestCreateBooking_SlotConflict(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	uc := NewCreateBooking(repo, &mockBus{}, clock.Fixed(testNow))

	first, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, httperr.CodeTimeConflict, httperr.BusinessCode(err))

	// A cancelled booking releases the slot.
	first.Status = "cancelled"
	_, err = uc.Execute(context.Background(), validInput())
	assert.NoError(t, err)
}

func TestCreateBooking_PaymentMethods(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	uc := NewCreateBooking(repo, &mockBus{}, clock.Fixed(testNow))

	cases := map[string]string{
		"":     "Cash",
		"cash": "Cash",
		"card": "Card",
		"gcash": "Online",
	}

	slots := []string{"10:00", "10:05", "10:10", "10:15"}
	i := 0
	for method, want := range cases {
		in := validInput()
		in.Time = slots[i]
		i++
		in.PaymentMethod = method

		ap, err := uc.Execute(context.Background(), in)
		require.NoError(t, err, method)
		assert.Equal(t, want, ap.PaymentMethod)
		assert.Equal(t, "Payment Method: "+want, ap.Notes)
	}
}
