package appointment

import (
	"context"

	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/dto"
	"github.com/perfectlysalon/admin-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointments newest first, optionally narrowed by
// status or calendar date.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	status string,
	date string,
) ([]dto.AppointmentListDTO, error) {

	var (
		apps []models.Appointment
		err  error
	)

	switch {
	case status != "":
		apps, err = uc.repo.ListAppointmentsByStatus(ctx, domain.Status(status))
	case date != "":
		apps, err = uc.repo.ListAppointmentsByDate(ctx, date)
	default:
		apps, err = uc.repo.ListAppointments(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.FromAppointment(ap))
	}
	return out, nil
}
