package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
)

// ListInput narrows the listing. Date wins over Year/Month.
type ListInput struct {
	Date     *time.Time
	Year     int
	Month    int
	Status   string
	BarberID *uint
	ClientID *uint
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	a actor.Actor,
	in ListInput,
) ([]dto.AppointmentListDTO, error) {

	filter := domain.ListFilter{}

	switch {
	case a.IsAdmin():
		filter.BarberID = in.BarberID
		filter.ClientID = in.ClientID
	case a.IsBarber():
		barber, err := uc.repo.GetBarberByUserID(ctx, a.UserID)
		if err != nil {
			return nil, err
		}
		filter.BarberID = &barber.ID
		filter.ClientID = in.ClientID
	case a.IsClient():
		filter.ClientID = &a.UserID
	default:
		return nil, httperr.ErrBusiness("forbidden")
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}

	// date columns compare as calendar days
	switch {
	case in.Date != nil:
		start := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1)
		filter.From, filter.To = &start, &end
	case in.Year > 0 && in.Month >= 1 && in.Month <= 12:
		start := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		filter.From, filter.To = &start, &end
	case in.Year > 0 || in.Month != 0:
		return nil, httperr.ErrBusiness("invalid_period")
	}

	appointments, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:     ap.ID,
			Date:   ap.Date,
			Time:   ap.Time,
			Status: ap.Status,

			ClientID:    ap.ClientID,
			ClientName:  ap.Client.Name,
			BarberID:    ap.BarberID,
			BarberName:  ap.Barber.Name,
			ServiceName: ap.Service.Name,
			DurationMin: ap.Service.DurationMin,
			Price:       ap.Service.Price,

			PaymentMethod:      ap.PaymentMethod,
			CancellationReason: ap.CancellationReason,
			CancelledAt:        ap.CancelledAt,
			CompletedAt:        ap.CompletedAt,
		})
	}

	return out, nil
}
