package dto

import "time"

// AppointmentListDTO is one row of the dashboard and calendar lists.
type AppointmentListDTO struct {
	ID     uint      `json:"id"`
	Date   time.Time `json:"date"`
	Time   string    `json:"time"`
	Status string    `json:"status"`

	ClientID    uint    `json:"client_id"`
	ClientName  string  `json:"client_name"`
	BarberID    uint    `json:"barber_id"`
	BarberName  string  `json:"barber_name"`
	ServiceName string  `json:"service_name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	PaymentMethod      string     `json:"payment_method,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}
