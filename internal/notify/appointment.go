package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const (
	TypeAppointmentCancelled = "appointment_cancelled"
	TypeAppointmentReminder  = "appointment_reminder"
)

// AdminLister resolves who gets shop-wide copies.
type AdminLister interface {
	AdminIDs(ctx context.Context) ([]uint, error)
}

// Sink is satisfied by *Dispatcher.
type Sink interface {
	Notify(msg Message)
}

type Notifier struct {
	sink   Sink
	admins AdminLister
}

func NewNotifier(sink Sink, admins AdminLister) *Notifier {
	return &Notifier{sink: sink, admins: admins}
}

// AppointmentCancelled tells the client, the barber and every admin except
// the one who cancelled.
func (n *Notifier) AppointmentCancelled(ctx context.Context, ap *models.Appointment, by actor.Actor) {
	var adminIDs []uint
	if n.admins != nil {
		ids, err := n.admins.AdminIDs(ctx)
		if err != nil {
			logger.Log.Warn("list admins for cancellation notice", zap.Error(err))
		}
		adminIDs = ids
	}

	for _, msg := range CancellationMessages(ap, by, adminIDs) {
		n.sink.Notify(msg)
	}
}

func (n *Notifier) AppointmentReminder(_ context.Context, ap *models.Appointment) {
	n.sink.Notify(ReminderMessage(ap))
}

func when(ap *models.Appointment) string {
	return fmt.Sprintf("%s at %s", ap.Date.Format("2006-01-02"), ap.Time)
}

func link(ap *models.Appointment) string {
	return fmt.Sprintf("/appointments/%d", ap.ID)
}

// CancellationMessages builds one message per distinct recipient.
func CancellationMessages(ap *models.Appointment, by actor.Actor, adminIDs []uint) []Message {
	seen := map[uint]bool{}
	var out []Message

	add := func(m Message) {
		if m.UserID == 0 || seen[m.UserID] {
			return
		}
		seen[m.UserID] = true
		out = append(out, m)
	}

	reason := ap.CancellationReason
	service := ap.Service.Name
	if service == "" {
		service = "appointment"
	}

	clientBody := fmt.Sprintf("Your %s on %s was cancelled by the %s. Reason: %s", service, when(ap), by.Label(), reason)
	if by.UserID == ap.ClientID {
		clientBody = fmt.Sprintf("You cancelled your %s on %s.", service, when(ap))
	}
	add(Message{
		UserID:   ap.ClientID,
		Type:     TypeAppointmentCancelled,
		Title:    "Appointment cancelled",
		Body:     clientBody,
		Link:     link(ap),
		Email:    ap.Client.Email,
		Phone:    ap.Client.Phone,
		Channels: []Channel{ChannelEmail, ChannelSMS, ChannelPush},
	})

	if ap.Barber.UserID != nil {
		m := Message{
			UserID:   *ap.Barber.UserID,
			Type:     TypeAppointmentCancelled,
			Title:    "Appointment cancelled",
			Body:     fmt.Sprintf("%s's %s on %s was cancelled. Reason: %s", ap.Client.Name, service, when(ap), reason),
			Link:     link(ap),
			Channels: []Channel{ChannelEmail, ChannelPush},
		}
		if ap.Barber.User != nil {
			m.Email = ap.Barber.User.Email
		}
		add(m)
	}

	for _, id := range adminIDs {
		if id == by.UserID {
			continue
		}
		add(Message{
			UserID: id,
			Type:   TypeAppointmentCancelled,
			Title:  "Appointment cancelled",
			Body: fmt.Sprintf("Appointment #%d (%s, %s) was cancelled by the %s. Reason: %s",
				ap.ID, ap.Client.Name, when(ap), by.Label(), reason),
			Link: link(ap),
		})
	}

	return out
}

func ReminderMessage(ap *models.Appointment) Message {
	service := ap.Service.Name
	if service == "" {
		service = "appointment"
	}
	return Message{
		UserID:   ap.ClientID,
		Type:     TypeAppointmentReminder,
		Title:    "Appointment reminder",
		Body:     fmt.Sprintf("Reminder: your %s with %s is on %s.", service, ap.Barber.Name, when(ap)),
		Link:     link(ap),
		Email:    ap.Client.Email,
		Phone:    ap.Client.Phone,
		Channels: []Channel{ChannelEmail, ChannelSMS, ChannelPush},
	}
}
