package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type ReminderNotifier interface {
	AppointmentReminder(ctx context.Context, ap *models.Appointment)
}

// ReminderJob tells clients about tomorrow's open appointments, once each.
type ReminderJob struct {
	repo     domain.Repository
	notifier ReminderNotifier
	now      timezone.Clock
	loc      *time.Location
}

func NewReminderJob(
	repo domain.Repository,
	notifier ReminderNotifier,
	now timezone.Clock,
	loc *time.Location,
) *ReminderJob {
	return &ReminderJob{
		repo:     repo,
		notifier: notifier,
		now:      now,
		loc:      loc,
	}
}

func (j *ReminderJob) Name() string { return "appointment_reminder" }

// Run returns how many reminders went out.
func (j *ReminderJob) Run(ctx context.Context) (int, error) {
	local := j.now().In(j.loc)
	tomorrow := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, time.UTC)

	due, err := j.repo.ListDueForReminder(ctx, tomorrow)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		ap := &due[i]

		// mark first: a crash after notifying must not repeat the reminder
		if err := j.repo.MarkReminderSent(ctx, ap.ID, j.now()); err != nil {
			logger.Log.Error("mark reminder sent",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
			continue
		}

		j.notifier.AppointmentReminder(ctx, ap)
		sent++
	}

	return sent, nil
}

type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionCleanupJob removes expired session rows.
type SessionCleanupJob struct {
	sessions ExpiredSessionDeleter
	now      timezone.Clock
}

func NewSessionCleanupJob(sessions ExpiredSessionDeleter, now timezone.Clock) *SessionCleanupJob {
	return &SessionCleanupJob{sessions: sessions, now: now}
}

func (j *SessionCleanupJob) Name() string { return "session_cleanup" }

func (j *SessionCleanupJob) Run(ctx context.Context) (int, error) {
	n, err := j.sessions.DeleteExpired(ctx, j.now())
	return int(n), err
}
