package routes

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/auth"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	invdomain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	notifdomain "github.com/BruksfildServices01/barbershop-manager/internal/domain/notification"
	"github.com/BruksfildServices01/barbershop-manager/internal/handlers"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-manager/internal/jobs"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/notify"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/barbershop-manager/internal/usecase/auth"
	ucInvoice "github.com/BruksfildServices01/barbershop-manager/internal/usecase/invoice"
	ucNotification "github.com/BruksfildServices01/barbershop-manager/internal/usecase/notification"
	ucUser "github.com/BruksfildServices01/barbershop-manager/internal/usecase/user"
)

const sessionCleanupSpec = "@every 1h"

// Container owns every long-lived dependency of the API process.
type Container struct {
	Config *config.Config

	Tokens       *auth.TokenIssuer
	Sessions     middleware.SessionFinder
	LoginLimiter *middleware.RateLimiter
	Scheduler    *jobs.Scheduler

	Auth          *handlers.AuthHandler
	Me            *handlers.MeHandler
	Users         *handlers.UserHandler
	Appointments  *handlers.AppointmentHandler
	Invoices      *handlers.InvoiceHandler
	Notifications *handlers.NotificationHandler
	Services      *handlers.ServiceHandler
	Gallery       *handlers.GalleryHandler
	AuditLogs     *handlers.AuditLogsHandler
	Settings      *handlers.SettingsHandler

	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	closes []func() error
}

// Build wires repositories, optional providers, use cases and handlers.
// Redis, S3, SMTP and Mercado Pago are each optional; a missing one
// degrades to an in-process or disabled implementation.
func Build(db *gorm.DB, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	loc := timezone.Location(cfg.Timezone)
	now := time.Now

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)
	notificationRepo := infraRepo.NewNotificationGormRepository(db)
	sessionRepo := infraRepo.NewSessionGormRepository(db)

	c.audit = audit.NewDispatcher(audit.New(db))

	var (
		seq    invdomain.Sequencer
		cursor notifdomain.PollCursor = cache.NewMemoryPollCursor()
	)
	if cfg.RedisConfigured() {
		client := cache.NewRedisClient(cfg)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Log.Warn("redis unreachable, using in-process cursors", zap.Error(err))
			_ = client.Close()
		} else {
			seq = cache.NewInvoiceSequencer(client, invoiceRepo.HighestNumber)
			cursor = cache.NewRedisPollCursor(client)
			c.closes = append(c.closes, client.Close)
		}
	}

	var store storage.Store = storage.Disabled{}
	if cfg.S3Configured() {
		store = storage.NewS3Store(cfg)
	}

	var links payment.LinkProvider = payment.Disabled{}
	if cfg.PaymentsConfigured() {
		mp, err := payment.NewMercadoPago(cfg.MPAccessToken, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		links = mp
	}

	var mailer notify.Mailer
	if cfg.SMTPConfigured() {
		mailer = notify.NewSMTPMailer(cfg)
	}

	c.notify = notify.NewDispatcher(notificationRepo, notify.Providers(cfg, mailer))
	notifier := notify.NewNotifier(c.notify, notificationRepo)

	c.Tokens = auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	c.Sessions = sessionRepo
	c.LoginLimiter = middleware.NewRateLimiter(cfg.LoginRatePerMin)

	// ======================================================
	// USE CASES
	// ======================================================
	generateInvoiceUC := ucInvoice.NewGenerateForAppointment(invoiceRepo, seq, c.audit, now, loc)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		notifier,
		generateInvoiceUC,
		c.audit,
		now,
		loc,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	c.Auth = handlers.NewAuthHandler(
		cfg,
		ucAuth.NewRegister(userRepo, c.audit),
		ucAuth.NewLogin(userRepo, sessionRepo, c.Tokens, now),
		ucAuth.NewLogout(sessionRepo),
	)

	getUserUC := ucUser.NewGetUser(userRepo)
	c.Me = handlers.NewMeHandler(getUserUC)
	c.Users = handlers.NewUserHandler(
		getUserUC,
		ucUser.NewListUsers(userRepo),
		ucUser.NewUpdateUser(userRepo, c.audit),
		ucUser.NewDeleteUser(userRepo, c.audit, now),
	)

	c.Appointments = handlers.NewAppointmentHandler(
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewListAppointments(appointmentRepo),
		updateAppointmentUC,
		ucAppointment.NewDeleteAppointment(appointmentRepo, updateAppointmentUC, c.audit),
	)

	c.Invoices = handlers.NewInvoiceHandler(
		ucInvoice.NewGetInvoice(invoiceRepo),
		ucInvoice.NewListInvoices(invoiceRepo),
		ucInvoice.NewSendInvoiceEmail(invoiceRepo, mailer, store, c.audit),
		ucInvoice.NewCreatePaymentLink(invoiceRepo, links, c.audit),
		ucInvoice.NewMarkPaid(invoiceRepo, c.audit, now),
	)

	c.Notifications = handlers.NewNotificationHandler(
		ucNotification.NewListNotifications(notificationRepo),
		ucNotification.NewPoll(notificationRepo, cursor),
		ucNotification.NewMarkRead(notificationRepo),
		ucNotification.NewMarkAllRead(notificationRepo),
	)

	c.Services = handlers.NewServiceHandler(db, c.audit)
	c.Gallery = handlers.NewGalleryHandler(db, store, c.audit)
	c.AuditLogs = handlers.NewAuditLogsHandler(db)
	c.Settings = handlers.NewSettingsHandler(invoiceRepo, c.audit)

	// ======================================================
	// JOBS
	// ======================================================
	c.Scheduler = jobs.NewScheduler(loc)
	if err := c.Scheduler.Add(cfg.ReminderCron, jobs.NewReminderJob(appointmentRepo, notifier, now, loc)); err != nil {
		return nil, err
	}
	if err := c.Scheduler.Add(sessionCleanupSpec, jobs.NewSessionCleanupJob(sessionRepo, now)); err != nil {
		return nil, err
	}

	return c, nil
}

// Close drains the background dispatchers and releases connections.
// The scheduler is stopped separately by the caller.
func (c *Container) Close() {
	c.audit.Close()
	c.notify.Close()
	for _, fn := range c.closes {
		if err := fn(); err != nil {
			logger.Log.Warn("close dependency", zap.Error(err))
		}
	}
}
