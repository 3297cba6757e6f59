package invoice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/invoice"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/notify"
)

type SendResult struct {
	Sent   bool   `json:"sent"`
	To     string `json:"to,omitempty"`
	Reason string `json:"reason,omitempty"`
	URL    string `json:"archive_url,omitempty"`
}

type SendInvoiceEmail struct {
	repo   domain.Repository
	mailer notify.Mailer
	store  storage.Store
	audit  *audit.Dispatcher
}

// NewSendInvoiceEmail takes a nil mailer when SMTP is not configured.
func NewSendInvoiceEmail(
	repo domain.Repository,
	mailer notify.Mailer,
	store storage.Store,
	audit *audit.Dispatcher,
) *SendInvoiceEmail {
	return &SendInvoiceEmail{
		repo:   repo,
		mailer: mailer,
		store:  store,
		audit:  audit,
	}
}

func (uc *SendInvoiceEmail) Execute(
	ctx context.Context,
	a actor.Actor,
	id uint,
) (*SendResult, error) {

	inv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(a, inv); err != nil {
		return nil, err
	}
	if inv.RecipientEmail == "" {
		return nil, httperr.ErrBusinessMsg("invoice_missing_email", "The invoice recipient has no email address.")
	}

	shop, err := uc.repo.EnsureSettings(ctx)
	if err != nil {
		return nil, err
	}

	html, err := RenderHTML(inv, shop)
	if err != nil {
		return nil, err
	}

	res := &SendResult{To: inv.RecipientEmail}
	res.URL = uc.archive(ctx, inv.ID, inv.Number, html)

	if uc.mailer == nil {
		logger.Log.Info("smtp not configured, invoice email not sent",
			zap.String("number", inv.Number),
			zap.String("to", inv.RecipientEmail),
		)
		res.Reason = "smtp_not_configured"
		return res, nil
	}

	err = uc.mailer.Send(ctx, notify.Mail{
		To:      inv.RecipientEmail,
		Subject: fmt.Sprintf("Invoice %s from %s", inv.Number, shop.BusinessName),
		HTML:    string(html),
		Attachments: []notify.Attachment{{
			Name:        inv.Number + ".html",
			ContentType: "text/html; charset=utf-8",
			Data:        html,
		}},
	})
	if err != nil {
		logger.Log.Error("send invoice email",
			zap.String("number", inv.Number),
			zap.Error(err),
		)
		return nil, httperr.ErrBusinessMsg("email_send_failed", "The invoice email could not be sent.")
	}

	res.Sent = true

	uc.audit.Dispatch(audit.Event{
		UserID:   &a.UserID,
		Action:   "invoice_emailed",
		Entity:   "invoice",
		EntityID: &inv.ID,
		Metadata: map[string]any{"to": inv.RecipientEmail},
	})

	return res, nil
}

// archive keeps a copy of what was sent; failures only log.
func (uc *SendInvoiceEmail) archive(ctx context.Context, id uint, number string, html []byte) string {
	if uc.store == nil {
		return ""
	}

	key := fmt.Sprintf("invoices/%s.html", number)
	url, err := uc.store.Put(ctx, key, html, "text/html; charset=utf-8")
	if errors.Is(err, storage.ErrNotConfigured) {
		return ""
	}
	if err != nil {
		logger.Log.Warn("archive invoice html", zap.String("number", number), zap.Error(err))
		return ""
	}

	inv, err := uc.repo.Get(ctx, id)
	if err == nil && inv.ArchiveKey != key {
		inv.ArchiveKey = key
		if err := uc.repo.Update(ctx, inv); err != nil {
			logger.Log.Warn("store invoice archive key", zap.String("number", number), zap.Error(err))
		}
	}
	return url
}
