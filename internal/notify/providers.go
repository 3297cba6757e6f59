package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
)

type Provider interface {
	Send(ctx context.Context, to string, msg Message) error
}

// Providers builds one provider per channel; unconfigured channels log.
func Providers(cfg *config.Config, mailer Mailer) map[Channel]Provider {
	p := map[Channel]Provider{
		ChannelEmail: LogProvider{Channel: ChannelEmail},
		ChannelSMS:   LogProvider{Channel: ChannelSMS},
		ChannelPush:  LogProvider{Channel: ChannelPush},
	}

	if cfg.SMTPConfigured() && mailer != nil {
		p[ChannelEmail] = EmailProvider{Mailer: mailer}
	}
	if cfg.SMSConfigured() {
		p[ChannelSMS] = NewWebhookProvider(ChannelSMS, cfg.SMSWebhookURL, cfg.SMSWebhookToken)
	}
	if cfg.PushConfigured() {
		p[ChannelPush] = NewWebhookProvider(ChannelPush, cfg.PushWebhookURL, "")
	}
	return p
}

// ===============================
// Log
// ===============================

type LogProvider struct {
	Channel Channel
}

func (p LogProvider) Send(_ context.Context, to string, msg Message) error {
	logger.Log.Info("notification not sent, channel not configured",
		zap.String("channel", string(p.Channel)),
		zap.String("to", to),
		zap.String("title", msg.Title),
	)
	return nil
}

// ===============================
// Email
// ===============================

type EmailProvider struct {
	Mailer Mailer
}

func (p EmailProvider) Send(ctx context.Context, to string, msg Message) error {
	return p.Mailer.Send(ctx, Mail{
		To:      to,
		Subject: msg.Title,
		Text:    msg.Body,
	})
}

// ===============================
// Webhook (SMS gateway, push relay)
// ===============================

type WebhookProvider struct {
	channel Channel
	url     string
	token   string
	client  *http.Client
}

func NewWebhookProvider(ch Channel, url, token string) *WebhookProvider {
	return &WebhookProvider{
		channel: ch,
		url:     url,
		token:   token,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type webhookPayload struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
}

func (p *WebhookProvider) Send(ctx context.Context, to string, msg Message) error {
	body, err := json.Marshal(webhookPayload{
		Channel:   string(p.channel),
		Recipient: to,
		Title:     msg.Title,
		Message:   msg.Body,
		Link:      msg.Link,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s provider rejected request: status %d", p.channel, resp.StatusCode)
	}
	return nil
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
