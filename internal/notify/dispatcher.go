package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/metrics"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

// Message is one notification for one user. Email and Phone are only used
// by the matching out-of-band channels.
type Message struct {
	UserID   uint
	Type     string
	Title    string
	Body     string
	Link     string
	Email    string
	Phone    string
	Channels []Channel
}

// Store persists the in-app copy shown by the bell.
type Store interface {
	Create(ctx context.Context, n *models.Notification) error
}

const (
	queueSize       = 100
	deliveryTimeout = 15 * time.Second
)

type Dispatcher struct {
	store     Store
	providers map[Channel]Provider
	queue     chan Message
	done      chan struct{}
}

func NewDispatcher(store Store, providers map[Channel]Provider) *Dispatcher {
	return newDispatcher(store, providers, queueSize)
}

func newDispatcher(store Store, providers map[Channel]Provider, size int) *Dispatcher {
	d := &Dispatcher{
		store:     store,
		providers: providers,
		queue:     make(chan Message, size),
		done:      make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		d.deliver(ctx, msg)
		cancel()
	}
}

// Notify enqueues msg. It never blocks and never fails the caller.
func (d *Dispatcher) Notify(msg Message) {
	if d == nil {
		return
	}

	select {
	case d.queue <- msg:
	default:
		metrics.RecordNotificationDropped()
		logger.Log.Warn("notification queue full, dropping message",
			zap.Uint("user_id", msg.UserID),
			zap.String("type", msg.Type),
		)
	}
}

func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) {
	row := &models.Notification{
		UserID:  msg.UserID,
		Type:    msg.Type,
		Title:   msg.Title,
		Message: msg.Body,
		Link:    msg.Link,
	}
	if err := d.store.Create(ctx, row); err != nil {
		logger.Log.Error("store notification",
			zap.Uint("user_id", msg.UserID),
			zap.String("type", msg.Type),
			zap.Error(err),
		)
	}

	for _, ch := range msg.Channels {
		p, ok := d.providers[ch]
		if !ok {
			continue
		}

		to := recipient(ch, msg)
		if to == "" {
			continue
		}

		err := p.Send(ctx, to, msg)
		metrics.RecordNotification(string(ch), err)
		if err != nil {
			logger.Log.Warn("notification delivery failed",
				zap.String("channel", string(ch)),
				zap.Uint("user_id", msg.UserID),
				zap.Error(err),
			)
		}
	}
}

func recipient(ch Channel, msg Message) string {
	switch ch {
	case ChannelEmail:
		return msg.Email
	case ChannelSMS:
		return msg.Phone
	case ChannelPush:
		if msg.UserID == 0 {
			return ""
		}
		return uintToString(msg.UserID)
	}
	return ""
}
