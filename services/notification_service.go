package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MeiyuTech/aet-backend/entity"
	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/repository"
)

// NotificationService is the outbox: request handlers enqueue rows, a
// background dispatcher delivers them. Delivery failure never reaches
// the request path.
type NotificationService struct {
	Outbox *repository.OutboxRepository
	Sender gateways.EmailSender // nil when email is not configured
	Log    *zap.Logger

	Interval    time.Duration
	MaxAttempts int
	BatchSize   int
}

func NewNotificationService(outbox *repository.OutboxRepository, sender gateways.EmailSender, log *zap.Logger) *NotificationService {
	return &NotificationService{
		Outbox:      outbox,
		Sender:      sender,
		Log:         log,
		Interval:    30 * time.Second,
		MaxAttempts: 5,
		BatchSize:   10,
	}
}

func (n *NotificationService) QueueSubmissionConfirmation(app *entity.Application) error {
	return n.Outbox.Enqueue(&entity.EmailOutbox{
		ToEmail: app.Email,
		Subject: "We received your application",
		HTML: fmt.Sprintf(
			"<p>Dear %s %s,</p><p>Your credential evaluation application <b>%s</b> has been received. You can complete payment from the checkout page at any time.</p>",
			app.FirstName, app.LastName, app.Code),
	})
}

func (n *NotificationService) QueuePaymentReceipt(app *entity.Application) error {
	return n.Outbox.Enqueue(&entity.EmailOutbox{
		ToEmail: app.Email,
		Subject: "Payment received",
		HTML: fmt.Sprintf(
			"<p>Dear %s %s,</p><p>We received your payment for application <b>%s</b>. Our %s office will start processing it shortly.</p>",
			app.FirstName, app.LastName, app.Code, app.Office),
	})
}

func (n *NotificationService) QueueStatusUpdate(app *entity.Application) error {
	return n.Outbox.Enqueue(&entity.EmailOutbox{
		ToEmail: app.Email,
		Subject: "Your application status changed",
		HTML: fmt.Sprintf(
			"<p>Dear %s %s,</p><p>Application <b>%s</b> is now <b>%s</b>.</p>",
			app.FirstName, app.LastName, app.Code, app.Status),
	})
}

// Start runs the dispatcher loop until ctx is cancelled.
func (n *NotificationService) Start(ctx context.Context) {
	if n.Sender == nil {
		n.Log.Warn("email sender not configured, outbox dispatch disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(n.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if sent, err := n.DispatchOnce(ctx); err != nil {
					n.Log.Error("outbox dispatch failed", zap.Error(err))
				} else if sent > 0 {
					n.Log.Info("outbox dispatched", zap.Int("sent", sent))
				}
			}
		}
	}()
}

// DispatchOnce sends one batch of pending rows. Each row is retried on
// later passes until the attempt cap flips it to failed.
func (n *NotificationService) DispatchOnce(ctx context.Context) (int, error) {
	rows, err := n.Outbox.PendingBatch(n.BatchSize, n.MaxAttempts)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, row := range rows {
		err := n.Sender.Send(ctx, gateways.EmailMessage{
			To:      row.ToEmail,
			Cc:      row.CcEmail,
			Subject: row.Subject,
			HTML:    row.HTML,
		})
		if err != nil {
			n.Log.Warn("outbox send failed",
				zap.Uint("outbox", row.ID), zap.Error(err))
			if err := n.Outbox.MarkAttemptFailed(row.ID, n.MaxAttempts, err); err != nil {
				return sent, err
			}
			continue
		}
		if err := n.Outbox.MarkSent(row.ID, time.Now()); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
