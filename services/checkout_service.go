package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/repository"
)

var ErrAlreadyPaid = errors.New("application is already paid")

// CheckoutService drives payment_status. The gateway is the source of
// truth for payment completion; the application store is the source of
// truth for business state.
type CheckoutService struct {
	DB       *gorm.DB
	Repo     *repository.ApplicationRepository
	Payment  gateways.PaymentGateway
	Notifier *NotificationService
	Log      *zap.Logger

	Currency    string
	SuccessURL  string // success page, gets ?application=<code>
	CheckoutURL string // retry page when a session is still open
	ShopURL     string // safe default for expired/unknown sessions
}

func NewCheckoutService(
	db *gorm.DB,
	repo *repository.ApplicationRepository,
	payment gateways.PaymentGateway,
	notifier *NotificationService,
	log *zap.Logger,
	successURL, checkoutURL, shopURL string,
) *CheckoutService {
	return &CheckoutService{
		DB:          db,
		Repo:        repo,
		Payment:     payment,
		Notifier:    notifier,
		Log:         log,
		Currency:    "usd",
		SuccessURL:  successURL,
		CheckoutURL: checkoutURL,
		ShopURL:     shopURL,
	}
}

// CreateSession opens a hosted checkout session for an application,
// priced from its selections and carrying the application code in
// session metadata.
func (s *CheckoutService) CreateSession(ctx context.Context, code string) (*gateways.CheckoutSession, error) {
	app, err := s.Repo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if app.PaymentStatus == entity.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	return s.Payment.CreateSession(ctx, gateways.CreateSessionParams{
		AmountCents:     TotalCents(app),
		Currency:        s.Currency,
		Description:     fmt.Sprintf("AET credential evaluation (%s)", app.Code),
		ApplicationCode: app.Code,
		SuccessURL:      s.SuccessURL + "?application=" + app.Code,
		CancelURL:       s.CheckoutURL,
	})
}

// HandleReturn reconciles a gateway return callback into the application
// and picks the browser's next destination. Never errors at the HTTP
// level: every failure degrades to a safe redirect.
//
// Idempotent for completed sessions: the pending -> paid transition is a
// conditional update, so replays find zero affected rows and enqueue no
// second receipt.
func (s *CheckoutService) HandleReturn(ctx context.Context, sessionID string) string {
	if sessionID == "" {
		return s.ShopURL
	}

	sess, err := s.Payment.RetrieveSession(ctx, sessionID)
	if err != nil {
		s.Log.Warn("retrieve checkout session failed",
			zap.String("session", sessionID), zap.Error(err))
		return s.ShopURL
	}

	switch sess.Status {
	case gateways.SessionComplete:
		return s.applyCompleted(sess)
	case gateways.SessionOpen:
		if sess.URL != "" {
			return sess.URL
		}
		return s.CheckoutURL
	default:
		// expired or anything unrecognized: no mutation, back to the shop
		return s.ShopURL
	}
}

func (s *CheckoutService) applyCompleted(sess *gateways.CheckoutSession) string {
	code := sess.ApplicationCode
	if code == "" {
		s.Log.Error("completed session carries no application code",
			zap.String("session", sess.ID))
		return s.ShopURL
	}

	paymentID := sess.PaymentIntent
	if paymentID == "" {
		paymentID = sess.ID
	}

	affected, err := s.Repo.MarkPaidGuard(s.DB, code, paymentID, time.Now())
	if err != nil {
		// The gateway has the money either way; send the user to the
		// success page and leave reconciliation to the logs.
		s.Log.Error("apply paid transition failed",
			zap.String("application", code), zap.Error(err))
		return s.SuccessURL + "?application=" + code
	}

	if affected == 1 {
		if app, err := s.Repo.FindByCode(code); err == nil {
			if err := s.Notifier.QueuePaymentReceipt(app); err != nil {
				s.Log.Error("queue payment receipt failed",
					zap.String("application", code), zap.Error(err))
			}
		}
		s.Log.Info("application paid",
			zap.String("application", code), zap.String("payment", paymentID))
	}

	return s.SuccessURL + "?application=" + code
}
