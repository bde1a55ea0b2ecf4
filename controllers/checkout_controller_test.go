package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/repository"
	"github.com/MeiyuTech/aet-backend/services"
)

type stubPayment struct {
	sessions map[string]*gateways.CheckoutSession
}

func (s *stubPayment) CreateSession(_ context.Context, p gateways.CreateSessionParams) (*gateways.CheckoutSession, error) {
	return &gateways.CheckoutSession{ID: "cs_new", URL: "https://pay.example.com/cs_new", Status: gateways.SessionOpen, ApplicationCode: p.ApplicationCode}, nil
}

func (s *stubPayment) RetrieveSession(_ context.Context, id string) (*gateways.CheckoutSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, gateways.ErrSessionNotFound
	}
	return sess, nil
}

func setupRouter(t *testing.T, payment gateways.PaymentGateway) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Application{}, &entity.ServiceSelection{},
		&entity.AdditionalService{}, &entity.EmailOutbox{},
	))

	appRepo := repository.NewApplicationRepository(db)
	notifier := services.NewNotificationService(repository.NewOutboxRepository(db), nil, zap.NewNop())
	svc := services.NewCheckoutService(db, appRepo, payment, notifier, zap.NewNop(),
		"https://app.example.com/success", "https://app.example.com/checkout", "https://shop.example.com")
	ctl := NewCheckoutController(svc, zap.NewNop())

	r := gin.New()
	r.POST("/checkout/sessions", ctl.CreateSession)
	r.GET("/checkout/return", ctl.Return)
	return r, db
}

func seedApplication(t *testing.T, db *gorm.DB, code string) {
	t.Helper()
	require.NoError(t, db.Create(&entity.Application{
		Code:          code,
		FirstName:     "Mei",
		LastName:      "Chen",
		Email:         "mei@example.com",
		Status:        entity.StatusSubmitted,
		PaymentStatus: entity.PaymentPending,
	}).Error)
}

func TestCreateSessionEndpoint(t *testing.T) {
	r, db := setupRouter(t, &stubPayment{})
	seedApplication(t, db, "app-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout/sessions",
		strings.NewReader(`{"applicationCode":"app-1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "cs_new")
}

func TestCreateSessionUnknownApplication(t *testing.T) {
	r, _ := setupRouter(t, &stubPayment{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout/sessions",
		strings.NewReader(`{"applicationCode":"missing"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReturnRedirectsToSuccessOnComplete(t *testing.T) {
	payment := &stubPayment{sessions: map[string]*gateways.CheckoutSession{
		"cs_done": {ID: "cs_done", Status: gateways.SessionComplete, PaymentIntent: "pi_1", ApplicationCode: "app-1"},
	}}
	r, db := setupRouter(t, payment)
	seedApplication(t, db, "app-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/return?session_id=cs_done", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://app.example.com/success?application=app-1", w.Header().Get("Location"))

	var app entity.Application
	require.NoError(t, db.Where("code = ?", "app-1").First(&app).Error)
	assert.Equal(t, entity.PaymentPaid, app.PaymentStatus)
}

func TestReturnRedirectsToShopOnUnknownSession(t *testing.T) {
	r, _ := setupRouter(t, &stubPayment{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout/return?session_id=nope", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Location"))
}
