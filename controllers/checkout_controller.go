package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/pkg/resp"
	"github.com/MeiyuTech/aet-backend/services"
)

type CheckoutController struct {
	service *services.CheckoutService
	log     *zap.Logger
}

func NewCheckoutController(s *services.CheckoutService, log *zap.Logger) *CheckoutController {
	return &CheckoutController{service: s, log: log}
}

type createSessionReq struct {
	ApplicationCode string `json:"applicationCode" binding:"required"`
}

type createSessionRes struct {
	SessionID    string `json:"sessionId"`
	URL          string `json:"url"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// POST /checkout/sessions
func (ctl *CheckoutController) CreateSession(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "applicationCode is required")
		return
	}

	sess, err := ctl.service.CreateSession(c.Request.Context(), req.ApplicationCode)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "application not found")
		case errors.Is(err, services.ErrAlreadyPaid):
			resp.Conflict(c, "application is already paid")
		default:
			ctl.log.Error("create checkout session failed",
				zap.String("application", req.ApplicationCode), zap.Error(err))
			resp.BadGateway(c)
		}
		return
	}

	resp.Created(c, createSessionRes{
		SessionID:    sess.ID,
		URL:          sess.URL,
		ClientSecret: sess.ClientSecret,
	})
}

// GET /checkout/return?session_id=
// Browser redirect endpoint; always lands somewhere safe.
func (ctl *CheckoutController) Return(c *gin.Context) {
	target := ctl.service.HandleReturn(c.Request.Context(), c.Query("session_id"))
	c.Redirect(http.StatusSeeOther, target)
}
