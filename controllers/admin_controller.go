package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/pkg/resp"
	"github.com/MeiyuTech/aet-backend/services"
	"github.com/MeiyuTech/aet-backend/utils"
)

type AdminController struct {
	apps     *services.ApplicationService
	review   *services.ReviewService
	sender   gateways.EmailSender
	diplomas *gateways.DiplomaStore
	fromCc   string
	log      *zap.Logger
}

func NewAdminController(
	apps *services.ApplicationService,
	review *services.ReviewService,
	sender gateways.EmailSender,
	diplomas *gateways.DiplomaStore,
	fromCc string,
	log *zap.Logger,
) *AdminController {
	return &AdminController{
		apps:     apps,
		review:   review,
		sender:   sender,
		diplomas: diplomas,
		fromCc:   fromCc,
		log:      log,
	}
}

// GET /admin/applications?status=
func (ctl *AdminController) List(c *gin.Context) {
	apps, err := ctl.apps.ListByStatus(c.Query("status"))
	if err != nil {
		ctl.log.Error("list applications failed", zap.Error(err))
		resp.ServerError(c)
		return
	}
	resp.OK(c, gin.H{"items": apps})
}

// GET /admin/applications/:code
func (ctl *AdminController) Detail(c *gin.Context) {
	app, err := ctl.apps.GetByCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "application not found")
			return
		}
		ctl.log.Error("load application failed", zap.Error(err))
		resp.ServerError(c)
		return
	}
	resp.OK(c, app)
}

// POST /admin/applications/:code/changes
func (ctl *AdminController) ProposeChange(c *gin.Context) {
	var req services.ProposeChangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	change, err := ctl.review.Propose(c.Param("code"), utils.CurrentAdminID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "application not found")
		case errors.Is(err, services.ErrEmptyChange),
			errors.Is(err, services.ErrInvalidTransition):
			resp.BadRequest(c, err.Error())
		default:
			resp.BadRequest(c, err.Error())
		}
		return
	}

	resp.Created(c, change)
}

// GET /admin/applications/:code/changes
func (ctl *AdminController) ListChanges(c *gin.Context) {
	changes, err := ctl.review.ListStaged(c.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "application not found")
			return
		}
		ctl.log.Error("list staged changes failed", zap.Error(err))
		resp.ServerError(c)
		return
	}
	resp.OK(c, gin.H{"items": changes})
}

// POST /admin/changes/:id/confirm
func (ctl *AdminController) ConfirmChange(c *gin.Context) {
	changeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid change id")
		return
	}

	app, err := ctl.review.Confirm(uint(changeID), utils.CurrentAdminID(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			resp.NotFound(c, "change not found")
		case errors.Is(err, services.ErrConflict):
			resp.Conflict(c, "application changed, please re-stage")
		case errors.Is(err, services.ErrChangeNotStaged):
			resp.Conflict(c, "change was already applied or cancelled")
		case errors.Is(err, services.ErrInvalidTransition),
			errors.Is(err, services.ErrCompletedLocked):
			resp.BadRequest(c, err.Error())
		default:
			ctl.log.Error("confirm change failed", zap.Error(err))
			resp.ServerError(c)
		}
		return
	}

	resp.OK(c, app)
}

// POST /admin/changes/:id/cancel
func (ctl *AdminController) CancelChange(c *gin.Context) {
	changeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid change id")
		return
	}

	if err := ctl.review.Cancel(uint(changeID)); err != nil {
		if errors.Is(err, services.ErrChangeNotStaged) {
			resp.Conflict(c, "change is not staged")
			return
		}
		ctl.log.Error("cancel change failed", zap.Error(err))
		resp.ServerError(c)
		return
	}
	resp.OK(c, gin.H{"cancelled": changeID})
}

type testEmailReq struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject"`
}

// POST /admin/test-email — admin ping to verify the email gateway.
func (ctl *AdminController) TestEmail(c *gin.Context) {
	if ctl.sender == nil {
		resp.ConfigError(c, "email gateway is not configured")
		return
	}

	var req testEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "a valid to address is required")
		return
	}
	if req.Subject == "" {
		req.Subject = "AET test email"
	}

	err := ctl.sender.Send(c.Request.Context(), gateways.EmailMessage{
		To:      req.To,
		Cc:      ctl.fromCc,
		Subject: req.Subject,
		HTML:    "<p>This is a test message from the AET back office.</p>",
	})
	if err != nil {
		ctl.log.Error("test email failed", zap.Error(err))
		resp.BadGateway(c)
		return
	}
	resp.OK(c, gin.H{"sent": true})
}

// GET /admin/applications/:code/diploma — streams the uploaded diploma
// scan for the applicant, if one exists in the object store.
func (ctl *AdminController) Diploma(c *gin.Context) {
	if ctl.diplomas == nil {
		resp.ConfigError(c, "file storage is not configured")
		return
	}

	app, err := ctl.apps.GetByCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "application not found")
			return
		}
		ctl.log.Error("load application failed", zap.Error(err))
		resp.ServerError(c)
		return
	}

	data, err := ctl.diplomas.Fetch(c.Request.Context(),
		app.Office, app.FirstName+" "+app.LastName, app.Email)
	if err != nil {
		if errors.Is(err, gateways.ErrObjectNotFound) {
			resp.NotFound(c, "no diploma on file")
			return
		}
		ctl.log.Error("fetch diploma failed",
			zap.String("application", app.Code), zap.Error(err))
		resp.BadGateway(c)
		return
	}

	c.Data(http.StatusOK, "image/jpeg", data)
}
