package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/pkg/resp"
	"github.com/MeiyuTech/aet-backend/services"
)

type ApplicationController struct {
	service *services.ApplicationService
	log     *zap.Logger
}

func NewApplicationController(s *services.ApplicationService, log *zap.Logger) *ApplicationController {
	return &ApplicationController{service: s, log: log}
}

// POST /applications
func (ctl *ApplicationController) Submit(c *gin.Context) {
	var req services.SubmitApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid request body")
		return
	}

	res, err := ctl.service.Submit(&req)
	if err != nil {
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			resp.ValidationFailed(c, fieldErrs)
			return
		}
		ctl.log.Error("submit application failed", zap.Error(err))
		resp.ServerError(c)
		return
	}

	resp.Created(c, res)
}

// GET /applications/:code
func (ctl *ApplicationController) Detail(c *gin.Context) {
	app, err := ctl.service.GetByCode(c.Param("code"))
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
