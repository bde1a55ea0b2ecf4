package controllers

import (
	"encoding/base64"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/pkg/resp"
)

type OCRController struct {
	client *gateways.OCRClient
	log    *zap.Logger
}

func NewOCRController(client *gateways.OCRClient, log *zap.Logger) *OCRController {
	return &OCRController{client: client, log: log}
}

type ocrReq struct {
	ImageBase64 string `json:"imageBase64" binding:"required"`
}

// POST /api/ocr
func (ctl *OCRController) DetectText(c *gin.Context) {
	var req ocrReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "imageBase64 is required")
		return
	}
	if _, err := base64.StdEncoding.DecodeString(req.ImageBase64); err != nil {
		resp.BadRequest(c, "imageBase64 is not valid base64")
		return
	}

	text, err := ctl.client.DetectText(c.Request.Context(), req.ImageBase64)
	if err != nil {
		if errors.Is(err, gateways.ErrNotConfigured) {
			resp.ConfigError(c, "OCR gateway is not configured")
			return
		}
		ctl.log.Error("OCR request failed", zap.Error(err))
		resp.BadGateway(c)
		return
	}

	resp.OK(c, gin.H{"text": text})
}
