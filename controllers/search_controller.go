package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/pkg/resp"
)

type SearchController struct {
	client *gateways.SearchClient
	log    *zap.Logger
}

func NewSearchController(client *gateways.SearchClient, log *zap.Logger) *SearchController {
	return &SearchController{client: client, log: log}
}

type searchReq struct {
	Query string `json:"query" binding:"required"`
	Num   int    `json:"num"`
}

// POST /api/search
func (ctl *SearchController) Search(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "query is required")
		return
	}

	results, err := ctl.client.Search(c.Request.Context(), req.Query, req.Num)
	if err != nil {
		if errors.Is(err, gateways.ErrNotConfigured) {
			resp.ConfigError(c, "search gateway is not configured")
			return
		}
		ctl.log.Error("search request failed", zap.Error(err))
		resp.BadGateway(c)
		return
	}

	resp.OK(c, gin.H{"results": results})
}
