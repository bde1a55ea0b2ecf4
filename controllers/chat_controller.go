package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/pkg/resp"
)

type ChatController struct {
	client *gateways.ChatClient
	log    *zap.Logger
}

func NewChatController(client *gateways.ChatClient, log *zap.Logger) *ChatController {
	return &ChatController{client: client, log: log}
}

type chatReq struct {
	Messages []gateways.ChatMessage `json:"messages" binding:"required,min=1"`
}

// POST /api/chat — stateless relay; the client holds the conversation.
func (ctl *ChatController) Relay(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "messages are required")
		return
	}

	reply, err := ctl.client.Complete(c.Request.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, gateways.ErrNotConfigured) {
			resp.ConfigError(c, "chat gateway is not configured")
			return
		}
		ctl.log.Error("chat relay failed", zap.Error(err))
		resp.BadGateway(c)
		return
	}

	resp.OK(c, gin.H{"reply": reply})
}
