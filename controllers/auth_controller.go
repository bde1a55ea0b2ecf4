package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MeiyuTech/aet-backend/pkg/resp"
	"github.com/MeiyuTech/aet-backend/services"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{service: s}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /admin/login
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "email and password are required")
		return
	}

	token, admin, err := ctl.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			resp.Unauthorized(c, "invalid email or password")
			return
		}
		resp.ServerError(c)
		return
	}

	resp.OK(c, gin.H{
		"token": token,
		"admin": gin.H{
			"id":        admin.ID,
			"email":     admin.Email,
			"firstName": admin.FirstName,
			"lastName":  admin.LastName,
		},
	})
}
