package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload) {
		return
	}

	token, staff, err := ctrl.AuthSvc.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user":  staff,
	})
}
