package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediavault/mediavault/tool"
	"github.com/mediavault/mediavault/types"
)

type AuthController struct {
	accessCode string
}

func NewAuthController(accessCode string) *AuthController {
	return &AuthController{accessCode: accessCode}
}

// HandleAuth exchanges the shared access code for a bearer token.
// The token is the code itself; there is nothing to issue or expire.
// POST /api/auth
func (ctrl *AuthController) HandleAuth(c *gin.Context) {
	var request types.AuthRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if request.Code != ctrl.accessCode {
		tool.DefaultLogger.Warnf("[Auth] Rejected login attempt from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, tool.FastReturnError("Invalid code"))
		return
	}
	c.JSON(http.StatusOK, types.AuthResponse{Success: true, Token: ctrl.accessCode})
}
