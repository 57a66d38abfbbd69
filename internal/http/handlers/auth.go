package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/http/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Code  string `json:"code"`
	Token string `json:"token"`
}

// POST /api/admin/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := a.Auth
	svc.RequestID = middleware.GetRequestID(c)
	res, err := svc.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "request_id": svc.RequestID})
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/admin/verify-2fa
// The pending login token comes as a bearer token or in the body.
func (a *API) VerifyTwoFactor(c *gin.Context) {
	var req verifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := a.Auth
	svc.RequestID = middleware.GetRequestID(c)
	pending := middleware.BearerToken(c)
	if pending == "" {
		pending = req.Token
	}
	res, err := svc.VerifyTwoFactor(pending, req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "request_id": svc.RequestID})
		return
	}
	c.JSON(http.StatusOK, res)
}
