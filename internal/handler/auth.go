// Package handler exposes the HTTP surface. Handlers bind and validate
// input, delegate to the domain services and translate domain errors into
// the API error envelope. No business rules live here.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MateusVidalm/ECOTANQUE/internal/auth"
	"github.com/MateusVidalm/ECOTANQUE/internal/dto"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login — POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Logout — POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(); err != nil {
		respondDomainErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Session — GET /v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	user, err := h.svc.Current()
	if err != nil {
		respondDomainErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
