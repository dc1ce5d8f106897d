package handler

import (
	"net/http"

	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/middleware"
	"github.com/Zar-ufo/Pentagon/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Log in with username or email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.Envelope
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "login successful", resp)
}

// Register godoc
// @Summary Self-register a sales account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "New account"
// @Success 201 {object} dto.UserResponse
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "account created", resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	resp, err := h.svc.Profile(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "profile", resp)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProfile(c.Request.Context(), actor.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "profile updated", resp)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), actor.ID, req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "password changed", nil)
}
