package handler

import (
	"net/http"

	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/service"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ svc service.UserService }

func NewUsersHandler(svc service.UserService) *UsersHandler { return &UsersHandler{svc: svc} }

func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "user created", resp)
}

func (h *UsersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondExtra(c, http.StatusOK, "users", gin.H{"data": resp, "count": len(resp)})
}

func (h *UsersHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "user", resp)
}

func (h *UsersHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "user updated", resp)
}

func (h *UsersHandler) Deactivate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "user deactivated", nil)
}

func (h *UsersHandler) ResetPassword(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "password reset", nil)
}

// SalesPeople lists active sales accounts, readable by any authenticated
// user so orders can be attributed in the UI.
func (h *UsersHandler) SalesPeople(c *gin.Context) {
	resp, err := h.svc.SalesPeople(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondExtra(c, http.StatusOK, "sales people", gin.H{"data": resp, "count": len(resp)})
}

func (h *UsersHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "user stats", resp)
}
