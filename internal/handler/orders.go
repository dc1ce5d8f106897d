package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/infra"
	"github.com/Zar-ufo/Pentagon/internal/repository"
	"github.com/Zar-ufo/Pentagon/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrdersHandler struct {
	svc    service.OrderService
	orders repository.OrderRepository
}

func NewOrdersHandler(svc service.OrderService, orders repository.OrderRepository) *OrdersHandler {
	return &OrdersHandler{svc: svc, orders: orders}
}

func (h *OrdersHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actor.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "order created", resp)
}

func (h *OrdersHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var filter dto.OrderFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	orders, pagination, err := h.svc.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondExtra(c, http.StatusOK, "orders", gin.H{
		"data":       orders,
		"pagination": pagination,
	})
}

func (h *OrdersHandler) Get(c *gin.Context) {
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
	respond(c, http.StatusOK, "order", resp)
}

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "order status updated", resp)
}

func (h *OrdersHandler) Summary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "order summary", resp)
}

func (h *OrdersHandler) DailySummary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	resp, err := h.svc.DailySummary(c.Request.Context(), actor, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "daily summary", resp)
}

// Invoice streams a PDF invoice for the order. Ownership follows the same
// rule as Get: sales people can only print their own orders.
func (h *OrdersHandler) Invoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	// Ownership gate via the service, then the full model for rendering.
	if _, err := h.svc.Get(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, apierror.NotFound("order not found"))
			return
		}
		respondError(c, apierror.Internal("loading order", err))
		return
	}

	pdf, err := infra.GenerateInvoicePDF(order)
	if err != nil {
		respondError(c, apierror.Internal("rendering invoice", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice_%s.pdf"`, order.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
