package handler

import (
	"net/http"

	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "product created", resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondExtra(c, http.StatusOK, "products", gin.H{"data": resp, "count": len(resp)})
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "product", resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "product updated", resp)
}

func (h *ProductsHandler) Deactivate(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "product deactivated", nil)
}

// Search is a thin alias over List for the ?q= quick-search box.
func (h *ProductsHandler) Search(c *gin.Context) {
	filter := dto.ProductFilter{Search: c.Query("q")}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondExtra(c, http.StatusOK, "products", gin.H{"data": resp, "count": len(resp)})
}

func (h *ProductsHandler) Categories(c *gin.Context) {
	resp, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondExtra(c, http.StatusOK, "categories", gin.H{"data": resp, "count": len(resp)})
}
