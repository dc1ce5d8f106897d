package handler

import (
	"net/http"
	"strconv"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/config"
	"github.com/Zar-ufo/Pentagon/internal/dto"
	"github.com/Zar-ufo/Pentagon/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportMailer sends the low-stock report; satisfied by infra.Mailer.
type ReportMailer interface {
	SendLowStockReport(to string, report *dto.LowStockResponse) error
}

type InventoryHandler struct {
	svc    service.InventoryService
	mailer ReportMailer
	cfg    *config.Config
}

func NewInventoryHandler(svc service.InventoryService, mailer ReportMailer, cfg *config.Config) *InventoryHandler {
	return &InventoryHandler{svc: svc, mailer: mailer, cfg: cfg}
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "inventory record created", resp)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "inventory record updated", resp)
}

// List returns one row per active product for ?date= (default today).
func (h *InventoryHandler) List(c *gin.Context) {
	rows, date, err := h.svc.List(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondExtra(c, http.StatusOK, "inventory", gin.H{
		"data":  rows,
		"date":  date,
		"count": len(rows),
	})
}

// ProductHistory returns a product's snapshots over ?days= (default 30).
func (h *InventoryHandler) ProductHistory(c *gin.Context) {
	id, ok := paramUUID(c, "product_id")
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.Query("days"))
	resp, err := h.svc.ProductHistory(c.Request.Context(), id, days)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "inventory history", resp)
}

func (h *InventoryHandler) StockLevels(c *gin.Context) {
	resp, err := h.svc.StockLevels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "stock levels", resp)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	threshold, _ := strconv.Atoi(c.Query("threshold"))
	resp, err := h.svc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "low stock", resp)
}

// LowStockReport mails the current low-stock listing to the configured
// report address. Sent synchronously; the admin waits for the SMTP round trip.
func (h *InventoryHandler) LowStockReport(c *gin.Context) {
	if h.cfg.ReportEmail == "" {
		respondError(c, apierror.Validation("no report email configured"))
		return
	}
	threshold, _ := strconv.Atoi(c.Query("threshold"))
	report, err := h.svc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.mailer.SendLowStockReport(h.cfg.ReportEmail, report); err != nil {
		respondError(c, apierror.Internal("sending report", err))
		return
	}
	respondExtra(c, http.StatusOK, "report sent", gin.H{
		"recipient": h.cfg.ReportEmail,
		"count":     report.Count,
	})
}
