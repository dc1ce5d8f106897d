package infra

// pdf.go — order invoice generation using go-pdf/fpdf. A4 invoice with a
// customer block, item table, and bold grand total. Rendered into memory and
// streamed straight to the HTTP response, nothing is written to disk.

import (
	"bytes"
	"fmt"

	"github.com/Zar-ufo/Pentagon/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF renders an invoice for an order and returns the bytes.
func GenerateInvoicePDF(order *model.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Pentagon International", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Order Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Order info
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Order %s", order.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Date: "+order.OrderDate.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Status: "+order.Status, "", 1, "L", false, 0, "")
	if order.SalesPerson != nil {
		pdf.CellFormat(contentW, 5, "Sales person: "+order.SalesPerson.FullName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// Customer block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, order.CustomerName, "", 1, "L", false, 0, "")
	if order.CustomerPhone != nil {
		pdf.CellFormat(contentW, 5, *order.CustomerPhone, "", 1, "L", false, 0, "")
	}
	if order.CustomerAddress != nil {
		pdf.CellFormat(contentW, 5, *order.CustomerAddress, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Delivery area: "+order.DeliveryArea, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Item table
	col1 := contentW * 0.46 // product
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Unit Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range order.Items {
		name := item.ProductID.String()
		if item.Product != nil {
			name = item.Product.ItemName
			if item.Product.Size != nil {
				name += " (" + *item.Product.Size + ")"
			}
		}
		if len(name) > 48 {
			name = name[:47] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, item.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 8, "GRAND TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 8, order.TotalValue.StringFixed(2), "", 1, "R", false, 0, "")

	if order.Notes != nil && *order.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Notes: "+*order.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
