package infra

import (
	"bytes"
	"fmt"

	"github.com/leaox77/Inventory-System-Backend/internal/model"

	"github.com/go-pdf/fpdf"
)

// BuildInvoicePDF renders a sale receipt. The sale must be hydrated (branch,
// payment method, details with products).
func BuildInvoicePDF(sale *model.Sale) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Recibo "+sale.InvoiceNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "RECIBO DE VENTA", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Factura: "+sale.InvoiceNumber, "", 1, "L", false, 0, "")
	if sale.Branch != nil {
		pdf.CellFormat(0, 6, "Sucursal: "+sale.Branch.Name, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Fecha: "+sale.SaleDate.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if sale.Client != nil {
		pdf.CellFormat(0, 6, "Cliente: "+sale.Client.FullName+" ("+sale.Client.CINIT+")", "", 1, "L", false, 0, "")
	}
	if sale.PaymentMethod != nil {
		pdf.CellFormat(0, 6, "Pago: "+sale.PaymentMethod.Name, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Line items table
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(80, 7, "Producto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Cantidad", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "P. Unit.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Desc.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range sale.Details {
		name := d.ProductID.String()
		if d.Product != nil {
			name = d.Product.Name
		}
		pdf.CellFormat(80, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, d.Quantity.StringFixed(3), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, d.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, d.Discount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, d.TotalLine.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(155, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, sale.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !sale.Discount.IsZero() {
		pdf.CellFormat(155, 6, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, "-"+sale.Discount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(155, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generar pdf: %w", err)
	}
	return buf.Bytes(), nil
}
