package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leaox77/Inventory-System-Backend/internal/infra"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptWorker renders the PDF receipt for a committed sale, archives it on
// disk and, when the sale carried a client email, sends it out.
type ReceiptWorker struct {
	sales       repository.SaleRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewReceiptWorker(sales repository.SaleRepository, mailer *infra.Mailer, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{sales: sales, mailer: mailer, storagePath: storagePath}
}

func (w *ReceiptWorker) Handle(ctx context.Context, job Job) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		// Malformed payloads can never succeed; log and swallow so the job
		// is not retried.
		log.Error().Err(err).Str("job", job.ID).Msg("payload de recibo ilegible")
		return nil
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("sale_id invalido en job de recibo")
		return nil
	}

	sale, err := w.sales.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("cargar venta %s: %w", payload.SaleID, err)
	}

	pdf, err := infra.BuildInvoicePDF(sale)
	if err != nil {
		return err
	}

	if w.storagePath != "" {
		if err := os.MkdirAll(w.storagePath, 0o755); err != nil {
			return fmt.Errorf("crear directorio de recibos: %w", err)
		}
		path := filepath.Join(w.storagePath, sale.InvoiceNumber+".pdf")
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return fmt.Errorf("guardar recibo: %w", err)
		}
	}

	if payload.ClientEmail != "" && w.mailer != nil && w.mailer.Enabled() {
		subject := "Recibo de compra " + sale.InvoiceNumber
		body := fmt.Sprintf("Gracias por su compra.\n\nFactura: %s\nTotal: %s\n",
			sale.InvoiceNumber, sale.Total.StringFixed(2))
		if err := w.mailer.Send(payload.ClientEmail, subject, body, sale.InvoiceNumber+".pdf", pdf); err != nil {
			return fmt.Errorf("enviar recibo por correo: %w", err)
		}
	}

	log.Info().Str("invoice", sale.InvoiceNumber).Msg("recibo generado")
	return nil
}
