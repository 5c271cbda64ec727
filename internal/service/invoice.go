package service

// invoice.go — invoice number generation.
// Format: {branch code:3}-{year:4}-{MMDDhhmmss + 2-digit sub-second seq:12}.
// The sub-second sequence makes two sales in the same second at the same
// branch distinct; the unique index on sales.invoice_number is the final
// arbiter, and the sale workflow regenerates once on collision.

import (
	"fmt"
	"time"
)

// generateInvoiceNumber derives the invoice number from the branch code and
// timestamp. attempt bumps the sub-second sequence on collision retry.
func generateInvoiceNumber(branchCode int, at time.Time, attempt int) string {
	seq := (at.Nanosecond()/10_000_000 + attempt) % 100 // centiseconds
	return fmt.Sprintf("%03d-%s-%s%02d",
		branchCode%1000,
		at.Format("2006"),
		at.Format("0102150405"),
		seq,
	)
}
