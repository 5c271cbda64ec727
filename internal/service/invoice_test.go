package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInvoiceNumberFormat(t *testing.T) {
	at := time.Date(2026, 3, 5, 14, 30, 45, 120_000_000, time.UTC)

	got := generateInvoiceNumber(12, at, 0)

	// 012-2026-030514304512 → branch 012, year 2026, MMDDhhmmss + centiseconds
	assert.Equal(t, "012-2026-030514304512", got)
	assert.Len(t, got, 21)
}

func TestGenerateInvoiceNumberAttemptBumpsSequence(t *testing.T) {
	at := time.Date(2026, 3, 5, 14, 30, 45, 0, time.UTC)

	first := generateInvoiceNumber(1, at, 0)
	second := generateInvoiceNumber(1, at, 1)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "001-2026-030514304500", first)
	assert.Equal(t, "001-2026-030514304501", second)
}

func TestGenerateInvoiceNumberTruncatesBranchCode(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := generateInvoiceNumber(1007, at, 0)
	assert.Equal(t, "007", got[:3])
}

func TestGenerateInvoiceNumberSequenceWraps(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 990_000_000, time.UTC)
	got := generateInvoiceNumber(1, at, 1)
	// 99 + 1 wraps to 00
	assert.Equal(t, "00", got[len(got)-2:])
}
