package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/infra"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// alertDedupeTTL keeps a record out of the digest once alerted, until it
// either recovers or the TTL lapses.
const alertDedupeTTL = 24 * time.Hour

// LowStockCron periodically scans the ledger for products under their
// min_stock threshold and mails a digest to the configured address. Redis
// dedupes alerts so the same record is not re-reported every tick.
type LowStockCron struct {
	inventory repository.InventoryRepository
	mailer    *infra.Mailer
	rdb       *redis.Client
	to        string
	interval  time.Duration
}

func NewLowStockCron(inventory repository.InventoryRepository, mailer *infra.Mailer, rdb *redis.Client, to string, interval time.Duration) *LowStockCron {
	return &LowStockCron{inventory: inventory, mailer: mailer, rdb: rdb, to: to, interval: interval}
}

// Start blocks until ctx is cancelled; run it in its own goroutine.
func (c *LowStockCron) Start(ctx context.Context) {
	if c.to == "" || c.mailer == nil || !c.mailer.Enabled() {
		log.Info().Msg("cron de stock bajo deshabilitado: sin destinatario o SMTP")
		return
	}
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.run(ctx); err != nil {
				log.Error().Err(err).Msg("cron de stock bajo fallido")
			}
		}
	}
}

func (c *LowStockCron) run(ctx context.Context) error {
	recs, err := c.inventory.ListBelowMinStock(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	count := 0
	for _, rec := range recs {
		if !c.markAlerted(ctx, rec.ProductID.String(), rec.BranchID.String()) {
			continue
		}
		name := rec.ProductID.String()
		min := ""
		if rec.Product != nil {
			name = rec.Product.Name
			min = rec.Product.MinStock.StringFixed(3)
		}
		branch := rec.BranchID.String()
		if rec.Branch != nil {
			branch = rec.Branch.Name
		}
		fmt.Fprintf(&b, "- %s en %s: %s (minimo %s)\n", name, branch, rec.Quantity.StringFixed(3), min)
		count++
	}
	if count == 0 {
		return nil
	}

	subject := fmt.Sprintf("Alerta de stock bajo: %d productos", count)
	body := "Productos por debajo del stock minimo:\n\n" + b.String()
	return c.mailer.Send(c.to, subject, body, "", nil)
}

// markAlerted reports whether this record should be included in the digest.
// Without Redis every tick alerts; with Redis, SETNX + TTL suppresses repeats.
func (c *LowStockCron) markAlerted(ctx context.Context, productID, branchID string) bool {
	if c.rdb == nil {
		return true
	}
	key := "alerts:lowstock:" + productID + ":" + branchID
	ok, err := c.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), alertDedupeTTL).Result()
	if err != nil {
		log.Warn().Err(err).Msg("dedupe de alertas no disponible")
		return true
	}
	return ok
}
