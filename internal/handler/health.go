package handler

import (
	"net/http"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check reports component status. 200 while the database answers; Redis and
// the DLQ are informational.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	out := gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		out["status"] = "degraded"
		out["database"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		out["database"] = "up"
	}

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			out["redis"] = "down"
		} else {
			out["redis"] = "up"
			if n, err := worker.DeadLetterCount(ctx, h.rdb); err == nil {
				out["dead_jobs"] = n
			}
		}
	}

	c.JSON(status, out)
}
