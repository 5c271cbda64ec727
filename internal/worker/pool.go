package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	receiptQueue = "jobs:receipts"
	maxAttempts  = 3
)

// Job is the envelope every queued task travels in.
type Job struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Attempts  int             `json:"attempts"`
	CreatedAt time.Time       `json:"created_at"`
}

type ReceiptJobPayload struct {
	SaleID      string `json:"sale_id"`
	ClientEmail string `json:"client_email,omitempty"`
}

// Dispatcher is the producer side of the queue. It is safe for concurrent use.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReceipt pushes a receipt job. Failures are logged, not returned as
// fatal — a receipt must never block or undo a committed sale, so the caller
// treats the error as advisory.
func (d *Dispatcher) EnqueueReceipt(ctx context.Context, payload ReceiptJobPayload) error {
	if d.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{
		ID:        payload.SaleID,
		Kind:      "receipt",
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, receiptQueue, data).Err(); err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("no se pudo encolar recibo")
		return err
	}
	return nil
}

// Handler consumes one job. A returned error requeues the job until
// maxAttempts, then it goes to the dead letter queue.
type Handler func(ctx context.Context, job Job) error

// StartPool launches n workers draining the receipt queue with blocking pops.
// Workers exit when ctx is cancelled.
func StartPool(ctx context.Context, rdb *redis.Client, n int, handle Handler) {
	if rdb == nil || n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		go runWorker(ctx, rdb, i, handle)
	}
	log.Info().Int("workers", n).Msg("pool de workers iniciado")
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handle Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := rdb.BRPop(ctx, 5*time.Second, receiptQueue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Int("worker", id).Msg("error leyendo cola")
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value]
		if len(res) < 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Error().Err(err).Int("worker", id).Msg("job ilegible, descartado")
			continue
		}

		if err := handle(ctx, job); err != nil {
			job.Attempts++
			if job.Attempts >= maxAttempts {
				deadLetter(ctx, rdb, job, err)
				continue
			}
			log.Warn().Err(err).Str("job", job.ID).Int("attempt", job.Attempts).Msg("job fallido, reintentando")
			if data, merr := json.Marshal(job); merr == nil {
				rdb.LPush(ctx, receiptQueue, data)
			}
		}
	}
}
