package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const deadLetterQueue = "jobs:receipts:dead"

type deadJob struct {
	Job      Job       `json:"job"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// deadLetter parks a job that exhausted its retries for manual inspection.
func deadLetter(ctx context.Context, rdb *redis.Client, job Job, cause error) {
	entry := deadJob{Job: job, Error: cause.Error(), FailedAt: time.Now().UTC()}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("job", job.ID).Msg("no se pudo serializar job muerto")
		return
	}
	if err := rdb.LPush(ctx, deadLetterQueue, data).Err(); err != nil {
		log.Error().Err(err).Str("job", job.ID).Msg("no se pudo mover job a DLQ")
		return
	}
	log.Error().Str("job", job.ID).Str("cause", cause.Error()).Msg("job movido a DLQ")
}

// DeadLetterCount is exposed on the health endpoint.
func DeadLetterCount(ctx context.Context, rdb *redis.Client) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	return rdb.LLen(ctx, deadLetterQueue).Result()
}
