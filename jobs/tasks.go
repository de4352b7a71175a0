package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/campusdrive/campusdrive/internal/platform/blob"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionPurge deletes expired session mirror rows.
	TaskSessionPurge = "session:purge"
	// TaskPhotoSweep removes blob objects no alumni record references.
	TaskPhotoSweep = "photo:sweep"
)

// SweepPayload carries scheduling metadata shared by both maintenance tasks.
type SweepPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewSessionPurgeTask constructs an Asynq task for the session purge.
func NewSessionPurgeTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(SweepPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionPurge, body, asynq.Queue(QueueDefault)), nil
}

// NewPhotoSweepTask constructs an Asynq task for the photo sweep.
func NewPhotoSweepTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(SweepPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPhotoSweep, body, asynq.Queue(QueueDefault)), nil
}

// HandleSessionPurge returns a handler that deletes session rows whose
// expiry has passed. The Redis copies expire on their own TTL.
func HandleSessionPurge(pool *pgxpool.Pool, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SweepPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		tag, err := pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
		if err != nil {
			return err
		}
		logger.Info("session purge complete", slog.Int64("deleted", tag.RowsAffected()))
		return nil
	}
}

// PhotoKeyLister reports which blob keys are still referenced.
type PhotoKeyLister interface {
	PhotoKeys(ctx context.Context) ([]string, error)
}

// HandlePhotoSweep returns a handler that removes stored photos no
// alumni row references. The referenced-key and stored-key listings run
// concurrently.
func HandlePhotoSweep(repo PhotoKeyLister, store blob.Store, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SweepPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}

		var referenced, stored []string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			referenced, err = repo.PhotoKeys(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			stored, err = store.List(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		keep := make(map[string]struct{}, len(referenced))
		for _, k := range referenced {
			keep[k] = struct{}{}
		}
		removed := 0
		for _, k := range stored {
			if _, ok := keep[k]; ok {
				continue
			}
			if err := store.Remove(ctx, k); err != nil {
				logger.Warn("photo sweep remove", slog.Any("error", err), slog.String("key", k))
				continue
			}
			removed++
		}
		logger.Info("photo sweep complete", slog.Int("removed", removed), slog.Int("stored", len(stored)))
		return nil
	}
}
