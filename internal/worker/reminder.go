package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pool dispatches due reminders: tasks whose reminder time has passed and
// that are neither completed nor already notified. Claiming uses
// FOR UPDATE SKIP LOCKED so concurrent workers never deliver the same
// reminder twice.
type Pool struct {
	pool     *pgxpool.Pool
	logger   *zap.Logger
	count    int
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
}

func NewPool(pool *pgxpool.Pool, logger *zap.Logger, count int, interval time.Duration) *Pool {
	if interval <= 0 {
		interval = time.Second
	}
	return &Pool{
		pool:     pool,
		logger:   logger,
		count:    count,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.logger.Info("Starting reminder workers", zap.Int("workers", p.count))

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) Stop() {
	p.logger.Info("Stopping reminder workers...")
	close(p.stop)
	p.wg.Wait()
	p.logger.Info("Reminder workers stopped")
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.dispatchNext(ctx, id); err != nil && !errors.Is(err, pgx.ErrNoRows) {
				p.logger.Error("reminder worker error", zap.Int("worker", id), zap.Error(err))
			}
		}
	}
}

// dispatchNext claims one due reminder and marks it delivered. Delivery is
// a structured log line; a mail or push integration would hang off here.
func (p *Pool) dispatchNext(ctx context.Context, workerID int) error {
	var (
		taskID, userID, title string
		remindAt              time.Time
	)
	err := p.pool.QueryRow(ctx, `
		WITH due AS (
			SELECT id
			FROM tasks
			WHERE reminder_time <= now()
			  AND NOT reminder_sent
			  AND NOT completed
			ORDER BY reminder_time
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		UPDATE tasks
		SET reminder_sent = TRUE
		FROM due
		WHERE tasks.id = due.id
		RETURNING tasks.id, tasks.user_id, tasks.title, tasks.reminder_time
	`).Scan(&taskID, &userID, &title, &remindAt)
	if err != nil {
		return err
	}

	p.logger.Info("Reminder due",
		zap.Int("worker", workerID),
		zap.String("task_id", taskID),
		zap.String("user_id", userID),
		zap.String("title", title),
		zap.Time("remind_at", remindAt),
	)
	return nil
}
