package jobs

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/job"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config tunes the batch work-hour processor.
type Config struct {
	PollInterval   time.Duration // default: 5 seconds
	MaxAttempts    int           // default: 3
	InitialBackoff time.Duration // default: 5 seconds
	Concurrency    int           // default: 4
}

// Processor runs the durable work-hour job queue: callers enqueue a batch of
// attendance IDs and get a batch token back immediately; a background loop
// claims pending jobs and fans the IDs through the recalculator.
//
// Delivery is at-least-once. The recalculator's upsert makes a repeated run
// over the same attendance converge on identical values, so retries are safe.
type Processor struct {
	repo   job.Repository
	recalc workhour.Recalculator
	config Config
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewProcessor(repo job.Repository, recalc workhour.Recalculator, cfg Config, logger *slog.Logger) *Processor {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = 5 * time.Second
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		repo:   repo,
		recalc: recalc,
		config: cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Enqueue submits a batch and returns its token without waiting for
// processing. A non-empty batchID acts as the caller's idempotency key:
// resubmitting it returns the original job's token with no new work queued.
func (p *Processor) Enqueue(ctx context.Context, batchID string, attendanceIDs []string, processedBy string) (string, error) {
	if batchID == "" {
		batchID = uuid.New().String()
	}

	queued, err := p.repo.Enqueue(ctx, job.WorkHourJob{
		BatchID:       batchID,
		AttendanceIDs: attendanceIDs,
		ProcessedBy:   processedBy,
		NextRunAt:     time.Now(),
	})
	if err != nil {
		return "", err
	}

	p.logger.Info("work-hour batch enqueued",
		slog.String("batch_id", queued.BatchID),
		slog.Int("attendance_count", len(queued.AttendanceIDs)))

	return queued.BatchID, nil
}

// Status returns the job backing a batch token.
func (p *Processor) Status(ctx context.Context, batchID string) (job.WorkHourJob, error) {
	return p.repo.GetByBatchID(ctx, batchID)
}

// Start launches the worker loop.
func (p *Processor) Start() {
	p.wg.Add(1)
	go p.loop()
	p.logger.Info("work-hour job processor started",
		slog.Duration("poll_interval", p.config.PollInterval),
		slog.Int("concurrency", p.config.Concurrency))
}

// Stop cancels the loop and waits for the in-flight job to finish.
func (p *Processor) Stop() {
	p.cancel()
	p.wg.Wait()
	p.logger.Info("work-hour job processor stopped")
}

func (p *Processor) loop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.drain()
		}
	}
}

// drain claims and runs pending jobs until the queue has nothing due.
func (p *Processor) drain() {
	for {
		claimed, err := p.repo.ClaimNext(p.ctx, time.Now())
		if err != nil {
			p.logger.Error("failed to claim work-hour job", slog.String("error", err.Error()))
			return
		}
		if claimed == nil {
			return
		}
		p.run(*claimed)

		select {
		case <-p.ctx.Done():
			return
		default:
		}
	}
}

// run fans the job's attendance IDs through the recalculator with bounded
// concurrency. Per-item failures are counted, never propagated: the job's
// fate is decided by the failure ratio afterwards.
func (p *Processor) run(j job.WorkHourJob) {
	start := time.Now()

	var processed, failed atomic.Int64
	g, ctx := errgroup.WithContext(p.ctx)
	g.SetLimit(p.config.Concurrency)

	for _, attendanceID := range j.AttendanceIDs {
		attendanceID := attendanceID
		g.Go(func() error {
			if _, err := p.recalc.RecalculateAttendance(ctx, attendanceID, j.BatchID, &j.ProcessedBy); err != nil {
				failed.Add(1)
				p.logger.Error("work-hour recalculation failed",
					slog.String("batch_id", j.BatchID),
					slog.String("attendance_id", attendanceID),
					slog.String("error", err.Error()))
				return nil
			}
			processed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	processedCount := int(processed.Load())
	failedCount := int(failed.Load())

	// More than half the items failing marks the whole run as failed; it is
	// retried with exponential backoff until the attempts run out.
	if failedCount*2 > len(j.AttendanceIDs) {
		reason := "more than half of the batch items failed"
		if j.Attempts >= p.config.MaxAttempts {
			if err := p.repo.MarkFailed(p.ctx, j.ID, reason, processedCount, failedCount); err != nil {
				p.logger.Error("failed to mark job failed", slog.String("batch_id", j.BatchID), slog.String("error", err.Error()))
			}
			p.logger.Error("work-hour job failed permanently",
				slog.String("batch_id", j.BatchID),
				slog.Int("attempts", j.Attempts),
				slog.Int("processed", processedCount),
				slog.Int("failed", failedCount))
			return
		}

		nextRunAt := time.Now().Add(p.backoff(j.Attempts))
		if err := p.repo.MarkRetry(p.ctx, j.ID, reason, nextRunAt); err != nil {
			p.logger.Error("failed to schedule job retry", slog.String("batch_id", j.BatchID), slog.String("error", err.Error()))
		}
		p.logger.Warn("work-hour job scheduled for retry",
			slog.String("batch_id", j.BatchID),
			slog.Int("attempts", j.Attempts),
			slog.Time("next_run_at", nextRunAt))
		return
	}

	if err := p.repo.MarkCompleted(p.ctx, j.ID, processedCount, failedCount); err != nil {
		p.logger.Error("failed to mark job completed", slog.String("batch_id", j.BatchID), slog.String("error", err.Error()))
		return
	}

	p.logger.Info("work-hour job completed",
		slog.String("batch_id", j.BatchID),
		slog.Int("processed", processedCount),
		slog.Int("failed", failedCount),
		slog.Duration("duration", time.Since(start)))
}

// backoff doubles the delay on each attempt: 5s, 10s, 20s with the defaults.
func (p *Processor) backoff(attempts int) time.Duration {
	d := p.config.InitialBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
	}
	return d
}
