package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/pkg/jobs"
)

// OverdueJobName identifies the reclassification job in logs, metrics and the scheduler.
const OverdueJobName = "vencimientos"

const overdueLockKey = "ingenio:jobs:" + OverdueJobName

type overdueMarker interface {
	MarkOverdue(ctx context.Context, today time.Time) ([]models.OverdueFee, error)
}

type runLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

type jobRecorder interface {
	RecordJobRun(job, result string, duration time.Duration)
	AddReclassified(n int)
}

// OverdueConfig tunes the reclassification run.
type OverdueConfig struct {
	Location *time.Location
	LockTTL  time.Duration
}

// OverdueService flips past-due PENDIENTE line-items to VENCIDO.
type OverdueService struct {
	fees    overdueMarker
	locker  runLocker
	metrics jobRecorder
	logger  *zap.Logger
	cfg     OverdueConfig
	now     func() time.Time
}

// NewOverdueService constructs the service. locker and metrics may be nil.
func NewOverdueService(fees overdueMarker, locker runLocker, metrics jobRecorder, cfg OverdueConfig, logger *zap.Logger) *OverdueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}
	return &OverdueService{fees: fees, locker: locker, metrics: metrics, logger: logger, cfg: cfg, now: time.Now}
}

// WithClock overrides the time source.
func (s *OverdueService) WithClock(now func() time.Time) *OverdueService {
	if now != nil {
		s.now = now
	}
	return s
}

// Run reclassifies every PENDIENTE line-item due before today. Running it
// again on the same day changes nothing. Rows are logged, not persisted.
func (s *OverdueService) Run(ctx context.Context) (*models.OverdueRun, error) {
	start := time.Now()
	today := civilDate(s.now(), s.cfg.Location)
	run := &models.OverdueRun{Today: models.NewDate(today), Items: []models.OverdueFee{}}

	if s.locker != nil {
		release, acquired, err := s.locker.Acquire(ctx, overdueLockKey, s.cfg.LockTTL)
		switch {
		case err != nil:
			s.logger.Warn("overdue job lock unavailable, running anyway", zap.Error(err))
		case !acquired:
			s.logger.Info("overdue job already running elsewhere, skipping")
			s.record("skipped", start)
			run.Skipped = true
			return run, nil
		default:
			defer release()
		}
	}

	changed, err := s.fees.MarkOverdue(ctx, today)
	if err != nil {
		s.record("failed", start)
		s.logger.Error("overdue job failed", zap.Time("today", today), zap.Error(err))
		return nil, err
	}

	run.Items = changed
	run.Reclassified = len(changed)
	s.record("success", start)
	if s.metrics != nil {
		s.metrics.AddReclassified(len(changed))
	}

	ids := make([]int64, len(changed))
	for i, fee := range changed {
		ids[i] = fee.ID
	}
	s.logger.Info("overdue job finished",
		zap.String("today", today.Format(dateLayout)),
		zap.Int("reclassified", len(changed)),
		zap.Int64s("fee_ids", ids))
	return run, nil
}

// Task adapts Run to the scheduler.
func (s *OverdueService) Task() jobs.Task {
	return func(ctx context.Context) error {
		_, err := s.Run(ctx)
		return err
	}
}

func (s *OverdueService) record(result string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordJobRun(OverdueJobName, result, time.Since(start))
	}
}
