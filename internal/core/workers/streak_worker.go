package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

const defaultRolloverInterval = time.Minute

// Refresher re-derives every habit's streaks against the current day.
type Refresher interface {
	Refresh(ctx context.Context) int
}

// StreakWorker watches the local calendar day and triggers a streak refresh
// when it changes, so a streak that ended yesterday is not shown as live.
type StreakWorker struct {
	target   Refresher
	interval time.Duration
	clock    func() time.Time
	logger   *zap.Logger

	lastDay string
}

func NewStreakWorker(target Refresher, interval time.Duration, clock func() time.Time, logger *zap.Logger) *StreakWorker {
	if interval <= 0 {
		interval = defaultRolloverInterval
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreakWorker{
		target:   target,
		interval: interval,
		clock:    clock,
		logger:   logger,
		lastDay:  domain.DayKey(clock()),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info("streak worker started", zap.Duration("interval", w.interval))
		for {
			select {
			case <-ticker.C:
				w.Check(ctx)
			case <-ctx.Done():
				w.logger.Info("streak worker shutting down")
				return
			}
		}
	}()
}

// Check refreshes streaks if the day changed since the previous check.
// It is not safe for concurrent use; Start calls it from a single goroutine.
func (w *StreakWorker) Check(ctx context.Context) bool {
	today := domain.DayKey(w.clock())
	if today == w.lastDay {
		return false
	}

	changed := w.target.Refresh(ctx)
	w.logger.Info("day rollover, streaks refreshed",
		zap.String("from", w.lastDay),
		zap.String("to", today),
		zap.Int("changed", changed),
	)
	w.lastDay = today
	return true
}
