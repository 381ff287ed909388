package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

const (
	defaultQueueSize = 16
	saveTimeout      = 5 * time.Second
)

// SaveWorker persists collection snapshots in the background. Each snapshot
// is the whole collection, so only the newest pending one is ever written.
type SaveWorker struct {
	repo   domain.HabitRepository
	jobs   chan []domain.Habit
	done   chan struct{}
	logger *zap.Logger

	mu      sync.Mutex
	lastErr error
}

func NewSaveWorker(repo domain.HabitRepository, queueSize int, logger *zap.Logger) *SaveWorker {
	if queueSize < 1 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveWorker{
		repo:   repo,
		jobs:   make(chan []domain.Habit, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

func (w *SaveWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		w.logger.Info("save worker started")
		for {
			select {
			case snapshot := <-w.jobs:
				w.save(w.latest(snapshot))
			case <-ctx.Done():
				w.drain()
				w.logger.Info("save worker stopped")
				return
			}
		}
	}()
}

// Enqueue never blocks. When the queue is full the oldest pending snapshot
// is discarded to make room, since it is superseded anyway.
func (w *SaveWorker) Enqueue(habits []domain.Habit) {
	for attempt := 0; attempt < 2; attempt++ {
		select {
		case w.jobs <- habits:
			return
		default:
		}

		select {
		case <-w.jobs:
			w.logger.Warn("save queue full, discarding stale snapshot")
		default:
		}
	}
	w.logger.Warn("save queue contended, snapshot dropped", zap.Int("habits", len(habits)))
}

// Wait blocks until the worker has flushed and exited after its context ended.
func (w *SaveWorker) Wait() {
	<-w.done
}

func (w *SaveWorker) latest(snapshot []domain.Habit) []domain.Habit {
	for {
		select {
		case newer := <-w.jobs:
			snapshot = newer
		default:
			return snapshot
		}
	}
}

func (w *SaveWorker) drain() {
	select {
	case snapshot := <-w.jobs:
		w.save(w.latest(snapshot))
	default:
	}
}

// save runs on its own deadline so that a shutdown in progress does not
// cancel the final write.
func (w *SaveWorker) save(habits []domain.Habit) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	err := w.repo.Save(ctx, habits)

	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("failed to save habits", zap.Int("habits", len(habits)), zap.Error(err))
		return
	}
	w.logger.Debug("habits saved", zap.Int("habits", len(habits)))
}

// LastError is the outcome of the most recent save, nil when it succeeded
// or nothing was saved yet.
func (w *SaveWorker) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}
