package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-horizon/internal/adapters/repository"
	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
	"github.com/comitanigiacomo/habit-horizon/internal/core/workers"
	"github.com/comitanigiacomo/habit-horizon/internal/logging"
)

// session is the per-invocation application: services over the habit file
// plus a save worker that is flushed by close.
type session struct {
	habits   *services.HabitService
	checkins *services.CheckInService
	stats    *services.StatsService
	out      *formatter

	saver  *workers.SaveWorker
	cancel context.CancelFunc
	logger *zap.Logger
}

func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	logger := zap.NewNop()
	if opts.Verbose {
		l, err := logging.New("development", "debug")
		if err != nil {
			return nil, err
		}
		logger = l
	}

	repo := repository.NewFileHabitRepository(opts.File)

	// The service treats unreadable data as an empty collection. Refuse to
	// start instead, so the next save cannot overwrite the user's file.
	if _, err := repo.Load(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrCorruptData) {
			return nil, WrapExitError(ExitFailure, "habit file "+opts.File+" is corrupt", err)
		}
		return nil, WrapExitError(ExitFailure, "cannot read habit file", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	saver := workers.NewSaveWorker(repo, 1, logger)
	saver.Start(ctx)

	habits := services.NewHabitService(repo, saver, opts.Now, logger)
	habits.Load(cmd.Context())

	return &session{
		habits:   habits,
		checkins: services.NewCheckInService(habits, logger),
		stats:    services.NewStatsService(habits),
		out:      &formatter{format: opts.Format, w: cmd.OutOrStdout()},
		saver:    saver,
		cancel:   cancel,
		logger:   logger,
	}, nil
}

// close flushes the pending snapshot, if any, and stops the save worker.
func (s *session) close() error {
	s.cancel()
	s.saver.Wait()
	_ = s.logger.Sync()

	if err := s.saver.LastError(); err != nil {
		return WrapExitError(ExitFailure, "failed to save habits", err)
	}
	return nil
}

// withSession opens a session for the duration of fn and reports a failed
// final save even when fn succeeded.
func withSession(cmd *cobra.Command, opts *RootOptions, fn func(s *session) error) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	runErr := fn(s)
	closeErr := s.close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}
