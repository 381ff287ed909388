package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
)

func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "toggle <habit-id>",
		Aliases: []string{"check"},
		Short:   "Mark or unmark a day as done",
		Long: `Flip the completion of one day for a habit. Without --date the
current day is toggled. Running it twice restores the original state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				return runToggle(cmd, s, args[0], date)
			})
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "day to toggle (YYYY-MM-DD, default today)")

	return cmd
}

func runToggle(cmd *cobra.Command, s *session, id, date string) error {
	habit, err := s.checkins.Toggle(cmd.Context(), services.ToggleInput{HabitID: id, Day: date})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			return WrapExitError(ExitCommandError, "cannot toggle "+id, err)
		case errors.Is(err, domain.ErrInvalidDayKey):
			return WrapExitError(ExitCommandError, "invalid --date", err)
		}
		return err
	}

	if s.out.isJSON() {
		return s.out.json(habit)
	}

	day := date
	if day == "" {
		day = domain.DayKey(s.habits.Now())
	}
	verb := "Cleared"
	if habit.Completions.HasKey(day) {
		verb = "Done"
	}
	_, err = fmt.Fprintf(s.out.w, "%s: %s on %s (streak %d, best %d)\n",
		verb, habit.Name, day, habit.Streak, habit.BestStreak)
	return err
}
