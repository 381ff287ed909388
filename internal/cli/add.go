package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
)

type addOptions struct {
	goal      string
	frequency string
	tags      string
}

func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Create a habit",
		Long: `Create a habit. Words after the command form its name.

The goal defaults to "Show up" and tags are a comma separated list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				return runAdd(cmd, s, strings.Join(args, " "), opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.goal, "goal", "g", "", "what showing up means for this habit")
	cmd.Flags().StringVar(&opts.frequency, "frequency", string(domain.FrequencyDaily), "daily, weekly or custom")
	cmd.Flags().StringVarP(&opts.tags, "tags", "t", "", "comma separated tags")

	return cmd
}

func runAdd(cmd *cobra.Command, s *session, name string, opts *addOptions) error {
	habit, err := s.habits.Create(cmd.Context(), services.CreateHabitInput{
		Name:      name,
		Goal:      opts.goal,
		Frequency: opts.frequency,
		Tags:      domain.SplitTags(opts.tags),
	})
	if err != nil {
		if isValidationError(err) {
			return WrapExitError(ExitCommandError, "invalid habit", err)
		}
		return err
	}

	if s.out.isJSON() {
		return s.out.json(habit)
	}
	_, err = fmt.Fprintf(s.out.w, "Created %s (%s)\n", habit.Name, habit.ID)
	return err
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrHabitNameEmpty) ||
		errors.Is(err, domain.ErrHabitNameTooLong) ||
		errors.Is(err, domain.ErrHabitGoalTooLong) ||
		errors.Is(err, domain.ErrInvalidFrequency) ||
		errors.Is(err, domain.ErrInvalidDayKey)
}
