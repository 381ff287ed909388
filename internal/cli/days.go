package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
)

func NewDaysCommand(rootOpts *RootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "days <habit-id>",
		Short: "Show the recent check-in window of a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				window, err := s.checkins.RecentDays(args[0], days)
				if err != nil {
					if errors.Is(err, domain.ErrHabitNotFound) {
						return WrapExitError(ExitCommandError, "cannot show days for "+args[0], err)
					}
					return err
				}

				if s.out.isJSON() {
					return s.out.json(window)
				}

				tw := s.out.table()
				for _, d := range window {
					mark := "-"
					if d.Completed {
						mark = "done"
					}
					today := ""
					if d.Today {
						today = "today"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Weekday, d.Date, mark, today)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", services.DefaultRecentDays, "number of days to show")

	return cmd
}
