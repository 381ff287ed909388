package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/engine"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
)

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	filter := services.HabitFilter{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				return runList(s, filter)
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Query, "search", "s", "", "match name or goal")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "only habits with this tag")

	return cmd
}

func runList(s *session, filter services.HabitFilter) error {
	habits := s.habits.List(filter)

	if s.out.isJSON() {
		return s.out.json(habits)
	}

	if len(habits) == 0 {
		_, err := fmt.Fprintln(s.out.w, "No habits found.")
		return err
	}

	now := s.habits.Now()
	tw := s.out.table()
	fmt.Fprintln(tw, "ID\tNAME\tGOAL\tFREQ\tSTREAK\tBEST\tLAST 7\tTAGS")
	for _, h := range habits {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			h.ID, h.Name, h.Goal, h.Frequency, h.Streak, h.BestStreak,
			strip(engine.RecentDays(h, services.DefaultRecentDays, now)),
			joinTags(h.Tags),
		)
	}
	return tw.Flush()
}

// strip renders a day window as x (done) and . (missed), oldest first.
func strip(days []domain.DayStatus) string {
	var b strings.Builder
	for _, d := range days {
		if d.Completed {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
