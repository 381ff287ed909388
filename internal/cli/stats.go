package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

const trendBarWidth = 20

func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's dashboard numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				stats := s.stats.GetSnapshot()

				if s.out.isJSON() {
					return s.out.json(stats)
				}

				_, err := fmt.Fprintf(s.out.w,
					"Completed today: %d/%d\nWeekly progress: %d%%\nLongest streak:  %d days\nActive habits:   %d\n",
					stats.CompletedToday, stats.ActiveHabits,
					stats.WeeklyProgress,
					stats.LongestStreak,
					stats.ActiveHabits,
				)
				return err
			})
		},
	}
}

type trendRow struct {
	WeekStart  string `json:"week_start"`
	Percentage int    `json:"percentage"`
}

func NewTrendCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Show completion rates of the last six weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				points := s.stats.GetWeeklyTrend()

				rows := make([]trendRow, 0, len(points))
				for _, p := range points {
					rows = append(rows, trendRow{WeekStart: domain.DayKey(p.WeekStart), Percentage: p.Rounded()})
				}

				if s.out.isJSON() {
					return s.out.json(rows)
				}

				for _, r := range rows {
					if _, err := fmt.Fprintf(s.out.w, "%s  %s %3d%%\n", r.WeekStart, bar(r.Percentage), r.Percentage); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func bar(percentage int) string {
	filled := percentage * trendBarWidth / 100
	return strings.Repeat("#", filled) + strings.Repeat(".", trendBarWidth-filled)
}

func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				tags := s.habits.Tags()

				if s.out.isJSON() {
					return s.out.json(tags)
				}
				for _, t := range tags {
					if _, err := fmt.Fprintln(s.out.w, t); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
