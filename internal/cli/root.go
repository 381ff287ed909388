// Package cli implements the horizon command line client. Every command
// loads the habit file, applies at most one change and flushes it before
// returning.
package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habit-horizon/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	File    string
	Format  string // "text" | "json"
	Verbose bool

	// Now is the clock used for "today". Tests pin it.
	Now func() time.Time
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Now: time.Now})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cmd := &cobra.Command{
		Use:   "horizon",
		Short: "Habit Horizon - daily habit tracker",
		Long: `Track daily habits, check in days and follow streaks from the terminal.

Habits are stored in a local JSON file (--file, or HABITS_FILE).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.File == "" {
				return NewExitError(ExitCommandError, "no habit file configured")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", config.HabitFile(), "habit file path")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log to stderr")

	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewDaysCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewTrendCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))

	return cmd
}
