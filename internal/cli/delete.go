package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <habit-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a habit and its history",
		Long:    "Delete a habit and its history. Deleting an unknown id does nothing.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, rootOpts, func(s *session) error {
				removed := s.habits.Delete(cmd.Context(), args[0])

				if s.out.isJSON() {
					return s.out.json(map[string]any{"id": args[0], "deleted": removed})
				}
				if !removed {
					_, err := fmt.Fprintf(s.out.w, "No habit with id %s\n", args[0])
					return err
				}
				_, err := fmt.Fprintf(s.out.w, "Deleted %s\n", args[0])
				return err
			})
		},
	}
}
