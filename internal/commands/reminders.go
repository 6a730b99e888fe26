package commands

import (
	"context"

	"github.com/spf13/cobra"

	"devnotes/internal/app"
	"devnotes/internal/printers"
	"devnotes/internal/views"
)

func addReminders(topLevel *cobra.Command, ro *RootOptions) {
	var filter, search string

	cmd := &cobra.Command{
		Use:     "reminders",
		Aliases: []string{"r"},
		Short:   "Show notes with reminders.",
		Example: `
devnotes reminders
devnotes reminders --filter overdue
devnotes reminders --filter upcoming --search review
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := views.ParseReminderFilter(filter)
			if err != nil {
				return err
			}
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				notes, err := a.Notes.Fetch(ctx)
				if err != nil {
					return err
				}

				now := a.Clock.Now()
				selected := views.Reminders(notes, f, search, now)
				if ro.JSON {
					if f == views.FilterAll {
						return pp.JSON(views.GroupReminders(selected, now))
					}
					return pp.JSON(selected)
				}
				pp.Reminders(selected, f, now)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "One of: all, overdue, upcoming.")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by text in title or content.")

	topLevel.AddCommand(cmd)
}
