package commands

import (
	"context"

	"github.com/spf13/cobra"

	"devnotes/internal/app"
	"devnotes/internal/printers"
	"devnotes/internal/reminder"
)

func addNotify(topLevel *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show or change the notification state.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				return printState(ro, pp, a.Scheduler.State())
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Enable notifications, asking for permission when needed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				state, err := a.Scheduler.Enable(ctx)
				if err != nil {
					return err
				}
				return printState(ro, pp, state)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Disable notifications. The system permission is left as is.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				state, err := a.Scheduler.Disable(ctx)
				if err != nil {
					return err
				}
				return printState(ro, pp, state)
			})
		},
	})

	topLevel.AddCommand(cmd)
}

func printState(ro *RootOptions, pp *printers.PrettyPrint, state reminder.State) error {
	if ro.JSON {
		return pp.JSON(state)
	}
	pp.State(state)
	return nil
}
