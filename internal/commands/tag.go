package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"devnotes/internal/app"
	"devnotes/internal/model"
	"devnotes/internal/printers"
)

// TagOptions - флаги тега
type TagOptions struct {
	Color string
	Icon  string
}

func addTag(topLevel *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:     "tag",
		Aliases: []string{"tags"},
		Short:   "Manage tags.",
	}

	addTagAdd(cmd, ro)
	addTagList(cmd, ro)
	addTagRename(cmd, ro)
	addTagRm(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addTagAdd(parent *cobra.Command, ro *RootOptions) {
	to := &TagOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tag.",
		Example: `
devnotes tag add Go --color TagTeal --icon terminal.fill
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				tag, err := a.Tags.Create(strings.Join(args, " "), to.Color, to.Icon)
				if err != nil {
					return err
				}
				if ro.JSON {
					return pp.JSON(tag)
				}
				pp.Tags([]model.Tag{tag}, nil)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&to.Color, "color", "TagBlue", fmt.Sprintf("Color token, one of: %s.", colorKeys()))
	cmd.Flags().StringVar(&to.Icon, "icon", "tag.fill", "Icon token.")

	parent.AddCommand(cmd)
}

func addTagList(parent *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tags with the number of linked notes.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				notes, err := a.Notes.Fetch(ctx)
				if err != nil {
					return err
				}
				list := a.Tags.List()
				if ro.JSON {
					return pp.JSON(list)
				}
				pp.Tags(list, notes)
				return nil
			})
		},
	}
	parent.AddCommand(cmd)
}

func addTagRename(parent *cobra.Command, ro *RootOptions) {
	to := &TagOptions{}

	cmd := &cobra.Command{
		Use:   "rename <id|name> <new name>",
		Short: "Rename a tag or change its color and icon. Existing notes keep their snapshot.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				current, err := resolveTag(a.Tags, args[0])
				if err != nil {
					return err
				}

				tag := *current
				tag.Name = strings.Join(args[1:], " ")
				if cmd.Flags().Changed("color") {
					tag.Color = to.Color
				}
				if cmd.Flags().Changed("icon") {
					tag.Icon = to.Icon
				}

				if err := a.Tags.Edit(tag); err != nil {
					return err
				}
				if ro.JSON {
					return pp.JSON(tag)
				}
				pp.Tags([]model.Tag{tag}, nil)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&to.Color, "color", "", "New color token.")
	cmd.Flags().StringVar(&to.Icon, "icon", "", "New icon token.")

	parent.AddCommand(cmd)
}

func addTagRm(parent *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:     "rm <id|name>",
		Aliases: []string{"delete"},
		Short:   "Delete a tag. Notes keep their snapshot of it.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				tag, err := resolveTag(a.Tags, args[0])
				if err != nil {
					return err
				}
				return a.Tags.Delete(tag.ID)
			})
		},
	}
	parent.AddCommand(cmd)
}

func colorKeys() string {
	keys := make([]string, len(model.TagColors))
	for i, c := range model.TagColors {
		keys[i] = c.Key
	}
	return strings.Join(keys, ", ")
}
