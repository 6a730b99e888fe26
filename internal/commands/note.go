package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"devnotes/internal/app"
	"devnotes/internal/model"
	"devnotes/internal/printers"
	"devnotes/internal/views"
)

// NoteOptions - флаги создания и изменения заметки
type NoteOptions struct {
	Title        string
	Content      string
	Tag          string
	Remind       string
	ClearRemind  bool
	ClearTag     bool
	Pinned       bool
	Search       string
	FilterTag    string
	OnlyPinned   bool
	ConfirmPurge bool
}

func addNote(topLevel *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "n"},
		Short:   "Manage notes.",
	}

	addNoteAdd(cmd, ro)
	addNoteList(cmd, ro)
	addNoteShow(cmd, ro)
	addNoteEdit(cmd, ro)
	addNotePin(cmd, ro)
	addNoteRm(cmd, ro)
	addNotePurge(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addNoteAdd(parent *cobra.Command, ro *RootOptions) {
	no := &NoteOptions{}

	cmd := &cobra.Command{
		Use:   "add [content...]",
		Short: "Add a note.",
		Example: `
devnotes note add --title "Release" ship v2 on friday
devnotes note add --tag Work --remind "2026-03-01 09:00" standup notes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if no.Content == "" {
				no.Content = strings.Join(args, " ")
			}
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				tag, err := resolveTag(a.Tags, no.Tag)
				if err != nil {
					return err
				}
				remind, err := parseReminder(no.Remind)
				if err != nil {
					return err
				}

				note, err := a.Notes.Add(ctx, model.Note{
					Title:        no.Title,
					Content:      no.Content,
					Tag:          tag,
					IsPinned:     no.Pinned,
					ReminderDate: remind,
				})
				if err != nil {
					return err
				}
				if ro.JSON {
					return pp.JSON(note)
				}
				pp.Notes([]model.Note{note})
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&no.Title, "title", "t", "", "Note title.")
	cmd.Flags().StringVarP(&no.Content, "content", "c", "", "Note content, defaults to the arguments.")
	cmd.Flags().StringVar(&no.Tag, "tag", "", "Tag name or id.")
	cmd.Flags().StringVar(&no.Remind, "remind", "", `Reminder time, example: --remind="2026-02-28 09:30".`)
	cmd.Flags().BoolVar(&no.Pinned, "pin", false, "Pin the note.")

	parent.AddCommand(cmd)
}

func addNoteList(parent *cobra.Command, ro *RootOptions) {
	no := &NoteOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, pinned first.",
		Example: `
devnotes note list
devnotes note list --search deploy --tag Work
devnotes note list --pinned
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				notes, err := a.Notes.Fetch(ctx)
				if err != nil {
					return err
				}

				if no.OnlyPinned {
					pinned := views.PinnedOnly(notes, no.Search)
					if ro.JSON {
						return pp.JSON(pinned)
					}
					pp.Title("Pinned", len(pinned))
					pp.Notes(pinned)
					return nil
				}

				home := views.Home(notes, views.Query{Search: no.Search, Tag: no.FilterTag})
				if ro.JSON {
					return pp.JSON(home)
				}
				pp.Home(home)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&no.Search, "search", "s", "", "Filter by text in title or content.")
	cmd.Flags().StringVar(&no.FilterTag, "tag", "", "Filter by tag name.")
	cmd.Flags().BoolVar(&no.OnlyPinned, "pinned", false, "Show only pinned notes.")

	parent.AddCommand(cmd)
}

func addNoteShow(parent *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the note as shareable text.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				note, err := a.Notes.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if ro.JSON {
					return pp.JSON(note)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), note.ShareText())
				return err
			})
		},
	}
	parent.AddCommand(cmd)
}

func addNoteEdit(parent *cobra.Command, ro *RootOptions) {
	no := &NoteOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note. Only the given flags change.",
		Example: `
devnotes note edit 6f1c... --title "New title"
devnotes note edit 6f1c... --tag Idea --remind "2026-04-01 10:00"
devnotes note edit 6f1c... --no-remind --no-tag
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				note, err := a.Notes.Get(ctx, args[0])
				if err != nil {
					return err
				}

				flags := cmd.Flags()
				if flags.Changed("title") {
					note.Title = no.Title
				}
				if flags.Changed("content") {
					note.Content = no.Content
				}
				if flags.Changed("tag") {
					if note.Tag, err = resolveTag(a.Tags, no.Tag); err != nil {
						return err
					}
				}
				if no.ClearTag {
					note.Tag = nil
				}
				if flags.Changed("remind") {
					if note.ReminderDate, err = parseReminder(no.Remind); err != nil {
						return err
					}
				}
				if no.ClearRemind {
					note.ReminderDate = nil
				}

				if err := a.Notes.Update(ctx, note); err != nil {
					return err
				}
				if ro.JSON {
					return pp.JSON(note)
				}
				pp.Notes([]model.Note{note})
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&no.Title, "title", "t", "", "New title.")
	cmd.Flags().StringVarP(&no.Content, "content", "c", "", "New content.")
	cmd.Flags().StringVar(&no.Tag, "tag", "", "Tag name or id; the current tag state is snapshotted.")
	cmd.Flags().StringVar(&no.Remind, "remind", "", "New reminder time.")
	cmd.Flags().BoolVar(&no.ClearRemind, "no-remind", false, "Remove the reminder.")
	cmd.Flags().BoolVar(&no.ClearTag, "no-tag", false, "Remove the tag.")

	parent.AddCommand(cmd)
}

func addNotePin(parent *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle the pin of a note.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				return a.Notes.TogglePin(ctx, args[0])
			})
		},
	}
	parent.AddCommand(cmd)
}

func addNoteRm(parent *cobra.Command, ro *RootOptions) {
	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete notes.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				for _, id := range args {
					if err := a.Notes.Delete(ctx, id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	parent.AddCommand(cmd)
}

func addNotePurge(parent *cobra.Command, ro *RootOptions) {
	no := &NoteOptions{}

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all notes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !no.ConfirmPurge {
				return errors.New("refusing to delete all notes without --yes")
			}
			return ro.withApp(cmd, func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error {
				return a.Notes.DeleteAll(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&no.ConfirmPurge, "yes", false, "Confirm deleting every note.")

	parent.AddCommand(cmd)
}
