// Package commands реализует CLI devnotes на cobra.
package commands

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"devnotes/internal/app"
	"devnotes/internal/config"
	"devnotes/internal/printers"
)

// RootOptions - общие флаги всех команд
type RootOptions struct {
	ConfigFile string
	ShowID     bool
	JSON       bool
	Verbose    bool
}

// New создает корневую команду
func New() *cobra.Command {
	ro := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "devnotes",
		Short:         "Personal notes with tags, pins and reminders.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !ro.Verbose {
				log.SetOutput(io.Discard)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&ro.ConfigFile, "config", "config.yml", "Path to the config file.")
	cmd.PersistentFlags().BoolVar(&ro.ShowID, "id", false, "Show identifiers.")
	cmd.PersistentFlags().BoolVar(&ro.JSON, "json", false, "Output as JSON.")
	cmd.PersistentFlags().BoolVarP(&ro.Verbose, "verbose", "v", false, "Print service logs.")

	AddCommands(cmd, ro)
	return cmd
}

// AddCommands регистрирует подкоманды
func AddCommands(topLevel *cobra.Command, ro *RootOptions) {
	addNote(topLevel, ro)
	addTag(topLevel, ro)
	addReminders(topLevel, ro)
	addNotify(topLevel, ro)
}

// loadApp читает конфиг и собирает приложение.
// Отсутствующий файл конфигурации заменяется значениями по умолчанию.
func (ro *RootOptions) loadApp(ctx context.Context) (*app.App, error) {
	config.LoadEnv()

	cfg, err := config.Load(ro.ConfigFile)
	if err != nil {
		if _, statErr := os.Stat(ro.ConfigFile); !errors.Is(statErr, fs.ErrNotExist) {
			return nil, err
		}
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	}
	return app.New(ctx, cfg, nil)
}

func (ro *RootOptions) printer(cmd *cobra.Command) *printers.PrettyPrint {
	pp := printers.New(ro.ShowID)
	if out := cmd.OutOrStdout(); out != os.Stdout {
		pp.Out = out
	} else {
		pp.Out = color.Output
	}
	return pp
}

// withApp открывает приложение на время выполнения fn
func (ro *RootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, pp *printers.PrettyPrint) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := ro.loadApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return fn(ctx, a, ro.printer(cmd))
}
