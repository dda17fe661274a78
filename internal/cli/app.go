// Package cli implements the formbuilder command tree.
package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/catalog"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/storage/sqlite"
)

// DefaultDraftPath is where the working form is kept between commands.
const DefaultDraftPath = "formbuilder-draft.json"

// App holds the dependencies shared by every command. Nil fields are filled
// from the resolved config before a command runs, so tests can inject an
// in-memory store and a scripted prompt driver.
type App struct {
	Config  config.Config
	Store   storage.Store
	Catalog *catalog.Catalog
	Log     logging.Logger
	IDs     session.IDGenerator
	Now     func() time.Time

	// Prompt replaces the survey driver used by fill.
	Prompt tui.PromptDriver
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	closer io.Closer
}

// NewRootCmd creates the top-level "formbuilder" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build, fill and export forms from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}

	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().String(flagDraft, DefaultDraftPath, "path of the working draft")

	root.AddCommand(
		newNewCmd(app),
		newFieldCmd(app),
		newRowCmd(app),
		newAnswerCmd(app),
		newPreviewCmd(app),
		newFillCmd(app),
		newSubmitCmd(app),
		newFormsCmd(app),
		newTemplatesCmd(app),
		newSubmissionsCmd(app),
		newTrashCmd(app),
		newThemeCmd(app),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := config.Load(config.ConfigPath(flags), nil)
	if err != nil {
		return err
	}
	cfg.ApplyFlags(flags)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Config = cfg

	if a.Log == nil {
		log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		a.Log = log
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.IDs == nil {
		a.IDs = session.NewID
	}
	if a.Store == nil {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		a.Store = store
		a.closer = store
		a.Log.Debug(cmd.Context(), "store opened", "path", cfg.DBPath)
	}
	if a.Catalog == nil {
		cat, err := catalog.New(a.Store, catalog.WithLogger(a.Log))
		if err != nil {
			return err
		}
		a.Catalog = cat
	}
	return nil
}

// Close releases the store opened by setup.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *App) sessionOptions() []session.Option {
	return []session.Option{
		session.WithIDGenerator(a.IDs),
		session.WithClock(a.Now),
		session.WithLogger(a.Log),
	}
}

func (a *App) storageOptions() []storage.Option {
	return []storage.Option{storage.WithClock(a.Now), storage.WithLogger(a.Log)}
}

func (a *App) interactive() bool {
	if a.Prompt != nil {
		return true
	}
	return a.IsInteractive != nil && a.IsInteractive()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var errNotInteractive = errors.New("cli: fill needs an interactive terminal")
