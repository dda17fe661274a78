package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// recordKind describes one stored list for the generic record commands.
type recordKind[T any, P storage.Record[T]] struct {
	noun    string
	open    func(*App) *storage.Collection[T, P]
	headers []string
	row     func(T) []string
	// record is nil for lists that cannot be exported.
	record func(T) export.Record
}

var formRecords = recordKind[model.FormSubmission, *model.FormSubmission]{
	noun: "form",
	open: func(a *App) *storage.Collection[model.FormSubmission, *model.FormSubmission] {
		return storage.Forms(a.Store, a.storageOptions()...)
	},
	headers: []string{"ID", "TITLE", "SUBMITTED", "ANSWERS"},
	row: func(s model.FormSubmission) []string {
		return []string{s.ID, s.Title, s.Timestamp, strconv.Itoa(answerCount(s.Responses))}
	},
	record: export.FromForm,
}

var submissionRecords = recordKind[model.TemplateSubmission, *model.TemplateSubmission]{
	noun: "submission",
	open: func(a *App) *storage.Collection[model.TemplateSubmission, *model.TemplateSubmission] {
		return storage.TemplateSubmissions(a.Store, a.storageOptions()...)
	},
	headers: []string{"ID", "TITLE", "TEMPLATE", "SUBMITTED", "ANSWERS"},
	row: func(s model.TemplateSubmission) []string {
		return []string{s.ID, s.Title, s.TemplateID, s.SubmittedAt, strconv.Itoa(answerCount(s.Responses))}
	},
	record: export.FromTemplateSubmission,
}

var templateRecords = recordKind[model.SavedTemplate, *model.SavedTemplate]{
	noun: "template",
	open: func(a *App) *storage.Collection[model.SavedTemplate, *model.SavedTemplate] {
		return storage.Templates(a.Store, a.storageOptions()...)
	},
	headers: []string{"ID", "TITLE", "FIELDS"},
	row: func(t model.SavedTemplate) []string {
		return []string{t.ID, t.Title, strconv.Itoa(len(t.Fields))}
	},
}

func answerCount(r *model.FlatResponses) int {
	if r == nil {
		return 0
	}
	return r.Len()
}

func newFormsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Manage submitted builder forms",
	}
	cmd.AddCommand(recordCommands(app, formRecords)...)
	return cmd
}

func newSubmissionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "Manage submitted templates",
	}
	cmd.AddCommand(recordCommands(app, submissionRecords)...)
	return cmd
}

// recordCommands builds list, show, export, delete, restore and purge for
// a stored list.
func recordCommands[T any, P storage.Record[T]](app *App, kind recordKind[T, P]) []*cobra.Command {
	cmds := []*cobra.Command{
		{
			Use:   "list",
			Short: "List " + kind.noun + "s, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				items := kind.open(app).Active(commandContext(cmd))
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), dim("No "+kind.noun+"s yet."))
					return nil
				}
				rows := make([][]string, len(items))
				for i, item := range items {
					rows[i] = kind.row(item)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(kind.headers, rows))
				return nil
			},
		},
		lifecycleCmd(app, kind, "delete", "Move a "+kind.noun+" to the trash", "Moved to trash",
			(*storage.Collection[T, P]).SoftDelete),
		lifecycleCmd(app, kind, "restore", "Take a "+kind.noun+" out of the trash", "Restored",
			(*storage.Collection[T, P]).Restore),
		lifecycleCmd(app, kind, "purge", "Delete a "+kind.noun+" permanently", "Purged",
			(*storage.Collection[T, P]).Purge),
	}
	if kind.record != nil {
		cmds = append(cmds, showCmd(app, kind), exportCmd(app, kind))
	}
	return cmds
}

func lifecycleCmd[T any, P storage.Record[T]](
	app *App,
	kind recordKind[T, P],
	use, short, done string,
	op func(*storage.Collection[T, P], context.Context, string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := op(kind.open(app), commandContext(cmd), args[0]); err != nil {
				return fmt.Errorf("cli: %s %s %s: %w", use, kind.noun, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", success(done), args[0])
			return nil
		},
	}
}

func showCmd[T any, P storage.Record[T]](app *App, kind recordKind[T, P]) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print the answers of a " + kind.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := kind.open(app).Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("cli: %s %s: %w", kind.noun, args[0], err)
			}
			rec := kind.record(item)
			headers, values := export.Table(rec)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, header(rec.Title))
			for i := range headers {
				fmt.Fprintf(out, "%s: %s\n", bold(headers[i]), values[i])
			}
			return nil
		},
	}
}

func exportCmd[T any, P storage.Record[T]](app *App, kind recordKind[T, P]) *cobra.Command {
	var formatName, out string
	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export the answers of a " + kind.noun + " as csv, xlsx, pdf or json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			item, err := kind.open(app).Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("cli: %s %s: %w", kind.noun, args[0], err)
			}
			rec := kind.record(item)
			if out == "-" {
				return export.Export(cmd.OutOrStdout(), format, rec)
			}
			path := out
			if path == "" {
				path = export.Filename(rec.Title, format)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("cli: create export: %w", err)
			}
			if err := export.Export(f, format, rec); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("cli: close export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", success("Exported"), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", string(export.CSV), "csv, xlsx, pdf or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file, "-" for stdout (default "<title>_responses.<ext>")`)
	return cmd
}

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse built-in templates and manage saved ones",
	}
	// The generic list only knows saved templates.
	for _, c := range recordCommands(app, templateRecords) {
		if c.Name() != "list" {
			cmd.AddCommand(c)
		}
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List built-in and saved templates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := commandContext(cmd)
				var rows [][]string
				for _, id := range app.Catalog.IDs() {
					t, err := app.Catalog.Lookup(ctx, id)
					if err != nil {
						return err
					}
					rows = append(rows, []string{t.ID, t.Title, strconv.Itoa(len(t.Fields)), "built-in"})
				}
				for _, t := range templateRecords.open(app).Active(ctx) {
					rows = append(rows, []string{t.ID, t.Title, strconv.Itoa(len(t.Fields)), "saved"})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "TITLE", "FIELDS", "SOURCE"}, rows))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show ID",
			Short: "Print the fields of a template",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := app.Catalog.Lookup(commandContext(cmd), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), header(t.Title))
				fmt.Fprint(cmd.OutOrStdout(), fieldOutline(t.Fields))
				return nil
			},
		},
		newTemplateSaveCmd(app),
	)
	return cmd
}

func newTemplateSaveCmd(app *App) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the draft fields as a reusable template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := readDraft(draftPath(cmd))
			if err != nil {
				return err
			}
			form := session.NewTemplateForm(app.Store, app.Catalog, app.sessionOptions()...)
			form.LoadDraft(d)
			if cmd.Flags().Changed("title") {
				form.Title = title
			}
			saved, err := form.SaveAsTemplate(commandContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q as %s\n", success("Saved template"), saved.Title, saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "template title (defaults to the draft title)")
	return cmd
}

func newTrashCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trash",
		Short: "List everything in the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			var rows [][]string
			for _, s := range formRecords.open(app).Trash(ctx) {
				rows = append(rows, []string{"forms", s.ID, s.Title, deletedAt(s.SoftDelete)})
			}
			for _, s := range submissionRecords.open(app).Trash(ctx) {
				rows = append(rows, []string{"submissions", s.ID, s.Title, deletedAt(s.SoftDelete)})
			}
			for _, t := range templateRecords.open(app).Trash(ctx) {
				rows = append(rows, []string{"templates", t.ID, t.Title, deletedAt(t.SoftDelete)})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), dim("Trash is empty."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"LIST", "ID", "TITLE", "DELETED"}, rows))
			return nil
		},
	}
}

func deletedAt(d model.SoftDelete) string {
	if d.DeletedAt == 0 {
		return ""
	}
	return model.Timestamp(time.UnixMilli(d.DeletedAt))
}

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the stored theme preference",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), storage.Theme(commandContext(cmd), app.Store))
				return nil
			},
		},
		&cobra.Command{
			Use:       "set light|dark",
			Short:     "Store the theme preference",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{storage.ThemeLight, storage.ThemeDark},
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := storage.SetTheme(commandContext(cmd), app.Store, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", success("Theme set to"), args[0])
				return nil
			},
		},
	)
	return cmd
}
