package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/tree"
)

func newNewCmd(app *App) *cobra.Command {
	var title, templateID string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new draft, empty or from a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			var d session.Draft
			if templateID != "" {
				form := session.NewTemplateForm(app.Store, app.Catalog, app.sessionOptions()...)
				if err := form.Load(ctx, templateID); err != nil {
					return err
				}
				if title != "" {
					form.Title = title
				}
				d = form.Draft()
			} else {
				b := session.NewBuilder(app.Store, app.sessionOptions()...)
				if title != "" {
					b.Title = title
				}
				b.ShortForm = app.Config.ShortForm
				d = b.Draft()
			}

			path := draftPath(cmd)
			if err := writeDraft(path, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d fields)\n", success("Created draft"), path, len(d.Fields))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "form title")
	cmd.Flags().StringVar(&templateID, "template", "", "start from a built-in or saved template id")
	return cmd
}

func newFieldCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Edit the fields of the draft",
	}
	cmd.AddCommand(
		newFieldAddCmd(app),
		newFieldUpdateCmd(app),
		newFieldDeleteCmd(app),
		newFieldMoveCmd(app),
		newFieldListCmd(app),
	)
	return cmd
}

// registerPatchFlags adds the flags that edit field attributes.
func registerPatchFlags(fs *pflag.FlagSet) {
	fs.String("label", "", "field label")
	fs.Bool("required", false, "answer is required")
	fs.Bool("on-short-form", false, "show the field on the short form")
	fs.StringSlice("options", nil, "option labels of a choice field")
}

// patchField applies the patch flags that were set on the command line.
func patchField(f model.Field, fs *pflag.FlagSet) model.Field {
	base := f.Common()
	if fs.Changed("label") {
		base.Label, _ = fs.GetString("label")
	}
	if fs.Changed("required") {
		base.Required, _ = fs.GetBool("required")
	}
	if fs.Changed("on-short-form") {
		base.DisplayOnShortForm, _ = fs.GetBool("on-short-form")
	}
	f = model.WithBase(f, base)

	if in, ok := f.(model.Input); ok && fs.Changed("options") && in.Kind.HasOptions() {
		labels, _ := fs.GetStringSlice("options")
		in.Options = model.OptionsFromLabels(labels...)
		return in
	}
	return f
}

func newFieldAddCmd(app *App) *cobra.Command {
	var parent string
	var row, column int
	cmd := &cobra.Command{
		Use:   "add KIND",
		Short: "Add a field (" + kindList() + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := model.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("cli: unknown field kind %q, want one of %s", args[0], kindList())
			}
			var added model.Field
			_, err := app.editDraft(cmd, func(b *session.Builder) error {
				at, err := position(b.Fields, parent, row, column)
				if err != nil {
					return err
				}
				f, err := b.AddField(kind, at)
				if err != nil {
					return err
				}
				added = patchField(f, cmd.Flags())
				return b.UpdateField(added)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", success("Added"), kind, added.FieldID())
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "row layout or section id to add into")
	cmd.Flags().IntVar(&row, "row", 0, "section row index")
	cmd.Flags().IntVar(&column, "column", 0, "column index")
	registerPatchFlags(cmd.Flags())
	return cmd
}

func position(fields []model.Field, parent string, row, column int) (tree.Position, error) {
	if parent == "" {
		return tree.Root, nil
	}
	f, ok := tree.Find(fields, parent)
	if !ok {
		return tree.Position{}, fmt.Errorf("cli: parent %q: %w", parent, tree.ErrNotFound)
	}
	if f.FieldKind() == model.KindSection {
		return tree.InSection(parent, row, column), nil
	}
	return tree.InColumn(parent, column), nil
}

func kindList() string {
	kinds := model.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func newFieldUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the label, flags or options of a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.editDraft(cmd, func(b *session.Builder) error {
				f, ok := tree.Find(b.Fields, args[0])
				if !ok {
					return fmt.Errorf("cli: field %q: %w", args[0], tree.ErrNotFound)
				}
				return b.UpdateField(patchField(f, cmd.Flags()))
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", success("Updated"), args[0])
			return nil
		},
	}
	registerPatchFlags(cmd.Flags())
	return cmd
}

func newFieldDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a field and everything nested in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.editDraft(cmd, func(b *session.Builder) error {
				return b.DeleteField(args[0])
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", success("Deleted"), args[0])
			return nil
		},
	}
}

func newFieldMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move a root field to another position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("cli: bad index %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("cli: bad index %q", args[1])
			}
			_, err = app.editDraft(cmd, func(b *session.Builder) error {
				return b.Move(from, to)
			})
			return err
		},
	}
}

func newFieldListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the field tree of the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, d, err := app.builderFromDraft(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, header(b.Title))
			if d.TemplateID != "" {
				fmt.Fprintln(out, dim("template "+d.TemplateID))
			}
			fmt.Fprint(out, fieldOutline(b.Fields))
			return nil
		},
	}
}

func fieldOutline(fields []model.Field) string {
	var sb strings.Builder
	tree.Walk(fields, func(f model.Field, depth int) bool {
		line := fmt.Sprintf("%s%s  %s  %s", strings.Repeat("  ", depth), bold(f.FieldID()), dim(string(f.FieldKind())), f.Common().Label)
		if row, ok := f.(model.RowLayout); ok {
			line += dim(" [" + tree.FormatLayout(row.Widths()) + "]")
		}
		if f.Common().Required {
			line += failure(" *")
		}
		sb.WriteString(line + "\n")
		return true
	})
	return sb.String()
}

func newRowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Edit the columns of a row layout",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add-column ROW",
			Short: "Append an empty half-width column",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := app.editDraft(cmd, func(b *session.Builder) error {
					return b.AddColumn(args[0])
				})
				return err
			},
		},
		&cobra.Command{
			Use:   "remove-column ROW INDEX",
			Short: "Remove a column and its fields",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("cli: bad index %q", args[1])
				}
				_, err = app.editDraft(cmd, func(b *session.Builder) error {
					return b.RemoveColumn(args[0], index)
				})
				return err
			},
		},
		&cobra.Command{
			Use:   "relayout ROW SPEC",
			Short: `Set column widths, e.g. "1/3+2/3"`,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := app.editDraft(cmd, func(b *session.Builder) error {
					return b.Relayout(args[0], args[1])
				})
				return err
			},
		},
	)
	return cmd
}

func newAnswerCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "answer ID [VALUE...]",
		Short: "Answer a field of the draft preview",
		Long: "Answer a field of the draft preview. Text fields join the values with spaces,\n" +
			"dropdowns and radio groups take one option value, checkboxes and tags take any number.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.editDraft(cmd, func(b *session.Builder) error {
				node, ok := findPreviewNode(b.Preview(), args[0])
				if !ok {
					return fmt.Errorf("cli: field %q is not in the preview", args[0])
				}
				return answerNode(node, args[1:])
			})
			return err
		},
	}
}

func findPreviewNode(nodes []render.Node, id string) (render.Node, bool) {
	var (
		found render.Node
		ok    bool
	)
	for _, root := range nodes {
		root.Walk(func(n render.Node) {
			if ok || n.FieldID != id {
				return
			}
			switch n.Kind {
			case render.NodeRow, render.NodeColumn, render.NodeSection:
				return
			}
			found, ok = n, true
		})
	}
	return found, ok
}

func answerNode(n render.Node, values []string) error {
	switch n.Kind {
	case render.NodeCheckboxes, render.NodeChips:
		n.SetSelected(values)
	case render.NodeSelect, render.NodeRadios:
		if len(values) > 1 {
			return fmt.Errorf("cli: %q takes a single value", n.Label)
		}
		value := ""
		if len(values) == 1 {
			value = values[0]
		}
		n.Choose(value)
	default:
		if !n.Editable() {
			return fmt.Errorf("cli: %q cannot be answered", n.Label)
		}
		n.Commit(strings.Join(values, " "))
	}
	return nil
}

func newPreviewCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the draft as HTML or text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, _, err := app.builderFromDraft(cmd)
			if err != nil {
				return err
			}
			output, err := app.renderPreview(cmd, b)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(output)
				return err
			}
			if err := os.WriteFile(out, output, 0o644); err != nil {
				return fmt.Errorf("cli: write preview: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", success("Wrote"), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func newFillCmd(app *App) *cobra.Command {
	var submit bool
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Answer the draft interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			ctx := commandContext(cmd)
			driver := app.promptDriver(cmd)

			b, err := app.editDraft(cmd, func(b *session.Builder) error {
				return app.fill(ctx, cmd, driver, b)
			})
			if err != nil {
				return err
			}

			if !submit {
				submit, err = driver.Confirm(ctx, confirmSubmit(b.Title))
				if err != nil {
					return err
				}
			}
			if !submit {
				fmt.Fprintln(cmd.OutOrStdout(), dim("Answers saved to the draft."))
				return nil
			}
			return app.submitDraft(cmd)
		},
	}
	cmd.Flags().BoolVar(&submit, "submit", false, "submit without asking")
	return cmd
}

func newSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Validate the draft answers and store the submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.submitDraft(cmd)
		},
	}
}

// submitDraft stores the draft answers, as a template submission when the
// draft came from a template and as a form submission otherwise.
func (a *App) submitDraft(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	d, err := readDraft(draftPath(cmd))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var (
		id     string
		fields []model.Field
	)
	if d.TemplateID != "" {
		form := session.NewTemplateForm(a.Store, a.Catalog, a.sessionOptions()...)
		form.LoadDraft(d)
		fields = form.Fields
		sub, serr := form.Submit(ctx)
		id, err = sub.ID, serr
	} else {
		b := session.NewBuilder(a.Store, a.sessionOptions()...)
		b.LoadDraft(d)
		fields = render.ShortForm(b.Fields, b.ShortForm)
		sub, serr := b.Submit(ctx)
		id, err = sub.ID, serr
	}

	var verr *session.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(out, failure("Please fill in the required fields:"))
		for _, label := range render.ErrorSummary(fields, verr.Errors) {
			fmt.Fprintf(out, "  - %s\n", label)
		}
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s\n", success("Submitted"), id)
	return nil
}
