package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/session"
)

const flagDraft = "draft"

func draftPath(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString(flagDraft)
	if err != nil || path == "" {
		return DefaultDraftPath
	}
	return path
}

func readDraft(path string) (session.Draft, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.Draft{}, fmt.Errorf("cli: no draft at %s, run `formbuilder new` first", path)
	}
	if err != nil {
		return session.Draft{}, fmt.Errorf("cli: read draft: %w", err)
	}
	var d session.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return session.Draft{}, fmt.Errorf("cli: parse draft %s: %w", path, err)
	}
	return d, nil
}

func writeDraft(path string, d session.Draft) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("cli: encode draft: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("cli: write draft: %w", err)
	}
	return nil
}

// builderFromDraft loads the draft at the command's draft path into a
// builder session.
func (a *App) builderFromDraft(cmd *cobra.Command) (*session.Builder, session.Draft, error) {
	d, err := readDraft(draftPath(cmd))
	if err != nil {
		return nil, session.Draft{}, err
	}
	b := session.NewBuilder(a.Store, a.sessionOptions()...)
	b.LoadDraft(d)
	return b, d, nil
}

// editDraft applies fn to the draft and writes it back. The template id
// of the draft survives the builder round trip.
func (a *App) editDraft(cmd *cobra.Command, fn func(*session.Builder) error) (*session.Builder, error) {
	b, d, err := a.builderFromDraft(cmd)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	next := b.Draft()
	next.TemplateID = d.TemplateID
	return b, writeDraft(draftPath(cmd), next)
}
