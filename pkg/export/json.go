package export

import (
	"encoding/json"
	"fmt"
	"io"
)

func writeJSON(w io.Writer, rec Record) error {
	var payload any = rec
	if rec.Source != nil {
		payload = rec.Source
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("export: write json: %w", err)
	}
	return nil
}
