package export

import (
	"fmt"
	"io"
	"strings"
)

// writeCSV quotes every cell, doubling embedded quotes, and joins the two
// rows with "\n".
func writeCSV(w io.Writer, rec Record) error {
	headers, values := Table(rec)
	content := quoteRow(headers) + "\n" + quoteRow(values)
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return nil
}

func quoteRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
