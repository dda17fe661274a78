package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported answers.
const SheetName = "Form Responses"

func writeXLSX(w io.Writer, rec Record) error {
	headers, values := Table(rec)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("export: name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return fmt.Errorf("export: write header row: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A2", &values); err != nil {
		return fmt.Errorf("export: write value row: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write xlsx: %w", err)
	}
	return nil
}
