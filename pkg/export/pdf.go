package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 14.0
	pdfTitleY     = 15.0
	pdfTableY     = 20.0
	pdfCellHeight = 8.0
)

// writePDF draws the title at 14pt followed by a one row table.
func writePDF(w io.Writer, rec Record) error {
	headers, values := Table(rec)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfTableY, pdfMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = DefaultPDFTitle
	}
	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(pdfMargin, pdfTitleY, tr(title))

	if len(headers) > 0 {
		pageWidth, _ := pdf.GetPageSize()
		cellWidth := (pageWidth - 2*pdfMargin) / float64(len(headers))

		pdf.SetXY(pdfMargin, pdfTableY)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range headers {
			pdf.CellFormat(cellWidth, pdfCellHeight, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		for _, v := range values {
			pdf.CellFormat(cellWidth, pdfCellHeight, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}
