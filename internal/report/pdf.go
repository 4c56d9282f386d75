package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/OldStager01/attrition-advisor/pkg/models"
)

const (
	pageMargin = 20.0
	lineHeight = 7.0
)

// PDFRenderer lays a report out on a single A4 page.
type PDFRenderer struct {
	Compress bool
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Compress: true}
}

func (r *PDFRenderer) Render(rep *Report) ([]byte, error) {
	if rep == nil {
		return nil, ErrEmptyResult
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle(rep.Title, true)
	pdf.SetSubject("Prediction "+rep.PredictionID, true)
	pdf.SetCreator("attrition-advisor", true)
	pdf.SetCreationDate(rep.GeneratedAt)
	pdf.AddPage()

	// Core fonts are cp1252; config and report text is UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(rep.Title), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 12)
	for _, f := range rep.Fields {
		pdf.CellFormat(0, lineHeight, tr(fmt.Sprintf("- %s: %s", f.Label, f.Value)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, lineHeight, tr("Predicted Risk: "+rep.RiskTier), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr("Probability: "+rep.Probability), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, lineHeight, "Recommendations:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for _, rec := range rep.Recommendations {
		pdf.MultiCell(0, lineHeight, tr("- "+rec), "", "L", false)
	}

	if rep.Footer != "" {
		pdf.SetY(-pageMargin - lineHeight)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, lineHeight, tr(rep.Footer), "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Exporter builds and renders a report for a finished prediction.
type Exporter struct {
	opts     Options
	renderer *PDFRenderer
}

func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts, renderer: NewPDFRenderer()}
}

func (e *Exporter) Export(result *models.PredictionResult) ([]byte, error) {
	rep, err := Build(result, e.opts)
	if err != nil {
		return nil, err
	}
	return e.renderer.Render(rep)
}
