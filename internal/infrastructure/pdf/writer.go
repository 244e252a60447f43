package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"report-agent/internal/application/port/output"
	"report-agent/internal/domain/entity"

	"github.com/jung-kurt/gofpdf"
)

var _ output.ReportWriterPort = (*Writer)(nil)

const noDataNotice = "No data found for this task."

// Writer lays the report out as a Letter-portrait PDF. The chart takes the
// first image slot; referenced images fill the rest of the budget.
type Writer struct {
	images output.ImageFetcherPort
	logger output.LoggerPort
}

func NewWriter(images output.ImageFetcherPort, logger output.LoggerPort) *Writer {
	return &Writer{
		images: images,
		logger: logger,
	}
}

func (w *Writer) Write(ctx context.Context, report entity.Report, outPath string) error {
	doc := gofpdf.New("P", "mm", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetTitle(tr(report.Task), false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.MultiCell(0, 8, tr("Task: "+report.Task), "", "L", false)

	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 5,
		fmt.Sprintf("Generated %s, run %s", report.Generated.Format("2006-01-02 15:04:05"), report.RunID),
		"", 1, "L", false, 0, "")
	doc.Ln(4)

	if report.Data.Title != "" {
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(0, 5, tr("Source: "+report.Data.Title), "", "L", false)
		doc.Ln(2)
	}

	if report.Data.Empty() {
		doc.SetFont("Helvetica", "I", 12)
		doc.MultiCell(0, 6, noDataNotice, "", "L", false)
	} else {
		w.writeBody(doc, tr, report.Data)
	}

	imagesUsed := 0
	if report.Chart != nil && len(report.Chart.PNG) > 0 {
		w.placeImage(doc, "chart", "PNG", report.Chart.PNG)
		imagesUsed++
	}
	for i, imageURL := range report.Data.Images {
		if imagesUsed >= entity.MaxReportImages {
			break
		}
		data, err := w.images.FetchImage(ctx, imageURL)
		if err != nil {
			w.logger.Warn("Skipping report image", "url", imageURL, "error", err.Error())
			continue
		}
		w.placeImage(doc, fmt.Sprintf("image-%d", i), "JPEG", data)
		imagesUsed++
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("compose pdf: %w", err)
	}

	if err := writeAtomic(doc, outPath); err != nil {
		return err
	}

	w.logger.Info("Report written", "path", outPath, "images", imagesUsed)
	return nil
}

func (w *Writer) writeBody(doc *gofpdf.Fpdf, tr func(string) string, data entity.ExtractedData) {
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 7, "Extracted Information", "", 1, "L", false, 0, "")
	doc.Ln(1)

	doc.SetFont("Helvetica", "", 11)
	for i, item := range data.Items {
		doc.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, item)), "", "L", false)
		doc.Ln(1)
	}

	if !data.Series.Empty() {
		doc.Ln(2)
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 7, "Values", "", 1, "L", false, 0, "")
		doc.Ln(1)

		doc.SetFont("Helvetica", "", 11)
		for _, p := range data.Series.Points {
			doc.MultiCell(0, 6, tr(fmt.Sprintf("%s: %g", p.Label, p.Value)), "", "L", false)
		}
	}
}

func (w *Writer) placeImage(doc *gofpdf.Fpdf, name, imageType string, data []byte) {
	opts := gofpdf.ImageOptions{ImageType: imageType}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	doc.Ln(4)
	doc.ImageOptions(name, 15, doc.GetY(), 120, 0, true, opts, 0, "")
	doc.Ln(4)
}

// writeAtomic renders into a temp file next to the destination and renames
// it into place, so a failed write never leaves a partial report behind.
func writeAtomic(doc *gofpdf.Fpdf, outPath string) error {
	dir := filepath.Dir(outPath)
	tmp, err := os.CreateTemp(dir, ".report-*.pdf")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()

	if err := doc.Output(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp report: %w", err)
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalize report: %w", err)
	}
	return nil
}
