// Package export turns an invoice snapshot into a PDF. The preview is
// rasterised as one tall image and sliced across A4 pages.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/invoicegen/internal/config"
	"github.com/andy/invoicegen/internal/logger"
	"github.com/andy/invoicegen/internal/preview"
	"github.com/andy/invoicegen/internal/service"
	"github.com/jung-kurt/gofpdf"
)

const imageName = "invoice"

// PDFExporter writes <OutputDir>/<invoice number>.pdf
type PDFExporter struct {
	OutputDir    string
	PageWidthMM  float64
	PageHeightMM float64
	Scale        float64

	log *logger.Logger
}

func NewPDFExporter(cfg config.ExportConfig, log *logger.Logger) *PDFExporter {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFExporter{
		OutputDir:    cfg.OutputDir,
		PageWidthMM:  cfg.PageWidthMM,
		PageHeightMM: cfg.PageHeightMM,
		Scale:        cfg.Scale,
		log:          log,
	}
}

// Export renders snap and writes it next to previous exports. A partial file
// is removed on failure.
func (e *PDFExporter) Export(ctx context.Context, snap service.Snapshot) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(e.OutputDir, FileName(snap.Invoice.Details.Number))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := e.Render(ctx, snap, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// Render writes the PDF for snap to w
func (e *PDFExporter) Render(ctx context.Context, snap service.Snapshot, w io.Writer) error {
	pageWidth, pageHeight := e.PageWidthMM, e.PageHeightMM
	if pageWidth <= 0 {
		pageWidth = 210
	}
	if pageHeight <= 0 {
		pageHeight = 295
	}

	img, err := Rasterize(preview.Build(snap.Invoice, snap.Total), e.Scale)
	if err != nil {
		return fmt.Errorf("failed to rasterise invoice: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode page image: %w", err)
	}

	bounds := img.Bounds()
	imgHeight := float64(bounds.Dy()) * pageWidth / float64(bounds.Dx())
	offsets := PageOffsets(imgHeight, pageHeight)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Invoice "+snap.Invoice.Details.Number, true)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, &buf)

	for _, offset := range offsets {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.AddPage()
		pdf.ImageOptions(imageName, 0, offset, pageWidth, imgHeight, false, opts, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	e.log.Debug("pdf rendered",
		"number", snap.Invoice.Details.Number,
		"pages", len(offsets),
		"image_height_mm", imgHeight,
	)
	return nil
}

// PageOffsets returns the vertical image position on each page. The first
// page shows the top of the image; each further page shifts it up by one
// page height for as long as any height is left.
func PageOffsets(imgHeight, pageHeight float64) []float64 {
	offsets := []float64{0}
	if pageHeight <= 0 {
		return offsets
	}

	heightLeft := imgHeight - pageHeight
	for heightLeft >= 0 {
		offsets = append(offsets, heightLeft-imgHeight)
		heightLeft -= pageHeight
	}
	return offsets
}

// FileName returns "<number>.pdf" with path separators replaced
func FileName(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		number = "invoice"
	}
	number = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '-'
		}
		return r
	}, number)
	if number == "." || number == ".." {
		number = "invoice"
	}
	return number + ".pdf"
}
