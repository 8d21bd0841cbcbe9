// Package ingest turns resume files into plain text for extraction.
// Text and markdown resumes are read directly; PDF resumes go through
// a configurable text extractor: the local pdftotext binary, or the
// Mistral OCR API for scanned documents.
package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/hirelens/screening-cli/internal/config"
)

// PDFReader extracts text content from PDF resumes.
type PDFReader interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// NewPDFReader creates a PDFReader based on config.
func NewPDFReader(cfg config.IngestConfig) (PDFReader, error) {
	switch cfg.OCRProvider {
	case "local", "":
		return NewPdfToText(cfg.PdfToTextPath), nil
	case "mistral":
		if cfg.MistralKey == "" {
			return nil, eris.New("ingest: mistral provider requires mistral_key")
		}
		return NewMistralOCR(cfg.MistralKey, ""), nil
	default:
		return nil, eris.Errorf("ingest: unknown OCR provider %q", cfg.OCRProvider)
	}
}

// ReadResume returns the plain text of a resume file, routing PDFs
// through the given reader.
func ReadResume(ctx context.Context, pdf PDFReader, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		if pdf == nil {
			return "", eris.Errorf("ingest: no PDF reader configured for %s", path)
		}
		return pdf.ExtractText(ctx, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "ingest: read resume %s", path)
	}
	return string(data), nil
}
