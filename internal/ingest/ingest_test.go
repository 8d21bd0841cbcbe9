package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/screening-cli/internal/config"
)

func TestNewPDFReader_Local(t *testing.T) {
	r, err := NewPDFReader(config.IngestConfig{OCRProvider: "local", PdfToTextPath: "/usr/bin/pdftotext"})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, r)
}

func TestNewPDFReader_LocalDefault(t *testing.T) {
	r, err := NewPDFReader(config.IngestConfig{})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, r)
}

func TestNewPDFReader_MistralMissingKey(t *testing.T) {
	_, err := NewPDFReader(config.IngestConfig{OCRProvider: "mistral"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral provider requires mistral_key")
}

func TestNewPDFReader_MistralWithKey(t *testing.T) {
	r, err := NewPDFReader(config.IngestConfig{OCRProvider: "mistral", MistralKey: "test-key"})
	require.NoError(t, err)
	assert.IsType(t, &MistralOCR{}, r)
}

func TestNewPDFReader_UnknownProvider(t *testing.T) {
	_, err := NewPDFReader(config.IngestConfig{OCRProvider: "tesseract"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown OCR provider "tesseract"`)
}

func TestReadResume_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jordan Reyes\nSenior Engineer"), 0o644))

	text, err := ReadResume(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes\nSenior Engineer", text)
}

func TestReadResume_Missing(t *testing.T) {
	_, err := ReadResume(context.Background(), nil, filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read resume")
}

func TestReadResume_PDFWithoutReader(t *testing.T) {
	_, err := ReadResume(context.Background(), nil, "resume.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no PDF reader configured")
}

func TestReadResume_PDFRoutesToReader(t *testing.T) {
	// Fake pdftotext script so the dispatch path is exercised end to end.
	tmpDir := t.TempDir()
	fakeBin := filepath.Join(tmpDir, "pdftotext")
	script := "#!/bin/sh\necho 'Extracted resume text'\n"
	require.NoError(t, os.WriteFile(fakeBin, []byte(script), 0o755))

	text, err := ReadResume(context.Background(), NewPdfToText(fakeBin), filepath.Join(tmpDir, "resume.PDF"))
	require.NoError(t, err)
	assert.Contains(t, text, "Extracted resume text")
}

func TestPdfToText_BinPath(t *testing.T) {
	p := NewPdfToText("")
	assert.Equal(t, "pdftotext", p.binPath)

	p = NewPdfToText("/custom/pdftotext")
	assert.Equal(t, "/custom/pdftotext", p.binPath)
}

func TestPdfToText_BinaryNotFound(t *testing.T) {
	p := NewPdfToText("/nonexistent/pdftotext")
	_, err := p.ExtractText(context.Background(), "/tmp/test.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext failed")
}

func writeFakePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test content"), 0o644))
	return path
}

func TestMistralOCR_ExtractText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req mistralOCRRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "document_url", req.Document.Type)
		assert.Contains(t, req.Document.DocumentURL, "data:application/pdf;base64,")

		resp := mistralOCRResponse{
			Pages: []mistralOCRPage{
				{Index: 0, Markdown: "Jordan Reyes"},
				{Index: 1, Markdown: "Experience"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer srv.Close()

	m := &MistralOCR{apiKey: "test-key", model: "test-model", endpoint: srv.URL, client: &http.Client{}}

	text, err := m.ExtractText(context.Background(), writeFakePDF(t))
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes\n\nExperience", text)
}

func TestMistralOCR_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	m := &MistralOCR{apiKey: "bad-key", model: "test-model", endpoint: srv.URL, client: &http.Client{}}

	_, err := m.ExtractText(context.Background(), writeFakePDF(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral API returned 401")
}

func TestMistralOCR_FileNotFound(t *testing.T) {
	m := NewMistralOCR("key", "model")
	_, err := m.ExtractText(context.Background(), "/nonexistent/resume.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read PDF")
}

func TestMistralOCR_DefaultModel(t *testing.T) {
	m := NewMistralOCR("key", "")
	assert.Equal(t, defaultMistralModel, m.model)
}
