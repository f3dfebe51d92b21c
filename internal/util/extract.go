package util

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// AllowedResumeExtensions are the file types ExtractText understands.
var AllowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// PDFReader is a remote OCR service used for scanned PDFs.
type PDFReader interface {
	ReadPDF(ctx context.Context, data []byte) (string, error)
}

type TextExtractor struct {
	ocr    PDFReader
	logger *zap.Logger
}

// NewTextExtractor returns an extractor. ocr may be nil, in which case scanned
// PDFs go through the local tesseract binary.
func NewTextExtractor(ocr PDFReader, log *zap.Logger) *TextExtractor {
	return &TextExtractor{ocr: ocr, logger: logger.OrNop(log)}
}

// ExtractText returns the plain text of a resume file, picking the reader by
// the file extension of name.
func (e *TextExtractor) ExtractText(ctx context.Context, name string, data []byte) (string, error) {
	const op = "util.ExtractText"
	ext := strings.ToLower(filepath.Ext(name))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = e.extractPDF(ctx, data)
	case ".docx":
		text, err = ExtractDOCX(data)
	case ".txt":
		if !utf8.Valid(data) {
			return "", apperr.Errorf(apperr.InvalidInput, op, "%s is not valid UTF-8 text", name)
		}
		text = string(data)
	default:
		return "", apperr.Errorf(apperr.UnsupportedMedia, op, "unsupported file type %q", ext)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.Errorf(apperr.InvalidInput, op, "no text extracted from %s", name)
	}
	e.logger.Debug("extracted resume text", zap.String("file", name), zap.Int("chars", len(text)))
	return text, nil
}

func (e *TextExtractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	const op = "util.extractPDF"
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", apperr.New(apperr.InvalidInput, op, fmt.Errorf("failed to open PDF: %w", err))
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			e.logger.Warn("pdf text layer unreadable", zap.Int("page", n+1), zap.Error(err))
			continue
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}
	if text := strings.TrimSpace(fullText.String()); text != "" {
		return text, nil
	}

	// no text layer, the PDF is most likely a scan
	if e.ocr != nil {
		e.logger.Info("pdf has no text layer, using document intelligence")
		text, err := e.ocr.ReadPDF(ctx, data)
		if err != nil {
			return "", apperr.New(apperr.Upstream, op, err)
		}
		return text, nil
	}

	e.logger.Info("pdf has no text layer, using tesseract")
	text, err := e.ocrPages(ctx, doc)
	if err != nil {
		return "", apperr.New(apperr.Internal, op, err)
	}
	return text, nil
}

// ocrPages renders every page to PNG and runs tesseract on it.
func (e *TextExtractor) ocrPages(ctx context.Context, doc *fitz.Document) (string, error) {
	if err := checkTesseract(ctx); err != nil {
		return "", fmt.Errorf("tesseract check failed: %w", err)
	}

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
			e.logger.Warn("ocr page skipped", zap.Error(lastErr))
			continue
		}

		pageText, err := ocrImage(ctx, img)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			e.logger.Warn("ocr page skipped", zap.Error(lastErr))
			continue
		}
		e.logger.Debug("ocr page done", zap.Int("page", n+1), zap.Int("chars", len(pageText)))

		if len(pageText) > 0 {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if len(result) == 0 {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
		}
		return "", fmt.Errorf("no text extracted from PDF (PDF might be empty or images are unreadable)")
	}
	return result, nil
}

func ocrImage(ctx context.Context, img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}

	out, err := exec.CommandContext(ctx, "tesseract", tmpPath, "stdout", "-l", "eng").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "tesseract", "-v").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w\nOutput: %s", err, string(out))
	}
	return nil
}

// ExtractDOCX returns the text runs of word/document.xml, one paragraph per line.
func ExtractDOCX(data []byte) (string, error) {
	const op = "util.ExtractDOCX"
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperr.New(apperr.InvalidInput, op, fmt.Errorf("not a docx archive: %w", err))
	}
	var docFile *zip.File
	for _, f := range r.File {
		if strings.EqualFold(f.Name, "word/document.xml") {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", apperr.Errorf(apperr.InvalidInput, op, "word/document.xml missing")
	}
	rc, err := docFile.Open()
	if err != nil {
		return "", apperr.New(apperr.InvalidInput, op, err)
	}
	defer rc.Close()
	return docxText(rc), nil
}

func docxText(r io.Reader) string {
	dec := xml.NewDecoder(r)
	var buf strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err == nil {
					buf.WriteString(text)
				}
			case "tab":
				buf.WriteByte('\t')
			case "br":
				buf.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
