// Package extract reads CV files into plain text. The evaluation engine only
// consumes the resulting string; it never touches the filesystem itself.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	// ErrNotFound indicates the document path does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUnreadable indicates the document exists but no text could be
	// extracted from it.
	ErrUnreadable = errors.New("document is unreadable")
)

// Extractor produces plain text from a document path, or a typed error.
type Extractor interface {
	Extract(path string) (string, error)
}

// FileExtractor reads PDF and plain-text files from the local filesystem.
type FileExtractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *FileExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileExtractor{logger: logger}
}

// Extract returns the document's text. PDF pages are extracted individually
// and joined with blank lines; any other extension is read as UTF-8 text.
func (e *FileExtractor) Extract(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return e.extractPDF(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	e.logger.Debug("extracted plain text document",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)

	return string(data), nil
}

func (e *FileExtractor) extractPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer file.Close()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("skipping unreadable pdf page",
				zap.String("path", path),
				zap.Int("page", i),
				zap.Error(err),
			)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("%w: %s: no extractable text", ErrUnreadable, path)
	}

	e.logger.Debug("extracted pdf document",
		zap.String("path", path),
		zap.Int("pages", len(pages)),
	)

	return strings.Join(pages, "\n\n"), nil
}
