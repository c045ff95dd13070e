// Package extract turns an uploaded lecture document into plain text.
// Only the embedded text layer is read; scanned (image-only) PDFs come
// back empty and are reported as such.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNotPDF is returned for files without a .pdf extension.
	ErrNotPDF = errors.New("not a PDF file")

	// ErrNoText is returned when no text could be extracted; the document
	// is likely a scanned/image-only PDF.
	ErrNoText = errors.New("no extractable text (likely a scanned/image-only document)")
)

// PDF extracts the text layer of the PDF at path, pages joined by blank
// lines.
func PDF(path string) (string, error) {
	if !strings.EqualFold(strings.TrimPrefix(ext(path), "."), "pdf") {
		return "", fmt.Errorf("%w: %s", ErrNotPDF, path)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var pages []string

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	out := strings.Join(pages, "\n\n")
	if strings.TrimSpace(out) == "" {
		return "", ErrNoText
	}
	return out, nil
}

func ext(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i:]
	}
	return ""
}
