package reader

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
)

// extractPDF pulls the text layer only. Scanned/image-only PDFs will come
// back empty or as garbage, silently - there is no OCR fallback.
func extractPDF(path string) (Extracted, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return Extracted{}, fmt.Errorf("failed to open pdf: %w", err)
	}

	var text strings.Builder
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// keep going, one bad page should not sink the document
			continue
		}
		text.WriteString(content)
		text.WriteString("\n")
	}
	return Extracted{Text: text.String()}, nil
}

// protectExtract guards GetPlainText with a timeout - malformed content
// streams have been seen to spin the parser indefinitely.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("pdf page extraction timeout")
	}
}
