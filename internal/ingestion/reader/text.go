package reader

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
	"github.com/lu4p/cat"
)

// extractPlainText reads .txt, .docx, .rtf or .odt content as one string and
// heuristically splits it into sections so downstream classification has
// row-like records to look at.
func extractPlainText(path string) (Extracted, error) {
	text, err := cat.File(path)
	if err != nil {
		return Extracted{}, fmt.Errorf("failed to extract text content: %w", err)
	}

	var rows []commonModels.Row
	for _, section := range SplitSections(text) {
		rows = append(rows, commonModels.Row{
			"section": section.Heading,
			"content": section.Body,
		})
	}

	return Extracted{Text: text, Rows: rows}, nil
}

type Section struct {
	Heading string
	Body    string
}

// SplitSections groups lines under probable headers. A line is treated as a
// header when it is all-uppercase or carries a short "Label:" prefix.
func SplitSections(text string) []Section {
	var sections []Section
	current := Section{Heading: "Document"}
	var body strings.Builder

	flush := func() {
		current.Body = strings.TrimSpace(body.String())
		if current.Body != "" || len(sections) > 0 {
			sections = append(sections, current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isHeaderLine(trimmed) {
			flush()
			current = Section{Heading: trimmed}
			continue
		}
		body.WriteString(trimmed)
		body.WriteString("\n")
	}
	flush()
	return sections
}

func isHeaderLine(line string) bool {
	if idx := strings.Index(line, ":"); idx > 0 && idx < 40 {
		return true
	}

	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
