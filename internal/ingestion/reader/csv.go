package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
)

// extractCSV streams the file row by row so a large calendar export never has
// to sit fully materialized as parsed records and as raw text twice.
func extractCSV(path string) (Extracted, error) {
	f, err := os.Open(path)
	if err != nil {
		return Extracted{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	var text strings.Builder
	r := csv.NewReader(io.TeeReader(f, &text))
	r.FieldsPerRecord = -1 //agency exports are rarely rectangular

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Extracted{Text: ""}, nil
		}
		return Extracted{}, fmt.Errorf("failed to read csv header: %w", err)
	}

	var rows []commonModels.Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Extracted{}, fmt.Errorf("failed to parse csv row: %w", err)
		}
		rows = append(rows, rowFromRecord(headers, record))
	}

	return Extracted{Text: text.String(), Rows: rows}, nil
}

func rowFromRecord(headers []string, record []string) commonModels.Row {
	row := make(commonModels.Row, len(headers))
	for i, h := range headers {
		if i < len(record) {
			row[strings.TrimSpace(h)] = record[i]
		}
	}
	return row
}
