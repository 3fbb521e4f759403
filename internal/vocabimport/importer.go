// Package vocabimport parses vocabulary sheets (xlsx) into domain words.
// The expected layout is one word per row: word, meaning, example, category,
// difficulty. The first row is a header and is skipped.
package vocabimport

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tuantran92/spelling-bee/internal/domain"
)

// Result summarizes one parse: how many rows were seen, kept, and why the
// rest were dropped.
type Result struct {
	Rows    int
	Words   []domain.VocabWord
	Skipped []string
}

// Parse reads an xlsx sheet from r. Rows with an empty word cell are skipped
// and reported; duplicate words keep the first occurrence.
func Parse(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	res := &Result{}
	seen := map[string]bool{}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		res.Rows++

		w := domain.VocabWord{
			Word:       cell(row, 0),
			Meaning:    cell(row, 1),
			Example:    cell(row, 2),
			Category:   cell(row, 3),
			Difficulty: cell(row, 4),
		}

		key := w.Key()
		if key == "" {
			res.Skipped = append(res.Skipped, fmt.Sprintf("row %d: empty word", i+1))
			continue
		}
		if seen[key] {
			res.Skipped = append(res.Skipped, fmt.Sprintf("row %d: duplicate word %q", i+1, key))
			continue
		}
		seen[key] = true
		res.Words = append(res.Words, w)
	}

	return res, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
