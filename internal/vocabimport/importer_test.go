package vocabimport

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildSheet writes an in-memory xlsx workbook with a header row followed by
// the given rows.
func buildSheet(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	all := append([][]string{{"Word", "Meaning", "Example", "Category", "Difficulty"}}, rows...)
	for i, row := range all {
		for j, v := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellStr(sheet, cellName, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestParse(t *testing.T) {
	buf := buildSheet(t, [][]string{
		{"Apple", "a fruit", "I ate an apple.", "food", "easy"},
		{"  zebra ", "an animal", "", "animals", "medium"},
		{"", "orphaned meaning"},
		{"apple", "duplicate"},
		{"short"},
	})

	res, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if res.Rows != 5 {
		t.Errorf("rows = %d, want 5", res.Rows)
	}
	if len(res.Words) != 3 {
		t.Fatalf("words = %d, want 3 (%+v)", len(res.Words), res.Words)
	}
	if len(res.Skipped) != 2 {
		t.Errorf("skipped = %v, want 2 entries", res.Skipped)
	}

	first := res.Words[0]
	if first.Word != "Apple" || first.Meaning != "a fruit" || first.Category != "food" {
		t.Errorf("first word mismatch: %+v", first)
	}
	// Sheet order is preserved; cells are trimmed.
	if res.Words[1].Word != "zebra" {
		t.Errorf("second word = %q, want %q", res.Words[1].Word, "zebra")
	}
	// A row with only a word cell still imports.
	if res.Words[2].Word != "short" || res.Words[2].Meaning != "" {
		t.Errorf("third word mismatch: %+v", res.Words[2])
	}
}

func TestParse_NotAWorkbook(t *testing.T) {
	if _, err := Parse(bytes.NewReader([]byte("not xlsx"))); err == nil {
		t.Fatal("expected error for garbage input")
	}
}
