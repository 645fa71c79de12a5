package ingest

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"id", "tecnico", "tecnico", "data_abertura", "satisfacao"},
		{"A-1", "Ana", "Bia", 45474, 5},
		{},
		{"A-2", "", "Caio", "2024-07-03", 3},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	if err := f.SetCellStyle(sheet, "D2", "D2", dateStyle); err != nil {
		t.Fatalf("set style: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeXLSX(t *testing.T) {
	rows, err := DecodeXLSX(buildWorkbook(t))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected blank row to be skipped, got %d rows", len(rows))
	}
	if v, _ := rows[0].Get("tecnico_1"); v != "Bia" {
		t.Fatalf("expected duplicate header suffix, got %+v", rows[0])
	}
	if v, _ := rows[0].Get("data_abertura"); v != "2024-07-01" {
		t.Fatalf("expected date cell as ISO string, got %v", v)
	}
	if v, _ := rows[0].Get("satisfacao"); v != "5" {
		t.Fatalf("expected raw numeric value, got %v", v)
	}
	if _, ok := rows[1].Get("tecnico"); ok {
		t.Fatalf("empty cell should be omitted, got %+v", rows[1])
	}
}

func TestDecodeXLSXRejectsGarbage(t *testing.T) {
	if _, err := DecodeXLSX([]byte("not a zip")); err == nil {
		t.Fatal("expected error for invalid workbook")
	}
}

func TestCustomDateFormat(t *testing.T) {
	for code, want := range map[string]bool{
		"dd/mm/yyyy":      true,
		"[$-416]d-mmm-yy": true,
		"hh:mm":           true,
		"0.00":            false,
		`"dias" 0`:        false,
		"#,##0":           false,
	} {
		if got := customDateFormat(code); got != want {
			t.Fatalf("%q: got %v, want %v", code, got, want)
		}
	}
}
