package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/chamados/dashboard/internal/models"
)

// DecodeXLSX reads the first sheet of a workbook. The first row is the
// header, blank rows are skipped and empty cells are left out of the row.
// Cells formatted as dates come back as ISO strings so the engine can parse
// them like any other text date.
func DecodeXLSX(data []byte) ([]models.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheets
	}
	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(grid) == 0 {
		return []models.RawRecord{}, nil
	}

	width := 0
	for _, r := range grid {
		if len(r) > width {
			width = len(r)
		}
	}
	header := make([]string, width)
	copy(header, grid[0])
	keys := uniqueHeaders(header)

	dates := newDateCells(f, sheet)
	rows := []models.RawRecord{}
	for ri, cells := range grid[1:] {
		row := models.RawRecord{}
		for ci, v := range cells {
			if strings.TrimSpace(v) == "" {
				continue
			}
			// grid[1:] starts at sheet row 2.
			row = append(row, models.Field{Key: keys[ci], Value: dates.value(ci+1, ri+2, v)})
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// dateCells converts serial numbers in date-formatted cells. Style lookups
// are cached per style id since a column usually shares one style.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	isDate   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, isDate: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) value(col, row int, raw string) string {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	styleID, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || !d.dateStyle(styleID) {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return raw
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

func (d *dateCells) dateStyle(id int) bool {
	if v, ok := d.isDate[id]; ok {
		return v
	}
	v := false
	if style, err := d.f.GetStyle(id); err == nil && style != nil {
		v = builtinDateFormat(style.NumFmt)
		if style.CustomNumFmt != nil {
			v = customDateFormat(*style.CustomNumFmt)
		}
	}
	d.isDate[id] = v
	return v
}

func builtinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

var formatLiterals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

func customDateFormat(code string) bool {
	code = strings.ToLower(formatLiterals.ReplaceAllString(code, ""))
	return strings.ContainsAny(code, "ydh") || strings.Contains(code, "mm")
}
