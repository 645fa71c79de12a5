package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chamados/dashboard/internal/models"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file type, send CSV, JSON, XLSX or PDF")
	ErrLegacyWorkbook    = errors.New("legacy .xls workbooks are not supported, save the file as .xlsx")
	ErrNotArray          = errors.New("JSON file must contain an array of objects")
	ErrMissingHeader     = errors.New("CSV file has no header row")
	ErrNoSheets          = errors.New("workbook has no sheets")
	ErrEmptyDocument     = errors.New("document is empty or has no readable text")
	ErrNoStructurer      = fmt.Errorf("%w: PDF import needs an AI provider", ErrUnsupportedFormat)
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatPDF  Format = "pdf"
)

func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "csv", "txt":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx":
		return FormatXLSX, nil
	case "xls":
		return FormatXLS, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Structurer turns unstructured document text into ticket rows.
type Structurer interface {
	StructureTickets(ctx context.Context, text string) ([]models.RawRecord, error)
}

// Decoder turns an uploaded file into rows for the analytics engine. The
// rows are fully materialized before Decode returns.
type Decoder struct {
	Structurer Structurer
	// PDFText extracts plain text from a PDF. Defaults to PDFPlainText.
	PDFText func(data []byte) (string, error)
}

func (d *Decoder) Decode(ctx context.Context, filename string, data []byte) ([]models.RawRecord, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return DecodeCSV(data)
	case FormatJSON:
		return DecodeJSON(data)
	case FormatXLSX:
		return DecodeXLSX(data)
	case FormatXLS:
		return nil, ErrLegacyWorkbook
	case FormatPDF:
		return d.decodePDF(ctx, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// uniqueHeaders renames blank headers to __EMPTY and suffixes repeated names
// with _1, _2, ... so no column silently overwrites another.
func uniqueHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := map[string]int{}
	for i, h := range headers {
		h = strings.TrimSpace(strings.ReplaceAll(h, "\ufeff", ""))
		if h == "" {
			h = "__EMPTY"
		}
		name := h
		for {
			n, dup := seen[name]
			if !dup {
				break
			}
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", h, n+1)
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}
