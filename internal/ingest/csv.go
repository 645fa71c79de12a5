package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/chamados/dashboard/internal/models"
)

// Delimiters lists the separators DecodeCSV will sniff for, in tie-break
// order.
var Delimiters = []rune{',', ';', '\t', '|'}

// DecodeCSV reads a delimited text file with a header row. Files that are not
// valid UTF-8 are read as Windows-1252, which is what spreadsheet exports on
// pt-BR desktops usually produce. Any malformed row rejects the whole file.
func DecodeCSV(data []byte) ([]models.RawRecord, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, err
	}
	text = bytes.TrimPrefix(text, []byte("\ufeff"))

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv header: %w", err)
	}
	keys := uniqueHeaders(header)

	rows := []models.RawRecord{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		row := make(models.RawRecord, 0, len(keys))
		for i, k := range keys {
			row = append(row, models.Field{Key: k, Value: rec[i]})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode windows-1252: %w", err)
	}
	return out, nil
}

// sniffDelimiter picks the candidate that appears most often outside quotes
// on the first non-blank line. Comma wins when nothing matches.
func sniffDelimiter(text []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var line []byte
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) > 0 {
			line = sc.Bytes()
			break
		}
	}
	counts := make(map[rune]int, len(Delimiters))
	quoted := false
	for _, c := range string(line) {
		if c == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[c]++
		}
	}
	best, bestN := Delimiters[0], 0
	for _, d := range Delimiters {
		if counts[d] > bestN {
			best, bestN = d, counts[d]
		}
	}
	return best
}
