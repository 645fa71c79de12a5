package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/chamados/dashboard/internal/models"
)

// PDFPlainText extracts the text of every page, one page per line block.
func PDFPlainText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (d *Decoder) decodePDF(ctx context.Context, data []byte) ([]models.RawRecord, error) {
	if d.Structurer == nil {
		return nil, ErrNoStructurer
	}
	extract := d.PDFText
	if extract == nil {
		extract = PDFPlainText
	}
	text, err := extract(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	return d.Structurer.StructureTickets(ctx, text)
}
