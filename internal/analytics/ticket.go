package analytics

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/chamados/dashboard/internal/models"
)

// BuildTicket converts one normalized row. index is the zero-based row
// position, used for the positional id when the row has none.
func BuildTicket(rec models.NormalizedRecord, index int, fields FieldMap, opts Options) models.Ticket {
	t := models.Ticket{
		ID:         strconv.Itoa(index + 1),
		Technician: opts.DefaultLabel,
		Category:   opts.DefaultLabel,
		Status:     opts.DefaultStatus,
	}
	if v, ok := fields.ID.Lookup(rec); ok {
		t.ID = v
	}
	if v, ok := fields.Technician.Lookup(rec); ok {
		t.Technician = v
	}
	if v, ok := fields.Category.Lookup(rec); ok {
		t.Category = v
	}
	if v, ok := fields.Status.Lookup(rec); ok {
		t.Status = v
	}
	t.IsClosed = IsClosedStatus(t.Status, opts.ClosureKeywords)

	if v, ok := fields.OpenedAt.Lookup(rec); ok && opts.Dates != nil {
		if d, ok := opts.Dates.Parse(v); ok {
			t.OpenedAt = &d
		}
	}
	if v, ok := fields.ClosedAt.Lookup(rec); ok && opts.Dates != nil {
		if d, ok := opts.Dates.Parse(v); ok {
			t.ClosedAt = &d
		}
	}
	if v, ok := fields.Satisfaction.Lookup(rec); ok {
		if n, ok := leadingInt(v); ok {
			t.Satisfaction = &n
		}
	}
	t.ResolutionHours = resolutionHours(t.OpenedAt, t.ClosedAt)
	return t
}

func IsClosedStatus(status string, keywords []string) bool {
	s := strings.ToLower(status)
	for _, kw := range keywords {
		if strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func resolutionHours(opened, closed *time.Time) *float64 {
	if opened == nil || closed == nil {
		return nil
	}
	h := closed.Sub(*opened).Hours()
	if h < 0 || math.IsNaN(h) {
		return nil
	}
	return &h
}

// leadingInt reads an optionally signed run of digits at the start of s and
// ignores whatever follows, so "4.5" is 4 and "3 estrelas" is 3.
func leadingInt(s string) (int, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}
