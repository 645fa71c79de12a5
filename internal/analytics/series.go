package analytics

import (
	"sort"

	"github.com/chamados/dashboard/internal/models"
)

// counter is a frequency map that remembers first-insertion order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// entries returns the frequencies in first-insertion order.
func (c *counter) entries() []models.SeriesEntry {
	out := make([]models.SeriesEntry, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, models.SeriesEntry{Name: name, Value: c.counts[name]})
	}
	return out
}

// Rank sorts entries by descending value. Ties keep their input order.
func Rank(entries []models.SeriesEntry) []models.SeriesEntry {
	out := make([]models.SeriesEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// ReduceSeries ranks entries and, when there are more than limit of them,
// keeps the top limit-1 and folds the rest into one overflow entry. A limit
// of zero or less disables folding.
func ReduceSeries(entries []models.SeriesEntry, limit int, overflow string) []models.SeriesEntry {
	ranked := Rank(entries)
	if limit <= 0 || len(ranked) <= limit {
		return ranked
	}
	keep := limit - 1
	rest := 0
	for _, e := range ranked[keep:] {
		rest += e.Value
	}
	out := make([]models.SeriesEntry, 0, limit)
	out = append(out, ranked[:keep]...)
	return append(out, models.SeriesEntry{Name: overflow, Value: rest})
}
