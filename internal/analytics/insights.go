package analytics

import "github.com/chamados/dashboard/internal/models"

// meanTracker accumulates per-name sums for averages, in first-seen order.
type meanTracker struct {
	order []string
	sum   map[string]float64
	n     map[string]int
}

func newMeanTracker() *meanTracker {
	return &meanTracker{sum: map[string]float64{}, n: map[string]int{}}
}

func (m *meanTracker) add(name string, v float64) {
	if _, ok := m.n[name]; !ok {
		m.order = append(m.order, name)
	}
	m.sum[name] += v
	m.n[name]++
}

// highest returns the name with the largest mean. Ties go to the name seen
// first.
func (m *meanTracker) highest() (string, float64, bool) {
	var (
		best     string
		bestMean float64
		found    bool
	)
	for _, name := range m.order {
		mean := m.sum[name] / float64(m.n[name])
		if !found || mean > bestMean {
			best, bestMean, found = name, mean, true
		}
	}
	return best, bestMean, found
}

// TopByCount returns the first entry of the ranked frequencies, or nil.
func TopByCount(entries []models.SeriesEntry) *models.NamedCount {
	ranked := Rank(entries)
	if len(ranked) == 0 {
		return nil
	}
	return &models.NamedCount{Name: ranked[0].Name, Count: ranked[0].Value}
}

func topSatisfaction(m *meanTracker) *models.TechnicianSatisfaction {
	name, mean, ok := m.highest()
	if !ok {
		return nil
	}
	return &models.TechnicianSatisfaction{Name: name, AvgSatisfaction: mean}
}

func slowestCategory(m *meanTracker) *models.CategoryDuration {
	name, mean, ok := m.highest()
	if !ok {
		return nil
	}
	return &models.CategoryDuration{Name: name, AvgHours: mean}
}
