package analytics

import (
	"sort"

	"github.com/chamados/dashboard/internal/models"
)

// Analysis is the output of one engine pass.
type Analysis struct {
	Tickets []models.Ticket
	Result  models.AnalysisResult
}

// Engine runs the ticket analysis with a fixed set of options. It holds no
// state between calls and is safe for concurrent use.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

func (e *Engine) Options() Options {
	return e.opts
}

// Analyze runs the engine with DefaultOptions.
func Analyze(rows []models.RawRecord) Analysis {
	return New(DefaultOptions()).Analyze(rows)
}

// Analyze normalizes rows, resolves the column roles from the first row and
// folds every ticket into the aggregates in one forward pass.
func (e *Engine) Analyze(rows []models.RawRecord) Analysis {
	if len(rows) == 0 {
		return Analysis{Tickets: []models.Ticket{}, Result: EmptyResult()}
	}
	normalized := NormalizeAll(rows)
	if normalized[0].Len() == 0 {
		return Analysis{Tickets: []models.Ticket{}, Result: EmptyResult()}
	}
	fields := ResolveFields(normalized[0], e.opts.FieldRules)

	tickets := make([]models.Ticket, 0, len(normalized))
	tl := newTally()
	for i, rec := range normalized {
		t := BuildTicket(rec, i, fields, e.opts)
		tl.observe(t)
		tickets = append(tickets, t)
	}
	return Analysis{Tickets: tickets, Result: tl.result(e.opts)}
}

// EmptyResult is the well-formed result for an empty input.
func EmptyResult() models.AnalysisResult {
	return models.AnalysisResult{
		TechnicianSeries: []models.SeriesEntry{},
		CategorySeries:   []models.SeriesEntry{},
		StatusSummary:    []models.StatusSummary{},
	}
}

// tally is the fold state. It only ever sees one ticket at a time and is
// discarded once result has been read.
type tally struct {
	total  int
	closed int

	hoursSum   float64
	hoursCount int
	satSum     float64
	satCount   int

	byTech     *counter
	byCategory *counter
	byStatus   *counter

	statusSat   *meanTracker
	techSat     *meanTracker
	categoryDur *meanTracker
}

func newTally() *tally {
	return &tally{
		byTech:      newCounter(),
		byCategory:  newCounter(),
		byStatus:    newCounter(),
		statusSat:   newMeanTracker(),
		techSat:     newMeanTracker(),
		categoryDur: newMeanTracker(),
	}
}

func (tl *tally) observe(t models.Ticket) {
	tl.total++
	if t.IsClosed {
		tl.closed++
	}
	tl.byTech.add(t.Technician)
	tl.byCategory.add(t.Category)
	tl.byStatus.add(t.Status)

	if t.ResolutionHours != nil {
		tl.hoursSum += *t.ResolutionHours
		tl.hoursCount++
		tl.categoryDur.add(t.Category, *t.ResolutionHours)
	}
	if t.Satisfaction != nil {
		s := float64(*t.Satisfaction)
		tl.satSum += s
		tl.satCount++
		tl.techSat.add(t.Technician, s)
		tl.statusSat.add(t.Status, s)
	}
}

func (tl *tally) result(opts Options) models.AnalysisResult {
	techs := tl.byTech.entries()
	categories := tl.byCategory.entries()

	return models.AnalysisResult{
		Total:               tl.total,
		Open:                tl.total - tl.closed,
		Closed:              tl.closed,
		AvgResolutionHours:  mean(tl.hoursSum, tl.hoursCount),
		AvgSatisfaction:     mean(tl.satSum, tl.satCount),
		TopTechnician:       TopByCount(techs),
		TopCategory:         TopByCount(categories),
		TechnicianSeries:    ReduceSeries(techs, opts.TechnicianCap, opts.TechnicianOverflow),
		CategorySeries:      ReduceSeries(categories, opts.CategoryCap, opts.CategoryOverflow),
		StatusSummary:       tl.statusSummary(),
		TopSatisfactionTech: topSatisfaction(tl.techSat),
		SlowestCategory:     slowestCategory(tl.categoryDur),
	}
}

// statusSummary lists every status by descending ticket count.
func (tl *tally) statusSummary() []models.StatusSummary {
	out := make([]models.StatusSummary, 0, len(tl.byStatus.order))
	for _, status := range tl.byStatus.order {
		s := models.StatusSummary{Status: status, Count: tl.byStatus.counts[status]}
		if n := tl.statusSat.n[status]; n > 0 {
			s.AvgSatisfaction = mean(tl.statusSat.sum[status], n)
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func mean(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}
