package models

import "time"

// Field is one key/value cell of a source row, in source column order.
type Field struct {
	Key   string
	Value any
}

// RawRecord is a row exactly as a decoder produced it. Column order is kept
// because field resolution and key collisions depend on it.
type RawRecord []Field

// Get returns the value of the last field whose key equals key.
func (r RawRecord) Get(key string) (any, bool) {
	var (
		v     any
		found bool
	)
	for _, f := range r {
		if f.Key == key {
			v, found = f.Value, true
		}
	}
	return v, found
}

// NormalizedRecord has lower-cased, trimmed keys and trimmed string values.
type NormalizedRecord struct {
	Keys   []string
	Values map[string]string
}

func (n NormalizedRecord) Get(key string) string {
	return n.Values[key]
}

func (n NormalizedRecord) Len() int {
	return len(n.Keys)
}

type Ticket struct {
	ID              string     `json:"id" yaml:"id"`
	Technician      string     `json:"tecnico" yaml:"tecnico"`
	Category        string     `json:"categoria" yaml:"categoria"`
	Status          string     `json:"status" yaml:"status"`
	OpenedAt        *time.Time `json:"data_abertura" yaml:"data_abertura"`
	ClosedAt        *time.Time `json:"data_fechamento" yaml:"data_fechamento"`
	Satisfaction    *int       `json:"satisfacao" yaml:"satisfacao"`
	IsClosed        bool       `json:"isClosed" yaml:"is_closed"`
	ResolutionHours *float64   `json:"resolutionHours" yaml:"resolution_hours"`
}

type NamedCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// SeriesEntry is one bar/slice of a chart series.
type SeriesEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type StatusSummary struct {
	Status          string   `json:"status" yaml:"status"`
	Count           int      `json:"count" yaml:"count"`
	AvgSatisfaction *float64 `json:"avgSatisfaction" yaml:"avg_satisfaction"`
}

type TechnicianSatisfaction struct {
	Name            string  `json:"name" yaml:"name"`
	AvgSatisfaction float64 `json:"avgSatisfaction" yaml:"avg_satisfaction"`
}

type CategoryDuration struct {
	Name     string  `json:"name" yaml:"name"`
	AvgHours float64 `json:"avgHours" yaml:"avg_hours"`
}

type AnalysisResult struct {
	Total               int                     `json:"total" yaml:"total"`
	Open                int                     `json:"abertos" yaml:"abertos"`
	Closed              int                     `json:"encerrados" yaml:"encerrados"`
	AvgResolutionHours  *float64                `json:"tempoMedio" yaml:"tempo_medio"`
	AvgSatisfaction     *float64                `json:"satisfacaoMedia" yaml:"satisfacao_media"`
	TopTechnician       *NamedCount             `json:"tecnicoTop" yaml:"tecnico_top"`
	TopCategory         *NamedCount             `json:"categoriaTop" yaml:"categoria_top"`
	TechnicianSeries    []SeriesEntry           `json:"chamadosPorTecnico" yaml:"chamados_por_tecnico"`
	CategorySeries      []SeriesEntry           `json:"chamadosPorCategoria" yaml:"chamados_por_categoria"`
	StatusSummary       []StatusSummary         `json:"statusSummary" yaml:"status_summary"`
	TopSatisfactionTech *TechnicianSatisfaction `json:"tecnicoMaiorSatisfacao" yaml:"tecnico_maior_satisfacao"`
	SlowestCategory     *CategoryDuration       `json:"categoriaMaiorTempo" yaml:"categoria_maior_tempo"`
}

// Dataset is what the dashboard currently shows: one analysed upload.
type Dataset struct {
	ID       string         `json:"id"`
	Source   string         `json:"source"`
	LoadedAt time.Time      `json:"loaded_at"`
	Tickets  []Ticket       `json:"-"`
	Result   AnalysisResult `json:"analysis"`
}
