package analytics

import "time"

type Role string

const (
	RoleID           Role = "id"
	RoleTechnician   Role = "technician"
	RoleCategory     Role = "category"
	RoleStatus       Role = "status"
	RoleOpenedAt     Role = "opened_at"
	RoleClosedAt     Role = "closed_at"
	RoleSatisfaction Role = "satisfaction"
)

// FieldRule maps a semantic role to the keywords a column name may contain.
type FieldRule struct {
	Role     Role
	Keywords []string
}

const (
	DefaultTechnicianCap      = 10
	DefaultCategoryCap        = 5
	DefaultTechnicianOverflow = "Outros"
	DefaultCategoryOverflow   = "Outras"
	DefaultLabel              = "N/A"
	DefaultStatus             = "Aberto"
)

// Options holds every tunable the engine reads. Zero values are not
// meaningful; start from DefaultOptions.
type Options struct {
	FieldRules      []FieldRule
	ClosureKeywords []string

	DefaultLabel  string
	DefaultStatus string

	TechnicianCap      int
	TechnicianOverflow string
	CategoryCap        int
	CategoryOverflow   string

	Dates DateStrategy
}

func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{Role: RoleID, Keywords: []string{"id"}},
		{Role: RoleTechnician, Keywords: []string{"tecnico", "tech", "agent", "técnico"}},
		{Role: RoleCategory, Keywords: []string{"categoria", "category"}},
		{Role: RoleStatus, Keywords: []string{"status", "estado"}},
		{Role: RoleOpenedAt, Keywords: []string{"data_abertura", "data abertura", "open", "aberto"}},
		{Role: RoleClosedAt, Keywords: []string{"data_fechamento", "data fechamento", "close", "fechamento"}},
		{Role: RoleSatisfaction, Keywords: []string{"satisf", "satisfaction", "sat"}},
	}
}

func DefaultClosureKeywords() []string {
	return []string{"encerrad", "fechad", "closed", "finalizad", "done", "resolvido"}
}

func DefaultOptions() Options {
	return Options{
		FieldRules:         DefaultFieldRules(),
		ClosureKeywords:    DefaultClosureKeywords(),
		DefaultLabel:       DefaultLabel,
		DefaultStatus:      DefaultStatus,
		TechnicianCap:      DefaultTechnicianCap,
		TechnicianOverflow: DefaultTechnicianOverflow,
		CategoryCap:        DefaultCategoryCap,
		CategoryOverflow:   DefaultCategoryOverflow,
		Dates:              NewDateParser(time.Local),
	}
}
