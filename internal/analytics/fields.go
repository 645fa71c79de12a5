package analytics

import (
	"strings"

	"github.com/chamados/dashboard/internal/models"
)

// Column is a resolved source column, or nothing when Present is false.
type Column struct {
	Key     string
	Present bool
}

// Lookup returns the column's value in rec. Absent columns and empty cells
// both report false.
func (c Column) Lookup(rec models.NormalizedRecord) (string, bool) {
	if !c.Present {
		return "", false
	}
	v := rec.Get(c.Key)
	return v, v != ""
}

type FieldMap struct {
	ID           Column
	Technician   Column
	Category     Column
	Status       Column
	OpenedAt     Column
	ClosedAt     Column
	Satisfaction Column
}

func (m *FieldMap) set(role Role, c Column) {
	switch role {
	case RoleID:
		m.ID = c
	case RoleTechnician:
		m.Technician = c
	case RoleCategory:
		m.Category = c
	case RoleStatus:
		m.Status = c
	case RoleOpenedAt:
		m.OpenedAt = c
	case RoleClosedAt:
		m.ClosedAt = c
	case RoleSatisfaction:
		m.Satisfaction = c
	}
}

// ResolveFields maps each role to the first key of rec (in column order)
// that contains one of the role's keywords. The schema of the first row is
// assumed to hold for the whole file.
func ResolveFields(rec models.NormalizedRecord, rules []FieldRule) FieldMap {
	var m FieldMap
	for _, rule := range rules {
		if key, ok := findKey(rec.Keys, rule.Keywords); ok {
			m.set(rule.Role, Column{Key: key, Present: true})
		}
	}
	return m
}

func findKey(keys []string, keywords []string) (string, bool) {
	for _, k := range keys {
		for _, kw := range keywords {
			if strings.Contains(k, kw) {
				return k, true
			}
		}
	}
	return "", false
}
