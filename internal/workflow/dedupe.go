package workflow

import (
	"strings"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// phoneKey reduces a phone to digits only so "+1 303..." and "1-303..."
// compare equal.
func phoneKey(v string) string {
	return strings.TrimPrefix(NormalizePhone(v), "+")
}

// DuplicateTechnician reports whether two technician records describe the
// same person. The heuristic, in order:
//
//   - strong match: same name and same phone
//   - fallback when neither record has a phone: same name, trade and city
//
// All comparisons are case-insensitive over sanitized values.
func DuplicateTechnician(a, b boardstore.Technician) bool {
	aName, bName := normalizeKey(a.Name), normalizeKey(b.Name)
	if aName == "" || aName != bName {
		return false
	}

	aPhone, bPhone := phoneKey(a.Phone), phoneKey(b.Phone)
	if aPhone != "" && bPhone != "" {
		return aPhone == bPhone
	}

	if aPhone == "" && bPhone == "" {
		return normalizeKey(a.Trade) == normalizeKey(b.Trade) &&
			normalizeKey(a.City) == normalizeKey(b.City)
	}

	return false
}

// FindDuplicate returns the first technician in techs that duplicates
// candidate, skipping the record with ignoreID (the candidate itself when
// editing). Returns nil when no duplicate exists.
func FindDuplicate(techs []boardstore.Technician, candidate boardstore.Technician, ignoreID string) *boardstore.Technician {
	for i := range techs {
		if ignoreID != "" && techs[i].ID == ignoreID {
			continue
		}
		if DuplicateTechnician(techs[i], candidate) {
			return &techs[i]
		}
	}
	return nil
}
