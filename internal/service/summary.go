package service

import (
	"sort"
	"strings"

	"github.com/Thibault-Renand/OctoPulse/internal/models"
)

// NoAllergiesKey is the grouping key for residents without allergies.
const NoAllergiesKey = "None"

// Roster is the read-only view of who lives and works in the facility,
// owned by the roster service and handed to the aggregator.
type Roster struct {
	Residents []models.Resident
	Staff     []models.Staff
}

// SummaryView is the kitchen-ready production summary for one day. It is
// recomputed on demand and never persisted.
type SummaryView struct {
	AbsentResidents   []models.Resident                    `json:"absent_residents"`
	PresentStaffCount int                                  `json:"present_staff_count"`
	NormalMeals       map[string]int                       `json:"normal_meals"`
	SpecialMeals      map[string]map[string]map[string]int `json:"special_meals"`
}

// Summarize turns the roster and today's confirmation records into a
// SummaryView. Pure function: no I/O, no errors, counts invariant under
// input reordering.
//
// Residents with no record today count as present; absence must be explicit.
// Staff are the opposite: only a confirmed record counts them in. Records
// whose person is no longer on the roster are ignored.
func Summarize(roster Roster, residentRecords, staffRecords []models.MealRecord) SummaryView {
	absent := make(map[string]struct{})
	for _, rec := range residentRecords {
		if !rec.MealConfirmed {
			absent[rec.PersonID] = struct{}{}
		}
	}

	staffIDs := make(map[string]struct{}, len(roster.Staff))
	for _, st := range roster.Staff {
		staffIDs[st.ID] = struct{}{}
	}

	view := SummaryView{
		AbsentResidents: []models.Resident{},
		NormalMeals:     map[string]int{},
		SpecialMeals:    map[string]map[string]map[string]int{},
	}

	for _, rec := range staffRecords {
		if _, known := staffIDs[rec.PersonID]; !known {
			continue
		}
		if rec.MealConfirmed {
			view.PresentStaffCount++
		}
	}

	for _, res := range roster.Residents {
		if _, away := absent[res.ID]; away {
			view.AbsentResidents = append(view.AbsentResidents, res)
			continue
		}
		if !res.HasSpecialMeal() {
			view.NormalMeals[res.MealTexture]++
			continue
		}

		diet := strings.ToUpper(res.MealType)
		byAllergy := view.SpecialMeals[diet]
		if byAllergy == nil {
			byAllergy = map[string]map[string]int{}
			view.SpecialMeals[diet] = byAllergy
		}
		signature := AllergySignature(res.Allergies)
		byTexture := byAllergy[signature]
		if byTexture == nil {
			byTexture = map[string]int{}
			byAllergy[signature] = byTexture
		}
		byTexture[res.MealTexture]++
	}

	return view
}

// AllergySignature renders an allergy set as a deterministic grouping key:
// sorted lexicographically and joined with ", ", or NoAllergiesKey when empty.
func AllergySignature(allergies []string) string {
	if len(allergies) == 0 {
		return NoAllergiesKey
	}
	sorted := make([]string, len(allergies))
	copy(sorted, allergies)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
