package scheduling

import (
	"strings"

	"appointment-scheduler/internal/domain/entity"
)

// SpecialistGroup is the ordered set of doctors matching one requested specialist.
type SpecialistGroup struct {
	Specialist string
	Doctors    []entity.Doctor
}

// MatchSpecialists groups the pool by requested specialist, in request order.
// Matching is a case-insensitive substring test on the doctor's
// specialization and keeps pool order inside a group. A doctor matching two
// requested specialists shows up in both groups.
func MatchSpecialists(requested []string, pool []entity.Doctor) []SpecialistGroup {
	groups := make([]SpecialistGroup, 0, len(requested))
	for _, specialist := range requested {
		needle := strings.ToLower(strings.TrimSpace(specialist))
		if needle == "" {
			continue
		}

		group := SpecialistGroup{Specialist: strings.TrimSpace(specialist)}
		for _, doctor := range pool {
			if strings.Contains(strings.ToLower(doctor.Specialization), needle) {
				group.Doctors = append(group.Doctors, doctor)
			}
		}
		groups = append(groups, group)
	}
	return groups
}
