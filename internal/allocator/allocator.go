// Package allocator picks a bed for an admission request from a snapshot of
// the bed registry. It does no I/O and holds no state.
package allocator

import (
	"fmt"
	"sort"
	"strings"

	"bed-admission-service/internal/domain/entity"
)

// MaxAlternativeBeds caps the beds listed per alternative type
const MaxAlternativeBeds = 3

const (
	ReasonPreferredWard = "Matches preferred ward"
	ReasonCriticalICU   = "ICU bed for critical patient"
	ReasonEquipment     = "Has required equipment"
	ReasonBestAvailable = "Best available option"
)

type Request struct {
	PatientCategory     entity.PatientCategory
	Priority            entity.Priority
	PreferredWard       string
	SpecialRequirements []string
}

// Alternative reports available beds of a type other than the required one
type Alternative struct {
	BedType        entity.BedType
	AvailableCount int
	Beds           []entity.Bed
}

// Decision is the outcome of Allocate. Bed is nil when no candidate matched.
type Decision struct {
	BedType      entity.BedType
	Bed          *entity.Bed
	Reason       string
	Alternatives []Alternative
}

func (d Decision) Allocated() bool {
	return d.Bed != nil
}

// DetermineBedType maps category and priority to the bed type an admission needs
func DetermineBedType(category entity.PatientCategory, priority entity.Priority) entity.BedType {
	switch {
	case category == entity.CategoryEmergency && priority == entity.PriorityCritical:
		return entity.BedTypeICU
	case category == entity.CategoryEmergency && priority == entity.PriorityHigh:
		return entity.BedTypeICU
	case category == entity.CategoryEmergency:
		return entity.BedTypePrivate
	case category == entity.CategoryScheduled && priority == entity.PriorityHigh:
		return entity.BedTypePrivate
	default:
		return entity.BedTypeGeneral
	}
}

// Allocate selects a bed from snapshot. The same request over the same
// snapshot always yields the same bed.
func Allocate(req Request, snapshot []entity.Bed) Decision {
	bedType := DetermineBedType(req.PatientCategory, req.Priority)

	candidates := make([]entity.Bed, 0, len(snapshot))
	for _, bed := range snapshot {
		if bed.Type != bedType || !bed.IsAvailable() {
			continue
		}
		if req.PreferredWard != "" && bed.Ward != req.PreferredWard {
			continue
		}
		if !meetsRequirements(&bed, req.SpecialRequirements) {
			continue
		}
		candidates = append(candidates, bed)
	}

	if len(candidates) == 0 {
		return Decision{
			BedType:      bedType,
			Reason:       fmt.Sprintf("No available %s beds found", bedType),
			Alternatives: Alternatives(bedType, snapshot),
		}
	}

	sortCandidates(candidates, req.PreferredWard)
	selected := candidates[0]

	return Decision{
		BedType: bedType,
		Bed:     &selected,
		Reason:  allocationReason(&selected, req),
	}
}

// Alternatives lists, for each bed type other than required, the available
// beds of that type. Ward and equipment filters are not applied.
func Alternatives(required entity.BedType, snapshot []entity.Bed) []Alternative {
	alternatives := []Alternative{}
	for _, bedType := range entity.AllBedTypes {
		if bedType == required {
			continue
		}

		var beds []entity.Bed
		for _, bed := range snapshot {
			if bed.Type == bedType && bed.IsAvailable() {
				beds = append(beds, bed)
			}
		}
		if len(beds) == 0 {
			continue
		}

		sortByLocation(beds)
		shown := beds
		if len(shown) > MaxAlternativeBeds {
			shown = shown[:MaxAlternativeBeds]
		}
		alternatives = append(alternatives, Alternative{
			BedType:        bedType,
			AvailableCount: len(beds),
			Beds:           shown,
		})
	}
	return alternatives
}

func meetsRequirements(bed *entity.Bed, requirements []string) bool {
	for _, requirement := range requirements {
		if !bed.HasWorkingEquipment(requirement) {
			return false
		}
	}
	return true
}

func sortCandidates(beds []entity.Bed, preferredWard string) {
	sort.SliceStable(beds, func(i, j int) bool {
		if preferredWard != "" {
			iPreferred := beds[i].Ward == preferredWard
			jPreferred := beds[j].Ward == preferredWard
			if iPreferred != jPreferred {
				return iPreferred
			}
		}
		if beds[i].RoomNumber != beds[j].RoomNumber {
			return beds[i].RoomNumber < beds[j].RoomNumber
		}
		if beds[i].BedNumber != beds[j].BedNumber {
			return beds[i].BedNumber < beds[j].BedNumber
		}
		return beds[i].ID.String() < beds[j].ID.String()
	})
}

func sortByLocation(beds []entity.Bed) {
	sort.SliceStable(beds, func(i, j int) bool {
		if beds[i].Ward != beds[j].Ward {
			return beds[i].Ward < beds[j].Ward
		}
		if beds[i].RoomNumber != beds[j].RoomNumber {
			return beds[i].RoomNumber < beds[j].RoomNumber
		}
		return beds[i].BedNumber < beds[j].BedNumber
	})
}

func allocationReason(bed *entity.Bed, req Request) string {
	var reasons []string
	if req.PreferredWard != "" && bed.Ward == req.PreferredWard {
		reasons = append(reasons, ReasonPreferredWard)
	}
	if bed.Type == entity.BedTypeICU && req.Priority == entity.PriorityCritical {
		reasons = append(reasons, ReasonCriticalICU)
	}
	if len(bed.Equipment) > 0 {
		reasons = append(reasons, ReasonEquipment)
	}
	if len(reasons) == 0 {
		return ReasonBestAvailable
	}
	return strings.Join(reasons, ", ")
}
