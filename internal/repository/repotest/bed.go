// Package repotest provides in-memory repositories with the same conditional
// write semantics as the gorm implementations. The *gorm.DB arguments are
// ignored, except that bed unassign and release fail on a done context.
package repotest

import (
	"sort"
	"strings"
	"sync"
	"time"

	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation         = "23505"
	bedLocationConstraint   = "uniq_beds_active_location"
	activePatientConstraint = "uniq_admissions_active_patient"
)

type BedRepository struct {
	mu   sync.Mutex
	beds map[uuid.UUID]entity.Bed

	// Error injection, returned by the matching method when set
	ReleaseErr error
	AssignErr  error

	// BeforeAssign runs before each Assign, outside the lock, to simulate a
	// concurrent writer winning the race
	BeforeAssign func(id uuid.UUID)
}

var _ repository.BedRepository = (*BedRepository)(nil)

func NewBedRepository() *BedRepository {
	return &BedRepository{beds: map[uuid.UUID]entity.Bed{}}
}

// Put stores bed as-is, bypassing uniqueness checks
func (r *BedRepository) Put(bed entity.Bed) entity.Bed {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bed.ID == uuid.Nil {
		bed.ID = uuid.New()
	}
	r.beds[bed.ID] = bed
	return bed
}

// Get returns the stored bed for assertions
func (r *BedRepository) Get(id uuid.UUID) entity.Bed {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.beds[id]
}

func (r *BedRepository) Create(_ *gorm.DB, bed *entity.Bed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.beds {
		if existing.IsActive && existing.Ward == bed.Ward && existing.RoomNumber == bed.RoomNumber && existing.BedNumber == bed.BedNumber {
			return &pgconn.PgError{Code: uniqueViolation, ConstraintName: bedLocationConstraint}
		}
	}
	if bed.ID == uuid.Nil {
		bed.ID = uuid.New()
	}
	now := time.Now()
	bed.CreatedAt = now
	bed.UpdatedAt = now
	r.beds[bed.ID] = *bed
	return nil
}

func (r *BedRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Bed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bed, ok := r.beds[id]
	if !ok {
		return nil, nil
	}
	return &bed, nil
}

func (r *BedRepository) FindActiveByID(db *gorm.DB, id uuid.UUID) (*entity.Bed, error) {
	bed, err := r.FindByID(db, id)
	if bed == nil || err != nil || !bed.IsActive {
		return nil, err
	}
	return bed, nil
}

func (r *BedRepository) FindActiveByLocation(_ *gorm.DB, ward, roomNumber, bedNumber string) (*entity.Bed, error) {
	for _, bed := range r.list(func(b entity.Bed) bool {
		return b.IsActive && b.Ward == ward && b.RoomNumber == roomNumber && b.BedNumber == bedNumber
	}) {
		return &bed, nil
	}
	return nil, nil
}

func (r *BedRepository) FindAll(_ *gorm.DB, filter *entity.BedFilter) ([]entity.Bed, int64, error) {
	beds := r.list(func(b entity.Bed) bool {
		return b.IsActive &&
			(filter.Ward == "" || b.Ward == filter.Ward) &&
			(filter.Type == "" || b.Type == filter.Type) &&
			(filter.Status == "" || b.Status == filter.Status)
	})
	total := int64(len(beds))
	return paginate(beds, filter.Page, filter.Limit), total, nil
}

func (r *BedRepository) FindAvailable(_ *gorm.DB) ([]entity.Bed, error) {
	return r.list(func(b entity.Bed) bool { return b.IsAvailable() }), nil
}

func (r *BedRepository) FindAvailableByType(_ *gorm.DB, bedType entity.BedType) ([]entity.Bed, error) {
	return r.list(func(b entity.Bed) bool {
		return b.IsActive && b.Status == entity.BedStatusAvailable && b.Type == bedType
	}), nil
}

func (r *BedRepository) FindByWard(_ *gorm.DB, ward string) ([]entity.Bed, error) {
	return r.list(func(b entity.Bed) bool { return b.IsActive && b.Ward == ward }), nil
}

func (r *BedRepository) FindActive(_ *gorm.DB, ward string) ([]entity.Bed, error) {
	return r.list(func(b entity.Bed) bool { return b.IsActive && (ward == "" || b.Ward == ward) }), nil
}

func (r *BedRepository) FindOccupiedBefore(_ *gorm.DB, cutoff time.Time) ([]entity.Bed, error) {
	return r.list(func(b entity.Bed) bool {
		return b.Status == entity.BedStatusOccupied && b.LastUpdated.Before(cutoff)
	}), nil
}

func (r *BedRepository) CountByStatus(_ *gorm.DB, ward string) (*entity.BedStatusCounts, error) {
	counts := &entity.BedStatusCounts{}
	for _, b := range r.list(func(b entity.Bed) bool { return b.IsActive && (ward == "" || b.Ward == ward) }) {
		counts.Total++
		switch b.Status {
		case entity.BedStatusAvailable:
			counts.Available++
		case entity.BedStatusOccupied:
			counts.Occupied++
		case entity.BedStatusCleaning:
			counts.Cleaning++
		case entity.BedStatusMaintenance:
			counts.Maintenance++
		case entity.BedStatusReserved:
			counts.Reserved++
		}
	}
	return counts, nil
}

func (r *BedRepository) Update(_ *gorm.DB, bed *entity.Bed) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.beds[bed.ID]
	if !ok || !stored.IsActive {
		return 0, nil
	}
	if stored.Type != bed.Type && stored.Status == entity.BedStatusOccupied {
		return 0, nil
	}
	for id, existing := range r.beds {
		if id != bed.ID && existing.IsActive &&
			existing.Ward == bed.Ward && existing.RoomNumber == bed.RoomNumber && existing.BedNumber == bed.BedNumber {
			return 0, &pgconn.PgError{Code: uniqueViolation, ConstraintName: bedLocationConstraint}
		}
	}
	stored.Ward = bed.Ward
	stored.RoomNumber = bed.RoomNumber
	stored.BedNumber = bed.BedNumber
	stored.Type = bed.Type
	stored.Equipment = bed.Equipment
	stored.Notes = bed.Notes
	stored.LastUpdated = bed.LastUpdated
	stored.UpdatedAt = time.Now()
	r.beds[bed.ID] = stored
	return 1, nil
}

func (r *BedRepository) Assign(_ *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error) {
	if hook := r.BeforeAssign; hook != nil {
		hook(id)
	}
	return r.update(id, r.AssignErr, func(b *entity.Bed) bool {
		if !b.IsAvailable() {
			return false
		}
		b.Status = entity.BedStatusOccupied
		b.AssignedPatientID = &patientID
		b.LastUpdated = at
		return true
	})
}

func (r *BedRepository) Unassign(db *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error) {
	return r.update(id, contextErr(db), func(b *entity.Bed) bool {
		if b.Status != entity.BedStatusOccupied || b.AssignedPatientID == nil || *b.AssignedPatientID != patientID {
			return false
		}
		b.Status = entity.BedStatusAvailable
		b.AssignedPatientID = nil
		b.LastUpdated = at
		return true
	})
}

func (r *BedRepository) Release(_ *gorm.DB, id uuid.UUID, at time.Time) (int64, error) {
	return r.update(id, r.ReleaseErr, func(b *entity.Bed) bool {
		if b.Status != entity.BedStatusOccupied {
			return false
		}
		b.Status = entity.BedStatusCleaning
		b.AssignedPatientID = nil
		b.LastUpdated = at
		return true
	})
}

func (r *BedRepository) ReleasePatient(db *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error) {
	injected := r.ReleaseErr
	if injected == nil {
		injected = contextErr(db)
	}
	return r.update(id, injected, func(b *entity.Bed) bool {
		if b.Status != entity.BedStatusOccupied || b.AssignedPatientID == nil || *b.AssignedPatientID != patientID {
			return false
		}
		b.Status = entity.BedStatusCleaning
		b.AssignedPatientID = nil
		b.LastUpdated = at
		return true
	})
}

func (r *BedRepository) UpdateStatus(_ *gorm.DB, id uuid.UUID, status entity.BedStatus, notes *string, at time.Time) (int64, error) {
	return r.update(id, nil, func(b *entity.Bed) bool {
		if !b.IsActive || b.Status == entity.BedStatusOccupied {
			return false
		}
		b.Status = status
		if notes != nil {
			b.Notes = *notes
		}
		b.LastUpdated = at
		return true
	})
}

func (r *BedRepository) Deactivate(_ *gorm.DB, id uuid.UUID, at time.Time) (int64, error) {
	return r.update(id, nil, func(b *entity.Bed) bool {
		if !b.IsActive || b.Status == entity.BedStatusOccupied {
			return false
		}
		b.IsActive = false
		b.Status = entity.BedStatusMaintenance
		b.LastUpdated = at
		return true
	})
}

func (r *BedRepository) update(id uuid.UUID, injected error, apply func(b *entity.Bed) bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if injected != nil {
		return 0, injected
	}
	bed, ok := r.beds[id]
	if !ok || !apply(&bed) {
		return 0, nil
	}
	r.beds[id] = bed
	return 1, nil
}

// list returns matching beds ordered by (ward, room, bed)
func (r *BedRepository) list(match func(entity.Bed) bool) []entity.Bed {
	r.mu.Lock()
	defer r.mu.Unlock()

	beds := []entity.Bed{}
	for _, bed := range r.beds {
		if match(bed) {
			beds = append(beds, bed)
		}
	}
	sort.Slice(beds, func(i, j int) bool {
		a, b := beds[i], beds[j]
		if c := strings.Compare(a.Ward, b.Ward); c != 0 {
			return c < 0
		}
		if c := strings.Compare(a.RoomNumber, b.RoomNumber); c != 0 {
			return c < 0
		}
		return a.BedNumber < b.BedNumber
	})
	return beds
}

func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
