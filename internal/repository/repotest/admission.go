package repotest

import (
	"sort"
	"sync"
	"time"

	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type AdmissionRepository struct {
	mu         sync.Mutex
	admissions map[uuid.UUID]entity.Admission
	nextID     int64

	// Error injection, returned by the matching method when set
	CreateErr error
	RebindErr error

	// OnCreate runs at the start of Create; a non-nil result is returned
	OnCreate func() error
}

var _ repository.AdmissionRepository = (*AdmissionRepository)(nil)

func NewAdmissionRepository() *AdmissionRepository {
	return &AdmissionRepository{admissions: map[uuid.UUID]entity.Admission{}}
}

// Put stores an admission as-is, bypassing the active-patient check
func (r *AdmissionRepository) Put(admission entity.Admission) entity.Admission {
	r.mu.Lock()
	defer r.mu.Unlock()
	if admission.ID == uuid.Nil {
		admission.ID = uuid.New()
	}
	r.admissions[admission.ID] = admission
	return admission
}

// Count returns the number of stored admissions
func (r *AdmissionRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.admissions)
}

func (r *AdmissionRepository) Create(_ *gorm.DB, admission *entity.Admission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.OnCreate != nil {
		if err := r.OnCreate(); err != nil {
			return err
		}
	}
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if admission.Status == "" {
		admission.Status = entity.AdmissionStatusActive
	}
	if admission.IsActive() {
		for _, existing := range r.admissions {
			if existing.IsActive() && existing.PatientID == admission.PatientID {
				return &pgconn.PgError{Code: uniqueViolation, ConstraintName: activePatientConstraint}
			}
		}
	}
	if admission.ID == uuid.Nil {
		admission.ID = uuid.New()
	}
	now := time.Now()
	admission.CreatedAt = now
	admission.UpdatedAt = now
	r.admissions[admission.ID] = clone(*admission)
	return nil
}

func (r *AdmissionRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Admission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admission, ok := r.admissions[id]
	if !ok {
		return nil, nil
	}
	admission = clone(admission)
	return &admission, nil
}

func (r *AdmissionRepository) FindActiveByPatient(_ *gorm.DB, patientID string) (*entity.Admission, error) {
	for _, a := range r.list(func(a entity.Admission) bool { return a.IsActive() && a.PatientID == patientID }) {
		return &a, nil
	}
	return nil, nil
}

func (r *AdmissionRepository) FindActiveByBedIDs(_ *gorm.DB, bedIDs []uuid.UUID) ([]entity.Admission, error) {
	wanted := make(map[uuid.UUID]bool, len(bedIDs))
	for _, id := range bedIDs {
		wanted[id] = true
	}
	return r.list(func(a entity.Admission) bool { return a.IsActive() && wanted[a.BedID] }), nil
}

func (r *AdmissionRepository) FindAll(_ *gorm.DB, filter *entity.AdmissionFilter) ([]entity.Admission, int64, error) {
	admissions := r.list(func(a entity.Admission) bool {
		return (filter.Status == "" || a.Status == filter.Status) &&
			(filter.PatientCategory == "" || a.PatientCategory == filter.PatientCategory) &&
			(filter.Priority == "" || a.Priority == filter.Priority) &&
			(filter.Ward == "" || a.Ward == filter.Ward)
	})
	total := int64(len(admissions))
	return paginate(admissions, filter.Page, filter.Limit), total, nil
}

func (r *AdmissionRepository) FindByPatient(_ *gorm.DB, patientID string) ([]entity.Admission, error) {
	return r.list(func(a entity.Admission) bool { return a.PatientID == patientID }), nil
}

func (r *AdmissionRepository) FindActiveByWard(_ *gorm.DB, ward string) ([]entity.Admission, error) {
	return r.list(func(a entity.Admission) bool { return a.IsActive() && (ward == "" || a.Ward == ward) }), nil
}

func (r *AdmissionRepository) FindActiveByCategory(_ *gorm.DB, category entity.PatientCategory) ([]entity.Admission, error) {
	admissions := r.list(func(a entity.Admission) bool { return a.IsActive() && a.PatientCategory == category })
	sortByPriority(admissions)
	return admissions, nil
}

func (r *AdmissionRepository) FindActiveByPriority(_ *gorm.DB, ward string) ([]entity.Admission, error) {
	admissions := r.list(func(a entity.Admission) bool { return a.IsActive() && (ward == "" || a.Ward == ward) })
	sortByPriority(admissions)
	return admissions, nil
}

func (r *AdmissionRepository) FindOverlapping(_ *gorm.DB, bedID uuid.UUID, start, end time.Time) ([]entity.Admission, error) {
	return r.list(func(a entity.Admission) bool {
		if !a.IsActive() || a.BedID != bedID || a.AdmissionDate.After(end) {
			return false
		}
		return a.ExpectedDischargeDate == nil || !a.ExpectedDischargeDate.Before(start)
	}), nil
}

func (r *AdmissionRepository) CountExpectedDischarges(_ *gorm.DB, from, to time.Time, ward string) (int64, error) {
	admissions := r.list(func(a entity.Admission) bool {
		if !a.IsActive() || a.ExpectedDischargeDate == nil || (ward != "" && a.Ward != ward) {
			return false
		}
		d := *a.ExpectedDischargeDate
		return !d.Before(from) && d.Before(to)
	})
	return int64(len(admissions)), nil
}

func (r *AdmissionRepository) Update(_ *gorm.DB, admission *entity.Admission) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.admissions[admission.ID]
	if !ok {
		return 0, nil
	}
	stored.Diagnosis = admission.Diagnosis
	stored.AttendingPhysician = admission.AttendingPhysician
	stored.ExpectedDischargeDate = admission.ExpectedDischargeDate
	stored.Notes = admission.Notes
	stored.SpecialRequirements = admission.SpecialRequirements
	stored.InsuranceInfo = admission.InsuranceInfo
	stored.EmergencyContact = admission.EmergencyContact
	stored.UpdatedAt = time.Now()
	r.admissions[admission.ID] = stored
	return 1, nil
}

func (r *AdmissionRepository) Discharge(_ *gorm.DB, id uuid.UUID, info entity.DischargeInfo, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admission, ok := r.admissions[id]
	if !ok || !admission.IsActive() {
		return 0, nil
	}
	admission.Status = entity.AdmissionStatusDischarged
	admission.WorkflowStatus = entity.WorkflowDischarged
	admission.ActualDischargeDate = &at
	admission.DischargeInfo = info
	r.admissions[id] = admission
	return 1, nil
}

func (r *AdmissionRepository) Rebind(_ *gorm.DB, id uuid.UUID, to entity.BedLocation, transfer *entity.AdmissionTransfer) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.RebindErr != nil {
		return 0, r.RebindErr
	}
	admission, ok := r.admissions[id]
	if !ok || !admission.IsActive() || admission.BedID != transfer.FromBedID {
		return 0, nil
	}

	r.nextID++
	transfer.ID = r.nextID
	transfer.AdmissionID = id

	admission.BedID = to.BedID
	admission.Ward = to.Ward
	admission.RoomNumber = to.RoomNumber
	admission.BedNumber = to.BedNumber
	history := make([]entity.AdmissionTransfer, 0, len(admission.TransferHistory)+1)
	history = append(history, admission.TransferHistory...)
	admission.TransferHistory = append(history, *transfer)
	r.admissions[id] = admission
	return 1, nil
}

func (r *AdmissionRepository) UpdateWorkflowStatus(_ *gorm.DB, id uuid.UUID, status entity.WorkflowStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admission, ok := r.admissions[id]
	if !ok || !admission.IsActive() {
		return 0, nil
	}
	admission.WorkflowStatus = status
	r.admissions[id] = admission
	return 1, nil
}

// list returns matching admissions, newest admission first
func (r *AdmissionRepository) list(match func(entity.Admission) bool) []entity.Admission {
	r.mu.Lock()
	defer r.mu.Unlock()

	admissions := []entity.Admission{}
	for _, a := range r.admissions {
		if match(a) {
			admissions = append(admissions, clone(a))
		}
	}
	sort.SliceStable(admissions, func(i, j int) bool {
		return admissions[i].AdmissionDate.After(admissions[j].AdmissionDate)
	})
	return admissions
}

func sortByPriority(admissions []entity.Admission) {
	sort.SliceStable(admissions, func(i, j int) bool {
		return admissions[i].Priority.Rank() < admissions[j].Priority.Rank()
	})
}

func clone(a entity.Admission) entity.Admission {
	if a.TransferHistory != nil {
		a.TransferHistory = append([]entity.AdmissionTransfer(nil), a.TransferHistory...)
	}
	return a
}
