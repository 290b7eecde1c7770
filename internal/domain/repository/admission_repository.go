package repository

import (
	"time"

	"bed-admission-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdmissionRepository persists admissions and their transfer history.
// Lifecycle transitions only apply to Active admissions and report affected rows.
type AdmissionRepository interface {
	Create(db *gorm.DB, admission *entity.Admission) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Admission, error)
	FindActiveByPatient(db *gorm.DB, patientID string) (*entity.Admission, error)
	FindActiveByBedIDs(db *gorm.DB, bedIDs []uuid.UUID) ([]entity.Admission, error)
	FindAll(db *gorm.DB, filter *entity.AdmissionFilter) ([]entity.Admission, int64, error)
	FindByPatient(db *gorm.DB, patientID string) ([]entity.Admission, error)
	FindActiveByWard(db *gorm.DB, ward string) ([]entity.Admission, error)
	FindActiveByCategory(db *gorm.DB, category entity.PatientCategory) ([]entity.Admission, error)
	FindActiveByPriority(db *gorm.DB, ward string) ([]entity.Admission, error)
	FindOverlapping(db *gorm.DB, bedID uuid.UUID, start, end time.Time) ([]entity.Admission, error)
	CountExpectedDischarges(db *gorm.DB, from, to time.Time, ward string) (int64, error)
	Update(db *gorm.DB, admission *entity.Admission) (int64, error)
	Discharge(db *gorm.DB, id uuid.UUID, info entity.DischargeInfo, at time.Time) (int64, error)
	Rebind(db *gorm.DB, id uuid.UUID, to entity.BedLocation, transfer *entity.AdmissionTransfer) (int64, error)
	UpdateWorkflowStatus(db *gorm.DB, id uuid.UUID, status entity.WorkflowStatus) (int64, error)
}
