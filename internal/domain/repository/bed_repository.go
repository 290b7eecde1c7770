package repository

import (
	"time"

	"bed-admission-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BedRepository persists beds. State-changing methods are conditional updates
// and return the number of affected rows: 0 means the precondition did not hold.
type BedRepository interface {
	Create(db *gorm.DB, bed *entity.Bed) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Bed, error)
	FindActiveByID(db *gorm.DB, id uuid.UUID) (*entity.Bed, error)
	FindActiveByLocation(db *gorm.DB, ward, roomNumber, bedNumber string) (*entity.Bed, error)
	FindAll(db *gorm.DB, filter *entity.BedFilter) ([]entity.Bed, int64, error)
	FindAvailable(db *gorm.DB) ([]entity.Bed, error)
	FindAvailableByType(db *gorm.DB, bedType entity.BedType) ([]entity.Bed, error)
	FindByWard(db *gorm.DB, ward string) ([]entity.Bed, error)
	FindActive(db *gorm.DB, ward string) ([]entity.Bed, error)
	FindOccupiedBefore(db *gorm.DB, cutoff time.Time) ([]entity.Bed, error)
	CountByStatus(db *gorm.DB, ward string) (*entity.BedStatusCounts, error)
	Update(db *gorm.DB, bed *entity.Bed) (int64, error)
	Assign(db *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error)
	Unassign(db *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error)
	Release(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error)
	ReleasePatient(db *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BedStatus, notes *string, at time.Time) (int64, error)
	Deactivate(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error)
}
