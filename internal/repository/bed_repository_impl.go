package repository

import (
	"errors"
	"time"

	"bed-admission-service/internal/domain/entity"
	domainRepo "bed-admission-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bedSortColumns whitelists sortable columns for bed listings
var bedSortColumns = map[string]string{
	"ward":        "ward",
	"roomNumber":  "room_number",
	"bedNumber":   "bed_number",
	"type":        "type",
	"status":      "status",
	"lastUpdated": "last_updated",
	"createdAt":   "created_at",
}

type bedRepository struct{}

func NewBedRepository() domainRepo.BedRepository {
	return &bedRepository{}
}

func (r *bedRepository) Create(db *gorm.DB, bed *entity.Bed) error {
	return db.Create(bed).Error
}

func (r *bedRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Bed, error) {
	var bed entity.Bed
	err := db.Where("id = ?", id).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bed, nil
}

func (r *bedRepository) FindActiveByID(db *gorm.DB, id uuid.UUID) (*entity.Bed, error) {
	var bed entity.Bed
	err := db.Where("id = ? AND is_active = ?", id, true).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bed, nil
}

func (r *bedRepository) FindActiveByLocation(db *gorm.DB, ward, roomNumber, bedNumber string) (*entity.Bed, error) {
	var bed entity.Bed
	err := db.Where("ward = ? AND room_number = ? AND bed_number = ? AND is_active = ?", ward, roomNumber, bedNumber, true).
		First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bed, nil
}

func (r *bedRepository) FindAll(db *gorm.DB, filter *entity.BedFilter) ([]entity.Bed, int64, error) {
	query := db.Model(&entity.Bed{}).Where("is_active = ?", true)
	if filter.Ward != "" {
		query = query.Where("ward = ?", filter.Ward)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit)

	var beds []entity.Bed
	err := query.
		Order(orderClause(bedSortColumns, filter.SortBy, filter.SortOrder, "ward")).
		Limit(limit).
		Offset(offset(page, limit)).
		Find(&beds).Error
	if err != nil {
		return nil, 0, err
	}
	return beds, total, nil
}

// FindAvailable returns the allocation snapshot: every active, Available, unassigned bed
func (r *bedRepository) FindAvailable(db *gorm.DB) ([]entity.Bed, error) {
	var beds []entity.Bed
	err := db.Where("is_active = ? AND status = ? AND assigned_patient_id IS NULL", true, entity.BedStatusAvailable).
		Order("ward ASC, room_number ASC, bed_number ASC").
		Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *bedRepository) FindAvailableByType(db *gorm.DB, bedType entity.BedType) ([]entity.Bed, error) {
	var beds []entity.Bed
	err := db.Where("is_active = ? AND status = ? AND type = ?", true, entity.BedStatusAvailable, bedType).
		Order("ward ASC, room_number ASC, bed_number ASC").
		Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *bedRepository) FindByWard(db *gorm.DB, ward string) ([]entity.Bed, error) {
	var beds []entity.Bed
	err := db.Where("ward = ? AND is_active = ?", ward, true).
		Order("room_number ASC, bed_number ASC").
		Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

// FindActive returns all active beds, optionally limited to one ward
func (r *bedRepository) FindActive(db *gorm.DB, ward string) ([]entity.Bed, error) {
	query := db.Where("is_active = ?", true)
	if ward != "" {
		query = query.Where("ward = ?", ward)
	}

	var beds []entity.Bed
	err := query.Order("ward ASC, room_number ASC, bed_number ASC").Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

// FindOccupiedBefore returns occupied beds not touched since cutoff
func (r *bedRepository) FindOccupiedBefore(db *gorm.DB, cutoff time.Time) ([]entity.Bed, error) {
	var beds []entity.Bed
	err := db.Where("status = ? AND last_updated < ?", entity.BedStatusOccupied, cutoff).
		Order("last_updated ASC").
		Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

type statusCount struct {
	Status entity.BedStatus
	Count  int64
}

func (r *bedRepository) CountByStatus(db *gorm.DB, ward string) (*entity.BedStatusCounts, error) {
	query := db.Model(&entity.Bed{}).
		Select("status, COUNT(*) AS count").
		Where("is_active = ?", true)
	if ward != "" {
		query = query.Where("ward = ?", ward)
	}

	var rows []statusCount
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := &entity.BedStatusCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case entity.BedStatusAvailable:
			counts.Available = row.Count
		case entity.BedStatusOccupied:
			counts.Occupied = row.Count
		case entity.BedStatusCleaning:
			counts.Cleaning = row.Count
		case entity.BedStatusMaintenance:
			counts.Maintenance = row.Count
		case entity.BedStatusReserved:
			counts.Reserved = row.Count
		}
	}
	return counts, nil
}

// Update writes the editable columns of an active bed. Occupancy columns are
// never touched, and the type can only change while the bed is not Occupied.
func (r *bedRepository) Update(db *gorm.DB, bed *entity.Bed) (int64, error) {
	result := db.Model(&entity.Bed{}).
		Where("id = ? AND is_active = ?", bed.ID, true).
		Where("type = ? OR status <> ?", bed.Type, entity.BedStatusOccupied).
		Updates(map[string]interface{}{
			"ward":         bed.Ward,
			"room_number":  bed.RoomNumber,
			"bed_number":   bed.BedNumber,
			"type":         bed.Type,
			"equipment":    bed.Equipment,
			"notes":        bed.Notes,
			"last_updated": bed.LastUpdated,
		})
	return result.RowsAffected, result.Error
}

// Assign binds a patient to the bed ONLY if it is still active, Available and unassigned.
// Returns affected rows: 1 = assigned, 0 = lost the race or bed not available.
func (r *bedRepository) Assign(db *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error) {
	result := db.Model(&entity.Bed{}).
		Where("id = ? AND is_active = ? AND status = ? AND assigned_patient_id IS NULL", id, true, entity.BedStatusAvailable).
		Updates(map[string]interface{}{
			"status":              entity.BedStatusOccupied,
			"assigned_patient_id": patientID,
			"last_updated":        at,
		})
	return result.RowsAffected, result.Error
}

// Unassign reverts an Assign that could not be completed, returning the bed to Available.
// It only touches the bed while it is still bound to patientID.
func (r *bedRepository) Unassign(db *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error) {
	result := db.Model(&entity.Bed{}).
		Where("id = ? AND status = ? AND assigned_patient_id = ?", id, entity.BedStatusOccupied, patientID).
		Updates(map[string]interface{}{
			"status":              entity.BedStatusAvailable,
			"assigned_patient_id": gorm.Expr("NULL"),
			"last_updated":        at,
		})
	return result.RowsAffected, result.Error
}

// Release frees an occupied bed and sends it to Cleaning.
// 0 affected rows means the bed was already released.
func (r *bedRepository) Release(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error) {
	result := db.Model(&entity.Bed{}).
		Where("id = ? AND status = ?", id, entity.BedStatusOccupied).
		Updates(map[string]interface{}{
			"status":              entity.BedStatusCleaning,
			"assigned_patient_id": gorm.Expr("NULL"),
			"last_updated":        at,
		})
	return result.RowsAffected, result.Error
}

// ReleasePatient is Release restricted to a bed still bound to patientID
func (r *bedRepository) ReleasePatient(db *gorm.DB, id uuid.UUID, patientID string, at time.Time) (int64, error) {
	result := db.Model(&entity.Bed{}).
		Where("id = ? AND status = ? AND assigned_patient_id = ?", id, entity.BedStatusOccupied, patientID).
		Updates(map[string]interface{}{
			"status":              entity.BedStatusCleaning,
			"assigned_patient_id": gorm.Expr("NULL"),
			"last_updated":        at,
		})
	return result.RowsAffected, result.Error
}

// UpdateStatus applies a staff status override on an active bed that is not occupied.
// Occupancy only changes through Assign/Release.
func (r *bedRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BedStatus, notes *string, at time.Time) (int64, error) {
	updates := map[string]interface{}{
		"status":       status,
		"last_updated": at,
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := db.Model(&entity.Bed{}).
		Where("id = ? AND is_active = ? AND status <> ?", id, true, entity.BedStatusOccupied).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Deactivate soft-deletes a bed that is not occupied
func (r *bedRepository) Deactivate(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error) {
	result := db.Model(&entity.Bed{}).
		Where("id = ? AND is_active = ? AND status <> ?", id, true, entity.BedStatusOccupied).
		Updates(map[string]interface{}{
			"is_active":    false,
			"status":       entity.BedStatusMaintenance,
			"last_updated": at,
		})
	return result.RowsAffected, result.Error
}
