package repository

import (
	"errors"
	"time"

	"bed-admission-service/internal/domain/entity"
	domainRepo "bed-admission-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// priorityRankOrder sorts Critical first and Low last
const priorityRankOrder = "CASE priority WHEN 'Critical' THEN 0 WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END ASC"

var admissionSortColumns = map[string]string{
	"admissionDate":         "admission_date",
	"expectedDischargeDate": "expected_discharge_date",
	"patientName":           "patient_name",
	"priority":              "priority",
	"ward":                  "ward",
	"status":                "status",
	"createdAt":             "created_at",
}

type admissionRepository struct{}

func NewAdmissionRepository() domainRepo.AdmissionRepository {
	return &admissionRepository{}
}

func (r *admissionRepository) Create(db *gorm.DB, admission *entity.Admission) error {
	return db.Omit("TransferHistory").Create(admission).Error
}

func (r *admissionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Admission, error) {
	var admission entity.Admission
	err := db.Preload("TransferHistory", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("transfer_date ASC, id ASC")
	}).Where("id = ?", id).First(&admission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admission, nil
}

func (r *admissionRepository) FindActiveByPatient(db *gorm.DB, patientID string) (*entity.Admission, error) {
	var admission entity.Admission
	err := db.Where("patient_id = ? AND status = ?", patientID, entity.AdmissionStatusActive).
		First(&admission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admission, nil
}

func (r *admissionRepository) FindActiveByBedIDs(db *gorm.DB, bedIDs []uuid.UUID) ([]entity.Admission, error) {
	if len(bedIDs) == 0 {
		return []entity.Admission{}, nil
	}

	var admissions []entity.Admission
	err := db.Where("bed_id IN ? AND status = ?", bedIDs, entity.AdmissionStatusActive).
		Find(&admissions).Error
	if err != nil {
		return nil, err
	}
	return admissions, nil
}

func (r *admissionRepository) FindAll(db *gorm.DB, filter *entity.AdmissionFilter) ([]entity.Admission, int64, error) {
	query := db.Model(&entity.Admission{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PatientCategory != "" {
		query = query.Where("patient_category = ?", filter.PatientCategory)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Ward != "" {
		query = query.Where("ward = ?", filter.Ward)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortOrder := filter.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	page, limit := normalizePage(filter.Page, filter.Limit)

	var admissions []entity.Admission
	err := query.
		Order(orderClause(admissionSortColumns, filter.SortBy, sortOrder, "admissionDate")).
		Limit(limit).
		Offset(offset(page, limit)).
		Find(&admissions).Error
	if err != nil {
		return nil, 0, err
	}
	return admissions, total, nil
}

func (r *admissionRepository) FindByPatient(db *gorm.DB, patientID string) ([]entity.Admission, error) {
	var admissions []entity.Admission
	err := db.Where("patient_id = ?", patientID).
		Order("admission_date DESC").
		Find(&admissions).Error
	if err != nil {
		return nil, err
	}
	return admissions, nil
}

// FindActiveByWard returns active admissions, newest first. An empty ward means all wards.
func (r *admissionRepository) FindActiveByWard(db *gorm.DB, ward string) ([]entity.Admission, error) {
	query := db.Where("status = ?", entity.AdmissionStatusActive)
	if ward != "" {
		query = query.Where("ward = ?", ward)
	}

	var admissions []entity.Admission
	err := query.Order("admission_date DESC").Find(&admissions).Error
	if err != nil {
		return nil, err
	}
	return admissions, nil
}

func (r *admissionRepository) FindActiveByCategory(db *gorm.DB, category entity.PatientCategory) ([]entity.Admission, error) {
	var admissions []entity.Admission
	err := db.Where("patient_category = ? AND status = ?", category, entity.AdmissionStatusActive).
		Order(priorityRankOrder).
		Order("admission_date DESC").
		Find(&admissions).Error
	if err != nil {
		return nil, err
	}
	return admissions, nil
}

func (r *admissionRepository) FindActiveByPriority(db *gorm.DB, ward string) ([]entity.Admission, error) {
	query := db.Where("status = ?", entity.AdmissionStatusActive)
	if ward != "" {
		query = query.Where("ward = ?", ward)
	}

	var admissions []entity.Admission
	err := query.Order(priorityRankOrder).Order("admission_date DESC").Find(&admissions).Error
	if err != nil {
		return nil, err
	}
	return admissions, nil
}

// FindOverlapping returns active admissions on the bed that intersect [start, end].
// An admission without an expected discharge date is open-ended.
func (r *admissionRepository) FindOverlapping(db *gorm.DB, bedID uuid.UUID, start, end time.Time) ([]entity.Admission, error) {
	var admissions []entity.Admission
	err := db.Where("bed_id = ? AND status = ? AND admission_date <= ?", bedID, entity.AdmissionStatusActive, end).
		Where("expected_discharge_date >= ? OR expected_discharge_date IS NULL", start).
		Order("admission_date ASC").
		Find(&admissions).Error
	if err != nil {
		return nil, err
	}
	return admissions, nil
}

// CountExpectedDischarges counts active admissions expected to leave in [from, to)
func (r *admissionRepository) CountExpectedDischarges(db *gorm.DB, from, to time.Time, ward string) (int64, error) {
	query := db.Model(&entity.Admission{}).
		Where("status = ? AND expected_discharge_date >= ? AND expected_discharge_date < ?", entity.AdmissionStatusActive, from, to)
	if ward != "" {
		query = query.Where("ward = ?", ward)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update writes the clinical and contact details of an admission.
// Lifecycle columns (status, bed binding, discharge) are never touched here.
func (r *admissionRepository) Update(db *gorm.DB, admission *entity.Admission) (int64, error) {
	result := db.Model(&entity.Admission{}).
		Where("id = ?", admission.ID).
		Updates(map[string]interface{}{
			"diagnosis":                      admission.Diagnosis,
			"attending_physician":            admission.AttendingPhysician,
			"expected_discharge_date":        admission.ExpectedDischargeDate,
			"notes":                          admission.Notes,
			"special_requirements":           admission.SpecialRequirements,
			"insurance_provider":             admission.InsuranceInfo.Provider,
			"insurance_policy_number":        admission.InsuranceInfo.PolicyNumber,
			"insurance_coverage_type":        admission.InsuranceInfo.CoverageType,
			"emergency_contact_name":         admission.EmergencyContact.Name,
			"emergency_contact_relationship": admission.EmergencyContact.Relationship,
			"emergency_contact_phone":        admission.EmergencyContact.Phone,
		})
	return result.RowsAffected, result.Error
}

// Discharge moves an Active admission to Discharged and records discharge info.
// Returns affected rows: 0 = admission is no longer active.
func (r *admissionRepository) Discharge(db *gorm.DB, id uuid.UUID, info entity.DischargeInfo, at time.Time) (int64, error) {
	result := db.Model(&entity.Admission{}).
		Where("id = ? AND status = ?", id, entity.AdmissionStatusActive).
		Updates(map[string]interface{}{
			"status":                       entity.AdmissionStatusDischarged,
			"workflow_status":              entity.WorkflowDischarged,
			"actual_discharge_date":        at,
			"discharge_type":               info.Type,
			"discharge_instructions":       info.Instructions,
			"discharge_follow_up_required": info.FollowUpRequired,
			"discharge_follow_up_date":     info.FollowUpDate,
		})
	return result.RowsAffected, result.Error
}

// Rebind moves an Active admission from transfer.FromBedID to a new location and
// appends the transfer record, in one transaction.
func (r *admissionRepository) Rebind(db *gorm.DB, id uuid.UUID, to entity.BedLocation, transfer *entity.AdmissionTransfer) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Admission{}).
			Where("id = ? AND status = ? AND bed_id = ?", id, entity.AdmissionStatusActive, transfer.FromBedID).
			Updates(map[string]interface{}{
				"bed_id":      to.BedID,
				"ward":        to.Ward,
				"room_number": to.RoomNumber,
				"bed_number":  to.BedNumber,
			})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		transfer.AdmissionID = id
		return tx.Create(transfer).Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (r *admissionRepository) UpdateWorkflowStatus(db *gorm.DB, id uuid.UUID, status entity.WorkflowStatus) (int64, error) {
	result := db.Model(&entity.Admission{}).
		Where("id = ? AND status = ?", id, entity.AdmissionStatusActive).
		Update("workflow_status", status)
	return result.RowsAffected, result.Error
}
