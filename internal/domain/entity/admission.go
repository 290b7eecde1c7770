package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PatientCategory classifies why a patient is admitted
type PatientCategory string

const (
	CategoryEmergency   PatientCategory = "Emergency"
	CategoryScheduled   PatientCategory = "Scheduled"
	CategoryTransfer    PatientCategory = "Transfer"
	CategoryObservation PatientCategory = "Observation"
)

// Priority of an admission
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// Rank orders priorities from most to least urgent
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// AdmissionStatus is the lifecycle state of an admission.
// Only Active admissions occupy a bed; every other value is terminal.
type AdmissionStatus string

const (
	AdmissionStatusActive      AdmissionStatus = "Active"
	AdmissionStatusDischarged  AdmissionStatus = "Discharged"
	AdmissionStatusTransferred AdmissionStatus = "Transferred"
	AdmissionStatusCancelled   AdmissionStatus = "Cancelled"
)

// WorkflowStatus is the clinical-progress substate of an active admission
type WorkflowStatus string

const (
	WorkflowAdmitted          WorkflowStatus = "Admitted"
	WorkflowUnderObservation  WorkflowStatus = "Under Observation"
	WorkflowReadyForDischarge WorkflowStatus = "Ready for Discharge"
	WorkflowDischarged        WorkflowStatus = "Discharged"
)

// DischargeType describes how a stay ended
type DischargeType string

const (
	DischargeNormal            DischargeType = "Normal"
	DischargeAgainstAdvice     DischargeType = "Against Medical Advice"
	DischargeToAnotherFacility DischargeType = "Transfer to Another Facility"
	DischargeDeceased          DischargeType = "Deceased"
)

type InsuranceInfo struct {
	Provider     string `gorm:"type:varchar(255)" json:"provider,omitempty"`
	PolicyNumber string `gorm:"type:varchar(100)" json:"policy_number,omitempty"`
	CoverageType string `gorm:"type:varchar(100)" json:"coverage_type,omitempty"`
}

type EmergencyContact struct {
	Name         string `gorm:"type:varchar(255)" json:"name,omitempty"`
	Relationship string `gorm:"type:varchar(100)" json:"relationship,omitempty"`
	Phone        string `gorm:"type:varchar(50)" json:"phone,omitempty"`
}

// DischargeInfo is recorded exactly once, when the admission is discharged.
// Type is nil until then.
type DischargeInfo struct {
	Type             *DischargeType `gorm:"type:varchar(50)" json:"discharge_type,omitempty"`
	Instructions     string         `gorm:"type:text" json:"discharge_instructions,omitempty"`
	FollowUpRequired bool           `gorm:"not null;default:false" json:"follow_up_required"`
	FollowUpDate     *time.Time     `json:"follow_up_date,omitempty"`
}

// Admission represents a patient's hospital stay bound to a bed
type Admission struct {
	ID                    uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID             string                      `gorm:"type:varchar(100);not null;index" json:"patient_id"`
	PatientName           string                      `gorm:"type:varchar(255);not null" json:"patient_name"`
	PatientCategory       PatientCategory             `gorm:"type:varchar(20);not null;index" json:"patient_category"`
	Priority              Priority                    `gorm:"type:varchar(20);not null;default:'Medium';index" json:"priority"`
	BedID                 uuid.UUID                   `gorm:"type:uuid;not null;index" json:"bed_id"`
	Ward                  string                      `gorm:"type:varchar(100);not null;index" json:"ward"`
	RoomNumber            string                      `gorm:"type:varchar(50);not null" json:"room_number"`
	BedNumber             string                      `gorm:"type:varchar(50);not null" json:"bed_number"`
	AdmissionDate         time.Time                   `gorm:"not null;index" json:"admission_date"`
	ExpectedDischargeDate *time.Time                  `gorm:"index" json:"expected_discharge_date,omitempty"`
	ActualDischargeDate   *time.Time                  `json:"actual_discharge_date,omitempty"`
	Status                AdmissionStatus             `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	AdmissionReason       string                      `gorm:"type:text;not null" json:"admission_reason"`
	Diagnosis             string                      `gorm:"type:text" json:"diagnosis,omitempty"`
	AttendingPhysician    string                      `gorm:"type:varchar(255);not null" json:"attending_physician"`
	InsuranceInfo         InsuranceInfo               `gorm:"embedded;embeddedPrefix:insurance_" json:"insurance_info"`
	EmergencyContact      EmergencyContact            `gorm:"embedded;embeddedPrefix:emergency_contact_" json:"emergency_contact"`
	SpecialRequirements   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"special_requirements"`
	Notes                 string                      `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	WorkflowStatus        WorkflowStatus              `gorm:"type:varchar(30);not null;default:'Admitted'" json:"workflow_status"`
	DischargeInfo         DischargeInfo               `gorm:"embedded;embeddedPrefix:discharge_" json:"discharge_info"`
	CreatedAt             time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	TransferHistory []AdmissionTransfer `gorm:"foreignKey:AdmissionID" json:"transfer_history"`
}

func (Admission) TableName() string {
	return "admissions"
}

// IsActive checks if the admission still occupies a bed
func (a *Admission) IsActive() bool {
	return a.Status == AdmissionStatusActive
}

// IsDischarged checks if discharge info has been recorded
func (a *Admission) IsDischarged() bool {
	return a.DischargeInfo.Type != nil
}

// AdmissionTransfer is an append-only record of a bed move
type AdmissionTransfer struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AdmissionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"admission_id"`
	FromBedID    uuid.UUID `gorm:"type:uuid;not null" json:"from_bed_id"`
	ToBedID      uuid.UUID `gorm:"type:uuid;not null" json:"to_bed_id"`
	TransferDate time.Time `gorm:"not null" json:"transfer_date"`
	Reason       string    `gorm:"type:text;not null" json:"reason"`
	AuthorizedBy string    `gorm:"type:varchar(255);not null" json:"authorized_by"`
}

func (AdmissionTransfer) TableName() string {
	return "admission_transfers"
}

// AdmissionFilter holds list filters and paging for admissions
type AdmissionFilter struct {
	Status          AdmissionStatus
	PatientCategory PatientCategory
	Priority        Priority
	Ward            string
	Page            int
	Limit           int
	SortBy          string
	SortOrder       string
}
