package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type InsuranceInfoRequest struct {
	Provider     string `json:"provider" validate:"max=255"`
	PolicyNumber string `json:"policy_number" validate:"max=100"`
	CoverageType string `json:"coverage_type" validate:"max=100"`
}

type EmergencyContactRequest struct {
	Name         string `json:"name" validate:"max=255"`
	Relationship string `json:"relationship" validate:"max=100"`
	Phone        string `json:"phone" validate:"max=50"`
}

type CreateAdmissionRequest struct {
	PatientID             string                   `json:"patient_id" validate:"required,max=100"`
	PatientName           string                   `json:"patient_name" validate:"required,max=255"`
	PatientCategory       string                   `json:"patient_category" validate:"required,oneof=Emergency Scheduled Transfer Observation"`
	Priority              string                   `json:"priority" validate:"omitempty,oneof=Critical High Medium Low"`
	AdmissionReason       string                   `json:"admission_reason" validate:"required,max=2000"`
	Diagnosis             string                   `json:"diagnosis" validate:"max=2000"`
	AttendingPhysician    string                   `json:"attending_physician" validate:"required,max=255"`
	PreferredWard         string                   `json:"preferred_ward" validate:"max=100"`
	SpecialRequirements   []string                 `json:"special_requirements" validate:"omitempty,dive,required,max=100"`
	InsuranceInfo         *InsuranceInfoRequest    `json:"insurance_info"`
	EmergencyContact      *EmergencyContactRequest `json:"emergency_contact"`
	ExpectedDischargeDate *time.Time               `json:"expected_discharge_date"`
	Notes                 string                   `json:"notes" validate:"max=1000"`
}

// UpdateAdmissionRequest changes only the fields present in the body
type UpdateAdmissionRequest struct {
	Diagnosis             *string                  `json:"diagnosis" validate:"omitempty,max=2000"`
	AttendingPhysician    *string                  `json:"attending_physician" validate:"omitempty,min=1,max=255"`
	ExpectedDischargeDate *time.Time               `json:"expected_discharge_date"`
	Notes                 *string                  `json:"notes" validate:"omitempty,max=1000"`
	SpecialRequirements   []string                 `json:"special_requirements" validate:"omitempty,dive,required,max=100"`
	InsuranceInfo         *InsuranceInfoRequest    `json:"insurance_info"`
	EmergencyContact      *EmergencyContactRequest `json:"emergency_contact"`
}

type DischargeRequest struct {
	DischargeType         string     `json:"discharge_type" validate:"required,oneof=Normal 'Against Medical Advice' 'Transfer to Another Facility' Deceased"`
	DischargeInstructions string     `json:"discharge_instructions" validate:"max=2000"`
	FollowUpRequired      bool       `json:"follow_up_required"`
	FollowUpDate          *time.Time `json:"follow_up_date"`
}

type TransferRequest struct {
	NewBedID     uuid.UUID `json:"new_bed_id" validate:"required"`
	Reason       string    `json:"reason" validate:"required,max=1000"`
	AuthorizedBy string    `json:"authorized_by" validate:"required,max=255"`
}

type UpdateWorkflowRequest struct {
	WorkflowStatus string `json:"workflow_status" validate:"required,oneof=Admitted 'Under Observation' 'Ready for Discharge' Discharged"`
}

// Response DTOs

type InsuranceInfoResponse struct {
	Provider     string `json:"provider,omitempty"`
	PolicyNumber string `json:"policy_number,omitempty"`
	CoverageType string `json:"coverage_type,omitempty"`
}

type EmergencyContactResponse struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

type TransferResponse struct {
	FromBedID    uuid.UUID `json:"from_bed_id"`
	ToBedID      uuid.UUID `json:"to_bed_id"`
	TransferDate time.Time `json:"transfer_date"`
	Reason       string    `json:"reason"`
	AuthorizedBy string    `json:"authorized_by"`
}

type DischargeInfoResponse struct {
	DischargeType         string     `json:"discharge_type"`
	DischargeInstructions string     `json:"discharge_instructions,omitempty"`
	FollowUpRequired      bool       `json:"follow_up_required"`
	FollowUpDate          *time.Time `json:"follow_up_date,omitempty"`
}

type AdmissionResponse struct {
	ID                    uuid.UUID                `json:"id"`
	PatientID             string                   `json:"patient_id"`
	PatientName           string                   `json:"patient_name"`
	PatientCategory       string                   `json:"patient_category"`
	Priority              string                   `json:"priority"`
	BedID                 uuid.UUID                `json:"bed_id"`
	Ward                  string                   `json:"ward"`
	RoomNumber            string                   `json:"room_number"`
	BedNumber             string                   `json:"bed_number"`
	AdmissionDate         time.Time                `json:"admission_date"`
	ExpectedDischargeDate *time.Time               `json:"expected_discharge_date,omitempty"`
	ActualDischargeDate   *time.Time               `json:"actual_discharge_date,omitempty"`
	Status                string                   `json:"status"`
	WorkflowStatus        string                   `json:"workflow_status"`
	AdmissionReason       string                   `json:"admission_reason"`
	Diagnosis             string                   `json:"diagnosis,omitempty"`
	AttendingPhysician    string                   `json:"attending_physician"`
	SpecialRequirements   []string                 `json:"special_requirements"`
	InsuranceInfo         InsuranceInfoResponse    `json:"insurance_info"`
	EmergencyContact      EmergencyContactResponse `json:"emergency_contact"`
	Notes                 string                   `json:"notes,omitempty"`
	TransferHistory       []TransferResponse       `json:"transfer_history"`
	DischargeInfo         *DischargeInfoResponse   `json:"discharge_info,omitempty"`
	AllocationReason      string                   `json:"allocation_reason,omitempty"`
	CreatedAt             time.Time                `json:"created_at"`
	UpdatedAt             time.Time                `json:"updated_at"`
}

type AdmissionListResponse struct {
	Admissions []AdmissionResponse `json:"admissions"`
	Total      int                 `json:"total"`
}

// ExistingAdmissionResponse identifies the admission that blocks a new one
type ExistingAdmissionResponse struct {
	AdmissionID uuid.UUID `json:"admission_id"`
	BedID       uuid.UUID `json:"bed_id"`
	Ward        string    `json:"ward"`
	RoomNumber  string    `json:"room_number"`
	BedNumber   string    `json:"bed_number"`
}

type AlternativeResponse struct {
	BedType        string        `json:"bed_type"`
	AvailableCount int           `json:"available_count"`
	Beds           []BedResponse `json:"beds"`
}

type WorkflowStatsResponse struct {
	Total             int `json:"total"`
	Admitted          int `json:"admitted"`
	UnderObservation  int `json:"under_observation"`
	ReadyForDischarge int `json:"ready_for_discharge"`
	Discharged        int `json:"discharged"`
}

type WorkflowDashboardResponse struct {
	WorkflowData map[string][]AdmissionResponse `json:"workflow_data"`
	Stats        WorkflowStatsResponse          `json:"stats"`
}

type BedStatusEntryResponse struct {
	BedResponse
	Admission *AdmissionResponse `json:"admission"`
}
