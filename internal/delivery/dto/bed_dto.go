package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type EquipmentRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Status string `json:"status" validate:"required,oneof=Working Maintenance 'Out of Order'"`
}

type CreateBedRequest struct {
	Ward       string             `json:"ward" validate:"required,max=100"`
	RoomNumber string             `json:"room_number" validate:"required,max=50"`
	BedNumber  string             `json:"bed_number" validate:"required,max=50"`
	Type       string             `json:"type" validate:"required,oneof=ICU General Private"`
	Equipment  []EquipmentRequest `json:"equipment" validate:"omitempty,dive"`
	Notes      string             `json:"notes" validate:"max=500"`
}

// UpdateBedRequest changes only the fields present in the body.
// A nil Equipment leaves equipment untouched, an empty list clears it.
type UpdateBedRequest struct {
	Ward       *string            `json:"ward" validate:"omitempty,min=1,max=100"`
	RoomNumber *string            `json:"room_number" validate:"omitempty,min=1,max=50"`
	BedNumber  *string            `json:"bed_number" validate:"omitempty,min=1,max=50"`
	Type       *string            `json:"type" validate:"omitempty,oneof=ICU General Private"`
	Equipment  []EquipmentRequest `json:"equipment" validate:"omitempty,dive"`
	Notes      *string            `json:"notes" validate:"omitempty,max=500"`
}

// UpdateBedStatusRequest is the staff override. Occupied is only reachable through admission.
type UpdateBedStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=Available Cleaning Maintenance Reserved"`
	Notes  *string `json:"notes" validate:"omitempty,max=500"`
}

type CheckAvailabilityRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// Response DTOs

type EquipmentResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type BedResponse struct {
	ID                uuid.UUID           `json:"id"`
	Ward              string              `json:"ward"`
	RoomNumber        string              `json:"room_number"`
	BedNumber         string              `json:"bed_number"`
	Type              string              `json:"type"`
	Status            string              `json:"status"`
	AssignedPatientID *string             `json:"assigned_patient_id"`
	Equipment         []EquipmentResponse `json:"equipment"`
	Notes             string              `json:"notes,omitempty"`
	IsActive          bool                `json:"is_active"`
	LastUpdated       time.Time           `json:"last_updated"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type BedListResponse struct {
	Beds  []BedResponse `json:"beds"`
	Total int           `json:"total"`
}

// BedMappingResponse groups beds as ward -> room -> beds
type BedMappingResponse map[string]map[string][]BedResponse

type ConflictingAdmissionResponse struct {
	AdmissionID           uuid.UUID  `json:"admission_id"`
	PatientName           string     `json:"patient_name"`
	AdmissionDate         time.Time  `json:"admission_date"`
	ExpectedDischargeDate *time.Time `json:"expected_discharge_date,omitempty"`
}

type BedLocationResponse struct {
	BedID      uuid.UUID `json:"bed_id"`
	Ward       string    `json:"ward"`
	RoomNumber string    `json:"room_number"`
	BedNumber  string    `json:"bed_number"`
	Type       string    `json:"type"`
}

type AvailabilityResponse struct {
	Available             bool                           `json:"available"`
	Reason                string                         `json:"reason,omitempty"`
	Bed                   *BedLocationResponse           `json:"bed,omitempty"`
	ConflictingAdmissions []ConflictingAdmissionResponse `json:"conflicting_admissions,omitempty"`
}

type ReconcileResponse struct {
	Inspected int         `json:"inspected"`
	Released  []uuid.UUID `json:"released"`
}
