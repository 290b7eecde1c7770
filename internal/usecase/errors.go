package usecase

import (
	"errors"
	"fmt"
	"strings"

	"bed-admission-service/internal/allocator"
	"bed-admission-service/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrBedNotFound          = errors.New("bed not found")
	ErrDuplicateLocation    = errors.New("an active bed already exists at this ward, room and bed number")
	ErrBedOccupied          = errors.New("bed is occupied")
	ErrBedNotAvailable      = errors.New("bed is not available")
	ErrTargetBedUnavailable = errors.New("target bed is not available")
)

var (
	ErrAdmissionNotFound      = errors.New("admission not found")
	ErrPatientAlreadyAdmitted = errors.New("patient already has an active admission")
	ErrAdmissionNotActive     = errors.New("admission is not active")
	ErrAdmissionInProgress    = errors.New("another admission for this patient is in progress")
)

// Store constraint names used to translate unique violations
const (
	constraintBedLocation   = "uniq_beds_active_location"
	constraintActivePatient = "uniq_admissions_active_patient"
)

// ValidationError is a semantic input error detected after DTO validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// BedAllocationError means no suitable bed could be assigned. Alternatives
// lists what a human could choose instead.
type BedAllocationError struct {
	BedType      entity.BedType
	Reason       string
	Attempts     int
	Alternatives []allocator.Alternative
}

func (e *BedAllocationError) Error() string {
	return e.Reason
}

// AlreadyAdmittedError carries the Active admission that blocks a new one.
// It matches ErrPatientAlreadyAdmitted with errors.Is.
type AlreadyAdmittedError struct {
	Existing *entity.Admission
}

func (e *AlreadyAdmittedError) Error() string {
	if e.Existing == nil {
		return ErrPatientAlreadyAdmitted.Error()
	}
	return fmt.Sprintf("%s: admission %s in %s room %s bed %s",
		ErrPatientAlreadyAdmitted, e.Existing.ID, e.Existing.Ward, e.Existing.RoomNumber, e.Existing.BedNumber)
}

func (e *AlreadyAdmittedError) Is(target error) bool {
	return target == ErrPatientAlreadyAdmitted
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// on the specified constraint
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
