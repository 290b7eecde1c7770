package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func admissionRequest(patientID string, category entity.PatientCategory, priority entity.Priority) *dto.CreateAdmissionRequest {
	return &dto.CreateAdmissionRequest{
		PatientID:          patientID,
		PatientName:        "Patient " + patientID,
		PatientCategory:    string(category),
		Priority:           string(priority),
		AdmissionReason:    "Chest pain",
		AttendingPhysician: "Dr. House",
	}
}

// assertBedInvariant checks assigned patient is set exactly when the bed is Occupied
func assertBedInvariant(t *testing.T, bed entity.Bed) {
	t.Helper()
	assert.Equal(t, bed.Status == entity.BedStatusOccupied, bed.AssignedPatientID != nil,
		"bed %s: status=%s assigned=%v", bed.ID, bed.Status, bed.AssignedPatientID)
}

func TestCreateAdmission_CriticalEmergencyGetsICUBed(t *testing.T) {
	f := newFixture(t)
	ctx := staffContext()

	created, err := f.bedUsecase.CreateBed(ctx, &dto.CreateBedRequest{
		Ward:       "ICU",
		RoomNumber: "101",
		BedNumber:  "A",
		Type:       "ICU",
	})
	require.NoError(t, err)

	admission, err := f.admissionUsecase.CreateAdmission(ctx, admissionRequest("P1", entity.CategoryEmergency, entity.PriorityCritical))
	require.NoError(t, err)
	assert.Equal(t, created.ID, admission.BedID)
	assert.Equal(t, "ICU", admission.Ward)
	assert.Equal(t, string(entity.AdmissionStatusActive), admission.Status)
	assert.Equal(t, string(entity.WorkflowAdmitted), admission.WorkflowStatus)
	assert.Contains(t, admission.AllocationReason, "ICU bed for critical patient")

	bed, err := f.bedUsecase.GetBed(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BedStatusOccupied), bed.Status)
	require.NotNil(t, bed.AssignedPatientID)
	assert.Equal(t, "P1", *bed.AssignedPatientID)

	assert.Equal(t, []string{service.EventBedCreated, service.EventAdmissionCreated}, f.publisher.Types())
	assert.Equal(t, []string{entity.AuditActionBedCreate, entity.AuditActionAdmissionCreate}, f.audits.Actions())
}

func TestCreateAdmission_DefaultsToMediumPriority(t *testing.T) {
	f := newFixture(t)
	f.addBed("General", "201", "A", entity.BedTypeGeneral)

	req := admissionRequest("P1", entity.CategoryObservation, "")
	admission, err := f.admissionUsecase.CreateAdmission(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PriorityMedium), admission.Priority)
	assert.Equal(t, "Best available option", admission.AllocationReason)
}

func TestCreateAdmission_ConcurrentRequestsForLastICUBed(t *testing.T) {
	f := newFixture(t)
	bed := f.addBed("ICU", "101", "A", entity.BedTypeICU)

	const workers = 2
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patientID := []string{"P1", "P2"}[i]
			_, errs[i] = f.admissionUsecase.CreateAdmission(context.Background(),
				admissionRequest(patientID, entity.CategoryEmergency, entity.PriorityCritical))
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var allocErr *BedAllocationError
		require.True(t, errors.As(err, &allocErr), "unexpected error: %v", err)
		assert.Equal(t, entity.BedTypeICU, allocErr.BedType)
		failed++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, f.admissions.Count())

	stored := f.beds.Get(bed.ID)
	assert.Equal(t, entity.BedStatusOccupied, stored.Status)
	assertBedInvariant(t, stored)
}

func TestCreateAdmission_RetriesWhenBedTakenConcurrently(t *testing.T) {
	f := newFixture(t)
	first := f.addBed("General", "101", "A", entity.BedTypeGeneral)
	second := f.addBed("General", "101", "B", entity.BedTypeGeneral)

	// The first candidate is claimed between snapshot and assign
	f.beds.BeforeAssign = func(id uuid.UUID) {
		if id == first.ID {
			f.beds.BeforeAssign = nil
			_, _ = f.beds.Assign(nil, id, "someone-else", time.Now())
		}
	}

	admission, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)
	assert.Equal(t, second.ID, admission.BedID)
}

func TestCreateAdmission_NoBedOfRequiredTypeReturnsAlternatives(t *testing.T) {
	f := newFixture(t)
	f.addBed("General", "201", "A", entity.BedTypeGeneral)
	f.addBed("General", "201", "B", entity.BedTypeGeneral)
	f.addBed("Private", "301", "A", entity.BedTypePrivate)

	_, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryEmergency, entity.PriorityCritical))

	var allocErr *BedAllocationError
	require.True(t, errors.As(err, &allocErr))
	assert.Equal(t, "No available ICU beds found", allocErr.Reason)
	require.Len(t, allocErr.Alternatives, 2)
	assert.Equal(t, entity.BedTypeGeneral, allocErr.Alternatives[0].BedType)
	assert.Equal(t, 2, allocErr.Alternatives[0].AvailableCount)
	assert.Equal(t, entity.BedTypePrivate, allocErr.Alternatives[1].BedType)
	assert.Equal(t, 0, f.admissions.Count())
}

func TestCreateAdmission_PatientAlreadyAdmitted(t *testing.T) {
	f := newFixture(t)
	f.addBed("General", "201", "A", entity.BedTypeGeneral)
	spare := f.addBed("General", "201", "B", entity.BedTypeGeneral)

	first, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryScheduled, entity.PriorityLow))
	require.NoError(t, err)

	_, err = f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryScheduled, entity.PriorityLow))
	require.ErrorIs(t, err, ErrPatientAlreadyAdmitted)

	var admitted *AlreadyAdmittedError
	require.True(t, errors.As(err, &admitted))
	require.NotNil(t, admitted.Existing)
	assert.Equal(t, first.ID, admitted.Existing.ID)
	assert.Equal(t, first.BedID, admitted.Existing.BedID)
	assert.Equal(t, "General", admitted.Existing.Ward)

	assert.Equal(t, entity.BedStatusAvailable, f.beds.Get(spare.ID).Status)
	assert.Equal(t, 1, f.admissions.Count())
}

func TestCreateAdmission_InsertFailureReturnsBed(t *testing.T) {
	f := newFixture(t)
	bed := f.addBed("General", "201", "A", entity.BedTypeGeneral)
	f.admissions.CreateErr = errors.New("connection reset")

	_, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.Error(t, err)

	stored := f.beds.Get(bed.ID)
	assert.Equal(t, entity.BedStatusAvailable, stored.Status)
	assertBedInvariant(t, stored)
}

func TestCreateAdmission_CancelledRequestStillReturnsBed(t *testing.T) {
	f := newFixture(t)
	bed := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	// The client goes away while the admission row is being written
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.admissions.OnCreate = func() error {
		cancel()
		return ctx.Err()
	}

	_, err := f.admissionUsecase.CreateAdmission(ctx,
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.ErrorIs(t, err, context.Canceled)

	stored := f.beds.Get(bed.ID)
	assert.Equal(t, entity.BedStatusAvailable, stored.Status)
	assert.Nil(t, stored.AssignedPatientID)
	assert.Equal(t, 0, f.admissions.Count())
}

func TestCreateAdmission_LockHeldByAnotherRequest(t *testing.T) {
	f := newFixture(t)
	f.addBed("General", "201", "A", entity.BedTypeGeneral)
	require.NoError(t, f.redis.Set("lock:patient:P1", "other-request"))

	_, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	assert.ErrorIs(t, err, ErrAdmissionInProgress)
	assert.Equal(t, 0, f.admissions.Count())
}

func TestDischargePatient_SendsBedToCleaning(t *testing.T) {
	f := newFixture(t)
	ctx := staffContext()
	bed := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(ctx, admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)

	discharged, err := f.admissionUsecase.DischargePatient(ctx, admission.ID, &dto.DischargeRequest{DischargeType: "Normal"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AdmissionStatusDischarged), discharged.Status)
	assert.Equal(t, string(entity.WorkflowDischarged), discharged.WorkflowStatus)
	require.NotNil(t, discharged.ActualDischargeDate)
	require.NotNil(t, discharged.DischargeInfo)
	assert.Equal(t, "Normal", discharged.DischargeInfo.DischargeType)

	stored := f.beds.Get(bed.ID)
	assert.Equal(t, entity.BedStatusCleaning, stored.Status)
	assertBedInvariant(t, stored)

	// The bed cannot be claimed again until staff marks it Available
	err = f.bedUsecase.AssignBed(ctx, bed.ID, "P2")
	assert.ErrorIs(t, err, ErrBedNotAvailable)

	_, err = f.bedUsecase.UpdateBedStatus(ctx, bed.ID, &dto.UpdateBedStatusRequest{Status: "Available"})
	require.NoError(t, err)
	require.NoError(t, f.bedUsecase.AssignBed(ctx, bed.ID, "P2"))

	_, err = f.admissionUsecase.DischargePatient(ctx, admission.ID, &dto.DischargeRequest{DischargeType: "Normal"})
	assert.ErrorIs(t, err, ErrAdmissionNotActive)
}

func TestDischargePatient_ReleaseFailureStillDischarges(t *testing.T) {
	f := newFixture(t)
	bed := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)

	f.beds.ReleaseErr = errors.New("store unavailable")
	discharged, err := f.admissionUsecase.DischargePatient(context.Background(), admission.ID, &dto.DischargeRequest{DischargeType: "Deceased"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AdmissionStatusDischarged), discharged.Status)

	// Left for the reconciler
	assert.Equal(t, entity.BedStatusOccupied, f.beds.Get(bed.ID).Status)
}

func TestDischargePatient_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.admissionUsecase.DischargePatient(context.Background(), uuid.New(), &dto.DischargeRequest{DischargeType: "Normal"})
	assert.ErrorIs(t, err, ErrAdmissionNotFound)
}

func TestTransferPatient_MovesAdmissionAndReleasesOldBed(t *testing.T) {
	f := newFixture(t)
	ctx := staffContext()
	b1 := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(ctx, admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)
	require.Equal(t, b1.ID, admission.BedID)

	b2 := f.addBed("Step-Down", "310", "B", entity.BedTypeGeneral)
	moved, err := f.admissionUsecase.TransferPatient(ctx, admission.ID, &dto.TransferRequest{
		NewBedID:     b2.ID,
		Reason:       "ICU downgrade",
		AuthorizedBy: "Dr. Grey",
	})
	require.NoError(t, err)
	assert.Equal(t, b2.ID, moved.BedID)
	assert.Equal(t, "Step-Down", moved.Ward)
	assert.Equal(t, "310", moved.RoomNumber)
	require.Len(t, moved.TransferHistory, 1)
	assert.Equal(t, b1.ID, moved.TransferHistory[0].FromBedID)
	assert.Equal(t, b2.ID, moved.TransferHistory[0].ToBedID)
	assert.Equal(t, "ICU downgrade", moved.TransferHistory[0].Reason)

	old := f.beds.Get(b1.ID)
	assert.Equal(t, entity.BedStatusCleaning, old.Status)
	assertBedInvariant(t, old)

	current := f.beds.Get(b2.ID)
	assert.Equal(t, entity.BedStatusOccupied, current.Status)
	require.NotNil(t, current.AssignedPatientID)
	assert.Equal(t, "P1", *current.AssignedPatientID)
}

func TestTransferPatient_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := staffContext()
	b1 := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(ctx, admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)
	b2 := f.addBed("General", "202", "A", entity.BedTypeGeneral)

	_, err = f.admissionUsecase.TransferPatient(ctx, admission.ID, &dto.TransferRequest{NewBedID: b2.ID, Reason: "isolation", AuthorizedBy: "Dr. Grey"})
	require.NoError(t, err)

	_, err = f.bedUsecase.UpdateBedStatus(ctx, b1.ID, &dto.UpdateBedStatusRequest{Status: "Available"})
	require.NoError(t, err)

	back, err := f.admissionUsecase.TransferPatient(ctx, admission.ID, &dto.TransferRequest{NewBedID: b1.ID, Reason: "isolation lifted", AuthorizedBy: "Dr. Grey"})
	require.NoError(t, err)
	assert.Equal(t, admission.BedID, back.BedID)
	assert.Equal(t, admission.Ward, back.Ward)
	assert.Equal(t, admission.RoomNumber, back.RoomNumber)
	assert.Equal(t, admission.BedNumber, back.BedNumber)
	assert.Len(t, back.TransferHistory, 2)
}

func TestTransferPatient_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := staffContext()
	current := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(ctx, admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)
	require.Equal(t, current.ID, admission.BedID)

	occupied := f.addOccupiedBed("General", "202", "A", entity.BedTypeGeneral, "P9")
	cleaning := f.addBed("General", "203", "A", entity.BedTypeGeneral)
	_, err = f.beds.UpdateStatus(nil, cleaning.ID, entity.BedStatusCleaning, nil, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		id     uuid.UUID
		target uuid.UUID
		want   error
	}{
		{"unknown admission", uuid.New(), occupied.ID, ErrAdmissionNotFound},
		{"unknown bed", admission.ID, uuid.New(), ErrBedNotFound},
		{"occupied bed", admission.ID, occupied.ID, ErrTargetBedUnavailable},
		{"cleaning bed", admission.ID, cleaning.ID, ErrTargetBedUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.admissionUsecase.TransferPatient(ctx, tt.id, &dto.TransferRequest{NewBedID: tt.target, Reason: "r", AuthorizedBy: "a"})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("same bed", func(t *testing.T) {
		_, err := f.admissionUsecase.TransferPatient(ctx, admission.ID, &dto.TransferRequest{NewBedID: current.ID, Reason: "r", AuthorizedBy: "a"})
		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})

	stored, err := f.admissionUsecase.GetAdmission(ctx, admission.ID)
	require.NoError(t, err)
	assert.Equal(t, current.ID, stored.BedID)
	assert.Empty(t, stored.TransferHistory)
}

func TestTransferPatient_RebindFailureReturnsNewBed(t *testing.T) {
	f := newFixture(t)
	b1 := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)
	b2 := f.addBed("General", "202", "A", entity.BedTypeGeneral)

	f.admissions.RebindErr = errors.New("deadlock detected")
	_, err = f.admissionUsecase.TransferPatient(context.Background(), admission.ID, &dto.TransferRequest{NewBedID: b2.ID, Reason: "r", AuthorizedBy: "a"})
	require.Error(t, err)

	assert.Equal(t, entity.BedStatusAvailable, f.beds.Get(b2.ID).Status)
	assert.Equal(t, entity.BedStatusOccupied, f.beds.Get(b1.ID).Status)
}

func TestTransferPatient_CancelledRebindStillReturnsNewBed(t *testing.T) {
	f := newFixture(t)
	b1 := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)
	b2 := f.addBed("General", "202", "A", entity.BedTypeGeneral)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.admissions.RebindErr = context.Canceled

	_, err = f.admissionUsecase.TransferPatient(ctx, admission.ID, &dto.TransferRequest{NewBedID: b2.ID, Reason: "r", AuthorizedBy: "a"})
	require.Error(t, err)

	assert.Equal(t, entity.BedStatusAvailable, f.beds.Get(b2.ID).Status)
	assert.Equal(t, entity.BedStatusOccupied, f.beds.Get(b1.ID).Status)
}

func TestTransferPatient_ReleaseFailureLeavesOverAssignment(t *testing.T) {
	f := newFixture(t)
	b1 := f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)
	b2 := f.addBed("General", "202", "A", entity.BedTypeGeneral)

	f.beds.ReleaseErr = errors.New("store unavailable")
	moved, err := f.admissionUsecase.TransferPatient(context.Background(), admission.ID, &dto.TransferRequest{NewBedID: b2.ID, Reason: "r", AuthorizedBy: "a"})
	require.NoError(t, err)
	assert.Equal(t, b2.ID, moved.BedID)

	// Patient holds both beds rather than none
	assert.Equal(t, entity.BedStatusOccupied, f.beds.Get(b1.ID).Status)
	assert.Equal(t, entity.BedStatusOccupied, f.beds.Get(b2.ID).Status)
}

func TestUpdateWorkflowStatus(t *testing.T) {
	f := newFixture(t)
	f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow))
	require.NoError(t, err)

	updated, err := f.admissionUsecase.UpdateWorkflowStatus(context.Background(), admission.ID,
		&dto.UpdateWorkflowRequest{WorkflowStatus: "Ready for Discharge"})
	require.NoError(t, err)
	assert.Equal(t, "Ready for Discharge", updated.WorkflowStatus)

	// Any status may follow any other
	updated, err = f.admissionUsecase.UpdateWorkflowStatus(context.Background(), admission.ID,
		&dto.UpdateWorkflowRequest{WorkflowStatus: "Admitted"})
	require.NoError(t, err)
	assert.Equal(t, "Admitted", updated.WorkflowStatus)

	_, err = f.admissionUsecase.DischargePatient(context.Background(), admission.ID, &dto.DischargeRequest{DischargeType: "Normal"})
	require.NoError(t, err)

	_, err = f.admissionUsecase.UpdateWorkflowStatus(context.Background(), admission.ID,
		&dto.UpdateWorkflowRequest{WorkflowStatus: "Under Observation"})
	assert.ErrorIs(t, err, ErrAdmissionNotActive)
}

func TestUpdateAdmission_ChangesOnlyGivenFields(t *testing.T) {
	f := newFixture(t)
	f.addBed("General", "201", "A", entity.BedTypeGeneral)

	req := admissionRequest("P1", entity.CategoryObservation, entity.PriorityLow)
	req.Diagnosis = "Unknown"
	admission, err := f.admissionUsecase.CreateAdmission(context.Background(), req)
	require.NoError(t, err)

	physician := "Dr. Wilson"
	updated, err := f.admissionUsecase.UpdateAdmission(context.Background(), admission.ID, &dto.UpdateAdmissionRequest{
		AttendingPhysician:  &physician,
		SpecialRequirements: []string{"oxygen"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Wilson", updated.AttendingPhysician)
	assert.Equal(t, "Unknown", updated.Diagnosis)
	assert.Equal(t, []string{"oxygen"}, updated.SpecialRequirements)
	assert.Equal(t, admission.BedID, updated.BedID)

	past := admission.AdmissionDate.Add(-time.Hour)
	_, err = f.admissionUsecase.UpdateAdmission(context.Background(), admission.ID, &dto.UpdateAdmissionRequest{ExpectedDischargeDate: &past})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = f.admissionUsecase.UpdateAdmission(context.Background(), uuid.New(), &dto.UpdateAdmissionRequest{})
	assert.ErrorIs(t, err, ErrAdmissionNotFound)
}

func TestGetAdmissionsByCategory_SortedByPriority(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	for i, p := range []entity.Priority{entity.PriorityLow, entity.PriorityCritical, entity.PriorityMedium, entity.PriorityHigh} {
		f.admissions.Put(entity.Admission{
			PatientID:       uuid.NewString(),
			PatientCategory: entity.CategoryEmergency,
			Priority:        p,
			Status:          entity.AdmissionStatusActive,
			AdmissionDate:   now.Add(time.Duration(i) * time.Minute),
		})
	}
	f.admissions.Put(entity.Admission{
		PatientID:       "other",
		PatientCategory: entity.CategoryScheduled,
		Priority:        entity.PriorityCritical,
		Status:          entity.AdmissionStatusActive,
		AdmissionDate:   now,
	})

	list, err := f.admissionUsecase.GetAdmissionsByCategory(context.Background(), "Emergency")
	require.NoError(t, err)
	require.Equal(t, 4, list.Total)

	var priorities []string
	for _, a := range list.Admissions {
		priorities = append(priorities, a.Priority)
	}
	assert.Equal(t, []string{"Critical", "High", "Medium", "Low"}, priorities)

	_, err = f.admissionUsecase.GetAdmissionsByCategory(context.Background(), "Walk-in")
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestGetWorkflowDashboard(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	put := func(ward string, priority entity.Priority, workflow entity.WorkflowStatus, status entity.AdmissionStatus) {
		f.admissions.Put(entity.Admission{
			PatientID:      uuid.NewString(),
			Ward:           ward,
			Priority:       priority,
			WorkflowStatus: workflow,
			Status:         status,
			AdmissionDate:  now,
		})
	}
	put("ICU", entity.PriorityLow, entity.WorkflowAdmitted, entity.AdmissionStatusActive)
	put("ICU", entity.PriorityCritical, entity.WorkflowAdmitted, entity.AdmissionStatusActive)
	put("ICU", entity.PriorityHigh, entity.WorkflowReadyForDischarge, entity.AdmissionStatusActive)
	put("ICU", entity.PriorityHigh, entity.WorkflowDischarged, entity.AdmissionStatusDischarged)
	put("General", entity.PriorityHigh, entity.WorkflowUnderObservation, entity.AdmissionStatusActive)

	dashboard, err := f.admissionUsecase.GetWorkflowDashboard(context.Background(), "ICU")
	require.NoError(t, err)
	assert.Equal(t, dto.WorkflowStatsResponse{Total: 3, Admitted: 2, ReadyForDischarge: 1}, dashboard.Stats)

	admitted := dashboard.WorkflowData["Admitted"]
	require.Len(t, admitted, 2)
	assert.Equal(t, "Critical", admitted[0].Priority)
	assert.Equal(t, "Low", admitted[1].Priority)
	assert.Empty(t, dashboard.WorkflowData["Under Observation"])
	assert.NotNil(t, dashboard.WorkflowData["Discharged"])
}

func TestGetBedStatusTracker_JoinsActiveAdmissions(t *testing.T) {
	f := newFixture(t)
	free := f.addBed("ICU", "101", "B", entity.BedTypeICU)
	taken := f.addBed("ICU", "101", "A", entity.BedTypeICU)
	f.addBed("General", "201", "A", entity.BedTypeGeneral)

	admission, err := f.admissionUsecase.CreateAdmission(context.Background(),
		admissionRequest("P1", entity.CategoryEmergency, entity.PriorityCritical))
	require.NoError(t, err)
	require.Equal(t, taken.ID, admission.BedID)

	entries, err := f.admissionUsecase.GetBedStatusTracker(context.Background(), "ICU")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, taken.ID, entries[0].ID)
	require.NotNil(t, entries[0].Admission)
	assert.Equal(t, admission.ID, entries[0].Admission.ID)
	assert.Equal(t, free.ID, entries[1].ID)
	assert.Nil(t, entries[1].Admission)
}
