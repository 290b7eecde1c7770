package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bed-admission-service/internal/allocator"
	"bed-admission-service/internal/converter"
	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/domain/repository"
	"bed-admission-service/internal/observability/metrics"
	"bed-admission-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultAllocationAttempts bounds the snapshot/assign retry loop
const DefaultAllocationAttempts = 3

type AdmissionUsecase interface {
	CreateAdmission(ctx context.Context, req *dto.CreateAdmissionRequest) (*dto.AdmissionResponse, error)
	GetAdmission(ctx context.Context, id uuid.UUID) (*dto.AdmissionResponse, error)
	GetAdmissions(ctx context.Context, filter *entity.AdmissionFilter) ([]dto.AdmissionResponse, int64, error)
	GetActiveAdmissions(ctx context.Context) (*dto.AdmissionListResponse, error)
	GetAdmissionsByPatient(ctx context.Context, patientID string) (*dto.AdmissionListResponse, error)
	GetAdmissionsByWard(ctx context.Context, ward string) (*dto.AdmissionListResponse, error)
	GetAdmissionsByCategory(ctx context.Context, category string) (*dto.AdmissionListResponse, error)
	UpdateAdmission(ctx context.Context, id uuid.UUID, req *dto.UpdateAdmissionRequest) (*dto.AdmissionResponse, error)
	DischargePatient(ctx context.Context, id uuid.UUID, req *dto.DischargeRequest) (*dto.AdmissionResponse, error)
	TransferPatient(ctx context.Context, id uuid.UUID, req *dto.TransferRequest) (*dto.AdmissionResponse, error)
	UpdateWorkflowStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateWorkflowRequest) (*dto.AdmissionResponse, error)
	GetWorkflowDashboard(ctx context.Context, ward string) (*dto.WorkflowDashboardResponse, error)
	GetBedStatusTracker(ctx context.Context, ward string) ([]dto.BedStatusEntryResponse, error)
}

type admissionUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	bedRepo       repository.BedRepository
	admissionRepo repository.AdmissionRepository
	auditService  service.AuditService
	publisher     service.EventPublisher
	locker        service.PatientLocker
	metrics       *metrics.BedMetrics
	maxAttempts   int
	now           func() time.Time
}

func NewAdmissionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bedRepo repository.BedRepository,
	admissionRepo repository.AdmissionRepository,
	auditService service.AuditService,
	publisher service.EventPublisher,
	locker service.PatientLocker,
	m *metrics.BedMetrics,
	maxAttempts int,
) AdmissionUsecase {
	if maxAttempts < 1 {
		maxAttempts = DefaultAllocationAttempts
	}
	return &admissionUsecase{
		db:            db,
		log:           log,
		bedRepo:       bedRepo,
		admissionRepo: admissionRepo,
		auditService:  auditService,
		publisher:     publisher,
		locker:        locker,
		metrics:       m,
		maxAttempts:   maxAttempts,
		now:           time.Now,
	}
}

// CreateAdmission allocates a bed and records the admission. The patient lock
// keeps the active-admission check and the insert atomic per patient.
func (u *admissionUsecase) CreateAdmission(ctx context.Context, req *dto.CreateAdmissionRequest) (*dto.AdmissionResponse, error) {
	patientID := strings.TrimSpace(req.PatientID)
	if patientID == "" {
		return nil, newValidationError("patient_id", "is required")
	}

	var resp *dto.AdmissionResponse
	err := u.locker.WithPatientLock(ctx, patientID, func(ctx context.Context) error {
		var err error
		resp, err = u.admit(ctx, patientID, req)
		return err
	})
	u.metrics.ObserveAdmissionOp("create", err)
	if err != nil {
		if errors.Is(err, service.ErrLockNotAcquired) {
			return nil, ErrAdmissionInProgress
		}
		return nil, err
	}

	return resp, nil
}

func (u *admissionUsecase) admit(ctx context.Context, patientID string, req *dto.CreateAdmissionRequest) (*dto.AdmissionResponse, error) {
	db := u.db.WithContext(ctx)

	existing, err := u.admissionRepo.FindActiveByPatient(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to check active admission of patient %s: %+v", patientID, err)
		return nil, err
	}
	if existing != nil {
		return nil, &AlreadyAdmittedError{Existing: existing}
	}

	priority := entity.Priority(req.Priority)
	if priority == "" {
		priority = entity.PriorityMedium
	}
	allocReq := allocator.Request{
		PatientCategory:     entity.PatientCategory(req.PatientCategory),
		Priority:            priority,
		PreferredWard:       strings.TrimSpace(req.PreferredWard),
		SpecialRequirements: req.SpecialRequirements,
	}

	now := u.now()
	bed, reason, err := u.allocate(ctx, patientID, allocReq, now)
	if err != nil {
		return nil, err
	}

	admission := &entity.Admission{
		PatientID:             patientID,
		PatientName:           strings.TrimSpace(req.PatientName),
		PatientCategory:       allocReq.PatientCategory,
		Priority:              priority,
		BedID:                 bed.ID,
		Ward:                  bed.Ward,
		RoomNumber:            bed.RoomNumber,
		BedNumber:             bed.BedNumber,
		AdmissionDate:         now,
		ExpectedDischargeDate: req.ExpectedDischargeDate,
		Status:                entity.AdmissionStatusActive,
		AdmissionReason:       req.AdmissionReason,
		Diagnosis:             req.Diagnosis,
		AttendingPhysician:    req.AttendingPhysician,
		SpecialRequirements:   req.SpecialRequirements,
		Notes:                 req.Notes,
		WorkflowStatus:        entity.WorkflowAdmitted,
	}
	if req.InsuranceInfo != nil {
		admission.InsuranceInfo = entity.InsuranceInfo(*req.InsuranceInfo)
	}
	if req.EmergencyContact != nil {
		admission.EmergencyContact = entity.EmergencyContact(*req.EmergencyContact)
	}

	if err := u.admissionRepo.Create(db, admission); err != nil {
		// Give the bed back before reporting
		u.unassign(ctx, bed.ID, patientID)

		if isDuplicateKeyError(err, constraintActivePatient) {
			existing, findErr := u.admissionRepo.FindActiveByPatient(db, patientID)
			if findErr != nil {
				u.log.Warnf("Failed to load conflicting admission of patient %s: %+v", patientID, findErr)
			}
			return nil, &AlreadyAdmittedError{Existing: existing}
		}
		u.log.Warnf("Failed to create admission for patient %s: %+v", patientID, err)
		return nil, err
	}

	resp := converter.AdmissionToResponse(admission)
	resp.AllocationReason = reason

	recordAudit(ctx, u.db, u.log, u.auditService, entity.AuditActionAdmissionCreate, "admission", admission.ID.String(), nil, resp)
	u.publisher.Publish(service.EventAdmissionCreated, resp)

	u.log.Infof("Patient %s admitted: admission=%s, bed=%s (%s/%s/%s), reason=%s",
		patientID, admission.ID, bed.ID, bed.Ward, bed.RoomNumber, bed.BedNumber, reason)
	return resp, nil
}

// allocate runs the allocator against a fresh snapshot and claims the chosen
// bed, retrying when another request claims it first.
func (u *admissionUsecase) allocate(ctx context.Context, patientID string, req allocator.Request, at time.Time) (*entity.Bed, string, error) {
	db := u.db.WithContext(ctx)

	var decision allocator.Decision
	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		snapshot, err := u.bedRepo.FindAvailable(db)
		if err != nil {
			u.log.Warnf("Failed to load available beds: %+v", err)
			return nil, "", err
		}

		decision = allocator.Allocate(req, snapshot)
		if !decision.Allocated() {
			u.metrics.ObserveAllocation(string(decision.BedType), "unavailable", attempt)
			return nil, "", &BedAllocationError{
				BedType:      decision.BedType,
				Reason:       decision.Reason,
				Attempts:     attempt,
				Alternatives: decision.Alternatives,
			}
		}

		err = assignBed(db, u.bedRepo, decision.Bed.ID, patientID, at)
		if err == nil {
			u.metrics.ObserveAllocation(string(decision.BedType), "allocated", attempt)
			return decision.Bed, decision.Reason, nil
		}
		if !errors.Is(err, ErrBedNotAvailable) {
			u.log.Warnf("Failed to assign bed %s: %+v", decision.Bed.ID, err)
			return nil, "", err
		}

		u.metrics.IncAssignConflict()
		u.log.Infof("Bed %s was taken concurrently, retrying allocation (attempt %d/%d)", decision.Bed.ID, attempt, u.maxAttempts)
	}

	u.metrics.ObserveAllocation(string(decision.BedType), "conflict", u.maxAttempts)

	alternatives := []allocator.Alternative{}
	if snapshot, err := u.bedRepo.FindAvailable(db); err == nil {
		alternatives = allocator.Alternatives(decision.BedType, snapshot)
	}
	return nil, "", &BedAllocationError{
		BedType:      decision.BedType,
		Reason:       fmt.Sprintf("No available %s beds found after %d attempts", decision.BedType, u.maxAttempts),
		Attempts:     u.maxAttempts,
		Alternatives: alternatives,
	}
}

// compensationTimeout bounds bed writes that must complete after the request
// context is gone
const compensationTimeout = 5 * time.Second

// detachedDB returns a handle that survives cancellation of ctx. Used for
// rollbacks and for releasing beds once the admission change is committed.
func (u *admissionUsecase) detachedDB(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	return u.db.WithContext(ctx), cancel
}

func (u *admissionUsecase) unassign(ctx context.Context, bedID uuid.UUID, patientID string) {
	db, cancel := u.detachedDB(ctx)
	defer cancel()

	if _, err := u.bedRepo.Unassign(db, bedID, patientID, u.now()); err != nil {
		u.log.Errorf("Failed to return bed %s to Available after failed admission of %s: %+v", bedID, patientID, err)
	}
}

func (u *admissionUsecase) GetAdmission(ctx context.Context, id uuid.UUID) (*dto.AdmissionResponse, error) {
	admission, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AdmissionToResponse(admission), nil
}

func (u *admissionUsecase) GetAdmissions(ctx context.Context, filter *entity.AdmissionFilter) ([]dto.AdmissionResponse, int64, error) {
	admissions, total, err := u.admissionRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list admissions: %+v", err)
		return nil, 0, err
	}

	return converter.AdmissionsToResponses(admissions), total, nil
}

func (u *admissionUsecase) GetActiveAdmissions(ctx context.Context) (*dto.AdmissionListResponse, error) {
	admissions, err := u.admissionRepo.FindActiveByWard(u.db.WithContext(ctx), "")
	if err != nil {
		u.log.Warnf("Failed to list active admissions: %+v", err)
		return nil, err
	}
	return admissionList(admissions), nil
}

func (u *admissionUsecase) GetAdmissionsByPatient(ctx context.Context, patientID string) (*dto.AdmissionListResponse, error) {
	admissions, err := u.admissionRepo.FindByPatient(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list admissions of patient %s: %+v", patientID, err)
		return nil, err
	}
	return admissionList(admissions), nil
}

func (u *admissionUsecase) GetAdmissionsByWard(ctx context.Context, ward string) (*dto.AdmissionListResponse, error) {
	admissions, err := u.admissionRepo.FindActiveByWard(u.db.WithContext(ctx), ward)
	if err != nil {
		u.log.Warnf("Failed to list admissions in ward %s: %+v", ward, err)
		return nil, err
	}
	return admissionList(admissions), nil
}

func (u *admissionUsecase) GetAdmissionsByCategory(ctx context.Context, category string) (*dto.AdmissionListResponse, error) {
	switch entity.PatientCategory(category) {
	case entity.CategoryEmergency, entity.CategoryScheduled, entity.CategoryTransfer, entity.CategoryObservation:
	default:
		return nil, newValidationError("category", "must be one of Emergency, Scheduled, Transfer, Observation")
	}

	admissions, err := u.admissionRepo.FindActiveByCategory(u.db.WithContext(ctx), entity.PatientCategory(category))
	if err != nil {
		u.log.Warnf("Failed to list %s admissions: %+v", category, err)
		return nil, err
	}
	return admissionList(admissions), nil
}

func (u *admissionUsecase) UpdateAdmission(ctx context.Context, id uuid.UUID, req *dto.UpdateAdmissionRequest) (*dto.AdmissionResponse, error) {
	admission, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}
	before := converter.AdmissionToResponse(admission)

	if req.Diagnosis != nil {
		admission.Diagnosis = *req.Diagnosis
	}
	if req.AttendingPhysician != nil {
		admission.AttendingPhysician = strings.TrimSpace(*req.AttendingPhysician)
	}
	if req.ExpectedDischargeDate != nil {
		if req.ExpectedDischargeDate.Before(admission.AdmissionDate) {
			return nil, newValidationError("expected_discharge_date", "must not be before the admission date")
		}
		admission.ExpectedDischargeDate = req.ExpectedDischargeDate
	}
	if req.Notes != nil {
		admission.Notes = *req.Notes
	}
	if req.SpecialRequirements != nil {
		admission.SpecialRequirements = req.SpecialRequirements
	}
	if req.InsuranceInfo != nil {
		admission.InsuranceInfo = entity.InsuranceInfo(*req.InsuranceInfo)
	}
	if req.EmergencyContact != nil {
		admission.EmergencyContact = entity.EmergencyContact(*req.EmergencyContact)
	}

	affected, err := u.admissionRepo.Update(u.db.WithContext(ctx), admission)
	if err != nil {
		u.log.Warnf("Failed to update admission %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAdmissionNotFound
	}

	updated, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := converter.AdmissionToResponse(updated)
	recordAudit(ctx, u.db, u.log, u.auditService, entity.AuditActionAdmissionUpdate, "admission", id.String(), before, resp)
	return resp, nil
}

// DischargePatient closes an Active admission and sends its bed to Cleaning
func (u *admissionUsecase) DischargePatient(ctx context.Context, id uuid.UUID, req *dto.DischargeRequest) (*dto.AdmissionResponse, error) {
	admission, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admission.IsActive() {
		return nil, ErrAdmissionNotActive
	}

	dischargeType := entity.DischargeType(req.DischargeType)
	info := entity.DischargeInfo{
		Type:             &dischargeType,
		Instructions:     req.DischargeInstructions,
		FollowUpRequired: req.FollowUpRequired,
		FollowUpDate:     req.FollowUpDate,
	}

	now := u.now()
	affected, err := u.admissionRepo.Discharge(u.db.WithContext(ctx), id, info, now)
	u.metrics.ObserveAdmissionOp("discharge", err)
	if err != nil {
		u.log.Warnf("Failed to discharge admission %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAdmissionNotActive
	}

	releaseDB, cancel := u.detachedDB(ctx)
	defer cancel()
	if _, err := u.bedRepo.ReleasePatient(releaseDB, admission.BedID, admission.PatientID, now); err != nil {
		u.log.Errorf("Admission %s discharged but bed %s was not released: %+v", id, admission.BedID, err)
	}

	discharged, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := converter.AdmissionToResponse(discharged)
	recordAudit(ctx, u.db, u.log, u.auditService, entity.AuditActionAdmissionDischarge, "admission", id.String(),
		map[string]interface{}{"status": admission.Status, "bed_id": admission.BedID},
		map[string]interface{}{"status": discharged.Status, "discharge_type": dischargeType})
	u.publisher.Publish(service.EventAdmissionDischarged, map[string]interface{}{
		"admission_id":   id,
		"patient_id":     admission.PatientID,
		"bed_id":         admission.BedID,
		"ward":           admission.Ward,
		"discharge_type": dischargeType,
	})

	u.log.Infof("Patient %s discharged: admission=%s, bed=%s, type=%s", admission.PatientID, id, admission.BedID, dischargeType)
	return resp, nil
}

// TransferPatient moves an Active admission to another bed. The new bed is
// claimed before the old one is released so the patient always holds a bed.
func (u *admissionUsecase) TransferPatient(ctx context.Context, id uuid.UUID, req *dto.TransferRequest) (*dto.AdmissionResponse, error) {
	admission, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admission.IsActive() {
		return nil, ErrAdmissionNotActive
	}
	if req.NewBedID == admission.BedID {
		return nil, newValidationError("new_bed_id", "patient is already in this bed")
	}

	db := u.db.WithContext(ctx)
	target, err := u.bedRepo.FindActiveByID(db, req.NewBedID)
	if err != nil {
		u.log.Warnf("Failed to find bed %s: %+v", req.NewBedID, err)
		return nil, err
	}
	if target == nil {
		return nil, ErrBedNotFound
	}
	if !target.IsAvailable() {
		return nil, ErrTargetBedUnavailable
	}

	now := u.now()
	if err := assignBed(db, u.bedRepo, target.ID, admission.PatientID, now); err != nil {
		if errors.Is(err, ErrBedNotAvailable) {
			return nil, ErrTargetBedUnavailable
		}
		u.log.Warnf("Failed to assign bed %s: %+v", target.ID, err)
		return nil, err
	}

	transfer := &entity.AdmissionTransfer{
		FromBedID:    admission.BedID,
		ToBedID:      target.ID,
		TransferDate: now,
		Reason:       req.Reason,
		AuthorizedBy: req.AuthorizedBy,
	}
	affected, err := u.admissionRepo.Rebind(db, id, target.Location(), transfer)
	u.metrics.ObserveAdmissionOp("transfer", err)
	if err != nil || affected == 0 {
		u.unassign(ctx, target.ID, admission.PatientID)
		if err != nil {
			u.log.Warnf("Failed to rebind admission %s to bed %s: %+v", id, target.ID, err)
			return nil, err
		}
		return nil, ErrAdmissionNotActive
	}

	releaseDB, cancel := u.detachedDB(ctx)
	defer cancel()
	if _, err := u.bedRepo.ReleasePatient(releaseDB, admission.BedID, admission.PatientID, now); err != nil {
		u.log.Errorf("Admission %s moved to bed %s but old bed %s was not released: %+v", id, target.ID, admission.BedID, err)
	}

	transferred, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := converter.AdmissionToResponse(transferred)
	recordAudit(ctx, u.db, u.log, u.auditService, entity.AuditActionAdmissionTransfer, "admission", id.String(),
		map[string]interface{}{"bed_id": admission.BedID, "ward": admission.Ward},
		map[string]interface{}{"bed_id": target.ID, "ward": target.Ward, "reason": req.Reason, "authorized_by": req.AuthorizedBy})
	u.publisher.Publish(service.EventAdmissionTransferred, map[string]interface{}{
		"admission_id":  id,
		"patient_id":    admission.PatientID,
		"from_bed_id":   admission.BedID,
		"to_bed_id":     target.ID,
		"reason":        req.Reason,
		"authorized_by": req.AuthorizedBy,
	})

	u.log.Infof("Patient %s transferred: admission=%s, bed %s -> %s", admission.PatientID, id, admission.BedID, target.ID)
	return resp, nil
}

func (u *admissionUsecase) UpdateWorkflowStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateWorkflowRequest) (*dto.AdmissionResponse, error) {
	admission, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := admission.WorkflowStatus
	status := entity.WorkflowStatus(req.WorkflowStatus)

	affected, err := u.admissionRepo.UpdateWorkflowStatus(u.db.WithContext(ctx), id, status)
	if err != nil {
		u.log.Warnf("Failed to update workflow of admission %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAdmissionNotActive
	}

	updated, err := u.findAdmission(ctx, id)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, u.db, u.log, u.auditService, entity.AuditActionAdmissionWorkflow, "admission", id.String(),
		map[string]interface{}{"workflow_status": previous},
		map[string]interface{}{"workflow_status": status})
	u.publisher.Publish(service.EventWorkflowStatusChanged, map[string]interface{}{
		"admission_id":      id,
		"patient_id":        admission.PatientID,
		"previous_workflow": previous,
		"workflow_status":   status,
	})

	return converter.AdmissionToResponse(updated), nil
}

// GetWorkflowDashboard groups active admissions by workflow status, most urgent first
func (u *admissionUsecase) GetWorkflowDashboard(ctx context.Context, ward string) (*dto.WorkflowDashboardResponse, error) {
	admissions, err := u.admissionRepo.FindActiveByPriority(u.db.WithContext(ctx), ward)
	if err != nil {
		u.log.Warnf("Failed to load workflow dashboard: %+v", err)
		return nil, err
	}

	dashboard := &dto.WorkflowDashboardResponse{
		WorkflowData: map[string][]dto.AdmissionResponse{
			string(entity.WorkflowAdmitted):          {},
			string(entity.WorkflowUnderObservation):  {},
			string(entity.WorkflowReadyForDischarge): {},
			string(entity.WorkflowDischarged):        {},
		},
	}

	for i := range admissions {
		admission := &admissions[i]
		key := string(admission.WorkflowStatus)
		dashboard.WorkflowData[key] = append(dashboard.WorkflowData[key], *converter.AdmissionToResponse(admission))

		dashboard.Stats.Total++
		switch admission.WorkflowStatus {
		case entity.WorkflowAdmitted:
			dashboard.Stats.Admitted++
		case entity.WorkflowUnderObservation:
			dashboard.Stats.UnderObservation++
		case entity.WorkflowReadyForDischarge:
			dashboard.Stats.ReadyForDischarge++
		case entity.WorkflowDischarged:
			dashboard.Stats.Discharged++
		}
	}

	return dashboard, nil
}

// GetBedStatusTracker lists active beds with the admission occupying each one
func (u *admissionUsecase) GetBedStatusTracker(ctx context.Context, ward string) ([]dto.BedStatusEntryResponse, error) {
	db := u.db.WithContext(ctx)

	beds, err := u.bedRepo.FindActive(db, ward)
	if err != nil {
		u.log.Warnf("Failed to load beds for status tracker: %+v", err)
		return nil, err
	}

	bedIDs := make([]uuid.UUID, len(beds))
	for i := range beds {
		bedIDs[i] = beds[i].ID
	}
	admissions, err := u.admissionRepo.FindActiveByBedIDs(db, bedIDs)
	if err != nil {
		u.log.Warnf("Failed to load admissions for status tracker: %+v", err)
		return nil, err
	}

	byBed := make(map[uuid.UUID]*entity.Admission, len(admissions))
	for i := range admissions {
		byBed[admissions[i].BedID] = &admissions[i]
	}

	entries := make([]dto.BedStatusEntryResponse, len(beds))
	for i := range beds {
		entries[i] = dto.BedStatusEntryResponse{
			BedResponse: *converter.BedToResponse(&beds[i]),
			Admission:   converter.AdmissionToResponse(byBed[beds[i].ID]),
		}
	}
	return entries, nil
}

func (u *admissionUsecase) findAdmission(ctx context.Context, id uuid.UUID) (*entity.Admission, error) {
	admission, err := u.admissionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find admission %s: %+v", id, err)
		return nil, err
	}
	if admission == nil {
		return nil, ErrAdmissionNotFound
	}
	return admission, nil
}

func admissionList(admissions []entity.Admission) *dto.AdmissionListResponse {
	return &dto.AdmissionListResponse{
		Admissions: converter.AdmissionsToResponses(admissions),
		Total:      len(admissions),
	}
}
