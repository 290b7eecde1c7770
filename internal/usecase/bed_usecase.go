package usecase

import (
	"context"
	"strings"
	"time"

	"bed-admission-service/internal/converter"
	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/domain/repository"
	"bed-admission-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BedUsecase interface {
	CreateBed(ctx context.Context, req *dto.CreateBedRequest) (*dto.BedResponse, error)
	GetBed(ctx context.Context, id uuid.UUID) (*dto.BedResponse, error)
	GetBeds(ctx context.Context, filter *entity.BedFilter) ([]dto.BedResponse, int64, error)
	GetBedsByWard(ctx context.Context, ward string) (*dto.BedListResponse, error)
	GetAvailableBedsByType(ctx context.Context, bedType string) (*dto.BedListResponse, error)
	GetBedMapping(ctx context.Context, ward string) (dto.BedMappingResponse, error)
	UpdateBed(ctx context.Context, id uuid.UUID, req *dto.UpdateBedRequest) (*dto.BedResponse, error)
	UpdateBedStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateBedStatusRequest) (*dto.BedResponse, error)
	DeleteBed(ctx context.Context, id uuid.UUID) error
	AssignBed(ctx context.Context, id uuid.UUID, patientID string) error
	ReleaseBed(ctx context.Context, id uuid.UUID) error
}

type bedUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bedRepo      repository.BedRepository
	auditService service.AuditService
	publisher    service.EventPublisher
}

func NewBedUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bedRepo repository.BedRepository,
	auditService service.AuditService,
	publisher service.EventPublisher,
) BedUsecase {
	return &bedUsecase{
		db:           db,
		log:          log,
		bedRepo:      bedRepo,
		auditService: auditService,
		publisher:    publisher,
	}
}

func (u *bedUsecase) CreateBed(ctx context.Context, req *dto.CreateBedRequest) (*dto.BedResponse, error) {
	ward := strings.TrimSpace(req.Ward)
	roomNumber := strings.TrimSpace(req.RoomNumber)
	bedNumber := strings.TrimSpace(req.BedNumber)
	if err := validateLocation(ward, roomNumber, bedNumber); err != nil {
		return nil, err
	}

	existing, err := u.bedRepo.FindActiveByLocation(u.db.WithContext(ctx), ward, roomNumber, bedNumber)
	if err != nil {
		u.log.Warnf("Failed to check bed location %s/%s/%s: %+v", ward, roomNumber, bedNumber, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateLocation
	}

	bed := &entity.Bed{
		Ward:        ward,
		RoomNumber:  roomNumber,
		BedNumber:   bedNumber,
		Type:        entity.BedType(req.Type),
		Status:      entity.BedStatusAvailable,
		Equipment:   converter.EquipmentFromRequests(req.Equipment),
		Notes:       req.Notes,
		IsActive:    true,
		LastUpdated: time.Now(),
	}

	if err := u.bedRepo.Create(u.db.WithContext(ctx), bed); err != nil {
		if isDuplicateKeyError(err, constraintBedLocation) {
			return nil, ErrDuplicateLocation
		}
		u.log.Warnf("Failed to create bed: %+v", err)
		return nil, err
	}

	resp := converter.BedToResponse(bed)
	u.audit(ctx, entity.AuditActionBedCreate, bed.ID, nil, resp)
	u.publisher.Publish(service.EventBedCreated, resp)

	u.log.Infof("Bed created: id=%s, ward=%s, room=%s, bed=%s, type=%s", bed.ID, ward, roomNumber, bedNumber, bed.Type)
	return resp, nil
}

func (u *bedUsecase) GetBed(ctx context.Context, id uuid.UUID) (*dto.BedResponse, error) {
	bed, err := u.bedRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find bed %s: %+v", id, err)
		return nil, err
	}
	if bed == nil {
		return nil, ErrBedNotFound
	}

	return converter.BedToResponse(bed), nil
}

func (u *bedUsecase) GetBeds(ctx context.Context, filter *entity.BedFilter) ([]dto.BedResponse, int64, error) {
	beds, total, err := u.bedRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list beds: %+v", err)
		return nil, 0, err
	}

	return converter.BedsToResponses(beds), total, nil
}

func (u *bedUsecase) GetBedsByWard(ctx context.Context, ward string) (*dto.BedListResponse, error) {
	beds, err := u.bedRepo.FindByWard(u.db.WithContext(ctx), ward)
	if err != nil {
		u.log.Warnf("Failed to find beds in ward %s: %+v", ward, err)
		return nil, err
	}

	return &dto.BedListResponse{
		Beds:  converter.BedsToResponses(beds),
		Total: len(beds),
	}, nil
}

func (u *bedUsecase) GetAvailableBedsByType(ctx context.Context, bedType string) (*dto.BedListResponse, error) {
	if !isBedType(entity.BedType(bedType)) {
		return nil, newValidationError("type", "must be one of ICU, General, Private")
	}

	beds, err := u.bedRepo.FindAvailableByType(u.db.WithContext(ctx), entity.BedType(bedType))
	if err != nil {
		u.log.Warnf("Failed to find available %s beds: %+v", bedType, err)
		return nil, err
	}

	return &dto.BedListResponse{
		Beds:  converter.BedsToResponses(beds),
		Total: len(beds),
	}, nil
}

func (u *bedUsecase) GetBedMapping(ctx context.Context, ward string) (dto.BedMappingResponse, error) {
	beds, err := u.bedRepo.FindActive(u.db.WithContext(ctx), ward)
	if err != nil {
		u.log.Warnf("Failed to find beds for mapping: %+v", err)
		return nil, err
	}

	return converter.BedsToMapping(beds), nil
}

func (u *bedUsecase) UpdateBed(ctx context.Context, id uuid.UUID, req *dto.UpdateBedRequest) (*dto.BedResponse, error) {
	bed, err := u.bedRepo.FindActiveByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find bed %s: %+v", id, err)
		return nil, err
	}
	if bed == nil {
		return nil, ErrBedNotFound
	}
	before := converter.BedToResponse(bed)

	if req.Ward != nil {
		bed.Ward = strings.TrimSpace(*req.Ward)
	}
	if req.RoomNumber != nil {
		bed.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.BedNumber != nil {
		bed.BedNumber = strings.TrimSpace(*req.BedNumber)
	}
	if err := validateLocation(bed.Ward, bed.RoomNumber, bed.BedNumber); err != nil {
		return nil, err
	}
	if req.Type != nil && entity.BedType(*req.Type) != bed.Type {
		if bed.IsOccupied() {
			return nil, ErrBedOccupied
		}
		bed.Type = entity.BedType(*req.Type)
	}
	if req.Equipment != nil {
		bed.Equipment = converter.EquipmentFromRequests(req.Equipment)
	}
	if req.Notes != nil {
		bed.Notes = *req.Notes
	}

	// Location must stay unique among active beds
	if bed.Ward != before.Ward || bed.RoomNumber != before.RoomNumber || bed.BedNumber != before.BedNumber {
		other, err := u.bedRepo.FindActiveByLocation(u.db.WithContext(ctx), bed.Ward, bed.RoomNumber, bed.BedNumber)
		if err != nil {
			u.log.Warnf("Failed to check bed location: %+v", err)
			return nil, err
		}
		if other != nil && other.ID != bed.ID {
			return nil, ErrDuplicateLocation
		}
	}

	bed.LastUpdated = time.Now()
	affected, err := u.bedRepo.Update(u.db.WithContext(ctx), bed)
	if err != nil {
		if isDuplicateKeyError(err, constraintBedLocation) {
			return nil, ErrDuplicateLocation
		}
		u.log.Warnf("Failed to update bed %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		// Deactivated or occupied since we read it
		return nil, u.bedConflict(ctx, id)
	}

	updated, err := u.bedRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil || updated == nil {
		u.log.Warnf("Failed to reload bed %s: %+v", id, err)
		return converter.BedToResponse(bed), nil
	}

	resp := converter.BedToResponse(updated)
	u.audit(ctx, entity.AuditActionBedUpdate, id, before, resp)
	return resp, nil
}

// UpdateBedStatus is the staff override for non-occupancy statuses
func (u *bedUsecase) UpdateBedStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateBedStatusRequest) (*dto.BedResponse, error) {
	status := entity.BedStatus(req.Status)
	if status == entity.BedStatusOccupied {
		return nil, newValidationError("status", "Occupied can only be set by admitting a patient")
	}

	bed, err := u.bedRepo.FindActiveByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find bed %s: %+v", id, err)
		return nil, err
	}
	if bed == nil {
		return nil, ErrBedNotFound
	}
	if bed.IsOccupied() {
		return nil, ErrBedOccupied
	}
	previous := bed.Status

	affected, err := u.bedRepo.UpdateStatus(u.db.WithContext(ctx), id, status, req.Notes, time.Now())
	if err != nil {
		u.log.Warnf("Failed to update status of bed %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, u.bedConflict(ctx, id)
	}

	updated, err := u.bedRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to reload bed %s: %+v", id, err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrBedNotFound
	}

	u.audit(ctx, entity.AuditActionBedStatus, id,
		map[string]interface{}{"status": previous},
		map[string]interface{}{"status": status, "notes": req.Notes})
	u.publisher.Publish(service.EventBedStatusChanged, map[string]interface{}{
		"bed_id":          id,
		"ward":            updated.Ward,
		"previous_status": previous,
		"status":          status,
	})

	u.log.Infof("Bed status changed: id=%s, %s -> %s", id, previous, status)
	return converter.BedToResponse(updated), nil
}

// DeleteBed deactivates a bed that is not occupied
func (u *bedUsecase) DeleteBed(ctx context.Context, id uuid.UUID) error {
	bed, err := u.bedRepo.FindActiveByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find bed %s: %+v", id, err)
		return err
	}
	if bed == nil {
		return ErrBedNotFound
	}
	if bed.IsOccupied() {
		return ErrBedOccupied
	}

	affected, err := u.bedRepo.Deactivate(u.db.WithContext(ctx), id, time.Now())
	if err != nil {
		u.log.Warnf("Failed to deactivate bed %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return u.bedConflict(ctx, id)
	}

	u.audit(ctx, entity.AuditActionBedDelete, id, converter.BedToResponse(bed), nil)
	u.publisher.Publish(service.EventBedDeactivated, map[string]interface{}{
		"bed_id": id,
		"ward":   bed.Ward,
	})

	u.log.Infof("Bed deactivated: id=%s", id)
	return nil
}

// AssignBed binds patientID to an Available bed
func (u *bedUsecase) AssignBed(ctx context.Context, id uuid.UUID, patientID string) error {
	if strings.TrimSpace(patientID) == "" {
		return newValidationError("patient_id", "is required")
	}
	return assignBed(u.db.WithContext(ctx), u.bedRepo, id, patientID, time.Now())
}

// ReleaseBed frees an occupied bed into Cleaning. Releasing a free bed is a no-op.
func (u *bedUsecase) ReleaseBed(ctx context.Context, id uuid.UUID) error {
	bed, err := u.bedRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find bed %s: %+v", id, err)
		return err
	}
	if bed == nil {
		return ErrBedNotFound
	}

	_, err = u.bedRepo.Release(u.db.WithContext(ctx), id, time.Now())
	if err != nil {
		u.log.Warnf("Failed to release bed %s: %+v", id, err)
		return err
	}
	return nil
}

// bedConflict explains why a conditional bed update matched no rows
func (u *bedUsecase) bedConflict(ctx context.Context, id uuid.UUID) error {
	bed, err := u.bedRepo.FindActiveByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if bed == nil {
		return ErrBedNotFound
	}
	return ErrBedOccupied
}

func (u *bedUsecase) audit(ctx context.Context, action string, id uuid.UUID, oldValue, newValue interface{}) {
	recordAudit(ctx, u.db, u.log, u.auditService, action, "bed", id.String(), oldValue, newValue)
}

// assignBed is the conditional Available -> Occupied transition
func assignBed(db *gorm.DB, bedRepo repository.BedRepository, id uuid.UUID, patientID string, at time.Time) error {
	affected, err := bedRepo.Assign(db, id, patientID, at)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBedNotAvailable
	}
	return nil
}

func validateLocation(ward, roomNumber, bedNumber string) error {
	switch {
	case ward == "":
		return newValidationError("ward", "is required")
	case roomNumber == "":
		return newValidationError("room_number", "is required")
	case bedNumber == "":
		return newValidationError("bed_number", "is required")
	}
	return nil
}

func isBedType(bedType entity.BedType) bool {
	for _, t := range entity.AllBedTypes {
		if t == bedType {
			return true
		}
	}
	return false
}
