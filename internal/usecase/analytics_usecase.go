package usecase

import (
	"context"
	"strings"
	"time"

	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultPredictionDays = 7
	MaxPredictionDays     = 90
)

type AnalyticsUsecase interface {
	GetUtilizationStats(ctx context.Context, ward string) (*dto.UtilizationStatsResponse, error)
	PredictAvailability(ctx context.Context, days int, ward string) (*dto.PredictionResponse, error)
	CheckAvailability(ctx context.Context, bedID uuid.UUID, req *dto.CheckAvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type analyticsUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	bedRepo       repository.BedRepository
	admissionRepo repository.AdmissionRepository
	loc           *time.Location
	now           func() time.Time
}

// NewAnalyticsUsecase creates the analytics usecase. loc decides where a
// prediction day starts; nil means UTC.
func NewAnalyticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bedRepo repository.BedRepository,
	admissionRepo repository.AdmissionRepository,
	loc *time.Location,
) AnalyticsUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &analyticsUsecase{
		db:            db,
		log:           log,
		bedRepo:       bedRepo,
		admissionRepo: admissionRepo,
		loc:           loc,
		now:           time.Now,
	}
}

func (u *analyticsUsecase) GetUtilizationStats(ctx context.Context, ward string) (*dto.UtilizationStatsResponse, error) {
	counts, err := u.bedRepo.CountByStatus(u.db.WithContext(ctx), ward)
	if err != nil {
		u.log.Warnf("Failed to count beds by status: %+v", err)
		return nil, err
	}

	return &dto.UtilizationStatsResponse{
		TotalBeds:       counts.Total,
		OccupiedBeds:    counts.Occupied,
		AvailableBeds:   counts.Available,
		MaintenanceBeds: counts.Maintenance,
		CleaningBeds:    counts.Cleaning,
		ReservedBeds:    counts.Reserved,
		UtilizationRate: percentage(counts.Occupied, counts.Total),
	}, nil
}

// PredictAvailability projects free beds per day from expected discharges.
// Each day is computed from the current state alone. Callers supply
// DefaultPredictionDays when the client gave no horizon.
func (u *analyticsUsecase) PredictAvailability(ctx context.Context, days int, ward string) (*dto.PredictionResponse, error) {
	if days < 1 || days > MaxPredictionDays {
		return nil, newValidationError("days", "must be between 1 and 90")
	}

	db := u.db.WithContext(ctx)
	counts, err := u.bedRepo.CountByStatus(db, ward)
	if err != nil {
		u.log.Warnf("Failed to count beds by status: %+v", err)
		return nil, err
	}

	now := u.now().In(u.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, u.loc)

	predictions := make([]dto.DayPredictionResponse, 0, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i)
		next := day.AddDate(0, 0, 1)

		discharges, err := u.admissionRepo.CountExpectedDischarges(db, day, next, ward)
		if err != nil {
			u.log.Warnf("Failed to count expected discharges for %s: %+v", day.Format("2006-01-02"), err)
			return nil, err
		}

		predictions = append(predictions, dto.DayPredictionResponse{
			Date:                     day.Format("2006-01-02"),
			ExpectedDischarges:       discharges,
			PredictedAvailableBeds:   counts.Available + discharges,
			PredictedUtilizationRate: percentage(counts.Occupied-discharges, counts.Total),
		})
	}

	return &dto.PredictionResponse{
		Ward:        ward,
		Days:        days,
		Predictions: predictions,
	}, nil
}

// CheckAvailability reports whether a bed is free now and which active
// admissions on it overlap [start, end].
func (u *analyticsUsecase) CheckAvailability(ctx context.Context, bedID uuid.UUID, req *dto.CheckAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, newValidationError("end_date", "must not be before start_date")
	}

	db := u.db.WithContext(ctx)
	// Deactivated beds are reported by status rather than as unknown
	bed, err := u.bedRepo.FindByID(db, bedID)
	if err != nil {
		u.log.Warnf("Failed to find bed %s: %+v", bedID, err)
		return nil, err
	}
	if bed == nil {
		return nil, ErrBedNotFound
	}

	location := &dto.BedLocationResponse{
		BedID:      bed.ID,
		Ward:       bed.Ward,
		RoomNumber: bed.RoomNumber,
		BedNumber:  bed.BedNumber,
		Type:       string(bed.Type),
	}

	if bed.Status != entity.BedStatusAvailable {
		return &dto.AvailabilityResponse{
			Available: false,
			Reason:    "Bed is currently " + strings.ToLower(string(bed.Status)),
			Bed:       location,
		}, nil
	}

	overlapping, err := u.admissionRepo.FindOverlapping(db, bedID, req.StartDate, req.EndDate)
	if err != nil {
		u.log.Warnf("Failed to find overlapping admissions for bed %s: %+v", bedID, err)
		return nil, err
	}
	if len(overlapping) == 0 {
		return &dto.AvailabilityResponse{Available: true, Bed: location}, nil
	}

	conflicts := make([]dto.ConflictingAdmissionResponse, len(overlapping))
	for i, a := range overlapping {
		conflicts[i] = dto.ConflictingAdmissionResponse{
			AdmissionID:           a.ID,
			PatientName:           a.PatientName,
			AdmissionDate:         a.AdmissionDate,
			ExpectedDischargeDate: a.ExpectedDischargeDate,
		}
	}

	return &dto.AvailabilityResponse{
		Available:             false,
		Reason:                "Bed has conflicting admissions in the requested period",
		Bed:                   location,
		ConflictingAdmissions: conflicts,
	}, nil
}

// percentage returns part/total*100 rounded to 2 decimals, 0 when total is 0
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate, _ := decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2).
		Float64()
	return rate
}
