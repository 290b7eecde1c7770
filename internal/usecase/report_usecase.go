package usecase

import (
	"context"
	"fmt"
	"time"

	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/domain/repository"
	"bed-admission-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReportUsecase interface {
	// ExportBedStatus renders the bed status workbook and a file name for it
	ExportBedStatus(ctx context.Context, ward string) ([]byte, string, error)
}

type reportUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	bedRepo       repository.BedRepository
	admissionRepo repository.AdmissionRepository
	now           func() time.Time
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bedRepo repository.BedRepository,
	admissionRepo repository.AdmissionRepository,
) ReportUsecase {
	return &reportUsecase{
		db:            db,
		log:           log,
		bedRepo:       bedRepo,
		admissionRepo: admissionRepo,
		now:           time.Now,
	}
}

func (u *reportUsecase) ExportBedStatus(ctx context.Context, ward string) ([]byte, string, error) {
	db := u.db.WithContext(ctx)

	beds, err := u.bedRepo.FindActive(db, ward)
	if err != nil {
		u.log.Warnf("Failed to load beds for report: %+v", err)
		return nil, "", err
	}

	bedIDs := make([]uuid.UUID, len(beds))
	for i := range beds {
		bedIDs[i] = beds[i].ID
	}
	admissions, err := u.admissionRepo.FindActiveByBedIDs(db, bedIDs)
	if err != nil {
		u.log.Warnf("Failed to load admissions for report: %+v", err)
		return nil, "", err
	}
	byBed := make(map[uuid.UUID]*entity.Admission, len(admissions))
	for i := range admissions {
		byBed[admissions[i].BedID] = &admissions[i]
	}

	generatedAt := u.now()
	summary := service.BedReportSummary{
		Ward:        ward,
		GeneratedAt: generatedAt,
	}

	rows := make([]service.BedReportRow, len(beds))
	for i := range beds {
		bed := &beds[i]
		row := service.BedReportRow{
			Ward:        bed.Ward,
			RoomNumber:  bed.RoomNumber,
			BedNumber:   bed.BedNumber,
			Type:        string(bed.Type),
			Status:      string(bed.Status),
			LastUpdated: bed.LastUpdated,
		}
		if a, ok := byBed[bed.ID]; ok {
			admissionDate := a.AdmissionDate
			row.PatientID = a.PatientID
			row.PatientName = a.PatientName
			row.Priority = string(a.Priority)
			row.WorkflowStatus = string(a.WorkflowStatus)
			row.AdmissionDate = &admissionDate
			row.ExpectedDischargeDate = a.ExpectedDischargeDate
		}
		rows[i] = row

		summary.Total++
		switch bed.Status {
		case entity.BedStatusAvailable:
			summary.Available++
		case entity.BedStatusOccupied:
			summary.Occupied++
		case entity.BedStatusCleaning:
			summary.Cleaning++
		case entity.BedStatusMaintenance:
			summary.Maintenance++
		case entity.BedStatusReserved:
			summary.Reserved++
		}
	}
	summary.UtilizationRate = percentage(summary.Occupied, summary.Total)

	content, err := service.GenerateBedStatusReport(rows, summary)
	if err != nil {
		u.log.Errorf("Failed to generate bed status report: %+v", err)
		return nil, "", err
	}

	name := "all-wards"
	if ward != "" {
		name = ward
	}
	filename := fmt.Sprintf("bed-status-%s-%s.xlsx", name, generatedAt.Format("20060102-150405"))

	u.log.Infof("Bed status report generated: ward=%q, beds=%d", ward, len(beds))
	return content, filename, nil
}
