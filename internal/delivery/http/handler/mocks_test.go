package handler

import (
	"context"
	"io"
	"time"

	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/service"
	"bed-admission-service/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Embedded interfaces cover the methods a test does not stub

type MockBedUsecase struct {
	usecase.BedUsecase
	mock.Mock
}

func (m *MockBedUsecase) CreateBed(ctx context.Context, req *dto.CreateBedRequest) (*dto.BedResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BedResponse), args.Error(1)
}

func (m *MockBedUsecase) GetBed(ctx context.Context, id uuid.UUID) (*dto.BedResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BedResponse), args.Error(1)
}

func (m *MockBedUsecase) GetBeds(ctx context.Context, filter *entity.BedFilter) ([]dto.BedResponse, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.BedResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockBedUsecase) UpdateBedStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateBedStatusRequest) (*dto.BedResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BedResponse), args.Error(1)
}

func (m *MockBedUsecase) DeleteBed(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAnalyticsUsecase struct {
	usecase.AnalyticsUsecase
	mock.Mock
}

func (m *MockAnalyticsUsecase) PredictAvailability(ctx context.Context, days int, ward string) (*dto.PredictionResponse, error) {
	args := m.Called(ctx, days, ward)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PredictionResponse), args.Error(1)
}

func (m *MockAnalyticsUsecase) CheckAvailability(ctx context.Context, bedID uuid.UUID, req *dto.CheckAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	args := m.Called(ctx, bedID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AvailabilityResponse), args.Error(1)
}

type MockReportUsecase struct {
	mock.Mock
}

func (m *MockReportUsecase) ExportBedStatus(ctx context.Context, ward string) ([]byte, string, error) {
	args := m.Called(ctx, ward)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockAdmissionUsecase struct {
	usecase.AdmissionUsecase
	mock.Mock
}

func (m *MockAdmissionUsecase) CreateAdmission(ctx context.Context, req *dto.CreateAdmissionRequest) (*dto.AdmissionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdmissionResponse), args.Error(1)
}

func (m *MockAdmissionUsecase) GetAdmissions(ctx context.Context, filter *entity.AdmissionFilter) ([]dto.AdmissionResponse, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.AdmissionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdmissionUsecase) DischargePatient(ctx context.Context, id uuid.UUID, req *dto.DischargeRequest) (*dto.AdmissionResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdmissionResponse), args.Error(1)
}

func (m *MockAdmissionUsecase) TransferPatient(ctx context.Context, id uuid.UUID, req *dto.TransferRequest) (*dto.AdmissionResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdmissionResponse), args.Error(1)
}

func (m *MockAdmissionUsecase) GetAdmissionsByCategory(ctx context.Context, category string) (*dto.AdmissionListResponse, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AdmissionListResponse), args.Error(1)
}

type MockAuditLogUsecase struct {
	mock.Mock
}

func (m *MockAuditLogUsecase) GetAuditLogs(ctx context.Context, page, limit int) ([]dto.AuditLogResponse, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.AuditLogResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuditLogResponse), args.Error(1)
}

type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) RunOnce(ctx context.Context) (*service.ReconcileResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconcileResult), args.Error(1)
}

type MockSessionUsecase struct {
	mock.Mock
}

func (m *MockSessionUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

func (m *MockSessionUsecase) RevokeToken(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}
