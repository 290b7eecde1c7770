package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"bed-admission-service/internal/delivery/http/middleware"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/repository/repotest"
	"bed-admission-service/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type publishedEvent struct {
	Type    string
	Payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type fixture struct {
	db         *gorm.DB
	log        *logrus.Logger
	redis      *miniredis.Miniredis
	beds       *repotest.BedRepository
	admissions *repotest.AdmissionRepository
	audits     *repotest.AuditLogRepository
	publisher  *recordingPublisher

	bedUsecase       BedUsecase
	admissionUsecase AdmissionUsecase
	analyticsUsecase AnalyticsUsecase
	sessionUsecase   SessionUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, _ := repotest.NewGormDB(t)

	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &fixture{
		db:         db,
		log:        log,
		redis:      mr,
		beds:       repotest.NewBedRepository(),
		admissions: repotest.NewAdmissionRepository(),
		audits:     repotest.NewAuditLogRepository(),
		publisher:  &recordingPublisher{},
	}

	auditService := service.NewAuditService(log, f.audits)
	locker := service.NewRedisPatientLocker(client, 5*time.Second)

	f.bedUsecase = NewBedUsecase(db, log, f.beds, auditService, f.publisher)
	f.admissionUsecase = NewAdmissionUsecase(db, log, f.beds, f.admissions, auditService, f.publisher, locker, nil, DefaultAllocationAttempts)
	f.analyticsUsecase = NewAnalyticsUsecase(db, log, f.beds, f.admissions, time.UTC)
	f.sessionUsecase = NewSessionUsecase(db, log, client, auditService, 24*time.Hour)
	return f
}

func (f *fixture) addBed(ward, room, number string, bedType entity.BedType, equipment ...entity.BedEquipment) entity.Bed {
	return f.beds.Put(entity.Bed{
		ID:          uuid.New(),
		Ward:        ward,
		RoomNumber:  room,
		BedNumber:   number,
		Type:        bedType,
		Status:      entity.BedStatusAvailable,
		Equipment:   equipment,
		IsActive:    true,
		LastUpdated: time.Now(),
	})
}

func (f *fixture) addOccupiedBed(ward, room, number string, bedType entity.BedType, patientID string) entity.Bed {
	bed := f.addBed(ward, room, number, bedType)
	bed.Status = entity.BedStatusOccupied
	bed.AssignedPatientID = &patientID
	return f.beds.Put(bed)
}

func staffContext() context.Context {
	return middleware.WithPrincipal(context.Background(), entity.Principal{Subject: "nurse-1", Role: entity.RoleStaff})
}
