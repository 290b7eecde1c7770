package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/domain/repository"
	"bed-admission-service/internal/observability/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReconcilerActor is recorded as the actor of audit entries written by the reconciler
const ReconcilerActor = "system:reconciler"

// BedReconciler repairs beds left Occupied without a matching Active admission.
// That happens when a transfer assigns the new bed and rebinds the admission
// but fails to release the old bed, or when a process dies between assign and
// admission insert.
//
// Only beds untouched for at least grace are inspected, so an admission or
// transfer still in flight is never mistaken for an orphan.
type BedReconciler struct {
	db            *gorm.DB
	log           *logrus.Logger
	bedRepo       repository.BedRepository
	admissionRepo repository.AdmissionRepository
	auditService  AuditService
	publisher     EventPublisher
	metrics       *metrics.BedMetrics

	interval time.Duration
	grace    time.Duration
	now      func() time.Time

	// Serializes passes between the loop and on-demand runs
	runMu sync.Mutex

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopped  atomic.Bool
}

// ReconcileResult summarizes one reconciliation pass
type ReconcileResult struct {
	Inspected int         `json:"inspected"`
	Released  []uuid.UUID `json:"released"`
}

func NewBedReconciler(
	db *gorm.DB,
	log *logrus.Logger,
	bedRepo repository.BedRepository,
	admissionRepo repository.AdmissionRepository,
	auditService AuditService,
	publisher EventPublisher,
	m *metrics.BedMetrics,
	interval time.Duration,
	grace time.Duration,
) *BedReconciler {
	return &BedReconciler{
		db:            db,
		log:           log,
		bedRepo:       bedRepo,
		admissionRepo: admissionRepo,
		auditService:  auditService,
		publisher:     publisher,
		metrics:       m,
		interval:      interval,
		grace:         grace,
		now:           time.Now,
		stopChan:      make(chan struct{}),
	}
}

// =============================================================================
// Lifecycle Methods
// =============================================================================

// Start launches the background loop. A non-positive interval disables it.
func (r *BedReconciler) Start() {
	if r.interval <= 0 {
		r.log.Info("Bed reconciler loop disabled")
		return
	}
	if !r.started.CompareAndSwap(false, true) {
		return
	}

	r.wg.Add(1)
	go r.loop()
	r.log.Infof("Bed reconciler started: interval=%v, grace=%v", r.interval, r.grace)
}

// Stop gracefully shuts down the loop.
// Safe to call multiple times.
func (r *BedReconciler) Stop() {
	if r.stopped.CompareAndSwap(false, true) {
		close(r.stopChan)
		r.wg.Wait()
		r.log.Info("Bed reconciler stopped")
	}
}

func (r *BedReconciler) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.interval)
			if _, err := r.RunOnce(ctx); err != nil {
				r.log.Warnf("Bed reconciliation pass failed: %+v", err)
			}
			cancel()
		}
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// RunOnce performs a single reconciliation pass.
func (r *BedReconciler) RunOnce(ctx context.Context) (*ReconcileResult, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	db := r.db.WithContext(ctx)
	cutoff := r.now().Add(-r.grace)

	beds, err := r.bedRepo.FindOccupiedBefore(db, cutoff)
	if err != nil {
		r.log.Warnf("Failed to find occupied beds: %+v", err)
		return nil, err
	}

	result := &ReconcileResult{Inspected: len(beds), Released: []uuid.UUID{}}
	if len(beds) == 0 {
		return result, nil
	}

	bedIDs := make([]uuid.UUID, 0, len(beds))
	for _, bed := range beds {
		bedIDs = append(bedIDs, bed.ID)
	}

	admissions, err := r.admissionRepo.FindActiveByBedIDs(db, bedIDs)
	if err != nil {
		r.log.Warnf("Failed to find active admissions for occupied beds: %+v", err)
		return nil, err
	}

	boundPatient := make(map[uuid.UUID]string, len(admissions))
	for _, admission := range admissions {
		boundPatient[admission.BedID] = admission.PatientID
	}

	for _, bed := range beds {
		if bed.AssignedPatientID != nil && boundPatient[bed.ID] == *bed.AssignedPatientID {
			continue
		}

		released, err := r.release(ctx, &bed)
		if err != nil {
			r.log.Errorf("Failed to release orphaned bed %s: %+v", bed.ID, err)
			continue
		}
		if released {
			result.Released = append(result.Released, bed.ID)
		}
	}

	r.metrics.AddReconciled(len(result.Released))
	if len(result.Released) > 0 {
		r.log.Infof("Bed reconciliation released %d of %d occupied beds", len(result.Released), len(beds))
	}
	return result, nil
}

func (r *BedReconciler) release(ctx context.Context, bed *entity.Bed) (bool, error) {
	db := r.db.WithContext(ctx)
	now := r.now()

	var (
		affected int64
		err      error
		patient  string
	)
	if bed.AssignedPatientID != nil {
		patient = *bed.AssignedPatientID
		affected, err = r.bedRepo.ReleasePatient(db, bed.ID, patient, now)
	} else {
		affected, err = r.bedRepo.Release(db, bed.ID, now)
	}
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// changed underneath us, nothing to repair
		return false, nil
	}

	r.log.Warnf("Released orphaned bed %s (ward=%s room=%s bed=%s patient=%s)", bed.ID, bed.Ward, bed.RoomNumber, bed.BedNumber, patient)

	oldValue := map[string]interface{}{"status": entity.BedStatusOccupied, "assigned_patient_id": patient}
	newValue := map[string]interface{}{"status": entity.BedStatusCleaning, "assigned_patient_id": nil}
	if err := r.auditService.LogUpdate(ctx, db, ReconcilerActor, entity.AuditActionBedReconcile, "bed", bed.ID.String(), oldValue, newValue); err != nil {
		r.log.Warnf("Failed to audit reconciliation of bed %s: %+v", bed.ID, err)
	}

	r.publisher.Publish(EventBedStatusChanged, map[string]interface{}{
		"bed_id":          bed.ID,
		"ward":            bed.Ward,
		"previous_status": entity.BedStatusOccupied,
		"status":          entity.BedStatusCleaning,
		"reason":          "reconciled",
	})
	return true, nil
}
