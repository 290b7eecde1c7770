package repotest

import (
	"sync"
	"time"

	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/domain/repository"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	mu     sync.Mutex
	logs   []entity.AuditLog
	nextID int64
}

var _ repository.AuditLogRepository = (*AuditLogRepository)(nil)

func NewAuditLogRepository() *AuditLogRepository {
	return &AuditLogRepository{}
}

// Actions returns the recorded actions in insertion order
func (r *AuditLogRepository) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.logs))
	for _, l := range r.logs {
		actions = append(actions, l.Action)
	}
	return actions
}

func (r *AuditLogRepository) Create(_ *gorm.DB, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	log.ID = r.nextID
	log.CreatedAt = time.Now()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *AuditLogRepository) FindAll(_ *gorm.DB, page, limit int) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	newestFirst := make([]entity.AuditLog, 0, len(r.logs))
	for i := len(r.logs) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, r.logs[i])
	}
	return paginate(newestFirst, page, limit), int64(len(r.logs)), nil
}

func (r *AuditLogRepository) FindByID(_ *gorm.DB, id int64) (*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, nil
}
