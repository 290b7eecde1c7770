package usecase

import (
	"context"

	"bed-admission-service/internal/delivery/http/middleware"
	"bed-admission-service/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// recordAudit writes an audit entry for the caller in ctx. A nil oldValue is a
// create, a nil newValue a delete. Failures are logged and swallowed.
func recordAudit(ctx context.Context, db *gorm.DB, log *logrus.Logger, auditService service.AuditService,
	action, entityName, entityID string, oldValue, newValue interface{}) {
	actor := middleware.ActorFromContext(ctx)

	var err error
	switch {
	case oldValue == nil:
		err = auditService.LogCreate(ctx, db, actor, action, entityName, entityID, newValue)
	case newValue == nil:
		err = auditService.LogDelete(ctx, db, actor, action, entityName, entityID, oldValue)
	default:
		err = auditService.LogUpdate(ctx, db, actor, action, entityName, entityID, oldValue, newValue)
	}
	if err != nil {
		log.Warnf("Failed to audit %s for %s %s (non-fatal): %+v", action, entityName, entityID, err)
	}
}
