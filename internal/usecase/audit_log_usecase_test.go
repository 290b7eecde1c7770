package usecase

import (
	"testing"

	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogUsecase_RecordsActorFromContext(t *testing.T) {
	f := newFixture(t)
	ctx := staffContext()
	auditLogs := NewAuditLogUsecase(f.db, f.log, f.audits)

	bed, err := f.bedUsecase.CreateBed(ctx, &dto.CreateBedRequest{Ward: "ICU", RoomNumber: "101", BedNumber: "A", Type: "ICU"})
	require.NoError(t, err)
	_, err = f.bedUsecase.UpdateBedStatus(ctx, bed.ID, &dto.UpdateBedStatusRequest{Status: "Reserved"})
	require.NoError(t, err)

	logs, total, err := auditLogs.GetAuditLogs(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditActionBedStatus, logs[0].Action)
	assert.Equal(t, "nurse-1", logs[0].Actor)
	assert.Equal(t, bed.ID.String(), logs[0].Metadata["entity_id"])

	page, total, err := auditLogs.GetAuditLogs(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, entity.AuditActionBedCreate, page[0].Action)

	found, err := auditLogs.GetAuditLog(ctx, logs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditActionBedCreate, found.Action)

	_, err = auditLogs.GetAuditLog(ctx, 999)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
