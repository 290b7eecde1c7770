package repository

import (
	"errors"
	"testing"
	"time"

	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/repository/repotest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bedColumns = []string{"id", "ward", "room_number", "bed_number", "type", "status", "assigned_patient_id", "is_active", "last_updated"}

func TestBedRepository_FindByID_NotFound(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()

	mock.ExpectQuery(`SELECT \* FROM "beds" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(bedColumns))

	bed, err := repo.FindByID(db, uuid.New())

	require.NoError(t, err)
	assert.Nil(t, bed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBedRepository_FindByID_Error(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()

	mock.ExpectQuery(`SELECT \* FROM "beds"`).WillReturnError(errors.New("connection reset"))

	bed, err := repo.FindByID(db, uuid.New())

	assert.Error(t, err)
	assert.Nil(t, bed)
}

func TestBedRepository_FindAvailable(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "beds" WHERE is_active = \$1 AND status = \$2 AND assigned_patient_id IS NULL ORDER BY ward ASC, room_number ASC, bed_number ASC`).
		WithArgs(true, entity.BedStatusAvailable).
		WillReturnRows(sqlmock.NewRows(bedColumns).
			AddRow(uuid.NewString(), "ICU", "101", "A", "ICU", "Available", nil, true, now).
			AddRow(uuid.NewString(), "ICU", "101", "B", "ICU", "Available", nil, true, now))

	beds, err := repo.FindAvailable(db)

	require.NoError(t, err)
	require.Len(t, beds, 2)
	assert.Equal(t, "B", beds[1].BedNumber)
	assert.Nil(t, beds[0].AssignedPatientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBedRepository_CountByStatus(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "beds" WHERE is_active = \$1 AND ward = \$2 GROUP BY "status"`).
		WithArgs(true, "ICU").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Available", 4).
			AddRow("Occupied", 5).
			AddRow("Cleaning", 1))

	counts, err := repo.CountByStatus(db, "ICU")

	require.NoError(t, err)
	assert.Equal(t, int64(10), counts.Total)
	assert.Equal(t, int64(4), counts.Available)
	assert.Equal(t, int64(5), counts.Occupied)
	assert.Equal(t, int64(1), counts.Cleaning)
	assert.Zero(t, counts.Maintenance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBedRepository_Assign(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{name: "bed still available", affected: 1},
		{name: "lost the race", affected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := repotest.NewGormDB(t)
			repo := NewBedRepository()

			mock.ExpectExec(`UPDATE "beds" SET .*"assigned_patient_id"=.*"status"=.* WHERE id = \$\d+ AND is_active = \$\d+ AND status = \$\d+ AND assigned_patient_id IS NULL`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			affected, err := repo.Assign(db, uuid.New(), "P-1001", time.Now())

			require.NoError(t, err)
			assert.Equal(t, tt.affected, affected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBedRepository_ReleasePatient(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()

	mock.ExpectExec(`UPDATE "beds" SET "assigned_patient_id"=NULL,.* WHERE id = \$\d+ AND status = \$\d+ AND assigned_patient_id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.ReleasePatient(db, uuid.New(), "P-1001", time.Now())

	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBedRepository_UpdateStatus_SkipsOccupied(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()
	notes := "Deep clean"

	mock.ExpectExec(`UPDATE "beds" SET .*"notes"=.* WHERE id = \$\d+ AND is_active = \$\d+ AND status <> \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.UpdateStatus(db, uuid.New(), entity.BedStatusCleaning, &notes, time.Now())

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBedRepository_Deactivate(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()

	mock.ExpectExec(`UPDATE "beds" SET .*"is_active"=.* WHERE id = \$\d+ AND is_active = \$\d+ AND status <> \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Deactivate(db, uuid.New(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBedRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()

	mock.ExpectQuery(`INSERT INTO "beds"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uniq_beds_active_location"})

	err := repo.Create(db, &entity.Bed{Ward: "ICU", RoomNumber: "101", BedNumber: "A", Type: entity.BedTypeICU, LastUpdated: time.Now()})

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
}

func TestBedRepository_FindAll_CountsThenPages(t *testing.T) {
	db, mock := repotest.NewGormDB(t)
	repo := NewBedRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "beds" WHERE is_active = \$1 AND ward = \$2`).
		WithArgs(true, "ICU").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT \* FROM "beds" WHERE is_active = \$1 AND ward = \$2 ORDER BY room_number DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(true, "ICU", 5, 5).
		WillReturnRows(sqlmock.NewRows(bedColumns).
			AddRow(uuid.NewString(), "ICU", "102", "A", "ICU", "Occupied", "P-1", true, time.Now()))

	beds, total, err := repo.FindAll(db, &entity.BedFilter{
		Ward:      "ICU",
		Page:      2,
		Limit:     5,
		SortBy:    "roomNumber",
		SortOrder: "desc",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, beds, 1)
	require.NotNil(t, beds[0].AssignedPatientID)
	assert.Equal(t, "P-1", *beds[0].AssignedPatientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "room_number DESC", orderClause(bedSortColumns, "roomNumber", "DESC", "ward"))
	assert.Equal(t, "ward ASC", orderClause(bedSortColumns, "ward; DROP TABLE beds", "asc", "ward"))
	assert.Equal(t, "ward ASC", orderClause(bedSortColumns, "", "", "ward"))
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageLimit, limit)

	_, limit = normalizePage(3, 500)
	assert.Equal(t, maxPageLimit, limit)
	assert.Equal(t, 20, offset(3, 10))
}
