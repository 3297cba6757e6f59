package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestDeleteCascadeRunsInOrderInsideOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserGormRepository(db)

	ok := sqlmock.NewResult(0, 1)

	mock.ExpectBegin()
	mock.ExpectExec(q(`UPDATE "appointments" SET`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "accounts"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "sessions"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`UPDATE "invoices" SET`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "reviews" WHERE appointment_id IN`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "appointments"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "reviews" WHERE user_id`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "comments" WHERE post_id IN`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "posts"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "comments" WHERE author_id`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "messages"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "notifications"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "push_subscriptions"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "invoice_items"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "invoices"`)).WillReturnResult(ok)
	mock.ExpectExec(q(`DELETE FROM "users"`)).WillReturnResult(ok)
	mock.ExpectCommit()

	err := repo.DeleteCascade(context.Background(), 42, "Cancelled: account removed", time.Now())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadeRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q(`UPDATE "appointments" SET`)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q(`DELETE FROM "accounts"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q(`DELETE FROM "sessions"`)).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 42, "note", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sessions")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadeMissingUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserGormRepository(db)

	none := sqlmock.NewResult(0, 0)

	mock.ExpectBegin()
	for i := 0; i < 15; i++ {
		mock.ExpectExec(`^(UPDATE|DELETE)`).WillReturnResult(none)
	}
	mock.ExpectExec(q(`DELETE FROM "users"`)).WillReturnResult(none)
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 7, "note", time.Now())
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNumberedFollowsHighestOfYear(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock`)).
		WithArgs(advisoryKey(2026)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q(`SELECT "number" FROM "invoices"`)).
		WillReturnRows(sqlmock.NewRows([]string{"number"}).AddRow("INV-2026-0007"))
	mock.ExpectQuery(q(`INSERT INTO "invoices"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	inv := &models.Invoice{Amount: 45, Currency: "BRL", IssuedAt: time.Now()}
	require.NoError(t, repo.CreateNumbered(context.Background(), inv, 2026))

	assert.Equal(t, "INV-2026-0008", inv.Number)
	assert.Equal(t, uint(11), inv.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNumberedStartsYear(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q(`SELECT "number" FROM "invoices"`)).
		WillReturnRows(sqlmock.NewRows([]string{"number"}))
	mock.ExpectQuery(q(`INSERT INTO "invoices"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	inv := &models.Invoice{IssuedAt: time.Now()}
	require.NoError(t, repo.CreateNumbered(context.Background(), inv, 2027))
	assert.Equal(t, "INV-2027-0001", inv.Number)
}

func TestFindByAppointmentMissingIsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceGormRepository(db)

	mock.ExpectQuery(q(`SELECT * FROM "invoices" WHERE appointment_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	inv, err := repo.FindByAppointment(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestMarkReadForeignNotification(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNotificationGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(q(`UPDATE "notifications" SET "read"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.MarkRead(context.Background(), 3, 99)
	assert.True(t, httperr.IsBusiness(err, "notification_not_found"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate(t *testing.T) {
	limit, offset := paginate(0, 0)
	assert.Equal(t, defaultPageSize, limit)
	assert.Equal(t, 0, offset)

	limit, offset = paginate(3, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)

	limit, _ = paginate(1, 500)
	assert.Equal(t, defaultPageSize, limit)
}
