package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB wires gorm's postgres dialector onto a sqlmock connection so
// driver-level failures can be simulated.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_CreateStoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{ExternalID: "user_x", Username: "x"})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeStore, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUniqueViolationFromDriver(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_external_id"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{ExternalID: "user_x", Username: "x"})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeDuplicateUser, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_FollowStoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "follows"`)).
		WillReturnError(errors.New("read only transaction"))
	mock.ExpectRollback()

	changed, err := repo.Follow(context.Background(), 1, 2)
	require.Error(t, err)
	assert.False(t, changed)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeStore, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: likes.user_id, likes.post_id")))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}
