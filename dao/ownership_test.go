package dao

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := DB
	DB = gdb
	t.Cleanup(func() {
		DB = prev
		sqlDB.Close()
	})
	return mock
}

func TestGetOwnedConsultantScopesByOwnerEmail(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT .* FROM `consultant` JOIN symposium ON symposium.symposium_id = consultant.symposium_id WHERE consultant.id = .* AND symposium.user_email = .*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "symposium_id", "name"}).
			AddRow(7, "sym-1", "顾问A"))

	consultant, err := GetOwnedConsultant("alice@example.com", 7)

	require.NoError(t, err)
	assert.Equal(t, uint(7), consultant.ID)
	assert.Equal(t, "sym-1", consultant.SymposiumID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOwnedConsultantRejectsForeignOwner(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT .* FROM `consultant` JOIN symposium .* symposium.user_email = .*").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := GetOwnedConsultant("mallory@example.com", 7)

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOwnedMessageScopesByOwnerEmail(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT .* FROM `chat_message` JOIN symposium ON symposium.symposium_id = chat_message.symposium_id WHERE chat_message.id = .* AND symposium.user_email = .*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "symposium_id", "content", "is_user"}).
			AddRow(11, "sym-1", "你好", true))

	message, err := GetOwnedMessage("alice@example.com", 11)

	require.NoError(t, err)
	assert.Equal(t, uint(11), message.ID)
	assert.Equal(t, "sym-1", message.SymposiumID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOwnedMessageRejectsForeignOwner(t *testing.T) {
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT .* FROM `chat_message` JOIN symposium .* symposium.user_email = .*").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := GetOwnedMessage("mallory@example.com", 11)

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
