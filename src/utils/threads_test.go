package utils

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"testing"

	"daily/src/db"
	"daily/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	mockdb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: mockdb,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	db.NewDB(gormDB)
	return mock
}

func setChatKey(t *testing.T) {
	raw := make([]byte, 32)
	rand.Read(raw)
	t.Setenv("CHAT_SECRET_KEY", hex.EncodeToString(raw))
}

func TestUnreadThreadsCount(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "threads" WHERE .*is_user_one_read.*is_user_two_read`).
		WithArgs(uint(9), false, uint(9), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := UnreadThreadsCount(9)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateChatDerivesReceiverFromThread(t *testing.T) {
	setChatKey(t)
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "threads" WHERE "threads"."id" = $1`)).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "user_one_id", "user_two_id", "is_user_one_read", "is_user_two_read"}).
			AddRow(5, 1, 2, true, false))
	// receiver_id comes from the thread, not the request body
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "chats"`)).
		WithArgs(uint(5), uint(1), uint(2), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "threads" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	chat, err := CreateChat(&types.CreateChatRequestBody{
		Thread:   5,
		Receiver: 99,
		Message:  "is it still available?",
	}, 1)
	assert.NoError(t, err)
	assert.Equal(t, uint(2), chat.ReceiverID)
	assert.Equal(t, "is it still available?", chat.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateChatRejectsNonMember(t *testing.T) {
	setChatKey(t)
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "threads" WHERE "threads"."id" = $1`)).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "user_one_id", "user_two_id"}).
			AddRow(5, 1, 2))
	mock.ExpectRollback()

	_, err := CreateChat(&types.CreateChatRequestBody{
		Thread:   5,
		Receiver: 1,
		Message:  "hello",
	}, 42)
	var derr *types.DomainError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, types.ErrForbidden, derr.Code())
	assert.NoError(t, mock.ExpectationsWereMet())
}
