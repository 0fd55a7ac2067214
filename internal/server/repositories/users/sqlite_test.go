package users

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mpdash/internal/common"
	"github.com/dmitrijs2005/mpdash/internal/server/migrations"
	"github.com/dmitrijs2005/mpdash/internal/server/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, migrations.Migrations)
	require.NoError(t, err)
	_, err = provider.Up(context.Background())
	require.NoError(t, err)
	return db
}

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(sqlx.NewDb(db, "sqlite")), mock
}

func TestCreateAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	u, err := r.Create(ctx, &models.User{Email: "alice@example.com", Username: "alice", PasswordHash: []byte("hash")})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsSuperuser)
	assert.Zero(t, u.Balance)

	byName, err := r.GetByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u, byName)

	byEmail, err := r.GetByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), byID.PasswordHash)
}

func TestCreate_Duplicate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Create(ctx, &models.User{Email: "a@example.com", Username: "alice", PasswordHash: []byte("h")})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{Email: "other@example.com", Username: "alice", PasswordHash: []byte("h")})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = r.Create(ctx, &models.User{Email: "a@example.com", Username: "bob", PasswordHash: []byte("h")})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGet_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = r.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(email,\s*username,\s*password_hash\)\s*VALUES\s*\(\?,\s*\?,\s*\?\)\s*RETURNING\s+id,\s*is_active,\s*is_superuser,\s*balance$`
	mock.ExpectQuery(q).
		WithArgs("a@example.com", "alice", []byte("h")).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "a@example.com", Username: "alice", PasswordHash: []byte("h")})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+id\s*=\s*\?$`).
		WithArgs(int64(7)).
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "db error")
}
