package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "file-exchange-api/internal/domain/user"
)

var userColumns = []string{"id", "email", "password_hash", "role", "is_verified", "created_at"}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, domain.Repository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewRepository(mock)
}

func TestRepository_FetchUserByID(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByID)).
			WithArgs(uint64(1)).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(uint64(1), "a@x.com", "hash", "client", true, now))

		u, err := repo.FetchUserByID(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, domain.ID(1), u.ID)
		assert.Equal(t, "a@x.com", u.Email)
		assert.Equal(t, domain.RoleClient, u.Role)
		assert.True(t, u.IsVerified)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent rows map to nil, nil", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByID)).
			WithArgs(uint64(42)).
			WillReturnError(pgx.ErrNoRows)

		u, err := repo.FetchUserByID(context.Background(), 42)
		require.NoError(t, err)
		assert.Nil(t, u)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FetchUserByEmail(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByEmail)).
			WithArgs("ops@x.com").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(uint64(5), "ops@x.com", "hash", "ops", false, now))

		u, err := repo.FetchUserByEmail(context.Background(), "ops@x.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, domain.RoleOps, u.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectUserByEmail)).
			WithArgs("ghost@x.com").
			WillReturnError(pgx.ErrNoRows)

		u, err := repo.FetchUserByEmail(context.Background(), "ghost@x.com")
		require.NoError(t, err)
		assert.Nil(t, u)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CreateUser(t *testing.T) {
	now := time.Now()

	t.Run("created", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
			WithArgs("a@x.com", "hash", "client").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(uint64(1), "a@x.com", "hash", "client", false, now))

		u, err := repo.CreateUser(context.Background(), domain.User{
			Email:        "a@x.com",
			PasswordHash: "hash",
			Role:         domain.RoleClient,
		})
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, domain.ID(1), u.ID)
		assert.False(t, u.IsVerified)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
			WithArgs("a@x.com", "hash", "client").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		u, err := repo.CreateUser(context.Background(), domain.User{
			Email:        "a@x.com",
			PasswordHash: "hash",
			Role:         domain.RoleClient,
		})
		require.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.Nil(t, u)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_MarkVerified(t *testing.T) {
	now := time.Now()

	t.Run("verified", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(MarkUserVerified)).
			WithArgs("a@x.com").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(uint64(1), "a@x.com", "hash", "client", true, now))

		u, err := repo.MarkVerified(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.True(t, u.IsVerified)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown email", func(t *testing.T) {
		mock, repo := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(MarkUserVerified)).
			WithArgs("ghost@x.com").
			WillReturnError(pgx.ErrNoRows)

		u, err := repo.MarkVerified(context.Background(), "ghost@x.com")
		require.NoError(t, err)
		assert.Nil(t, u)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
