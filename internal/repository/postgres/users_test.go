package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotelnikov/contacts/internal/apperrors"
	"github.com/dkotelnikov/contacts/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Helper to run tests with its own UserRepo in transaction
	// When test end rollback
	withTx := func(dbpool *pgxpool.Pool, t *testing.T, testFunc func(*UserRepo)) {
		testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
			testFunc(&UserRepo{DB: tx})
		})
	}

	t.Run("create user ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			user, err := r.CreateUser(t.Context(), "testuser", "hashedpassword123")

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID, "ID should be generated")
			assert.Equal(t, "testuser", user.Username)
			assert.Equal(t, "hashedpassword123", user.HashedPassword)
			assert.WithinDuration(t, time.Now(), user.CreatedAt, time.Second, "CreatedAt should be recent")
		})
	})

	t.Run("create user duplicate username fails", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			_, err := r.CreateUser(t.Context(), "duplicateuser", "hashedpassword123")
			require.NoError(t, err)

			_, err = r.CreateUser(t.Context(), "duplicateuser", "anotherhashedpassword")
			assert.Error(t, err, "Should fail on duplicate username")
			assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists, "if user exists must return well defined error")
		})
	})

	t.Run("get user by id ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			created, err := r.CreateUser(t.Context(), "findbyid", "hashedpassword123")
			require.NoError(t, err)

			got, err := r.GetUserByID(t.Context(), created.ID)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Username, got.Username)
			assert.Equal(t, created.HashedPassword, got.HashedPassword)
		})
	})

	t.Run("get user by id not found", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			_, err := r.GetUserByID(t.Context(), uuid.New())

			assert.Error(t, err, "Should return error for non-existent user")
			assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "should return well known error")
		})
	})

	t.Run("get user by username ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			created, err := r.CreateUser(t.Context(), "findbyusername", "hashedpassword123")
			require.NoError(t, err)

			got, err := r.GetUserByUsername(t.Context(), created.Username)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Username, got.Username)
		})
	})

	t.Run("get user by username not found", func(t *testing.T) {
		withTx(pg.Pool, t, func(r *UserRepo) {
			_, err := r.GetUserByUsername(t.Context(), "who-is-this")

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "should return well known error")
		})
	})
}
