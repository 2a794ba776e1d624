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
	"github.com/dkotelnikov/contacts/internal/models"
	"github.com/dkotelnikov/contacts/internal/testutil"
)

func Test_ContactRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	// Contacts reference users, so every test gets an owner created first
	withTx := func(dbpool *pgxpool.Pool, t *testing.T, testFunc func(owner models.User, r *ContactRepo)) {
		testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
			userRepo := &UserRepo{DB: tx}
			owner, err := userRepo.CreateUser(t.Context(), "owner", "hashedpassword123")
			require.NoError(t, err, "owner user should be created")

			testFunc(owner, &ContactRepo{DB: tx})
		})
	}

	t.Run("create contact ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			contact, err := r.CreateContact(t.Context(), owner.ID, "Alice", "11999999999")

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, contact.ID, "ID should be generated")
			assert.Equal(t, owner.ID, contact.UserID)
			assert.Equal(t, "Alice", contact.Name)
			assert.Equal(t, "11999999999", contact.Phone)
			assert.WithinDuration(t, time.Now(), contact.CreatedAt, time.Second)
		})
	})

	t.Run("list contacts only for owner", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			userRepo := &UserRepo{DB: r.DB}
			other, err := userRepo.CreateUser(t.Context(), "other", "hashedpassword123")
			require.NoError(t, err)

			_, err = r.CreateContact(t.Context(), owner.ID, "Alice", "11999999999")
			require.NoError(t, err)
			_, err = r.CreateContact(t.Context(), owner.ID, "Bob", "11888888888")
			require.NoError(t, err)
			_, err = r.CreateContact(t.Context(), other.ID, "Charlie", "11777777777")
			require.NoError(t, err)

			contacts, err := r.ListContacts(t.Context(), owner.ID)

			require.NoError(t, err)
			require.Len(t, contacts, 2, "only owner contacts should be listed")
			for _, c := range contacts {
				assert.Equal(t, owner.ID, c.UserID)
			}
		})
	})

	t.Run("list contacts empty", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			contacts, err := r.ListContacts(t.Context(), owner.ID)

			require.NoError(t, err)
			require.Empty(t, contacts)
		})
	})

	t.Run("get contact ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			created, err := r.CreateContact(t.Context(), owner.ID, "Alice", "11999999999")
			require.NoError(t, err)

			got, err := r.GetContact(t.Context(), owner.ID, created.ID)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Name, got.Name)
		})
	})

	t.Run("get foreign contact not found", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			userRepo := &UserRepo{DB: r.DB}
			other, err := userRepo.CreateUser(t.Context(), "other", "hashedpassword123")
			require.NoError(t, err)

			created, err := r.CreateContact(t.Context(), other.ID, "Charlie", "11777777777")
			require.NoError(t, err)

			_, err = r.GetContact(t.Context(), owner.ID, created.ID)

			assert.ErrorIs(t, err, apperrors.ErrContactNotFound, "foreign contact must look like a missing one")
		})
	})

	t.Run("update contact ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			created, err := r.CreateContact(t.Context(), owner.ID, "Old Name", "11999999999")
			require.NoError(t, err)

			updated, err := r.UpdateContact(t.Context(), owner.ID, created.ID, "New Name", "11888888888")

			require.NoError(t, err)
			assert.Equal(t, created.ID, updated.ID)
			assert.Equal(t, "New Name", updated.Name)
			assert.Equal(t, "11888888888", updated.Phone)
		})
	})

	t.Run("update missing contact not found", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			_, err := r.UpdateContact(t.Context(), owner.ID, uuid.New(), "New Name", "11888888888")

			assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
		})
	})

	t.Run("delete contact ok", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			created, err := r.CreateContact(t.Context(), owner.ID, "Alice", "11999999999")
			require.NoError(t, err)

			err = r.DeleteContact(t.Context(), owner.ID, created.ID)
			require.NoError(t, err)

			_, err = r.GetContact(t.Context(), owner.ID, created.ID)
			assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
		})
	})

	t.Run("delete missing contact not found", func(t *testing.T) {
		withTx(pg.Pool, t, func(owner models.User, r *ContactRepo) {
			err := r.DeleteContact(t.Context(), owner.ID, uuid.New())

			assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
		})
	})
}
