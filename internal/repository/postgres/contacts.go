package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkotelnikov/contacts/internal/apperrors"
	"github.com/dkotelnikov/contacts/internal/models"
)

type ContactRepo struct {
	DB DBTX
}

const createContact = `-- name: CreateContact
INSERT INTO contacts (id, user_id, name, phone)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, created_at, name, phone
`

func (r *ContactRepo) CreateContact(ctx context.Context, userID uuid.UUID, name string, phone string) (models.Contact, error) {
	rows, _ := r.DB.Query(ctx, createContact, uuid.New(), userID, name, phone)
	contact, err := pgx.CollectOneRow(rows, rowToContact)
	if err != nil {
		return contact, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

const listContacts = `-- name: ListContacts
SELECT id, user_id, created_at, name, phone FROM contacts
WHERE user_id = $1
ORDER BY created_at
`

func (r *ContactRepo) ListContacts(ctx context.Context, userID uuid.UUID) ([]models.Contact, error) {
	rows, _ := r.DB.Query(ctx, listContacts, userID)
	contacts, err := pgx.CollectRows(rows, rowToContact)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contacts, nil
}

const getContact = `-- name: GetContact
SELECT id, user_id, created_at, name, phone FROM contacts
WHERE user_id = $1 AND id = $2
`

func (r *ContactRepo) GetContact(ctx context.Context, userID uuid.UUID, contactID uuid.UUID) (models.Contact, error) {
	rows, _ := r.DB.Query(ctx, getContact, userID, contactID)
	contact, err := pgx.CollectOneRow(rows, rowToContact)

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return contact, apperrors.ErrContactNotFound
	}

	return contact, err
}

const updateContact = `-- name: UpdateContact
UPDATE contacts
SET name = $3, phone = $4
WHERE user_id = $1 AND id = $2
RETURNING id, user_id, created_at, name, phone
`

func (r *ContactRepo) UpdateContact(ctx context.Context, userID uuid.UUID, contactID uuid.UUID, name string, phone string) (models.Contact, error) {
	rows, _ := r.DB.Query(ctx, updateContact, userID, contactID, name, phone)
	contact, err := pgx.CollectOneRow(rows, rowToContact)

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return contact, apperrors.ErrContactNotFound
	}

	return contact, err
}

const deleteContact = `-- name: DeleteContact
DELETE FROM contacts
WHERE user_id = $1 AND id = $2
RETURNING id
`

func (r *ContactRepo) DeleteContact(ctx context.Context, userID uuid.UUID, contactID uuid.UUID) error {
	rows, _ := r.DB.Query(ctx, deleteContact, userID, contactID)
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[uuid.UUID])

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrContactNotFound
	}

	return err
}

func rowToContact(row pgx.CollectableRow) (models.Contact, error) {
	var c models.Contact
	err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.Name, &c.Phone)
	return c, err
}
