package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const clientColumns = `id, user_id, name, phone, email, notes, created_at, updated_at`

const listClients = `
SELECT ` + clientColumns + `
FROM clients
WHERE user_id = $1
ORDER BY name ASC`

func (q *Queries) ListClients(ctx context.Context, userID uuid.UUID) ([]Client, error) {
	rows, err := q.db.Query(ctx, listClients, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []Client{}
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

const getClient = `
SELECT ` + clientColumns + `
FROM clients
WHERE id = $1 AND user_id = $2`

type GetClientParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) GetClient(ctx context.Context, arg GetClientParams) (Client, error) {
	var c Client
	err := q.db.QueryRow(ctx, getClient, arg.ID, arg.UserID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const createClient = `
INSERT INTO clients (user_id, name, phone, email, notes)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + clientColumns

type CreateClientParams struct {
	UserID uuid.UUID
	Name   string
	Phone  pgtype.Text
	Email  pgtype.Text
	Notes  pgtype.Text
}

func (q *Queries) CreateClient(ctx context.Context, arg CreateClientParams) (Client, error) {
	var c Client
	err := q.db.QueryRow(ctx, createClient, arg.UserID, arg.Name, arg.Phone, arg.Email, arg.Notes).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const updateClient = `
UPDATE clients
SET name = $3, phone = $4, email = $5, notes = $6, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + clientColumns

type UpdateClientParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Phone  pgtype.Text
	Email  pgtype.Text
	Notes  pgtype.Text
}

func (q *Queries) UpdateClient(ctx context.Context, arg UpdateClientParams) (Client, error) {
	var c Client
	err := q.db.QueryRow(ctx, updateClient, arg.ID, arg.UserID, arg.Name, arg.Phone, arg.Email, arg.Notes).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const deleteClient = `
DELETE FROM clients
WHERE id = $1 AND user_id = $2`

type DeleteClientParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) DeleteClient(ctx context.Context, arg DeleteClientParams) error {
	tag, err := q.db.Exec(ctx, deleteClient, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const countClients = `
SELECT COUNT(*)
FROM clients
WHERE user_id = $1`

func (q *Queries) CountClients(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countClients, userID).Scan(&count)
	return count, err
}
