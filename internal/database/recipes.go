package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const recipeColumns = `id, user_id, title, description, instructions, category, created_at, updated_at`

const listRecipes = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE user_id = $1
ORDER BY title ASC`

func (q *Queries) ListRecipes(ctx context.Context, userID uuid.UUID) ([]Recipe, error) {
	rows, err := q.db.Query(ctx, listRecipes, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []Recipe{}
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &rec.Instructions, &rec.Category, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

const getRecipe = `
SELECT ` + recipeColumns + `
FROM recipes
WHERE id = $1 AND user_id = $2`

type GetRecipeParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) GetRecipe(ctx context.Context, arg GetRecipeParams) (Recipe, error) {
	var rec Recipe
	err := q.db.QueryRow(ctx, getRecipe, arg.ID, arg.UserID).
		Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &rec.Instructions, &rec.Category, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

const createRecipe = `
INSERT INTO recipes (user_id, title, description, instructions, category)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + recipeColumns

type CreateRecipeParams struct {
	UserID       uuid.UUID
	Title        string
	Description  pgtype.Text
	Instructions string
	Category     pgtype.Text
}

func (q *Queries) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error) {
	var rec Recipe
	err := q.db.QueryRow(ctx, createRecipe, arg.UserID, arg.Title, arg.Description, arg.Instructions, arg.Category).
		Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &rec.Instructions, &rec.Category, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

const updateRecipe = `
UPDATE recipes
SET title = $3, description = $4, instructions = $5, category = $6, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + recipeColumns

type UpdateRecipeParams struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Description  pgtype.Text
	Instructions string
	Category     pgtype.Text
}

func (q *Queries) UpdateRecipe(ctx context.Context, arg UpdateRecipeParams) (Recipe, error) {
	var rec Recipe
	err := q.db.QueryRow(ctx, updateRecipe, arg.ID, arg.UserID, arg.Title, arg.Description, arg.Instructions, arg.Category).
		Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &rec.Instructions, &rec.Category, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

const deleteRecipe = `
DELETE FROM recipes
WHERE id = $1 AND user_id = $2`

type DeleteRecipeParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) DeleteRecipe(ctx context.Context, arg DeleteRecipeParams) error {
	tag, err := q.db.Exec(ctx, deleteRecipe, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
