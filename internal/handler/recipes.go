package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dessertly/api/internal/database"
	"github.com/dessertly/api/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RecipeStore defines the database methods needed by recipe handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type RecipeStore interface {
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]database.Recipe, error)
	GetRecipe(ctx context.Context, arg database.GetRecipeParams) (database.Recipe, error)
	CreateRecipe(ctx context.Context, arg database.CreateRecipeParams) (database.Recipe, error)
	UpdateRecipe(ctx context.Context, arg database.UpdateRecipeParams) (database.Recipe, error)
	DeleteRecipe(ctx context.Context, arg database.DeleteRecipeParams) error
}

// RecipeHandler handles recipe CRUD endpoints.
type RecipeHandler struct {
	store RecipeStore
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(store RecipeStore) *RecipeHandler {
	return &RecipeHandler{store: store}
}

// RegisterRoutes registers recipe CRUD endpoints on the given Chi router.
func (h *RecipeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

// --- Request / Response types ---

type recipeRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	Category     string `json:"category"`
}

type recipeResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Instructions string    `json:"instructions"`
	Category     *string   `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toRecipeResponse(rec database.Recipe) recipeResponse {
	resp := recipeResponse{
		ID:           rec.ID,
		Title:        rec.Title,
		Instructions: rec.Instructions,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if rec.Description.Valid {
		resp.Description = &rec.Description.String
	}
	if rec.Category.Valid {
		resp.Category = &rec.Category.String
	}
	return resp
}

func validateRecipeRequest(req recipeRequest) string {
	if len(strings.TrimSpace(req.Title)) < 2 {
		return "title must be at least 2 characters"
	}
	if len(strings.TrimSpace(req.Instructions)) < 10 {
		return "instructions must be at least 10 characters"
	}
	return ""
}

// --- Handlers ---

// List returns all recipes for the authenticated user.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	recipes, err := h.store.ListRecipes(r.Context(), claims.UserID)
	if err != nil {
		log.Printf("ERROR: list recipes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]recipeResponse, len(recipes))
	for i, rec := range recipes {
		resp[i] = toRecipeResponse(rec)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single recipe by ID.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid recipe ID"})
		return
	}

	recipe, err := h.store.GetRecipe(r.Context(), database.GetRecipeParams{
		ID:     recipeID,
		UserID: claims.UserID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
			return
		}
		log.Printf("ERROR: get recipe: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toRecipeResponse(recipe))
}

// Create adds a new recipe.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msg := validateRecipeRequest(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	recipe, err := h.store.CreateRecipe(r.Context(), database.CreateRecipeParams{
		UserID:       claims.UserID,
		Title:        strings.TrimSpace(req.Title),
		Description:  optionalText(req.Description),
		Instructions: strings.TrimSpace(req.Instructions),
		Category:     optionalText(req.Category),
	})
	if err != nil {
		log.Printf("ERROR: create recipe: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toRecipeResponse(recipe))
}

// Update modifies an existing recipe.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid recipe ID"})
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msg := validateRecipeRequest(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	recipe, err := h.store.UpdateRecipe(r.Context(), database.UpdateRecipeParams{
		ID:           recipeID,
		UserID:       claims.UserID,
		Title:        strings.TrimSpace(req.Title),
		Description:  optionalText(req.Description),
		Instructions: strings.TrimSpace(req.Instructions),
		Category:     optionalText(req.Category),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
			return
		}
		log.Printf("ERROR: update recipe: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toRecipeResponse(recipe))
}

// Delete removes a recipe.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid recipe ID"})
		return
	}

	err = h.store.DeleteRecipe(r.Context(), database.DeleteRecipeParams{
		ID:     recipeID,
		UserID: claims.UserID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
			return
		}
		log.Printf("ERROR: delete recipe: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
