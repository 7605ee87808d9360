package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/dessertly/api/internal/database"
	"github.com/dessertly/api/internal/enum"
	"github.com/dessertly/api/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// DashboardStore defines the aggregation queries behind the summary.
// Satisfied by *database.Queries; narrow interface for testability.
type DashboardStore interface {
	CountOrdersByDeliveryDate(ctx context.Context, arg database.CountOrdersByDeliveryDateParams) (int64, error)
	CountOrdersByStatus(ctx context.Context, arg database.CountOrdersByStatusParams) (int64, error)
	SumCompletedRevenue(ctx context.Context, userID uuid.UUID) (pgtype.Numeric, error)
	CountClients(ctx context.Context, userID uuid.UUID) (int64, error)
}

// DashboardHandler serves the dashboard summary.
type DashboardHandler struct {
	store DashboardStore
	now   func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler. now is injectable so
// tests can pin "today".
func NewDashboardHandler(store DashboardStore, now func() time.Time) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{store: store, now: now}
}

// RegisterRoutes registers dashboard endpoints on the given Chi router.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
}

type summaryResponse struct {
	Today        int64  `json:"today"`
	Tomorrow     int64  `json:"tomorrow"`
	Pending      int64  `json:"pending"`
	Completed    int64  `json:"completed"`
	TotalRevenue string `json:"total_revenue"`
	TotalClients int64  `json:"total_clients"`
	Degraded     bool   `json:"degraded,omitempty"`
}

// Summary returns the dashboard counters for the authenticated user.
// Each counter is read independently; a failed read logs, reports zero, and
// flips the degraded flag rather than failing the whole summary.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	ctx := r.Context()
	userID := claims.UserID
	resp := summaryResponse{TotalRevenue: "0.00"}

	// Bucket by the clock's calendar date, not UTC day boundaries.
	y, m, d := h.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	count, err := h.store.CountOrdersByDeliveryDate(ctx, database.CountOrdersByDeliveryDateParams{
		UserID:       userID,
		DeliveryDate: pgtype.Date{Time: today, Valid: true},
	})
	if err != nil {
		log.Printf("ERROR: count today's orders: %v", err)
		resp.Degraded = true
	} else {
		resp.Today = count
	}

	count, err = h.store.CountOrdersByDeliveryDate(ctx, database.CountOrdersByDeliveryDateParams{
		UserID:       userID,
		DeliveryDate: pgtype.Date{Time: tomorrow, Valid: true},
	})
	if err != nil {
		log.Printf("ERROR: count tomorrow's orders: %v", err)
		resp.Degraded = true
	} else {
		resp.Tomorrow = count
	}

	count, err = h.store.CountOrdersByStatus(ctx, database.CountOrdersByStatusParams{
		UserID: userID,
		Status: enum.OrderStatusPending,
	})
	if err != nil {
		log.Printf("ERROR: count pending orders: %v", err)
		resp.Degraded = true
	} else {
		resp.Pending = count
	}

	count, err = h.store.CountOrdersByStatus(ctx, database.CountOrdersByStatusParams{
		UserID: userID,
		Status: enum.OrderStatusCompleted,
	})
	if err != nil {
		log.Printf("ERROR: count completed orders: %v", err)
		resp.Degraded = true
	} else {
		resp.Completed = count
	}

	revenue, err := h.store.SumCompletedRevenue(ctx, userID)
	if err != nil {
		log.Printf("ERROR: sum completed revenue: %v", err)
		resp.Degraded = true
	} else {
		resp.TotalRevenue = numericToString(revenue)
	}

	count, err = h.store.CountClients(ctx, userID)
	if err != nil {
		log.Printf("ERROR: count clients: %v", err)
		resp.Degraded = true
	} else {
		resp.TotalClients = count
	}

	writeJSON(w, http.StatusOK, resp)
}
