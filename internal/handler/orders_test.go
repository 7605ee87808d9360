package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dessertly/api/internal/auth"
	"github.com/dessertly/api/internal/database"
	"github.com/dessertly/api/internal/enum"
	"github.com/dessertly/api/internal/handler"
	"github.com/dessertly/api/internal/middleware"
	"github.com/dessertly/api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// --- Mock OrderServicer ---

type mockOrderService struct {
	createFn func(ctx context.Context, req service.CreateOrderRequest) (database.Order, error)
	updateFn func(ctx context.Context, req service.UpdateOrderRequest) (database.Order, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, req service.CreateOrderRequest) (database.Order, error) {
	return m.createFn(ctx, req)
}

func (m *mockOrderService) UpdateOrder(ctx context.Context, req service.UpdateOrderRequest) (database.Order, error) {
	return m.updateFn(ctx, req)
}

// --- Mock OrderStore ---

type mockOrderStore struct {
	getOrderFn          func(ctx context.Context, arg database.GetOrderParams) (database.Order, error)
	listOrdersFn        func(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	updateOrderStatusFn func(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	deleteOrderFn       func(ctx context.Context, arg database.DeleteOrderParams) error
}

func (m *mockOrderStore) GetOrder(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
	if m.getOrderFn != nil {
		return m.getOrderFn(ctx, arg)
	}
	return database.Order{}, pgx.ErrNoRows
}

func (m *mockOrderStore) ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
	if m.listOrdersFn != nil {
		return m.listOrdersFn(ctx, arg)
	}
	return []database.Order{}, nil
}

func (m *mockOrderStore) UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error) {
	if m.updateOrderStatusFn != nil {
		return m.updateOrderStatusFn(ctx, arg)
	}
	return database.Order{}, pgx.ErrNoRows
}

func (m *mockOrderStore) DeleteOrder(ctx context.Context, arg database.DeleteOrderParams) error {
	if m.deleteOrderFn != nil {
		return m.deleteOrderFn(ctx, arg)
	}
	return pgx.ErrNoRows
}

// --- Mock Notifier ---

type mockNotifier struct {
	notified []uuid.UUID
}

func (m *mockNotifier) NotifyOrdersChanged(userID uuid.UUID) {
	m.notified = append(m.notified, userID)
}

// --- Test helpers ---

const testJWTSecret = "test-secret-for-handlers"

func setupOrderRouter(svc *mockOrderService, store *mockOrderStore, notifier *mockNotifier) *chi.Mux {
	h := handler.NewOrderHandler(svc, store, notifier)
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testJWTSecret))
	r.Route("/orders", h.RegisterRoutes)
	return r
}

func doAuthRequest(t *testing.T, router http.Handler, method, path string, body interface{}, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	// Generate a real JWT so requests go through the real middleware.
	token, err := auth.GenerateToken(testJWTSecret, userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeListResponse(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func testNumeric(t *testing.T, val string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	if err := n.Scan(val); err != nil {
		t.Fatalf("scan numeric %q: %v", val, err)
	}
	return n
}

func testOrder(t *testing.T, userID uuid.UUID, status string) database.Order {
	t.Helper()
	price, _ := decimal.NewFromString("15.50")
	return database.Order{
		ID:           uuid.New(),
		UserID:       userID,
		ClientName:   "Maria Lopez",
		DeliveryDate: pgtype.Date{Time: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), Valid: true},
		DeliveryTime: pgtype.Time{Microseconds: (14*3600 + 30*60) * 1_000_000, Valid: true},
		Items: []database.OrderItem{
			{DessertName: "Chocolate Cake", Quantity: 2, UnitPrice: price},
		},
		TotalPrice: testNumeric(t, "31.00"),
		Status:     status,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// --- Tests ---

func TestOrderCreate(t *testing.T) {
	userID := uuid.New()
	var captured service.CreateOrderRequest
	svc := &mockOrderService{
		createFn: func(ctx context.Context, req service.CreateOrderRequest) (database.Order, error) {
			captured = req
			o := testOrder(t, req.UserID, enum.OrderStatusPending)
			return o, nil
		},
	}
	notifier := &mockNotifier{}
	router := setupOrderRouter(svc, &mockOrderStore{}, notifier)

	body := map[string]interface{}{
		"client_name":   "Maria Lopez",
		"delivery_date": "2026-09-05",
		"delivery_time": "14:30",
		"items": []map[string]interface{}{
			{"dessert_name": "Chocolate Cake", "quantity": 2, "unit_price": "15.50"},
		},
	}
	rr := doAuthRequest(t, router, http.MethodPost, "/orders/", body, userID)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if captured.UserID != userID {
		t.Errorf("service got user %s, want %s", captured.UserID, userID)
	}

	resp := decodeResponse(t, rr)
	if resp["status"] != "pending" {
		t.Errorf("status = %v, want pending", resp["status"])
	}
	if resp["total_price"] != "31.00" {
		t.Errorf("total_price = %v, want 31.00", resp["total_price"])
	}
	items := resp["items"].([]interface{})
	item := items[0].(map[string]interface{})
	if item["subtotal"] != "31.00" {
		t.Errorf("item subtotal = %v, want 31.00", item["subtotal"])
	}
	if len(notifier.notified) != 1 || notifier.notified[0] != userID {
		t.Errorf("notifier calls = %v, want one for %s", notifier.notified, userID)
	}
}

func TestOrderCreateValidationError(t *testing.T) {
	svc := &mockOrderService{
		createFn: func(ctx context.Context, req service.CreateOrderRequest) (database.Order, error) {
			return database.Order{}, service.ErrEmptyItems
		},
	}
	notifier := &mockNotifier{}
	router := setupOrderRouter(svc, &mockOrderStore{}, notifier)

	body := map[string]interface{}{
		"client_name":   "Maria Lopez",
		"delivery_date": "2026-09-05",
		"items":         []map[string]interface{}{},
	}
	rr := doAuthRequest(t, router, http.MethodPost, "/orders/", body, uuid.New())

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if len(notifier.notified) != 0 {
		t.Error("notifier should not fire on validation failure")
	}
}

func TestOrderCreateUnauthorized(t *testing.T) {
	router := setupOrderRouter(&mockOrderService{}, &mockOrderStore{}, &mockNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/orders/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestOrderListViews(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		query        string
		wantStatuses []string
		wantDesc     bool
	}{
		{"default view", "", nil, false},
		{"all view", "?view=all", nil, false},
		{"in-progress view", "?view=in-progress", []string{"pending", "in_progress"}, false},
		{"completed view", "?view=completed", []string{"completed"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured database.ListOrdersParams
			store := &mockOrderStore{
				listOrdersFn: func(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
					captured = arg
					return []database.Order{testOrder(t, userID, enum.OrderStatusPending)}, nil
				},
			}
			router := setupOrderRouter(&mockOrderService{}, store, &mockNotifier{})

			rr := doAuthRequest(t, router, http.MethodGet, "/orders/"+tt.query, nil, userID)
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
			}

			if captured.UserID != userID {
				t.Errorf("user = %s, want %s", captured.UserID, userID)
			}
			if len(captured.Statuses) != len(tt.wantStatuses) {
				t.Errorf("statuses = %v, want %v", captured.Statuses, tt.wantStatuses)
			}
			if captured.DeliveryDateDesc != tt.wantDesc {
				t.Errorf("desc = %v, want %v", captured.DeliveryDateDesc, tt.wantDesc)
			}

			resp := decodeListResponse(t, rr)
			if len(resp) != 1 {
				t.Fatalf("list length = %d, want 1", len(resp))
			}
		})
	}
}

func TestOrderListInvalidView(t *testing.T) {
	router := setupOrderRouter(&mockOrderService{}, &mockOrderStore{}, &mockNotifier{})

	rr := doAuthRequest(t, router, http.MethodGet, "/orders/?view=archived", nil, uuid.New())
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestOrderListEmpty(t *testing.T) {
	store := &mockOrderStore{
		listOrdersFn: func(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error) {
			return []database.Order{}, nil
		},
	}
	router := setupOrderRouter(&mockOrderService{}, store, &mockNotifier{})

	rr := doAuthRequest(t, router, http.MethodGet, "/orders/", nil, uuid.New())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestOrderGet(t *testing.T) {
	userID := uuid.New()
	order := testOrder(t, userID, enum.OrderStatusPending)
	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
			if arg.ID == order.ID && arg.UserID == userID {
				return order, nil
			}
			return database.Order{}, pgx.ErrNoRows
		},
	}
	router := setupOrderRouter(&mockOrderService{}, store, &mockNotifier{})

	rr := doAuthRequest(t, router, http.MethodGet, "/orders/"+order.ID.String(), nil, userID)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["client_name"] != "Maria Lopez" {
		t.Errorf("client_name = %v", resp["client_name"])
	}
	if resp["delivery_date"] != "2026-09-05" {
		t.Errorf("delivery_date = %v", resp["delivery_date"])
	}
	if resp["delivery_time"] != "14:30" {
		t.Errorf("delivery_time = %v", resp["delivery_time"])
	}
}

func TestOrderGetOtherUsersOrderIsNotFound(t *testing.T) {
	owner := uuid.New()
	order := testOrder(t, owner, enum.OrderStatusPending)
	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
			if arg.ID == order.ID && arg.UserID == owner {
				return order, nil
			}
			return database.Order{}, pgx.ErrNoRows
		},
	}
	router := setupOrderRouter(&mockOrderService{}, store, &mockNotifier{})

	// Authenticated as a different user: existence is hidden.
	rr := doAuthRequest(t, router, http.MethodGet, "/orders/"+order.ID.String(), nil, uuid.New())
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestOrderUpdate(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	svc := &mockOrderService{
		updateFn: func(ctx context.Context, req service.UpdateOrderRequest) (database.Order, error) {
			if req.ID != orderID || req.UserID != userID {
				t.Errorf("identity not forwarded: %+v", req)
			}
			o := testOrder(t, userID, enum.OrderStatusPending)
			o.ID = orderID
			return o, nil
		},
	}
	notifier := &mockNotifier{}
	router := setupOrderRouter(svc, &mockOrderStore{}, notifier)

	body := map[string]interface{}{
		"client_name":   "Maria Lopez",
		"delivery_date": "2026-09-05",
		"items": []map[string]interface{}{
			{"dessert_name": "Chocolate Cake", "quantity": 2, "unit_price": "15.50"},
		},
	}
	rr := doAuthRequest(t, router, http.MethodPut, "/orders/"+orderID.String(), body, userID)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if len(notifier.notified) != 1 {
		t.Errorf("notifier calls = %d, want 1", len(notifier.notified))
	}
}

func TestOrderUpdateNotFound(t *testing.T) {
	svc := &mockOrderService{
		updateFn: func(ctx context.Context, req service.UpdateOrderRequest) (database.Order, error) {
			return database.Order{}, pgx.ErrNoRows
		},
	}
	router := setupOrderRouter(svc, &mockOrderStore{}, &mockNotifier{})

	body := map[string]interface{}{
		"client_name":   "Maria Lopez",
		"delivery_date": "2026-09-05",
		"items": []map[string]interface{}{
			{"dessert_name": "Brownie", "quantity": 1, "unit_price": "8.00"},
		},
	}
	rr := doAuthRequest(t, router, http.MethodPut, "/orders/"+uuid.NewString(), body, uuid.New())
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	userID := uuid.New()
	order := testOrder(t, userID, enum.OrderStatusPending)
	var captured database.UpdateOrderStatusParams
	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
			return order, nil
		},
		updateOrderStatusFn: func(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error) {
			captured = arg
			updated := order
			updated.Status = arg.Status
			return updated, nil
		},
	}
	notifier := &mockNotifier{}
	router := setupOrderRouter(&mockOrderService{}, store, notifier)

	body := map[string]string{"status": "completed"}
	rr := doAuthRequest(t, router, http.MethodPatch, "/orders/"+order.ID.String()+"/status", body, userID)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if captured.FromStatus != enum.OrderStatusPending {
		t.Errorf("from_status = %s, want pending", captured.FromStatus)
	}

	resp := decodeResponse(t, rr)
	if resp["status"] != "completed" {
		t.Errorf("status = %v, want completed", resp["status"])
	}
	if len(notifier.notified) != 1 {
		t.Errorf("notifier calls = %d, want 1", len(notifier.notified))
	}
}

func TestOrderUpdateStatusAlreadyCompleted(t *testing.T) {
	userID := uuid.New()
	order := testOrder(t, userID, enum.OrderStatusCompleted)
	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
			return order, nil
		},
	}
	notifier := &mockNotifier{}
	router := setupOrderRouter(&mockOrderService{}, store, notifier)

	body := map[string]string{"status": "completed"}
	rr := doAuthRequest(t, router, http.MethodPatch, "/orders/"+order.ID.String()+"/status", body, userID)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rr.Code, rr.Body.String())
	}
	if len(notifier.notified) != 0 {
		t.Error("notifier should not fire on rejected transition")
	}
}

func TestOrderUpdateStatusInvalid(t *testing.T) {
	userID := uuid.New()
	order := testOrder(t, userID, enum.OrderStatusPending)
	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
			return order, nil
		},
	}
	router := setupOrderRouter(&mockOrderService{}, store, &mockNotifier{})

	body := map[string]string{"status": "shipped"}
	rr := doAuthRequest(t, router, http.MethodPatch, "/orders/"+order.ID.String()+"/status", body, userID)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
	}
}

func TestOrderUpdateStatusConcurrentChange(t *testing.T) {
	userID := uuid.New()
	order := testOrder(t, userID, enum.OrderStatusPending)
	store := &mockOrderStore{
		getOrderFn: func(ctx context.Context, arg database.GetOrderParams) (database.Order, error) {
			return order, nil
		},
		updateOrderStatusFn: func(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error) {
			// Simulates the row moving between read and CAS write.
			return database.Order{}, pgx.ErrNoRows
		},
	}
	router := setupOrderRouter(&mockOrderService{}, store, &mockNotifier{})

	body := map[string]string{"status": "completed"}
	rr := doAuthRequest(t, router, http.MethodPatch, "/orders/"+order.ID.String()+"/status", body, userID)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rr.Code, rr.Body.String())
	}
}

func TestOrderDelete(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	store := &mockOrderStore{
		deleteOrderFn: func(ctx context.Context, arg database.DeleteOrderParams) error {
			if arg.ID == orderID && arg.UserID == userID {
				return nil
			}
			return pgx.ErrNoRows
		},
	}
	notifier := &mockNotifier{}
	router := setupOrderRouter(&mockOrderService{}, store, notifier)

	rr := doAuthRequest(t, router, http.MethodDelete, "/orders/"+orderID.String(), nil, userID)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if len(notifier.notified) != 1 {
		t.Errorf("notifier calls = %d, want 1", len(notifier.notified))
	}
}

func TestOrderDeleteNotFound(t *testing.T) {
	router := setupOrderRouter(&mockOrderService{}, &mockOrderStore{}, &mockNotifier{})

	rr := doAuthRequest(t, router, http.MethodDelete, "/orders/"+uuid.NewString(), nil, uuid.New())
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
