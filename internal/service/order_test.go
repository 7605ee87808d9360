package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dessertly/api/internal/database"
	"github.com/dessertly/api/internal/enum"
	"github.com/google/uuid"
)

// mockOrderStore implements OrderStore with configurable behavior.
type mockOrderStore struct {
	createOrderFn func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	updateOrderFn func(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
}

func (m *mockOrderStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	return m.createOrderFn(ctx, arg)
}

func (m *mockOrderStore) UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error) {
	return m.updateOrderFn(ctx, arg)
}

func validCreateRequest(userID uuid.UUID) CreateOrderRequest {
	return CreateOrderRequest{
		UserID:       userID,
		ClientName:   "Maria Lopez",
		DeliveryDate: "2026-09-05",
		DeliveryTime: "14:30",
		Items: []OrderItemRequest{
			{DessertName: "Chocolate Cake", Quantity: 2, UnitPrice: "15.50"},
			{DessertName: "Brownie", Quantity: 1, UnitPrice: "8.00"},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	userID := uuid.New()
	var captured database.CreateOrderParams
	store := &mockOrderStore{
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			captured = arg
			return database.Order{ID: uuid.New(), UserID: arg.UserID, Status: arg.Status}, nil
		},
	}
	svc := NewOrderService(store)

	_, err := svc.CreateOrder(context.Background(), validCreateRequest(userID))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if captured.Status != enum.OrderStatusPending {
		t.Errorf("status = %s, want pending", captured.Status)
	}
	if got := NumericToDecimal(captured.TotalPrice); got.StringFixed(2) != "39.00" {
		t.Errorf("total_price = %s, want 39.00", got.StringFixed(2))
	}
	if len(captured.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(captured.Items))
	}
	if !captured.DeliveryDate.Valid || captured.DeliveryDate.Time.Format("2006-01-02") != "2026-09-05" {
		t.Errorf("delivery_date = %+v", captured.DeliveryDate)
	}
	// 14:30 = 52200 seconds into the day.
	if !captured.DeliveryTime.Valid || captured.DeliveryTime.Microseconds != 52200*1_000_000 {
		t.Errorf("delivery_time = %+v", captured.DeliveryTime)
	}
}

func TestCreateOrderOptionalDeliveryTime(t *testing.T) {
	var captured database.CreateOrderParams
	store := &mockOrderStore{
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			captured = arg
			return database.Order{}, nil
		},
	}
	svc := NewOrderService(store)

	req := validCreateRequest(uuid.New())
	req.DeliveryTime = ""
	if _, err := svc.CreateOrder(context.Background(), req); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if captured.DeliveryTime.Valid {
		t.Errorf("delivery_time should be NULL, got %+v", captured.DeliveryTime)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateOrderRequest)
		wantErr error
	}{
		{"empty client name", func(r *CreateOrderRequest) { r.ClientName = "  " }, ErrEmptyClientName},
		{"no items", func(r *CreateOrderRequest) { r.Items = nil }, ErrEmptyItems},
		{"empty dessert name", func(r *CreateOrderRequest) { r.Items[0].DessertName = "" }, ErrEmptyDessertName},
		{"zero quantity", func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 }, ErrInvalidQuantity},
		{"negative quantity", func(r *CreateOrderRequest) { r.Items[0].Quantity = -1 }, ErrInvalidQuantity},
		{"malformed price", func(r *CreateOrderRequest) { r.Items[0].UnitPrice = "abc" }, ErrInvalidUnitPrice},
		{"negative price", func(r *CreateOrderRequest) { r.Items[0].UnitPrice = "-1.00" }, ErrNegativeUnitPrice},
		{"bad date", func(r *CreateOrderRequest) { r.DeliveryDate = "05/09/2026" }, ErrInvalidDeliveryDate},
		{"bad time", func(r *CreateOrderRequest) { r.DeliveryTime = "2pm" }, ErrInvalidDeliveryTime},
	}

	store := &mockOrderStore{
		createOrderFn: func(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
			t.Fatal("store should not be called on validation failure")
			return database.Order{}, nil
		},
	}
	svc := NewOrderService(store)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest(uuid.New())
			tt.mutate(&req)
			_, err := svc.CreateOrder(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateOrderRecomputesTotal(t *testing.T) {
	orderID := uuid.New()
	userID := uuid.New()
	var captured database.UpdateOrderParams
	store := &mockOrderStore{
		updateOrderFn: func(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error) {
			captured = arg
			return database.Order{ID: arg.ID}, nil
		},
	}
	svc := NewOrderService(store)

	_, err := svc.UpdateOrder(context.Background(), UpdateOrderRequest{
		ID:           orderID,
		UserID:       userID,
		ClientName:   "Maria Lopez",
		DeliveryDate: "2026-09-06",
		Items: []OrderItemRequest{
			{DessertName: "Cheesecake", Quantity: 3, UnitPrice: "12.00"},
		},
	})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}

	if got := NumericToDecimal(captured.TotalPrice); got.StringFixed(2) != "36.00" {
		t.Errorf("total_price = %s, want 36.00", got.StringFixed(2))
	}
	if captured.ID != orderID || captured.UserID != userID {
		t.Errorf("identity not forwarded: %+v", captured)
	}
}

func TestUpdateOrderValidation(t *testing.T) {
	store := &mockOrderStore{
		updateOrderFn: func(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error) {
			t.Fatal("store should not be called on validation failure")
			return database.Order{}, nil
		},
	}
	svc := NewOrderService(store)

	_, err := svc.UpdateOrder(context.Background(), UpdateOrderRequest{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		ClientName:   "Maria Lopez",
		DeliveryDate: "2026-09-06",
		Items:        []OrderItemRequest{},
	})
	if !errors.Is(err, ErrEmptyItems) {
		t.Errorf("error = %v, want ErrEmptyItems", err)
	}
}
