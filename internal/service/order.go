package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dessertly/api/internal/database"
	"github.com/dessertly/api/internal/enum"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Errors returned by the order service.
var (
	ErrEmptyClientName     = errors.New("client_name is required")
	ErrEmptyItems          = errors.New("items are required")
	ErrEmptyDessertName    = errors.New("dessert_name is required")
	ErrInvalidQuantity     = errors.New("quantity must be > 0")
	ErrInvalidUnitPrice    = errors.New("invalid unit_price")
	ErrNegativeUnitPrice   = errors.New("unit_price must be >= 0")
	ErrInvalidDeliveryDate = errors.New("invalid delivery_date")
	ErrInvalidDeliveryTime = errors.New("invalid delivery_time")
)

// OrderStore defines the DB methods needed to write orders.
// Satisfied by *database.Queries.
type OrderStore interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
}

// CreateOrderRequest is the validated input for creating an order.
type CreateOrderRequest struct {
	UserID       uuid.UUID
	ClientName   string
	DeliveryDate string // 2006-01-02
	DeliveryTime string // 15:04, optional
	Items        []OrderItemRequest
}

// UpdateOrderRequest replaces the mutable fields of an existing order.
// Status is deliberately absent; it only moves through the status endpoint.
type UpdateOrderRequest struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ClientName   string
	DeliveryDate string
	DeliveryTime string
	Items        []OrderItemRequest
}

// OrderItemRequest is a single line item in the order.
type OrderItemRequest struct {
	DessertName string
	Quantity    int32
	UnitPrice   string
}

// OrderService handles order business logic.
type OrderService struct {
	store OrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{store: store}
}

// CreateOrder validates the request, derives the total from the items, and
// inserts the order. New orders always start pending.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (database.Order, error) {
	fields, err := validateOrderFields(req.ClientName, req.DeliveryDate, req.DeliveryTime, req.Items)
	if err != nil {
		return database.Order{}, err
	}

	return s.store.CreateOrder(ctx, database.CreateOrderParams{
		UserID:       req.UserID,
		ClientName:   fields.clientName,
		DeliveryDate: fields.deliveryDate,
		DeliveryTime: fields.deliveryTime,
		Items:        fields.items,
		TotalPrice:   DecimalToNumeric(OrderTotal(fields.items)),
		Status:       enum.OrderStatusPending,
	})
}

// UpdateOrder validates the request and replaces the order's content fields,
// recomputing the total from the new item set. Status is left untouched.
func (s *OrderService) UpdateOrder(ctx context.Context, req UpdateOrderRequest) (database.Order, error) {
	fields, err := validateOrderFields(req.ClientName, req.DeliveryDate, req.DeliveryTime, req.Items)
	if err != nil {
		return database.Order{}, err
	}

	return s.store.UpdateOrder(ctx, database.UpdateOrderParams{
		ID:           req.ID,
		UserID:       req.UserID,
		ClientName:   fields.clientName,
		DeliveryDate: fields.deliveryDate,
		DeliveryTime: fields.deliveryTime,
		Items:        fields.items,
		TotalPrice:   DecimalToNumeric(OrderTotal(fields.items)),
	})
}

// orderFields is the validated, DB-ready form of an order's content fields.
type orderFields struct {
	clientName   string
	deliveryDate pgtype.Date
	deliveryTime pgtype.Time
	items        []database.OrderItem
}

func validateOrderFields(clientName, deliveryDate, deliveryTime string, items []OrderItemRequest) (orderFields, error) {
	var fields orderFields

	fields.clientName = strings.TrimSpace(clientName)
	if fields.clientName == "" {
		return orderFields{}, ErrEmptyClientName
	}

	date, err := time.Parse("2006-01-02", deliveryDate)
	if err != nil {
		return orderFields{}, fmt.Errorf("%w: %q", ErrInvalidDeliveryDate, deliveryDate)
	}
	fields.deliveryDate = pgtype.Date{Time: date, Valid: true}

	if deliveryTime != "" {
		t, err := time.Parse("15:04", deliveryTime)
		if err != nil {
			return orderFields{}, fmt.Errorf("%w: %q", ErrInvalidDeliveryTime, deliveryTime)
		}
		micros := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
			int64(t.Minute())*int64(time.Minute/time.Microsecond)
		fields.deliveryTime = pgtype.Time{Microseconds: micros, Valid: true}
	}

	if len(items) == 0 {
		return orderFields{}, ErrEmptyItems
	}

	fields.items = make([]database.OrderItem, 0, len(items))
	for i, item := range items {
		name := strings.TrimSpace(item.DessertName)
		if name == "" {
			return orderFields{}, fmt.Errorf("item[%d]: %w", i, ErrEmptyDessertName)
		}
		if item.Quantity <= 0 {
			return orderFields{}, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return orderFields{}, fmt.Errorf("item[%d]: %w", i, ErrInvalidUnitPrice)
		}
		if price.IsNegative() {
			return orderFields{}, fmt.Errorf("item[%d]: %w", i, ErrNegativeUnitPrice)
		}
		fields.items = append(fields.items, database.OrderItem{
			DessertName: name,
			Quantity:    item.Quantity,
			UnitPrice:   price,
		})
	}

	return fields, nil
}
