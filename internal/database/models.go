package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Order is a customer order with its line items embedded as JSONB.
// TotalPrice is derived from the items and recomputed on every write path;
// it is stored so aggregations can run without unmarshalling item sets.
type Order struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ClientName   string
	DeliveryDate pgtype.Date
	DeliveryTime pgtype.Time
	Items        []OrderItem
	TotalPrice   pgtype.Numeric
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem is one line within an order. It has no identity outside its
// order; the slice round-trips through the orders.items JSONB column.
type OrderItem struct {
	DessertName string          `json:"dessert_name"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Client is a customer record owned by a single user.
type Client struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Phone     pgtype.Text
	Email     pgtype.Text
	Notes     pgtype.Text
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recipe is a dessert recipe owned by a single user.
type Recipe struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Description  pgtype.Text
	Instructions string
	Category     pgtype.Text
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User is an account that owns orders, clients, and recipes.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	FullName       string
	BusinessName   pgtype.Text
	CreatedAt      time.Time
}
