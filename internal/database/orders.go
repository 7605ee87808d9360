package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, user_id, client_name, delivery_date, delivery_time, items, total_price, status, created_at, updated_at`

const createOrder = `
INSERT INTO orders (user_id, client_name, delivery_date, delivery_time, items, total_price, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + orderColumns

type CreateOrderParams struct {
	UserID       uuid.UUID
	ClientName   string
	DeliveryDate pgtype.Date
	DeliveryTime pgtype.Time
	Items        []OrderItem
	TotalPrice   pgtype.Numeric
	Status       string
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.UserID,
		arg.ClientName,
		arg.DeliveryDate,
		arg.DeliveryTime,
		arg.Items,
		arg.TotalPrice,
		arg.Status,
	)
	return scanOrder(row)
}

const getOrder = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND user_id = $2`

type GetOrderParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) GetOrder(ctx context.Context, arg GetOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, getOrder, arg.ID, arg.UserID)
	return scanOrder(row)
}

const listOrdersAsc = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
  AND ($2::text[] IS NULL OR cardinality($2::text[]) = 0 OR status = ANY($2::text[]))
ORDER BY delivery_date ASC, created_at ASC`

const listOrdersDesc = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
  AND ($2::text[] IS NULL OR cardinality($2::text[]) = 0 OR status = ANY($2::text[]))
ORDER BY delivery_date DESC, created_at DESC`

type ListOrdersParams struct {
	UserID uuid.UUID
	// Statuses filters by status when non-empty; empty means all statuses.
	Statuses []string
	// DeliveryDateDesc flips the ordering to most recent delivery first.
	DeliveryDateDesc bool
}

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	query := listOrdersAsc
	if arg.DeliveryDateDesc {
		query = listOrdersDesc
	}

	rows, err := q.db.Query(ctx, query, arg.UserID, arg.Statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrderFromRows(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const updateOrder = `
UPDATE orders
SET client_name = $3,
    delivery_date = $4,
    delivery_time = $5,
    items = $6,
    total_price = $7,
    updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + orderColumns

type UpdateOrderParams struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ClientName   string
	DeliveryDate pgtype.Date
	DeliveryTime pgtype.Time
	Items        []OrderItem
	TotalPrice   pgtype.Numeric
}

func (q *Queries) UpdateOrder(ctx context.Context, arg UpdateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrder,
		arg.ID,
		arg.UserID,
		arg.ClientName,
		arg.DeliveryDate,
		arg.DeliveryTime,
		arg.Items,
		arg.TotalPrice,
	)
	return scanOrder(row)
}

const updateOrderStatus = `
UPDATE orders
SET status = $3, updated_at = now()
WHERE id = $1 AND user_id = $2 AND status = $4
RETURNING ` + orderColumns

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Status string
	// FromStatus makes the write a compare-and-set: no row is updated if the
	// status changed between the caller's read and this write.
	FromStatus string
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.UserID, arg.Status, arg.FromStatus)
	return scanOrder(row)
}

const deleteOrder = `
DELETE FROM orders
WHERE id = $1 AND user_id = $2`

type DeleteOrderParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) DeleteOrder(ctx context.Context, arg DeleteOrderParams) error {
	tag, err := q.db.Exec(ctx, deleteOrder, arg.ID, arg.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const countOrdersByDeliveryDate = `
SELECT COUNT(*)
FROM orders
WHERE user_id = $1 AND delivery_date = $2`

type CountOrdersByDeliveryDateParams struct {
	UserID       uuid.UUID
	DeliveryDate pgtype.Date
}

func (q *Queries) CountOrdersByDeliveryDate(ctx context.Context, arg CountOrdersByDeliveryDateParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countOrdersByDeliveryDate, arg.UserID, arg.DeliveryDate).Scan(&count)
	return count, err
}

const countOrdersByStatus = `
SELECT COUNT(*)
FROM orders
WHERE user_id = $1 AND status = $2`

type CountOrdersByStatusParams struct {
	UserID uuid.UUID
	Status string
}

func (q *Queries) CountOrdersByStatus(ctx context.Context, arg CountOrdersByStatusParams) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countOrdersByStatus, arg.UserID, arg.Status).Scan(&count)
	return count, err
}

const sumCompletedRevenue = `
SELECT COALESCE(SUM(total_price), 0)
FROM orders
WHERE user_id = $1 AND status = 'completed'`

func (q *Queries) SumCompletedRevenue(ctx context.Context, userID uuid.UUID) (pgtype.Numeric, error) {
	var total pgtype.Numeric
	err := q.db.QueryRow(ctx, sumCompletedRevenue, userID).Scan(&total)
	return total, err
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.ClientName,
		&o.DeliveryDate,
		&o.DeliveryTime,
		&o.Items,
		&o.TotalPrice,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

func scanOrderFromRows(rows pgx.Rows) (Order, error) {
	var o Order
	err := rows.Scan(
		&o.ID,
		&o.UserID,
		&o.ClientName,
		&o.DeliveryDate,
		&o.DeliveryTime,
		&o.Items,
		&o.TotalPrice,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
