package service

import (
	"errors"
	"fmt"

	"github.com/dessertly/api/internal/enum"
)

// ErrInvalidView is returned for an unrecognized view name.
var ErrInvalidView = errors.New("invalid view")

// OrderView is a named filtered-and-ordered listing of orders.
type OrderView string

const (
	ViewInProgress OrderView = enum.OrderViewInProgress
	ViewCompleted  OrderView = enum.OrderViewCompleted
	ViewAll        OrderView = enum.OrderViewAll
)

// ParseOrderView maps a query-string view name to an OrderView. The empty
// string defaults to the all view.
func ParseOrderView(s string) (OrderView, error) {
	switch s {
	case "":
		return ViewAll, nil
	case enum.OrderViewInProgress:
		return ViewInProgress, nil
	case enum.OrderViewCompleted:
		return ViewCompleted, nil
	case enum.OrderViewAll:
		return ViewAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidView, s)
}

// Statuses returns the status filter for the view. Empty means no filter.
func (v OrderView) Statuses() []string {
	switch v {
	case ViewInProgress:
		return []string{enum.OrderStatusPending, enum.OrderStatusInProgress}
	case ViewCompleted:
		return []string{enum.OrderStatusCompleted}
	}
	return nil
}

// DeliveryDateDesc reports whether the view lists most recent deliveries
// first. Completed orders read as history; the active views read as a queue.
func (v OrderView) DeliveryDateDesc() bool {
	return v == ViewCompleted
}
