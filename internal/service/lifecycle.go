package service

import (
	"errors"

	"github.com/dessertly/api/internal/enum"
)

// Errors returned by status transition validation.
var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrAlreadyCompleted  = errors.New("order is already completed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// allowedTransitions maps each status to the statuses it may move to.
// completed and cancelled are terminal.
var allowedTransitions = map[string][]string{
	enum.OrderStatusPending:    {enum.OrderStatusInProgress, enum.OrderStatusCompleted, enum.OrderStatusCancelled},
	enum.OrderStatusInProgress: {enum.OrderStatusCompleted, enum.OrderStatusCancelled},
	enum.OrderStatusCompleted:  {},
	enum.OrderStatusCancelled:  {},
}

// IsValidOrderStatus reports whether s is one of the known order statuses.
func IsValidOrderStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// ValidateStatusTransition checks that moving from one status to another is
// allowed. Transitions out of completed fail with ErrAlreadyCompleted so
// callers can answer repeat completion attempts distinctly.
func ValidateStatusTransition(from, to string) error {
	if !IsValidOrderStatus(to) {
		return ErrInvalidStatus
	}
	if from == enum.OrderStatusCompleted {
		return ErrAlreadyCompleted
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}
