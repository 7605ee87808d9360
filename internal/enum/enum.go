package enum

// ── Order status state machine (CHECK constrained in DB) ──

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ── Named order views ──

const (
	OrderViewInProgress = "in-progress"
	OrderViewCompleted  = "completed"
	OrderViewAll        = "all"
)
