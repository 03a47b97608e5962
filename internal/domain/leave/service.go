package leave

import (
	"context"
)

type LeaveService interface {
	// GetBalance computes leave accrual for an employee as of today
	GetBalance(ctx context.Context, req BalanceRequest) (Balance, error)
	// GetMyBalance resolves the employee from the caller's token
	GetMyBalance(ctx context.Context) (Balance, error)
}
