package http

import (
	"net/http"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/handler/http/response"
)

type LeaveHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// GetBalance returns the caller's own balance unless employee_id is given.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		balance, err := l.leaveService.GetMyBalance(ctx)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, balance)
		return
	}

	balance, err := l.leaveService.GetBalance(ctx, leave.BalanceRequest{
		EmployeeID: employeeID,
		AsOf:       queryString(r, "as_of"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
