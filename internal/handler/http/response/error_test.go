package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/auth"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{auth.ErrTokenExpired, http.StatusUnauthorized, CodeUnauthorized},
		{auth.ErrEmployeeNotLinked, http.StatusBadRequest, CodeBadRequest},
		{user.ErrAdminPrivilegeRequired, http.StatusForbidden, CodeForbidden},
		{attendance.ErrUnauthorized, http.StatusForbidden, CodeForbidden},
		{schedule.ErrShiftNotFound, http.StatusNotFound, CodeNotFound},
		{attendance.ErrAlreadyClockedIn, http.StatusConflict, CodeConflict},
		{fmt.Errorf("failed to clock in: %w", attendance.ErrOutsideAllowedRadius), http.StatusBadRequest, CodeBadRequest},
		{payroll.ErrCannotDeletePaidRecord, http.StatusConflict, CodeConflict},
		{payroll.ErrInsufficientData, http.StatusUnprocessableEntity, CodeInsufficientData},
		{leave.ErrHireDateMissing, http.StatusUnprocessableEntity, CodeInsufficientData},
		{errors.New("connection reset"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, tc.err)

		assert.Equal(t, tc.status, rec.Code, tc.err.Error())

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, tc.code, body.Error.Code)
	}
}

func TestHandleError_Messages(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("failed to get shift: %w", schedule.ErrShiftNotFound))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Shift not found", body.Error.Message)

	rec = httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("failed to clock in: %w", attendance.ErrAlreadyClockedIn))

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to clock in: you already have an open session", body.Error.Message)

	rec = httptest.NewRecorder()
	HandleError(rec, errors.New("pool closed"))

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body.Error.Message)
}

func TestSuccessEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Shift created", map[string]string{"id": "s1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Shift created", body.Message)
	assert.Nil(t, body.Error)

	rec = httptest.NewRecorder()
	SuccessWithMeta(rec, []string{}, NewMeta(1, 20, 5))
	body = Response{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Meta)
	assert.Equal(t, 1, body.Meta.TotalPages)
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "start_time", Message: "must be HH:MM"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "must be HH:MM", body.Error.Details["start_time"])
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)

	meta = NewMeta(1, 20, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
