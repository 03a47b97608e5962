package attendance

import (
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockInRequest struct {
	ShiftID         *string  `json:"shift_id,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	IsPublicHoliday bool     `json:"is_public_holiday"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "must be a valid UUID"})
	}
	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	errs := validateCoordinates(r.Latitude, r.Longitude)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateCoordinates(lat, lon *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if (lat == nil) != (lon == nil) {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "latitude and longitude must be provided together"})
		return errs
	}
	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if lon != nil && !validator.IsValidLongitude(*lon) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	return errs
}

// ========================================
// ADMIN DTOs
// ========================================

type UpdateTimeEntryRequest struct {
	ID              string  `json:"-"`
	Date            *string `json:"date,omitempty"`
	StartTime       *string `json:"start_time,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`
	ShiftID         *string `json:"shift_id,omitempty"`
	IsPublicHoliday *bool   `json:"is_public_holiday,omitempty"`
	Note            *string `json:"note,omitempty"`
}

func (r *UpdateTimeEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.StartTime != nil && !validator.IsValidClock(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be in HH:mm format"})
	}
	if r.EndTime != nil && !validator.IsValidClock(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be in HH:mm format"})
	}
	if r.ShiftID != nil && *r.ShiftID != "" && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimeEntryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *TimeEntryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	errs = append(errs, validatePeriod(f.Month, f.Year, f.From, f.To)...)
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(EntryStatusOpen), string(EntryStatusClosed), string(EntryStatusAutoClosed),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of open, closed, auto_closed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyTimeEntryFilter struct {
	Month *int `json:"month,omitempty"`
	Year  *int `json:"year,omitempty"`
	Page  int  `json:"page"`
	Limit int  `json:"limit"`
}

func (f *MyTimeEntryFilter) Validate() error {
	errs := validatePeriod(f.Month, f.Year, nil, nil)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(month, year *int, from, to *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if (month == nil) != (year == nil) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month and year must be provided together"})
	}
	if month != nil && (*month < 1 || *month > 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year != nil && (*year < 2000 || *year > 2100) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}

	var fromDate, toDate time.Time
	if from != nil {
		d, ok := validator.IsValidDate(*from)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be in YYYY-MM-DD format"})
		}
		fromDate = d
	}
	if to != nil {
		d, ok := validator.IsValidDate(*to)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be in YYYY-MM-DD format"})
		}
		toDate = d
	}
	if !fromDate.IsZero() && !toDate.IsZero() && toDate.Before(fromDate) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must not be before from"})
	}
	return errs
}

// ========================================
// OVERRIDE DTOs
// ========================================

type SetOverrideRequest struct {
	EmployeeID string  `json:"-"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Note       *string `json:"note,omitempty"`
}

func (r *SetOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsInSlice(r.Status, OverrideStatusValues) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'unjustified_absence' or 'sick_leave'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverrideFilter struct {
	EmployeeID string  `json:"-"`
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
}

func (f *OverrideFilter) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	errs = append(errs, validatePeriod(f.Month, f.Year, f.From, f.To)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type TimeEntryResponse struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee_id"`
	EmployeeName     *string    `json:"employee_name,omitempty"`
	Date             string     `json:"date"`
	StartTime        string     `json:"start_time"`
	EndTime          *string    `json:"end_time,omitempty"`
	ClockInAt        time.Time  `json:"clock_in_at"`
	ClockOutAt       *time.Time `json:"clock_out_at,omitempty"`
	Duration         int        `json:"duration"`
	OvertimeDuration int        `json:"overtime_duration"`
	ShiftID          *string    `json:"shift_id,omitempty"`
	IsPublicHoliday  bool       `json:"is_public_holiday"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	Status           string     `json:"status"`
	Note             *string    `json:"note,omitempty"`
}

func NewTimeEntryResponse(e TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:               e.ID,
		EmployeeID:       e.EmployeeID,
		EmployeeName:     e.EmployeeName,
		Date:             e.Date,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		ClockInAt:        e.ClockInAt,
		ClockOutAt:       e.ClockOutAt,
		Duration:         e.Duration,
		OvertimeDuration: e.OvertimeDuration,
		ShiftID:          e.ShiftID,
		IsPublicHoliday:  e.IsPublicHoliday,
		Latitude:         e.Latitude,
		Longitude:        e.Longitude,
		Status:           string(e.Status),
		Note:             e.Note,
	}
}

type ListTimeEntryResponse struct {
	Data       []TimeEntryResponse `json:"data"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	// TotalMinutes and TotalOvertime summarise the returned page
	TotalMinutes  int `json:"total_minutes"`
	TotalOvertime int `json:"total_overtime"`
}

type OverrideResponse struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Note       *string `json:"note,omitempty"`
	SetBy      *string `json:"set_by,omitempty"`
}

func NewOverrideResponse(o Override) OverrideResponse {
	return OverrideResponse{
		EmployeeID: o.EmployeeID,
		Date:       o.Date,
		Status:     string(o.Status),
		Note:       o.Note,
		SetBy:      o.SetBy,
	}
}
