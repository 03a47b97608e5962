package payroll

import (
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	OvertimeRates        OvertimeRates   `json:"overtime_rates"`
	AbsencePenaltyAmount decimal.Decimal `json:"absence_penalty_amount"`
	ApplyAbsencePenalty  bool            `json:"apply_absence_penalty"`
	AttendanceBonus      decimal.Decimal `json:"attendance_bonus"`
	PerformanceBonus     decimal.Decimal `json:"performance_bonus"`
	GeofenceRadius       int             `json:"geofence_radius"`
	WorkplaceLatitude    *float64        `json:"workplace_latitude,omitempty"`
	WorkplaceLongitude   *float64        `json:"workplace_longitude,omitempty"`
	LeaveSurplusFormula  string          `json:"leave_surplus_formula"`
	IsDefault            bool            `json:"is_default"`
}

func NewSettingsResponse(s GlobalSettings, isDefault bool) SettingsResponse {
	return SettingsResponse{
		OvertimeRates:        s.OvertimeRates,
		AbsencePenaltyAmount: s.AbsencePenaltyAmount,
		ApplyAbsencePenalty:  s.ApplyAbsencePenalty,
		AttendanceBonus:      s.AttendanceBonus,
		PerformanceBonus:     s.PerformanceBonus,
		GeofenceRadius:       s.GeofenceRadius,
		WorkplaceLatitude:    s.WorkplaceLatitude,
		WorkplaceLongitude:   s.WorkplaceLongitude,
		LeaveSurplusFormula:  string(s.LeaveSurplusFormula),
		IsDefault:            isDefault,
	}
}

type OvertimeRatesRequest struct {
	Tier1   *decimal.Decimal `json:"tier1,omitempty"`
	Tier2   *decimal.Decimal `json:"tier2,omitempty"`
	Night   *decimal.Decimal `json:"night,omitempty"`
	Sunday  *decimal.Decimal `json:"sunday,omitempty"`
	Holiday *decimal.Decimal `json:"holiday,omitempty"`
}

type UpdateSettingsRequest struct {
	OvertimeRates        *OvertimeRatesRequest `json:"overtime_rates,omitempty"`
	AbsencePenaltyAmount *decimal.Decimal      `json:"absence_penalty_amount,omitempty"`
	ApplyAbsencePenalty  *bool                 `json:"apply_absence_penalty,omitempty"`
	AttendanceBonus      *decimal.Decimal      `json:"attendance_bonus,omitempty"`
	PerformanceBonus     *decimal.Decimal      `json:"performance_bonus,omitempty"`
	GeofenceRadius       *int                  `json:"geofence_radius,omitempty"`
	WorkplaceLatitude    *float64              `json:"workplace_latitude,omitempty"`
	WorkplaceLongitude   *float64              `json:"workplace_longitude,omitempty"`
	LeaveSurplusFormula  *string               `json:"leave_surplus_formula,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OvertimeRates != nil {
		rates := map[string]*decimal.Decimal{
			"overtime_rates.tier1":   r.OvertimeRates.Tier1,
			"overtime_rates.tier2":   r.OvertimeRates.Tier2,
			"overtime_rates.night":   r.OvertimeRates.Night,
			"overtime_rates.sunday":  r.OvertimeRates.Sunday,
			"overtime_rates.holiday": r.OvertimeRates.Holiday,
		}
		for field, rate := range rates {
			if rate != nil && rate.IsNegative() {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
			}
		}
	}
	if r.AbsencePenaltyAmount != nil && r.AbsencePenaltyAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "absence_penalty_amount", Message: "must be non-negative"})
	}
	if r.AttendanceBonus != nil && r.AttendanceBonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "attendance_bonus", Message: "must be non-negative"})
	}
	if r.PerformanceBonus != nil && r.PerformanceBonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "performance_bonus", Message: "must be non-negative"})
	}
	if r.GeofenceRadius != nil && *r.GeofenceRadius < 0 {
		errs = append(errs, validator.ValidationError{Field: "geofence_radius", Message: "must be non-negative"})
	}
	if r.WorkplaceLatitude != nil && !validator.IsValidLatitude(*r.WorkplaceLatitude) {
		errs = append(errs, validator.ValidationError{Field: "workplace_latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.WorkplaceLongitude != nil && !validator.IsValidLongitude(*r.WorkplaceLongitude) {
		errs = append(errs, validator.ValidationError{Field: "workplace_longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.LeaveSurplusFormula != nil && !validator.IsInSlice(*r.LeaveSurplusFormula, leave.SurplusFormulaValues) {
		errs = append(errs, validator.ValidationError{Field: "leave_surplus_formula", Message: "must be 'doubled' or 'linear'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the provided fields onto current.
func (r *UpdateSettingsRequest) Apply(current GlobalSettings) GlobalSettings {
	if rates := r.OvertimeRates; rates != nil {
		if rates.Tier1 != nil {
			current.OvertimeRates.Tier1 = *rates.Tier1
		}
		if rates.Tier2 != nil {
			current.OvertimeRates.Tier2 = *rates.Tier2
		}
		if rates.Night != nil {
			current.OvertimeRates.Night = *rates.Night
		}
		if rates.Sunday != nil {
			current.OvertimeRates.Sunday = *rates.Sunday
		}
		if rates.Holiday != nil {
			current.OvertimeRates.Holiday = *rates.Holiday
		}
	}
	if r.AbsencePenaltyAmount != nil {
		current.AbsencePenaltyAmount = *r.AbsencePenaltyAmount
	}
	if r.ApplyAbsencePenalty != nil {
		current.ApplyAbsencePenalty = *r.ApplyAbsencePenalty
	}
	if r.AttendanceBonus != nil {
		current.AttendanceBonus = *r.AttendanceBonus
	}
	if r.PerformanceBonus != nil {
		current.PerformanceBonus = *r.PerformanceBonus
	}
	if r.GeofenceRadius != nil {
		current.GeofenceRadius = *r.GeofenceRadius
	}
	if r.WorkplaceLatitude != nil {
		current.WorkplaceLatitude = r.WorkplaceLatitude
	}
	if r.WorkplaceLongitude != nil {
		current.WorkplaceLongitude = r.WorkplaceLongitude
	}
	if r.LeaveSurplusFormula != nil {
		current.LeaveSurplusFormula = leave.SurplusFormula(*r.LeaveSurplusFormula)
	}
	return current
}

// ========== PREVIEW DTOs ==========

type PreviewRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	errs = append(errs, validatePeriod(r.PeriodMonth, r.PeriodYear)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(month, year int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if year < 2020 || year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be between 2020 and 2100"})
	}
	return errs
}

// ========== PAYROLL RECORD DTOs ==========

type GeneratePayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
	// Regenerate replaces existing draft records; paid records are never touched
	Regenerate bool `json:"regenerate"`
}

func (r *GeneratePayrollRequest) Validate() error {
	errs := validatePeriod(r.PeriodMonth, r.PeriodYear)
	for _, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must contain valid UUIDs"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SkippedEmployee struct {
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  string   `json:"employee_name"`
	Reason        string   `json:"reason"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

const (
	SkipReasonExists           = "record_exists"
	SkipReasonPaid             = "record_paid"
	SkipReasonInsufficientData = "insufficient_data"
)

type GeneratePayrollResponse struct {
	PeriodMonth int                     `json:"period_month"`
	PeriodYear  int                     `json:"period_year"`
	Generated   []PayrollRecordResponse `json:"generated"`
	Skipped     []SkippedEmployee       `json:"skipped"`
}

type FinalizePayrollRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *FinalizePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID                   string                     `json:"id"`
	EmployeeID           string                     `json:"employee_id"`
	EmployeeName         string                     `json:"employee_name"`
	PeriodMonth          int                        `json:"period_month"`
	PeriodYear           int                        `json:"period_year"`
	Currency             string                     `json:"currency"`
	BaseSalary           decimal.Decimal            `json:"base_salary"`
	ProratedBaseSalary   decimal.Decimal            `json:"prorated_base_salary"`
	TotalAllowances      decimal.Decimal            `json:"total_allowances"`
	TotalDeductions      decimal.Decimal            `json:"total_deductions"`
	AllowancesDetail     map[string]decimal.Decimal `json:"allowances_detail,omitempty"`
	DeductionsDetail     map[string]decimal.Decimal `json:"deductions_detail,omitempty"`
	TotalWorkDays        int                        `json:"total_work_days"`
	WorkableDays         int                        `json:"workable_days"`
	UnjustifiedDays      int                        `json:"unjustified_days"`
	TotalOvertimeMinutes int                        `json:"total_overtime_minutes"`
	OvertimeAmount       decimal.Decimal            `json:"overtime_amount"`
	GrossSalary          decimal.Decimal            `json:"gross_salary"`
	NetSalary            decimal.Decimal            `json:"net_salary"`
	Status               string                     `json:"status"`
	PaidAt               *string                    `json:"paid_at,omitempty"`
	Notes                *string                    `json:"notes,omitempty"`
	Breakdown            *Breakdown                 `json:"breakdown,omitempty"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	var paidAtStr *string
	if r.PaidAt != nil {
		str := r.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	employeeName := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}

	return PayrollRecordResponse{
		ID:                   r.ID,
		EmployeeID:           r.EmployeeID,
		EmployeeName:         employeeName,
		PeriodMonth:          r.PeriodMonth,
		PeriodYear:           r.PeriodYear,
		Currency:             r.Currency,
		BaseSalary:           r.BaseSalary,
		ProratedBaseSalary:   r.ProratedBaseSalary,
		TotalAllowances:      r.TotalAllowances,
		TotalDeductions:      r.TotalDeductions,
		AllowancesDetail:     r.AllowancesDetail,
		DeductionsDetail:     r.DeductionsDetail,
		TotalWorkDays:        r.TotalWorkDays,
		WorkableDays:         r.WorkableDays,
		UnjustifiedDays:      r.UnjustifiedDays,
		TotalOvertimeMinutes: r.TotalOvertimeMinutes,
		OvertimeAmount:       r.OvertimeAmount,
		GrossSalary:          r.GrossSalary,
		NetSalary:            r.NetSalary,
		Status:               string(r.Status),
		PaidAt:               paidAtStr,
		Notes:                r.Notes,
		Breakdown:            r.Breakdown,
	}
}

type PayrollFilter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	SortBy      string  `json:"sort_by"`
	SortOrder   string  `json:"sort_order"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollSummaryResponse struct {
	PeriodMonth      int             `json:"period_month"`
	PeriodYear       int             `json:"period_year"`
	TotalEmployees   int             `json:"total_employees"`
	TotalBaseSalary  decimal.Decimal `json:"total_base_salary"`
	TotalAllowances  decimal.Decimal `json:"total_allowances"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalOvertime    decimal.Decimal `json:"total_overtime"`
	TotalGrossSalary decimal.Decimal `json:"total_gross_salary"`
	TotalNetSalary   decimal.Decimal `json:"total_net_salary"`
	DraftCount       int             `json:"draft_count"`
	PaidCount        int             `json:"paid_count"`
}

// ========== EXPORT DTOs ==========

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

type ExportRequest struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	Format      string `json:"format"`
	Archive     bool   `json:"archive"`
}

func (r *ExportRequest) Validate() error {
	errs := validatePeriod(r.PeriodMonth, r.PeriodYear)
	if r.Format != string(ExportCSV) && r.Format != string(ExportXLSX) {
		errs = append(errs, validator.ValidationError{Field: "format", Message: "must be 'csv' or 'xlsx'"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportResult struct {
	FileName    string  `json:"file_name"`
	ContentType string  `json:"content_type"`
	Content     []byte  `json:"-"`
	URL         *string `json:"url,omitempty"`
}
