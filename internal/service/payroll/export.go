package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	exportPageSize = 100
	exportSheet    = "Payroll"
)

var exportHeader = []string{
	"Record ID", "Employee ID", "Employee", "Cycle", "Currency",
	"Base Salary", "Prorated Base", "Allowances", "Overtime Minutes", "Overtime Pay",
	"Gross", "Deductions", "Net", "Days Worked", "Workable Days", "Unjustified Days", "Status",
}

func exportRow(cycle payroll.Cycle, r payroll.PayrollRecord) []string {
	name := ""
	if r.EmployeeName != nil {
		name = *r.EmployeeName
	}
	return []string{
		r.ID,
		r.EmployeeID,
		name,
		cycle.String(),
		r.Currency,
		r.BaseSalary.StringFixed(0),
		r.ProratedBaseSalary.StringFixed(0),
		r.TotalAllowances.StringFixed(0),
		strconv.Itoa(r.TotalOvertimeMinutes),
		r.OvertimeAmount.StringFixed(0),
		r.GrossSalary.StringFixed(0),
		r.TotalDeductions.StringFixed(0),
		r.NetSalary.StringFixed(0),
		strconv.Itoa(r.TotalWorkDays),
		strconv.Itoa(r.WorkableDays),
		strconv.Itoa(r.UnjustifiedDays),
		string(r.Status),
	}
}

// ExportPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportPayroll(ctx context.Context, req payroll.ExportRequest) (payroll.ExportResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.ExportResult{}, err
	}
	identity, err := requireAdmin(ctx)
	if err != nil {
		return payroll.ExportResult{}, err
	}

	cycle, err := payroll.NewCycle(req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.ExportResult{}, err
	}

	records, err := s.cycleRecords(ctx, cycle)
	if err != nil {
		return payroll.ExportResult{}, err
	}
	if len(records) == 0 {
		return payroll.ExportResult{}, payroll.ErrNothingToExport
	}

	result := payroll.ExportResult{FileName: fmt.Sprintf("payroll_%s.%s", cycle.String(), req.Format)}
	switch payroll.ExportFormat(req.Format) {
	case payroll.ExportCSV:
		result.ContentType = contentTypeCSV
		result.Content, err = writeCSV(cycle, records)
	case payroll.ExportXLSX:
		result.ContentType = contentTypeXLSX
		result.Content, err = writeXLSX(cycle, records)
	default:
		return payroll.ExportResult{}, payroll.ErrUnsupportedExportFormat
	}
	if err != nil {
		return payroll.ExportResult{}, fmt.Errorf("failed to build %s export: %w", req.Format, err)
	}

	if req.Archive && s.storage != nil {
		key := fmt.Sprintf("payroll/%s/%s-%s", cycle.String(), uuid.NewString(), result.FileName)
		stored, err := s.storage.Upload(ctx, bytes.NewReader(result.Content), key, result.ContentType)
		if err != nil {
			return payroll.ExportResult{}, fmt.Errorf("failed to archive export: %w", err)
		}
		url := s.storage.URL(stored)
		result.URL = &url
	}

	slog.Info("payroll exported",
		"cycle", cycle.String(),
		"format", req.Format,
		"records", len(records),
		"archived", result.URL != nil,
		"by", identity.UserID,
	)
	return result, nil
}

// cycleRecords pages through every record of the cycle.
func (s *PayrollServiceImpl) cycleRecords(ctx context.Context, cycle payroll.Cycle) ([]payroll.PayrollRecord, error) {
	month, year := cycle.Month, cycle.Year
	filter := payroll.PayrollFilter{
		PeriodMonth: &month,
		PeriodYear:  &year,
		Limit:       exportPageSize,
		SortBy:      "employee_name",
		SortOrder:   "asc",
	}

	var all []payroll.PayrollRecord
	for page := 1; ; page++ {
		filter.Page = page
		records, total, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list payroll records: %w", err)
		}
		all = append(all, records...)
		if len(records) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

func writeCSV(cycle payroll.Cycle, records []payroll.PayrollRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := w.Write(exportRow(cycle, r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(cycle payroll.Cycle, records []payroll.PayrollRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.ColumnNumberToName(len(exportHeader))
	if err := f.SetCellStyle(exportSheet, "A1", last+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "A", last, 16); err != nil {
		return nil, err
	}

	for row, r := range records {
		values := exportRow(cycle, r)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			// money and counts go in as numbers so the sheet can sum them
			var value any = v
			if col >= 5 && col <= 15 {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					value = n
				}
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
