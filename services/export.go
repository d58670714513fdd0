package services

import (
	"time"

	"staffpay/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportService renders admin reports as xlsx workbooks.
type ExportService struct {
	DB  *gorm.DB
	Loc *time.Location
}

func NewExportService(db *gorm.DB, loc *time.Location) *ExportService {
	return &ExportService{DB: db, Loc: loc}
}

func buildWorkbook(title string, headers []string, widths []float64, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, title); err != nil {
		return nil, err
	}
	sheet = title

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, colName, colName, widths[col]); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func (e *ExportService) formatTime(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return t.In(e.Loc).Format("15:04:05")
}

func (e *ExportService) Employees() (*excelize.File, error) {
	var employees []models.Employee
	if err := e.DB.Preload("Account").Order("name").Find(&employees).Error; err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(employees))
	for i, emp := range employees {
		email := "N/A"
		if emp.Account != nil {
			email = emp.Account.Email
		}
		rows = append(rows, []interface{}{
			i + 1, emp.Name, email, emp.Position, emp.Department,
			emp.ContactNumber, emp.BankAccountNum,
			emp.EmploymentDate.Format("2006-01-02"), emp.Status,
		})
	}

	return buildWorkbook("Employees",
		[]string{"No.", "Name", "Email", "Position", "Department", "Contact Number", "Bank Account Number", "Employment Date", "Status"},
		[]float64{5, 25, 25, 20, 20, 20, 20, 15, 12},
		rows)
}

func (e *ExportService) Attendance() (*excelize.File, error) {
	var records []models.Attendance
	if err := e.DB.Preload("Employee").Order("date desc").Find(&records).Error; err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(records))
	for i, att := range records {
		status := "Present"
		if !att.IsPresent {
			status = "Absent"
		}
		hours, _ := att.HoursWorked.Float64()
		overtime, _ := att.OvertimeHours.Float64()
		rows = append(rows, []interface{}{
			i + 1, att.Employee.Name, att.Date.Format("2006-01-02"), att.Shift,
			e.formatTime(att.ScanInTime), e.formatTime(att.ScanOutTime),
			hours, overtime, status,
		})
	}

	return buildWorkbook("Attendance Report",
		[]string{"No.", "Employee Name", "Date", "Shift", "Scan In Time", "Scan Out Time", "Hours Worked", "Overtime Hours", "Status"},
		[]float64{5, 25, 12, 15, 15, 15, 15, 15, 10},
		rows)
}

func (e *ExportService) SalaryStructures() (*excelize.File, error) {
	var structures []models.SalaryStructure
	if err := e.DB.Preload("Employee").Order("updated_at desc").Find(&structures).Error; err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(structures))
	for i, st := range structures {
		rows = append(rows, []interface{}{
			i + 1, st.Employee.Name,
			st.BasicSalary.StringFixed(2), st.OvertimeRate.StringFixed(2), st.BonusPercentage.StringFixed(2),
		})
	}

	return buildWorkbook("Salary Structures",
		[]string{"No.", "Employee Name", "Basic Salary", "Overtime Rate", "Bonus Percentage"},
		[]float64{5, 25, 18, 18, 18},
		rows)
}

func (e *ExportService) Deductions() (*excelize.File, error) {
	var deductions []models.Deduction
	if err := e.DB.Preload("Employee").Order("date desc").Find(&deductions).Error; err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(deductions))
	for i, d := range deductions {
		rows = append(rows, []interface{}{
			i + 1, d.Employee.Name, d.Date.Format("2006-01-02"), d.Reason, d.Amount.StringFixed(2),
		})
	}

	return buildWorkbook("Deductions",
		[]string{"No.", "Employee Name", "Date", "Reason", "Amount"},
		[]float64{5, 25, 12, 30, 15},
		rows)
}

func (e *ExportService) Bonuses() (*excelize.File, error) {
	var bonuses []models.Bonus
	if err := e.DB.Preload("Employee").Order("date desc").Find(&bonuses).Error; err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(bonuses))
	for i, b := range bonuses {
		rows = append(rows, []interface{}{
			i + 1, b.Employee.Name, b.Date.Format("2006-01-02"), b.Reason, b.Amount.StringFixed(2),
		})
	}

	return buildWorkbook("Bonuses",
		[]string{"No.", "Employee Name", "Date", "Reason", "Amount"},
		[]float64{5, 25, 12, 30, 15},
		rows)
}

func (e *ExportService) SalaryCalculations() (*excelize.File, error) {
	var calcs []models.SalaryCalculation
	if err := e.DB.Preload("Employee").Order("month desc").Find(&calcs).Error; err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(calcs))
	for i, calc := range calcs {
		paidAt := "--"
		if calc.PaidAt != nil {
			paidAt = calc.PaidAt.In(e.Loc).Format("2006-01-02 15:04")
		}
		method := "--"
		if calc.PaymentMethod != nil {
			method = *calc.PaymentMethod
		}
		rows = append(rows, []interface{}{
			i + 1, calc.Employee.Name, calc.Month.Format("January 2006"),
			calc.TotalHoursWorked.StringFixed(2), calc.TotalOvertimeHours.StringFixed(2),
			calc.TotalBonuses.StringFixed(2), calc.TotalDeductions.StringFixed(2),
			calc.GrossSalary.StringFixed(2), calc.NetSalary.StringFixed(2),
			calc.Status, method, paidAt,
		})
	}

	return buildWorkbook("Salary Calculations",
		[]string{"No.", "Employee Name", "Month", "Total Hours", "Overtime Hours", "Bonuses", "Deductions", "Gross Salary", "Net Salary", "Status", "Payment Method", "Paid At"},
		[]float64{5, 25, 15, 12, 14, 15, 15, 15, 15, 10, 15, 18},
		rows)
}
