package services

import (
	"errors"
	"time"

	"staffpay/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNoSalaryStructure   = errors.New("no salary structure")
	ErrCalculationNotFound = errors.New("salary calculation not found")
	ErrInvalidStatus       = errors.New("invalid payment status")
	ErrPaymentMethodNeeded = errors.New("payment method is required when marking as paid")
)

type GeneratedEntry struct {
	CalculationID uuid.UUID       `json:"calculation_id"`
	EmployeeID    uuid.UUID       `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	NetSalary     decimal.Decimal `json:"net_salary"`
	Warning       string          `json:"warning,omitempty"`
}

type FailedEntry struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Reason       string    `json:"reason"`
}

type GenerateResult struct {
	Generated []GeneratedEntry `json:"generated"`
	Failed    []FailedEntry    `json:"failed"`
}

// SalaryService aggregates a month's attendance, deductions and bonuses into
// one calculation row per employee, and drives the payment-status workflow.
type SalaryService struct {
	DB *gorm.DB
}

func NewSalaryService(db *gorm.DB) *SalaryService {
	return &SalaryService{DB: db}
}

// Generate upserts one SalaryCalculation per selected employee for the target
// month. Employees without a salary structure are skipped and reported; one
// failure never aborts the batch. Regenerating a PAID row resets it to PENDING
// and clears the payment confirmation, which is surfaced as a warning.
func (s *SalaryService) Generate(employeeID *uuid.UUID, year int, month time.Month) (GenerateResult, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	query := s.DB.Model(&models.Employee{})
	if employeeID != nil {
		query = query.Where("id = ?", *employeeID)
	}
	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		return GenerateResult{}, err
	}
	if employeeID != nil && len(employees) == 0 {
		return GenerateResult{}, ErrEmployeeNotFound
	}

	result := GenerateResult{Generated: []GeneratedEntry{}, Failed: []FailedEntry{}}
	for _, employee := range employees {
		entry, err := s.generateOne(employee, monthStart, nextMonth)
		if err != nil {
			result.Failed = append(result.Failed, FailedEntry{
				EmployeeID:   employee.ID,
				EmployeeName: employee.Name,
				Reason:       err.Error(),
			})
			continue
		}
		result.Generated = append(result.Generated, entry)
	}
	return result, nil
}

func (s *SalaryService) generateOne(employee models.Employee, monthStart, nextMonth time.Time) (GeneratedEntry, error) {
	var structure models.SalaryStructure
	err := s.DB.Where("employee_id = ?", employee.ID).First(&structure).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return GeneratedEntry{}, ErrNoSalaryStructure
	}
	if err != nil {
		return GeneratedEntry{}, err
	}

	var attendances []models.Attendance
	if err := s.DB.Where("employee_id = ? AND date >= ? AND date < ?", employee.ID, monthStart, nextMonth).
		Find(&attendances).Error; err != nil {
		return GeneratedEntry{}, err
	}
	totalHours := decimal.Zero
	totalOvertime := decimal.Zero
	for _, a := range attendances {
		totalHours = totalHours.Add(a.HoursWorked)
		totalOvertime = totalOvertime.Add(a.OvertimeHours)
	}

	totalDeductions, err := s.sumAmounts(&models.Deduction{}, employee.ID, monthStart, nextMonth)
	if err != nil {
		return GeneratedEntry{}, err
	}
	totalBonuses, err := s.sumAmounts(&models.Bonus{}, employee.ID, monthStart, nextMonth)
	if err != nil {
		return GeneratedEntry{}, err
	}

	// The bonus percentage on the structure is intentionally not part of the
	// formula; only flat bonus events count.
	gross := structure.BasicSalary.
		Add(totalOvertime.Mul(structure.OvertimeRate)).
		Add(totalBonuses).
		Round(2)
	net := gross.Sub(totalDeductions).Round(2)

	entry := GeneratedEntry{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		GrossSalary:  gross,
		NetSalary:    net,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.SalaryCalculation
		err := tx.Where("employee_id = ? AND month = ?", employee.ID, monthStart).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			calc := models.SalaryCalculation{
				ID:                   uuid.New(),
				EmployeeID:           employee.ID,
				Month:                monthStart,
				BasicSalarySnapshot:  structure.BasicSalary,
				OvertimeRateSnapshot: structure.OvertimeRate,
				TotalHoursWorked:     totalHours,
				TotalOvertimeHours:   totalOvertime,
				TotalDeductions:      totalDeductions,
				TotalBonuses:         totalBonuses,
				GrossSalary:          gross,
				NetSalary:            net,
				Status:               models.StatusPending,
				GeneratedAt:          time.Now(),
			}
			if err := tx.Create(&calc).Error; err != nil {
				return err
			}
			entry.CalculationID = calc.ID
			return nil

		case err != nil:
			return err

		default:
			if existing.Status == models.StatusPaid {
				entry.Warning = "previously paid; payment confirmation cleared and status reset to PENDING"
			}
			updates := map[string]interface{}{
				"basic_salary_snapshot":  structure.BasicSalary,
				"overtime_rate_snapshot": structure.OvertimeRate,
				"total_hours_worked":     totalHours,
				"total_overtime_hours":   totalOvertime,
				"total_deductions":       totalDeductions,
				"total_bonuses":          totalBonuses,
				"gross_salary":           gross,
				"net_salary":             net,
				"status":                 models.StatusPending,
				"payment_method":         nil,
				"paid_at":                nil,
				"generated_at":           time.Now(),
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
			entry.CalculationID = existing.ID
			return nil
		}
	})
	if err != nil {
		return GeneratedEntry{}, err
	}
	return entry, nil
}

func (s *SalaryService) sumAmounts(model interface{}, employeeID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	type row struct{ Amount decimal.Decimal }
	var rows []row
	if err := s.DB.Model(model).
		Select("amount").
		Where("employee_id = ? AND date >= ? AND date < ?", employeeID, from, to).
		Scan(&rows).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total, nil
}

// SetPaymentStatus moves a calculation between PENDING, PAID and FAILED.
// Marking PAID requires a payment method and fills paid_at when absent;
// leaving PAID clears both. FAILED is reserved for administrators flagging a
// bounced payment; the aggregator never assigns it.
func (s *SalaryService) SetPaymentStatus(id uuid.UUID, status string, paymentMethod *string, paidAt *time.Time) (models.SalaryCalculation, error) {
	if status != models.StatusPending && status != models.StatusPaid && status != models.StatusFailed {
		return models.SalaryCalculation{}, ErrInvalidStatus
	}

	var calc models.SalaryCalculation
	if err := s.DB.First(&calc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SalaryCalculation{}, ErrCalculationNotFound
		}
		return models.SalaryCalculation{}, err
	}

	updates := map[string]interface{}{"status": status}
	if status == models.StatusPaid {
		if paymentMethod == nil || *paymentMethod == "" {
			return models.SalaryCalculation{}, ErrPaymentMethodNeeded
		}
		updates["payment_method"] = *paymentMethod
		if paidAt != nil {
			updates["paid_at"] = *paidAt
		} else {
			updates["paid_at"] = time.Now()
		}
	} else {
		updates["payment_method"] = nil
		updates["paid_at"] = nil
	}

	if err := s.DB.Model(&calc).Updates(updates).Error; err != nil {
		return models.SalaryCalculation{}, err
	}
	if err := s.DB.First(&calc, "id = ?", id).Error; err != nil {
		return models.SalaryCalculation{}, err
	}
	return calc, nil
}
