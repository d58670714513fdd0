package services

import (
	"testing"
	"time"

	"staffpay/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMonth(t *testing.T, db *gorm.DB, employeeID uuid.UUID) {
	t.Helper()

	// Three days of attendance totalling 3 overtime hours.
	days := []struct {
		day      int
		hours    string
		overtime string
	}{
		{4, "8", "1.5"},
		{5, "8", "1.5"},
		{6, "7.5", "0"},
	}
	for _, d := range days {
		require.NoError(t, db.Create(&models.Attendance{
			ID:            uuid.New(),
			EmployeeID:    employeeID,
			Date:          time.Date(2024, 11, d.day, 0, 0, 0, 0, time.UTC),
			Shift:         models.ShiftMorning,
			HoursWorked:   decimal.RequireFromString(d.hours),
			OvertimeHours: decimal.RequireFromString(d.overtime),
			IsPresent:     true,
		}).Error)
	}

	require.NoError(t, db.Create(&models.Bonus{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC),
		Reason:     "Performance Bonus",
		Amount:     decimal.NewFromInt(200000),
	}).Error)
	require.NoError(t, db.Create(&models.Deduction{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC),
		Reason:     "Late Penalty",
		Amount:     decimal.NewFromInt(50000),
	}).Error)

	// Records outside the target month must not count.
	require.NoError(t, db.Create(&models.Bonus{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		Reason:     "Holiday Bonus",
		Amount:     decimal.NewFromInt(999999),
	}).Error)
}

func TestGenerateComputesTotals(t *testing.T) {
	db := newTestDB(t)
	service := NewSalaryService(db)
	employee := createEmployee(t, db, "Sample Employee One")
	createStructure(t, db, employee.ID, 5000000, 50000)
	seedMonth(t, db, employee.ID)

	result, err := service.Generate(&employee.ID, 2024, time.November)
	require.NoError(t, err)
	require.Len(t, result.Generated, 1)
	assert.Empty(t, result.Failed)

	entry := result.Generated[0]
	requireDecimalEqual(t, decimal.NewFromInt(5350000), entry.GrossSalary)
	requireDecimalEqual(t, decimal.NewFromInt(5300000), entry.NetSalary)

	var calc models.SalaryCalculation
	require.NoError(t, db.First(&calc, "id = ?", entry.CalculationID).Error)
	assert.Equal(t, models.StatusPending, calc.Status)
	requireDecimalEqual(t, decimal.RequireFromString("23.5"), calc.TotalHoursWorked)
	requireDecimalEqual(t, decimal.NewFromInt(3), calc.TotalOvertimeHours)
	requireDecimalEqual(t, decimal.NewFromInt(200000), calc.TotalBonuses)
	requireDecimalEqual(t, decimal.NewFromInt(50000), calc.TotalDeductions)
	requireDecimalEqual(t, decimal.NewFromInt(5000000), calc.BasicSalarySnapshot)
	requireDecimalEqual(t, decimal.NewFromInt(50000), calc.OvertimeRateSnapshot)
	assert.Nil(t, calc.PaymentMethod)
	assert.Nil(t, calc.PaidAt)
}

func TestGenerateEmptyMonthUsesZeroTotals(t *testing.T) {
	db := newTestDB(t)
	service := NewSalaryService(db)
	employee := createEmployee(t, db, "New Hire")
	createStructure(t, db, employee.ID, 4500000, 45000)

	result, err := service.Generate(&employee.ID, 2024, time.November)
	require.NoError(t, err)
	require.Len(t, result.Generated, 1)

	entry := result.Generated[0]
	requireDecimalEqual(t, decimal.NewFromInt(4500000), entry.GrossSalary)
	requireDecimalEqual(t, decimal.NewFromInt(4500000), entry.NetSalary)
}

func TestGenerateSkipsEmployeesWithoutStructure(t *testing.T) {
	db := newTestDB(t)
	service := NewSalaryService(db)
	withStructure := createEmployee(t, db, "Has Structure")
	createStructure(t, db, withStructure.ID, 5000000, 50000)
	withoutStructure := createEmployee(t, db, "No Structure")

	result, err := service.Generate(nil, 2024, time.November)
	require.NoError(t, err)
	require.Len(t, result.Generated, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, withoutStructure.ID, result.Failed[0].EmployeeID)
	assert.Equal(t, "no salary structure", result.Failed[0].Reason)

	var count int64
	db.Model(&models.SalaryCalculation{}).Where("employee_id = ?", withoutStructure.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestGenerateTwiceUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	service := NewSalaryService(db)
	employee := createEmployee(t, db, "Repeat Run")
	createStructure(t, db, employee.ID, 5000000, 50000)
	seedMonth(t, db, employee.ID)

	first, err := service.Generate(&employee.ID, 2024, time.November)
	require.NoError(t, err)
	require.Len(t, first.Generated, 1)

	// A bonus added after the first run must show up in the regenerated totals.
	require.NoError(t, db.Create(&models.Bonus{
		ID:         uuid.New(),
		EmployeeID: employee.ID,
		Date:       time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		Reason:     "Project Completion",
		Amount:     decimal.NewFromInt(100000),
	}).Error)

	second, err := service.Generate(&employee.ID, 2024, time.November)
	require.NoError(t, err)
	require.Len(t, second.Generated, 1)
	assert.Equal(t, first.Generated[0].CalculationID, second.Generated[0].CalculationID)

	var count int64
	db.Model(&models.SalaryCalculation{}).Where("employee_id = ?", employee.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var calc models.SalaryCalculation
	require.NoError(t, db.First(&calc, "id = ?", second.Generated[0].CalculationID).Error)
	requireDecimalEqual(t, decimal.NewFromInt(300000), calc.TotalBonuses)
	requireDecimalEqual(t, decimal.NewFromInt(5400000), calc.NetSalary)
}

func TestRegeneratePaidResetsPayment(t *testing.T) {
	db := newTestDB(t)
	service := NewSalaryService(db)
	employee := createEmployee(t, db, "Paid Already")
	createStructure(t, db, employee.ID, 5000000, 50000)

	first, err := service.Generate(&employee.ID, 2024, time.November)
	require.NoError(t, err)
	require.Len(t, first.Generated, 1)
	calcID := first.Generated[0].CalculationID

	method := "Bank Transfer"
	_, err = service.SetPaymentStatus(calcID, models.StatusPaid, &method, nil)
	require.NoError(t, err)

	second, err := service.Generate(&employee.ID, 2024, time.November)
	require.NoError(t, err)
	require.Len(t, second.Generated, 1)
	assert.NotEmpty(t, second.Generated[0].Warning)

	var calc models.SalaryCalculation
	require.NoError(t, db.First(&calc, "id = ?", calcID).Error)
	assert.Equal(t, models.StatusPending, calc.Status)
	assert.Nil(t, calc.PaymentMethod)
	assert.Nil(t, calc.PaidAt)
}

func TestGenerateUnknownEmployee(t *testing.T) {
	db := newTestDB(t)
	service := NewSalaryService(db)

	missing := uuid.New()
	_, err := service.Generate(&missing, 2024, time.November)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestSetPaymentStatusPaid(t *testing.T) {
	db := newTestDB(t)
	service := NewSalaryService(db)
	employee := createEmployee(t, db, "Getting Paid")
	createStructure(t, db, employee.ID, 5000000, 50000)

	result, err := service.Generate(&employee.ID, 2024, time.November)
	require.NoError(t, err)
	calcID := result.Generated[0].CalculationID

	method := "Cash"
	calc, err := service.SetPaymentStatus(calcID, models.StatusPaid, &method, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, calc.Status)
	require.NotNil(t, calc.PaymentMethod)
	assert.Equal(t, "Cash", *calc.PaymentMethod)
	require.NotNil(t, calc.PaidAt)

	// Leaving PAID clears the payment confirmation.
	calc, err = service.SetPaymentStatus(calcID, models.StatusPending, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, calc.Status)
	assert.Nil(t, calc.PaymentMethod)
	assert.Nil(t, calc.PaidAt)
}

func TestSetPaymentStatusValidation(t *testing.T) {
	db := newTestDB(t)
	service := NewSalaryService(db)
	employee := createEmployee(t, db, "Validation Case")
	createStructure(t, db, employee.ID, 5000000, 50000)

	result, err := service.Generate(&employee.ID, 2024, time.November)
	require.NoError(t, err)
	calcID := result.Generated[0].CalculationID

	_, err = service.SetPaymentStatus(calcID, "SETTLED", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = service.SetPaymentStatus(calcID, models.StatusPaid, nil, nil)
	assert.ErrorIs(t, err, ErrPaymentMethodNeeded)

	_, err = service.SetPaymentStatus(uuid.New(), models.StatusPaid, nil, nil)
	assert.ErrorIs(t, err, ErrCalculationNotFound)

	// FAILED is an administrator action for bounced payments.
	calc, err := service.SetPaymentStatus(calcID, models.StatusFailed, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, calc.Status)
}
