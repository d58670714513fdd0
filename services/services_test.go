package services

import (
	"path/filepath"
	"testing"
	"time"

	"staffpay/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Employee{},
		&models.SalaryStructure{},
		&models.Attendance{},
		&models.Deduction{},
		&models.Bonus{},
		&models.SalaryCalculation{},
	))
	return db
}

func createEmployee(t *testing.T, db *gorm.DB, name string) models.Employee {
	t.Helper()

	employee := models.Employee{
		ID:             uuid.New(),
		Name:           name,
		Position:       "Developer",
		Department:     "IT",
		Status:         models.EmployeeActive,
		EmploymentDate: time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&employee).Error)
	return employee
}

func createStructure(t *testing.T, db *gorm.DB, employeeID uuid.UUID, basic, rate int64) models.SalaryStructure {
	t.Helper()

	structure := models.SalaryStructure{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		BasicSalary:  decimal.NewFromInt(basic),
		OvertimeRate: decimal.NewFromInt(rate),
	}
	require.NoError(t, db.Create(&structure).Error)
	return structure
}

func requireDecimalEqual(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, want.Equal(got), "expected %s, got %s", want, got)
}
