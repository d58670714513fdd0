package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shift classifications for a day's attendance.
const (
	ShiftMorning   = "Morning"
	ShiftAfternoon = "Afternoon"
	ShiftNight     = "Night"
	ShiftAbsent    = "Absent"
)

// Salary calculation payment states.
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusFailed  = "FAILED"
)

// Employee statuses.
const (
	EmployeeActive   = "Active"
	EmployeeInactive = "Inactive"
)

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Position       string     `json:"position"`
	Department     string     `json:"department"`
	ContactNumber  string     `json:"contact_number"`
	BankAccountNum string     `json:"bank_account_num"`
	Status         string     `gorm:"not null;default:'Active'" json:"status"` // Active, Inactive
	EmploymentDate time.Time  `gorm:"type:date" json:"employment_date"`
	AccountID      *uuid.UUID `gorm:"type:uuid;unique" json:"account_id,omitempty"`
	Account        *Account   `gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"account,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;unique" json:"employee_id"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"employee,omitempty"`
	// BonusPercentage is stored and editable but not consulted by salary
	// generation; bonuses are flat per-event amounts.
	BasicSalary     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"basic_salary"`
	OvertimeRate    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"overtime_rate"`
	BonusPercentage decimal.Decimal `gorm:"type:decimal(5,2)" json:"bonus_percentage"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

type Attendance struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Employee      Employee        `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"employee,omitempty"`
	Date          time.Time       `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	Shift         string          `gorm:"not null" json:"shift"` // Morning, Afternoon, Night, Absent
	HoursWorked   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"hours_worked"`
	OvertimeHours decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"overtime_hours"`
	IsPresent     bool            `gorm:"not null;default:true" json:"is_present"`
	ScanInTime    *time.Time      `json:"scan_in_time,omitempty"`
	ScanOutTime   *time.Time      `json:"scan_out_time,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

type Deduction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null" json:"employee_id"`
	Employee   Employee        `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"employee,omitempty"`
	Date       time.Time       `gorm:"type:date;not null" json:"date"`
	Reason     string          `gorm:"not null" json:"reason"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

type Bonus struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null" json:"employee_id"`
	Employee   Employee        `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"employee,omitempty"`
	Date       time.Time       `gorm:"type:date;not null" json:"date"`
	Reason     string          `gorm:"not null" json:"reason"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

// SalaryCalculation is one row per employee per month. BasicSalarySnapshot and
// OvertimeRateSnapshot freeze the structure values in effect at generation time;
// later structure edits do not change the row until it is regenerated.
type SalaryCalculation struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_salary_calc_employee_month" json:"employee_id"`
	Employee             Employee        `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"employee,omitempty"`
	Month                time.Time       `gorm:"type:date;not null;uniqueIndex:idx_salary_calc_employee_month" json:"month"` // first day of the month
	BasicSalarySnapshot  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"basic_salary_snapshot"`
	OvertimeRateSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"overtime_rate_snapshot"`
	TotalHoursWorked     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_hours_worked"`
	TotalOvertimeHours   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_overtime_hours"`
	TotalDeductions      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_deductions"`
	TotalBonuses         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_bonuses"`
	GrossSalary          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"gross_salary"`
	NetSalary            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"net_salary"`
	Status               string          `gorm:"not null;default:'PENDING'" json:"status"` // PENDING, PAID, FAILED
	PaymentMethod        *string         `json:"payment_method,omitempty"`
	PaidAt               *time.Time      `json:"paid_at,omitempty"`
	GeneratedAt          time.Time       `gorm:"not null" json:"generated_at"`
	Notes                string          `json:"notes"`
	CreatedAt            time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null" json:"updated_at"`
}
