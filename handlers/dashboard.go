package handlers

import (
	"time"

	"staffpay/models"
	"staffpay/types"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalEmployees  int64           `json:"total_employees"`
	ActiveEmployees int64           `json:"active_employees"`
	PresentToday    int64           `json:"present_today"`
	AbsentToday     int64           `json:"absent_today"`
	PendingPayroll  int64           `json:"pending_payroll"`
	PaidPayroll     int64           `json:"paid_payroll"`
	PendingNetTotal decimal.Decimal `json:"pending_net_total"`
}

func GetDashboard(c *fiber.Ctx) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var stats DashboardStats

	DB.Model(&models.Employee{}).Count(&stats.TotalEmployees)
	DB.Model(&models.Employee{}).Where("status = ?", models.EmployeeActive).Count(&stats.ActiveEmployees)
	DB.Model(&models.Attendance{}).Where("date = ? AND is_present = ?", today, true).Count(&stats.PresentToday)
	DB.Model(&models.Attendance{}).Where("date = ? AND is_present = ?", today, false).Count(&stats.AbsentToday)
	DB.Model(&models.SalaryCalculation{}).Where("month = ? AND status = ?", monthStart, models.StatusPending).Count(&stats.PendingPayroll)
	DB.Model(&models.SalaryCalculation{}).Where("month = ? AND status = ?", monthStart, models.StatusPaid).Count(&stats.PaidPayroll)

	var pending []models.SalaryCalculation
	DB.Where("month = ? AND status = ?", monthStart, models.StatusPending).Find(&pending)
	total := decimal.Zero
	for _, calc := range pending {
		total = total.Add(calc.NetSalary)
	}
	stats.PendingNetTotal = total

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    stats,
	})
}
