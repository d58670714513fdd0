package handlers

import (
	"time"

	"staffpay/models"
	"staffpay/services"
	"staffpay/types"
	"staffpay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// currentEmployee resolves the employee profile linked to the authenticated
// account.
func currentEmployee(c *fiber.Ctx) (models.Employee, bool) {
	accountID, ok := c.Locals("account_id").(string)
	if !ok {
		return models.Employee{}, false
	}

	var employee models.Employee
	if err := DB.Where("account_id = ?", accountID).First(&employee).Error; err != nil {
		return models.Employee{}, false
	}
	return employee, true
}

func ScanIn(c *fiber.Ctx) error {
	employee, ok := currentEmployee(c)
	if !ok {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "No employee profile linked to this account",
		})
	}

	result, err := Recorder.ScanIn(employee.ID, time.Now())
	if err != nil {
		utils.Logger.Error("Scan-in failed", zap.String("employee_id", employee.ID.String()), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	message := "Scan in successful. Shift: " + result.Shift
	if result.Status == services.ScanAlreadyIn {
		message = "You have already scanned in today"
	} else if result.OvertimeEligible {
		message += ". You are scanning in after regular work hours; overtime will be logged"
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: message,
		Data:    result,
	})
}

func ScanOut(c *fiber.Ctx) error {
	employee, ok := currentEmployee(c)
	if !ok {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "No employee profile linked to this account",
		})
	}

	result, err := Recorder.ScanOut(employee.ID, time.Now())
	if err != nil {
		utils.Logger.Error("Scan-out failed", zap.String("employee_id", employee.ID.String()), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	switch result.Status {
	case services.ScanNoScanIn:
		return c.Status(409).JSON(types.APIResponse{
			Success: false,
			Error:   "You need to scan in first",
		})
	case services.ScanAlreadyOut:
		return c.JSON(types.APIResponse{
			Success: true,
			Message: "You have already scanned out today",
			Data:    result,
		})
	default:
		return c.JSON(types.APIResponse{
			Success: true,
			Message: "Scan out successful",
			Data:    result,
		})
	}
}

func ListAttendance(c *fiber.Ctx) error {
	query := DB.Model(&models.Attendance{}).Preload("Employee").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Order("attendances.date desc, employees.name")

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("employees.name LIKE ? OR attendances.shift LIKE ?", pattern, pattern)
	}
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid from date format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("attendances.date >= ?", parsed)
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid to date format. Use YYYY-MM-DD",
			})
		}
		query = query.Where("attendances.date <= ?", parsed)
	}

	var records []models.Attendance
	if err := query.Scopes(paginate(c)).Find(&records).Error; err != nil {
		utils.Logger.Error("Failed to fetch attendance", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    records,
	})
}

type UpdateAttendanceRequest struct {
	Shift         *string          `json:"shift"`
	HoursWorked   *decimal.Decimal `json:"hours_worked"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours"`
	IsPresent     *bool            `json:"is_present"`
}

// UpdateAttendance is the admin correction path for a day's record.
func UpdateAttendance(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	var attendance models.Attendance
	if err := DB.First(&attendance, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: types.ErrNotFound})
	}

	var req UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	updates := map[string]interface{}{}
	if req.Shift != nil {
		switch *req.Shift {
		case models.ShiftMorning, models.ShiftAfternoon, models.ShiftNight, models.ShiftAbsent:
			updates["shift"] = *req.Shift
		default:
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Shift must be Morning, Afternoon, Night or Absent",
			})
		}
	}
	if req.HoursWorked != nil {
		if req.HoursWorked.IsNegative() {
			return c.Status(400).JSON(types.APIResponse{Success: false, Error: "Hours must not be negative"})
		}
		updates["hours_worked"] = *req.HoursWorked
	}
	if req.OvertimeHours != nil {
		if req.OvertimeHours.IsNegative() {
			return c.Status(400).JSON(types.APIResponse{Success: false, Error: "Hours must not be negative"})
		}
		updates["overtime_hours"] = *req.OvertimeHours
	}
	if req.IsPresent != nil {
		updates["is_present"] = *req.IsPresent
	}

	if len(updates) > 0 {
		if err := DB.Model(&attendance).Updates(updates).Error; err != nil {
			utils.Logger.Error("Failed to update attendance", zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrDatabaseError,
			})
		}
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Attendance updated successfully",
		Data:    attendance,
	})
}

func DeleteAttendance(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	res := DB.Delete(&models.Attendance{}, "id = ?", id)
	if res.Error != nil {
		utils.Logger.Error("Failed to delete attendance", zap.Error(res.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: types.ErrNotFound})
	}

	return c.JSON(types.APIResponse{Success: true, Message: "Attendance deleted successfully"})
}
