package handlers

import (
	"time"

	"staffpay/models"
	"staffpay/types"
	"staffpay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Deductions and bonuses share the same shape: one dated, reasoned amount per
// event, many per employee per month.

type AdjustmentRequest struct {
	EmployeeID uuid.UUID       `json:"employee_id" validate:"required"`
	Date       string          `json:"date" validate:"required"` // YYYY-MM-DD
	Reason     string          `json:"reason" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

func (r AdjustmentRequest) parse() (time.Time, string) {
	if r.Reason == "" {
		return time.Time{}, "Reason is required"
	}
	if r.Amount.IsNegative() {
		return time.Time{}, "Amount must not be negative"
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, "Invalid date format. Use YYYY-MM-DD"
	}
	return date, ""
}

func (r AdjustmentRequest) employeeExists() bool {
	var count int64
	DB.Model(&models.Employee{}).Where("id = ?", r.EmployeeID).Count(&count)
	return count > 0
}

func ListDeductions(c *fiber.Ctx) error {
	query := DB.Model(&models.Deduction{}).Preload("Employee").Order("date desc")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Joins("JOIN employees ON employees.id = deductions.employee_id").
			Where("employees.name LIKE ? OR deductions.reason LIKE ?", pattern, pattern)
	}

	var deductions []models.Deduction
	if err := query.Scopes(paginate(c)).Find(&deductions).Error; err != nil {
		utils.Logger.Error("Failed to fetch deductions", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    deductions,
	})
}

func CreateDeduction(c *fiber.Ctx) error {
	var req AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	date, msg := req.parse()
	if msg != "" {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: msg})
	}
	if !req.employeeExists() {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: "Employee not found"})
	}

	deduction := models.Deduction{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Reason:     req.Reason,
		Amount:     req.Amount,
	}
	if err := DB.Create(&deduction).Error; err != nil {
		utils.Logger.Error("Failed to create deduction", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Deduction created successfully",
		Data:    deduction,
	})
}

func UpdateDeduction(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	var deduction models.Deduction
	if err := DB.First(&deduction, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: types.ErrNotFound})
	}

	var req AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}
	date, msg := req.parse()
	if msg != "" {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: msg})
	}

	updates := map[string]interface{}{"date": date, "reason": req.Reason, "amount": req.Amount}
	if err := DB.Model(&deduction).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update deduction", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Deduction updated successfully",
		Data:    deduction,
	})
}

func DeleteDeduction(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	res := DB.Delete(&models.Deduction{}, "id = ?", id)
	if res.Error != nil {
		utils.Logger.Error("Failed to delete deduction", zap.Error(res.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: types.ErrNotFound})
	}

	return c.JSON(types.APIResponse{Success: true, Message: "Deduction deleted successfully"})
}

func ListBonuses(c *fiber.Ctx) error {
	query := DB.Model(&models.Bonus{}).Preload("Employee").Order("date desc")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Joins("JOIN employees ON employees.id = bonuses.employee_id").
			Where("employees.name LIKE ? OR bonuses.reason LIKE ?", pattern, pattern)
	}

	var bonuses []models.Bonus
	if err := query.Scopes(paginate(c)).Find(&bonuses).Error; err != nil {
		utils.Logger.Error("Failed to fetch bonuses", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    bonuses,
	})
}

func CreateBonus(c *fiber.Ctx) error {
	var req AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	date, msg := req.parse()
	if msg != "" {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: msg})
	}
	if !req.employeeExists() {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: "Employee not found"})
	}

	bonus := models.Bonus{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Reason:     req.Reason,
		Amount:     req.Amount,
	}
	if err := DB.Create(&bonus).Error; err != nil {
		utils.Logger.Error("Failed to create bonus", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Bonus created successfully",
		Data:    bonus,
	})
}

func UpdateBonus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	var bonus models.Bonus
	if err := DB.First(&bonus, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: types.ErrNotFound})
	}

	var req AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}
	date, msg := req.parse()
	if msg != "" {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: msg})
	}

	updates := map[string]interface{}{"date": date, "reason": req.Reason, "amount": req.Amount}
	if err := DB.Model(&bonus).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update bonus", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Bonus updated successfully",
		Data:    bonus,
	})
}

func DeleteBonus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	res := DB.Delete(&models.Bonus{}, "id = ?", id)
	if res.Error != nil {
		utils.Logger.Error("Failed to delete bonus", zap.Error(res.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: types.ErrNotFound})
	}

	return c.JSON(types.APIResponse{Success: true, Message: "Bonus deleted successfully"})
}
