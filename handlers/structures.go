package handlers

import (
	"errors"

	"staffpay/models"
	"staffpay/types"
	"staffpay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SalaryStructureRequest struct {
	EmployeeID      uuid.UUID       `json:"employee_id" validate:"required"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	OvertimeRate    decimal.Decimal `json:"overtime_rate"`
	BonusPercentage decimal.Decimal `json:"bonus_percentage"`
}

func (r SalaryStructureRequest) validateAmounts() error {
	if r.BasicSalary.IsNegative() || r.OvertimeRate.IsNegative() || r.BonusPercentage.IsNegative() {
		return errors.New("amounts must not be negative")
	}
	return nil
}

func ListSalaryStructures(c *fiber.Ctx) error {
	query := DB.Model(&models.SalaryStructure{}).Preload("Employee").Order("updated_at desc")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Joins("JOIN employees ON employees.id = salary_structures.employee_id").
			Where("employees.name LIKE ?", pattern)
	}

	var structures []models.SalaryStructure
	if err := query.Scopes(paginate(c)).Find(&structures).Error; err != nil {
		utils.Logger.Error("Failed to fetch salary structures", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    structures,
	})
}

func CreateSalaryStructure(c *fiber.Ctx) error {
	var req SalaryStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if err := req.validateAmounts(); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	var employee models.Employee
	if err := DB.First(&employee, "id = ?", req.EmployeeID).Error; err != nil {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}

	structure := models.SalaryStructure{
		ID:              uuid.New(),
		EmployeeID:      req.EmployeeID,
		BasicSalary:     req.BasicSalary,
		OvertimeRate:    req.OvertimeRate,
		BonusPercentage: req.BonusPercentage,
	}
	if err := DB.Create(&structure).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(409).JSON(types.APIResponse{
				Success: false,
				Error:   "Employee already has a salary structure",
			})
		}
		utils.Logger.Error("Failed to create salary structure", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Salary structure created successfully",
		Data:    structure,
	})
}

func UpdateSalaryStructure(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var structure models.SalaryStructure
	if err := DB.First(&structure, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrNotFound,
		})
	}

	var req SalaryStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if err := req.validateAmounts(); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{
		"basic_salary":     req.BasicSalary,
		"overtime_rate":    req.OvertimeRate,
		"bonus_percentage": req.BonusPercentage,
	}
	if err := DB.Model(&structure).Updates(updates).Error; err != nil {
		utils.Logger.Error("Failed to update salary structure", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Salary structure updated successfully",
		Data:    structure,
	})
}

func DeleteSalaryStructure(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	res := DB.Delete(&models.SalaryStructure{}, "id = ?", id)
	if res.Error != nil {
		utils.Logger.Error("Failed to delete salary structure", zap.Error(res.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrNotFound,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Salary structure deleted successfully",
	})
}
