package handlers

import (
	"errors"
	"time"

	"staffpay/models"
	"staffpay/services"
	"staffpay/types"
	"staffpay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenerateSalaryRequest struct {
	EmployeeID *uuid.UUID `json:"employee_id"` // nil generates for all employees
	Year       int        `json:"year" validate:"required"`
	Month      int        `json:"month" validate:"required,min=1,max=12"`
}

type PaymentStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=PENDING PAID FAILED"`
	PaymentMethod *string `json:"payment_method"`
	PaidAt        *string `json:"paid_at"` // RFC 3339
}

func ListSalaryCalculations(c *fiber.Ctx) error {
	query := DB.Model(&models.SalaryCalculation{}).Preload("Employee").
		Joins("JOIN employees ON employees.id = salary_calculations.employee_id").
		Order("salary_calculations.month desc, employees.name")

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("employees.name LIKE ?", pattern)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("salary_calculations.status = ?", status)
	}

	var calcs []models.SalaryCalculation
	if err := query.Scopes(paginate(c)).Find(&calcs).Error; err != nil {
		utils.Logger.Error("Failed to fetch salary calculations", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    calcs,
	})
}

func GenerateSalaries(c *fiber.Ctx) error {
	var req GenerateSalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.Year < 2000 || req.Month < 1 || req.Month > 12 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Year and month (1-12) are required",
		})
	}

	result, err := Salaries.Generate(req.EmployeeID, req.Year, time.Month(req.Month))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Employee not found",
			})
		}
		utils.Logger.Error("Salary generation failed", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	utils.Logger.Info("Salary generation completed",
		zap.Int("generated", len(result.Generated)),
		zap.Int("failed", len(result.Failed)))

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    result,
	})
}

func UpdatePaymentStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	var req PaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	var paidAt *time.Time
	if req.PaidAt != nil && *req.PaidAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid paid_at; use RFC 3339 format",
			})
		}
		paidAt = &parsed
	}

	calc, err := Salaries.SetPaymentStatus(id, req.Status, req.PaymentMethod, paidAt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCalculationNotFound):
			return c.Status(404).JSON(types.APIResponse{Success: false, Error: types.ErrNotFound})
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrPaymentMethodNeeded):
			return c.Status(400).JSON(types.APIResponse{Success: false, Error: err.Error()})
		default:
			utils.Logger.Error("Failed to update payment status", zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrDatabaseError,
			})
		}
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Payment status updated",
		Data:    calc,
	})
}

func DeleteSalaryCalculation(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{Success: false, Error: types.ErrInvalidInput})
	}

	res := DB.Delete(&models.SalaryCalculation{}, "id = ?", id)
	if res.Error != nil {
		utils.Logger.Error("Failed to delete salary calculation", zap.Error(res.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{Success: false, Error: types.ErrNotFound})
	}

	return c.JSON(types.APIResponse{Success: true, Message: "Salary calculation deleted successfully"})
}
