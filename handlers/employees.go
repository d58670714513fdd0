package handlers

import (
	"time"

	"staffpay/models"
	"staffpay/types"
	"staffpay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateEmployeeRequest struct {
	Name           string `json:"name" validate:"required"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	ContactNumber  string `json:"contact_number"`
	BankAccountNum string `json:"bank_account_num"`
	Status         string `json:"status"`
	EmploymentDate string `json:"employment_date" validate:"required"` // YYYY-MM-DD
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
}

type UpdateEmployeeRequest struct {
	Name           *string `json:"name"`
	Position       *string `json:"position"`
	Department     *string `json:"department"`
	ContactNumber  *string `json:"contact_number"`
	BankAccountNum *string `json:"bank_account_num"`
	Status         *string `json:"status"`
	EmploymentDate *string `json:"employment_date"` // YYYY-MM-DD
}

func ListEmployees(c *fiber.Ctx) error {
	query := DB.Model(&models.Employee{}).Preload("Account").Order("updated_at desc")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR contact_number LIKE ? OR department LIKE ?", pattern, pattern, pattern)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var employees []models.Employee
	if err := query.Scopes(paginate(c)).Find(&employees).Error; err != nil {
		utils.Logger.Error("Failed to fetch employees", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

func GetEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var employee models.Employee
	if err := DB.Preload("Account").First(&employee, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrNotFound,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employee,
	})
}

// CreateEmployee provisions the employee record together with its login
// account, the same way the admin "new employee" form does.
func CreateEmployee(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	employmentDate, err := time.Parse("2006-01-02", req.EmploymentDate)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid employment date format. Use YYYY-MM-DD",
		})
	}

	status := req.Status
	if status == "" {
		status = models.EmployeeActive
	}
	if status != models.EmployeeActive && status != models.EmployeeInactive {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Status must be Active or Inactive",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Logger.Error("Failed to hash password", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	account := models.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	employee := models.Employee{
		ID:             uuid.New(),
		Name:           req.Name,
		Position:       req.Position,
		Department:     req.Department,
		ContactNumber:  req.ContactNumber,
		BankAccountNum: req.BankAccountNum,
		Status:         status,
		EmploymentDate: employmentDate,
		AccountID:      &account.ID,
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		return tx.Create(&employee).Error
	})
	if err != nil {
		utils.Logger.Error("Failed to create employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee created successfully",
		Data:    employee,
	})
}

func UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	var employee models.Employee
	if err := DB.First(&employee, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrNotFound,
		})
	}

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.ContactNumber != nil {
		updates["contact_number"] = *req.ContactNumber
	}
	if req.BankAccountNum != nil {
		updates["bank_account_num"] = *req.BankAccountNum
	}
	if req.Status != nil {
		if *req.Status != models.EmployeeActive && *req.Status != models.EmployeeInactive {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Status must be Active or Inactive",
			})
		}
		updates["status"] = *req.Status
	}
	if req.EmploymentDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EmploymentDate)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid employment date format. Use YYYY-MM-DD",
			})
		}
		updates["employment_date"] = parsed
	}

	if len(updates) > 0 {
		if err := DB.Model(&employee).Updates(updates).Error; err != nil {
			utils.Logger.Error("Failed to update employee", zap.Error(err))
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrDatabaseError,
			})
		}
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    employee,
	})
}

func DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	res := DB.Delete(&models.Employee{}, "id = ?", id)
	if res.Error != nil {
		utils.Logger.Error("Failed to delete employee", zap.Error(res.Error))
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
		Message: "Employee deleted successfully",
	})
}
