package handlers

import (
	"staffpay/models"
	"staffpay/types"
	"staffpay/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ListAccounts(c *fiber.Ctx) error {
	query := DB.Model(&models.Account{}).Order("created_at desc")
	if search := c.Query("search"); search != "" {
		query = query.Where("email LIKE ?", "%"+search+"%")
	}

	var accounts []models.Account
	if err := query.Scopes(paginate(c)).Find(&accounts).Error; err != nil {
		utils.Logger.Error("Failed to fetch accounts", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    accounts,
	})
}

func DeleteAccount(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	res := DB.Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		utils.Logger.Error("Failed to delete account", zap.Error(res.Error))
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
		Message: "Account deleted successfully",
	})
}
