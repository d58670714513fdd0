package handlers

import (
	"strconv"

	"staffpay/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	DB       *gorm.DB
	Recorder *services.AttendanceRecorder
	Salaries *services.SalaryService
	Exports  *services.ExportService
)

func InitHandlers(db *gorm.DB, recorder *services.AttendanceRecorder, salaries *services.SalaryService, exports *services.ExportService) {
	DB = db
	Recorder = recorder
	Salaries = salaries
	Exports = exports
}

// paginate applies ?page= and ?limit= to a list query. Defaults to page 1 with
// 10 records, matching the admin pages.
func paginate(c *fiber.Ctx) func(db *gorm.DB) *gorm.DB {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
