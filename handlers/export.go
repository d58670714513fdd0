package handlers

import (
	"staffpay/types"
	"staffpay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendWorkbook(c *fiber.Ctx, filename string, f *excelize.File, err error) error {
	if err != nil {
		utils.Logger.Error("Failed to build export", zap.String("file", filename), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		utils.Logger.Error("Failed to serialize export", zap.String("file", filename), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func ExportEmployees(c *fiber.Ctx) error {
	f, err := Exports.Employees()
	return sendWorkbook(c, "employees_report.xlsx", f, err)
}

func ExportAttendance(c *fiber.Ctx) error {
	f, err := Exports.Attendance()
	return sendWorkbook(c, "attendance_report.xlsx", f, err)
}

func ExportSalaryStructures(c *fiber.Ctx) error {
	f, err := Exports.SalaryStructures()
	return sendWorkbook(c, "salary_structures_report.xlsx", f, err)
}

func ExportDeductions(c *fiber.Ctx) error {
	f, err := Exports.Deductions()
	return sendWorkbook(c, "deductions_report.xlsx", f, err)
}

func ExportBonuses(c *fiber.Ctx) error {
	f, err := Exports.Bonuses()
	return sendWorkbook(c, "bonuses_report.xlsx", f, err)
}

func ExportSalaryCalculations(c *fiber.Ctx) error {
	f, err := Exports.SalaryCalculations()
	return sendWorkbook(c, "salary_calculations_report.xlsx", f, err)
}
