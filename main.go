package main

import (
	"log"
	"time"

	"staffpay/config"
	"staffpay/handlers"
	"staffpay/jobs"
	"staffpay/middleware"
	"staffpay/models"
	"staffpay/services"
	"staffpay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDatabase() (*gorm.DB, error) {
	if config.AppConfig.DatabaseURL != "" {
		return gorm.Open(postgres.Open(config.AppConfig.DatabaseURL), &gorm.Config{TranslateError: true})
	}
	return gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{TranslateError: true})
}

func main() {
	config.LoadConfig()
	utils.InitLogger()
	defer utils.Logger.Sync()

	db, err := openDatabase()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Employee{},
		&models.SalaryStructure{},
		&models.Attendance{},
		&models.Deduction{},
		&models.Bonus{},
		&models.SalaryCalculation{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		log.Fatal("Invalid TIMEZONE:", err)
	}

	recorder := services.NewAttendanceRecorder(db, loc)
	salaries := services.NewSalaryService(db)
	exports := services.NewExportService(db, loc)
	handlers.InitHandlers(db, recorder, salaries, exports)

	scheduler := cron.New(cron.WithLocation(loc))
	if err := jobs.InitCronJobs(scheduler, config.AppConfig.SweepSchedule, recorder); err != nil {
		log.Fatal("Failed to initialize cron jobs:", err)
	}

	app := fiber.New()

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api/v1")
	api.Post("/auth/login", handlers.Login)

	attendance := api.Group("/attendance", middleware.RequireAuth)
	attendance.Post("/scan-in", handlers.ScanIn)
	attendance.Post("/scan-out", handlers.ScanOut)

	admin := api.Group("/admin", middleware.RequireAdmin)

	admin.Get("/dashboard", handlers.GetDashboard)

	admin.Get("/accounts", handlers.ListAccounts)
	admin.Delete("/accounts/:id", handlers.DeleteAccount)

	admin.Get("/employees", handlers.ListEmployees)
	admin.Post("/employees", handlers.CreateEmployee)
	admin.Get("/employees/export", handlers.ExportEmployees)
	admin.Get("/employees/:id", handlers.GetEmployee)
	admin.Put("/employees/:id", handlers.UpdateEmployee)
	admin.Delete("/employees/:id", handlers.DeleteEmployee)

	admin.Get("/salary-structures", handlers.ListSalaryStructures)
	admin.Post("/salary-structures", handlers.CreateSalaryStructure)
	admin.Get("/salary-structures/export", handlers.ExportSalaryStructures)
	admin.Put("/salary-structures/:id", handlers.UpdateSalaryStructure)
	admin.Delete("/salary-structures/:id", handlers.DeleteSalaryStructure)

	admin.Get("/deductions", handlers.ListDeductions)
	admin.Post("/deductions", handlers.CreateDeduction)
	admin.Get("/deductions/export", handlers.ExportDeductions)
	admin.Put("/deductions/:id", handlers.UpdateDeduction)
	admin.Delete("/deductions/:id", handlers.DeleteDeduction)

	admin.Get("/bonuses", handlers.ListBonuses)
	admin.Post("/bonuses", handlers.CreateBonus)
	admin.Get("/bonuses/export", handlers.ExportBonuses)
	admin.Put("/bonuses/:id", handlers.UpdateBonus)
	admin.Delete("/bonuses/:id", handlers.DeleteBonus)

	admin.Get("/attendance", handlers.ListAttendance)
	admin.Get("/attendance/export", handlers.ExportAttendance)
	admin.Put("/attendance/:id", handlers.UpdateAttendance)
	admin.Delete("/attendance/:id", handlers.DeleteAttendance)

	admin.Get("/salary-calculations", handlers.ListSalaryCalculations)
	admin.Post("/salary-calculations/generate", handlers.GenerateSalaries)
	admin.Get("/salary-calculations/export", handlers.ExportSalaryCalculations)
	admin.Patch("/salary-calculations/:id/status", handlers.UpdatePaymentStatus)
	admin.Delete("/salary-calculations/:id", handlers.DeleteSalaryCalculation)

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
