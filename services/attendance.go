package services

import (
	"errors"
	"time"

	"staffpay/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fixed daily schedule. Shift bands are half-open: a 12:00 scan is Afternoon,
// a 20:00 scan is Night. Anything before 08:00 also falls into Night.
const (
	MorningStartHour   = 8
	AfternoonStartHour = 12
	NightStartHour     = 20
	WorkEndHour        = 16
)

// Scan result statuses reported back to the caller.
const (
	ScanCreated    = "created"
	ScanUpdated    = "updated"
	ScanAlreadyIn  = "alreadyScanned"
	ScanOK         = "ok"
	ScanNoScanIn   = "noScanIn"
	ScanAlreadyOut = "alreadyScannedOut"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type ScanInResult struct {
	Status           string `json:"status"`
	Shift            string `json:"shift"`
	OvertimeEligible bool   `json:"overtime_eligible"`
}

type ScanOutResult struct {
	Status        string          `json:"status"`
	HoursWorked   decimal.Decimal `json:"hours_worked"`
	OvertimeAdded decimal.Decimal `json:"overtime_added"`
}

// AttendanceRecorder turns scan events into attendance rows. All wall-clock
// decisions happen in the company timezone.
type AttendanceRecorder struct {
	DB  *gorm.DB
	Loc *time.Location
}

func NewAttendanceRecorder(db *gorm.DB, loc *time.Location) *AttendanceRecorder {
	return &AttendanceRecorder{DB: db, Loc: loc}
}

// ClassifyShift maps a scan-in time to its shift band.
func ClassifyShift(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= MorningStartHour && hour < AfternoonStartHour:
		return models.ShiftMorning
	case hour >= AfternoonStartHour && hour < NightStartHour:
		return models.ShiftAfternoon
	default:
		return models.ShiftNight
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r *AttendanceRecorder) workEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), WorkEndHour, 0, 0, 0, r.Loc)
}

// ScanIn records the start of an employee's day. A second scan-in on the same
// day leaves the stored time untouched and reports ScanAlreadyIn.
func (r *AttendanceRecorder) ScanIn(employeeID uuid.UUID, now time.Time) (ScanInResult, error) {
	now = now.In(r.Loc)
	today := dateOnly(now)
	shift := ClassifyShift(now)
	eligible := now.After(r.workEnd(now))

	var employee models.Employee
	if err := r.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScanInResult{}, ErrEmployeeNotFound
		}
		return ScanInResult{}, err
	}

	var attendance models.Attendance
	err := r.DB.Where("employee_id = ? AND date = ?", employeeID, today).First(&attendance).Error
	switch {
	case err == nil:
		if attendance.ScanInTime != nil {
			return ScanInResult{Status: ScanAlreadyIn, Shift: attendance.Shift}, nil
		}
		// Row pre-created by the absence sweep; fill it in.
		updates := map[string]interface{}{
			"scan_in_time": now,
			"shift":        shift,
			"is_present":   true,
		}
		if err := r.DB.Model(&attendance).Updates(updates).Error; err != nil {
			return ScanInResult{}, err
		}
		return ScanInResult{Status: ScanUpdated, Shift: shift, OvertimeEligible: eligible}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		attendance = models.Attendance{
			ID:            uuid.New(),
			EmployeeID:    employeeID,
			Date:          today,
			Shift:         shift,
			HoursWorked:   decimal.Zero,
			OvertimeHours: decimal.Zero,
			IsPresent:     true,
			ScanInTime:    &now,
		}
		if err := r.DB.Create(&attendance).Error; err != nil {
			return ScanInResult{}, err
		}
		return ScanInResult{Status: ScanCreated, Shift: shift, OvertimeEligible: eligible}, nil

	default:
		return ScanInResult{}, err
	}
}

// ScanOut closes the day's record. Hours worked and overtime are derived from
// the stored timestamps rather than accumulated, so a duplicate submission
// converges on the same values instead of compounding. The update is a
// compare-and-swap on scan_out_time so two racing calls cannot both apply.
func (r *AttendanceRecorder) ScanOut(employeeID uuid.UUID, now time.Time) (ScanOutResult, error) {
	now = now.In(r.Loc)
	today := dateOnly(now)

	var attendance models.Attendance
	err := r.DB.Where("employee_id = ? AND date = ?", employeeID, today).First(&attendance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ScanOutResult{Status: ScanNoScanIn}, nil
	}
	if err != nil {
		return ScanOutResult{}, err
	}
	if attendance.ScanInTime == nil {
		return ScanOutResult{Status: ScanNoScanIn}, nil
	}
	if attendance.ScanOutTime != nil {
		return ScanOutResult{Status: ScanAlreadyOut}, nil
	}

	hours := decimal.NewFromFloat(now.Sub(attendance.ScanInTime.In(r.Loc)).Hours()).Round(2)
	overtime := decimal.Zero
	if workEnd := r.workEnd(now); now.After(workEnd) {
		overtime = decimal.NewFromFloat(now.Sub(workEnd).Hours()).Round(2)
	}

	res := r.DB.Model(&models.Attendance{}).
		Where("id = ? AND scan_out_time IS NULL", attendance.ID).
		Updates(map[string]interface{}{
			"scan_out_time":  now,
			"hours_worked":   hours,
			"overtime_hours": overtime,
		})
	if res.Error != nil {
		return ScanOutResult{}, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent scan-out.
		return ScanOutResult{Status: ScanAlreadyOut}, nil
	}

	return ScanOutResult{Status: ScanOK, HoursWorked: hours, OvertimeAdded: overtime}, nil
}

// MarkAbsentees ensures every active employee has an attendance row for the
// given day; employees without a scan-in are recorded as absent. Safe to rerun:
// rows that already have a scan-in are never touched.
func (r *AttendanceRecorder) MarkAbsentees(now time.Time) (int, error) {
	today := dateOnly(now.In(r.Loc))

	var employees []models.Employee
	if err := r.DB.Where("status = ?", models.EmployeeActive).Find(&employees).Error; err != nil {
		return 0, err
	}

	marked := 0
	for _, employee := range employees {
		var attendance models.Attendance
		err := r.DB.Where("employee_id = ? AND date = ?", employee.ID, today).First(&attendance).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			attendance = models.Attendance{
				ID:            uuid.New(),
				EmployeeID:    employee.ID,
				Date:          today,
				Shift:         models.ShiftAbsent,
				HoursWorked:   decimal.Zero,
				OvertimeHours: decimal.Zero,
				IsPresent:     false,
			}
			if err := r.DB.Create(&attendance).Error; err != nil {
				return marked, err
			}
			marked++
		case err != nil:
			return marked, err
		default:
			if attendance.ScanInTime == nil && attendance.IsPresent {
				if err := r.DB.Model(&attendance).Update("is_present", false).Error; err != nil {
					return marked, err
				}
				marked++
			}
		}
	}
	return marked, nil
}
