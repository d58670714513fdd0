package services

import (
	"testing"
	"time"

	"staffpay/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 11, 18, hour, minute, 0, 0, time.UTC)
}

func TestClassifyShift(t *testing.T) {
	cases := []struct {
		time  time.Time
		shift string
	}{
		{at(8, 0), models.ShiftMorning},
		{at(9, 15), models.ShiftMorning},
		{at(11, 59), models.ShiftMorning},
		{at(12, 0), models.ShiftAfternoon},
		{at(15, 30), models.ShiftAfternoon},
		{at(19, 59), models.ShiftAfternoon},
		{at(20, 0), models.ShiftNight},
		{at(21, 0), models.ShiftNight},
		{at(23, 30), models.ShiftNight},
		{at(7, 59), models.ShiftNight},
		{at(2, 0), models.ShiftNight},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.shift, ClassifyShift(tc.time), "scan at %s", tc.time.Format("15:04"))
	}
}

func TestScanInCreatesRecord(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)
	employee := createEmployee(t, db, "Morning Worker")

	result, err := recorder.ScanIn(employee.ID, at(9, 15))
	require.NoError(t, err)
	assert.Equal(t, ScanCreated, result.Status)
	assert.Equal(t, models.ShiftMorning, result.Shift)
	assert.False(t, result.OvertimeEligible)

	var attendance models.Attendance
	require.NoError(t, db.First(&attendance, "employee_id = ?", employee.ID).Error)
	assert.True(t, attendance.IsPresent)
	require.NotNil(t, attendance.ScanInTime)
	assert.Nil(t, attendance.ScanOutTime)
}

func TestScanInAfterWorkEndFlagsOvertime(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)
	employee := createEmployee(t, db, "Night Worker")

	result, err := recorder.ScanIn(employee.ID, at(21, 0))
	require.NoError(t, err)
	assert.Equal(t, ScanCreated, result.Status)
	assert.Equal(t, models.ShiftNight, result.Shift)
	assert.True(t, result.OvertimeEligible)

	// Flag only; stored overtime stays zero until scan-out.
	var attendance models.Attendance
	require.NoError(t, db.First(&attendance, "employee_id = ?", employee.ID).Error)
	requireDecimalEqual(t, decimal.Zero, attendance.OvertimeHours)
}

func TestScanInTwiceKeepsFirstTime(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)
	employee := createEmployee(t, db, "Eager Worker")

	first, err := recorder.ScanIn(employee.ID, at(8, 30))
	require.NoError(t, err)
	require.Equal(t, ScanCreated, first.Status)

	var before models.Attendance
	require.NoError(t, db.First(&before, "employee_id = ?", employee.ID).Error)

	second, err := recorder.ScanIn(employee.ID, at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, ScanAlreadyIn, second.Status)

	var after models.Attendance
	require.NoError(t, db.First(&after, "employee_id = ?", employee.ID).Error)
	require.NotNil(t, after.ScanInTime)
	assert.True(t, before.ScanInTime.Equal(*after.ScanInTime))

	var count int64
	db.Model(&models.Attendance{}).Where("employee_id = ?", employee.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestScanInFillsAbsentRow(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)
	employee := createEmployee(t, db, "Late Riser")

	_, err := recorder.MarkAbsentees(at(0, 5))
	require.NoError(t, err)

	result, err := recorder.ScanIn(employee.ID, at(13, 0))
	require.NoError(t, err)
	assert.Equal(t, ScanUpdated, result.Status)
	assert.Equal(t, models.ShiftAfternoon, result.Shift)

	var attendance models.Attendance
	require.NoError(t, db.First(&attendance, "employee_id = ?", employee.ID).Error)
	assert.True(t, attendance.IsPresent)
	assert.Equal(t, models.ShiftAfternoon, attendance.Shift)
}

func TestScanOutWithoutScanIn(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)
	employee := createEmployee(t, db, "Confused Worker")

	result, err := recorder.ScanOut(employee.ID, at(17, 0))
	require.NoError(t, err)
	assert.Equal(t, ScanNoScanIn, result.Status)

	var count int64
	db.Model(&models.Attendance{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestScanOutComputesHoursAndOvertime(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)
	employee := createEmployee(t, db, "Overtime Worker")

	_, err := recorder.ScanIn(employee.ID, at(9, 0))
	require.NoError(t, err)

	result, err := recorder.ScanOut(employee.ID, at(18, 30))
	require.NoError(t, err)
	assert.Equal(t, ScanOK, result.Status)
	requireDecimalEqual(t, decimal.RequireFromString("9.5"), result.HoursWorked)
	requireDecimalEqual(t, decimal.RequireFromString("2.5"), result.OvertimeAdded)

	var attendance models.Attendance
	require.NoError(t, db.First(&attendance, "employee_id = ?", employee.ID).Error)
	requireDecimalEqual(t, decimal.RequireFromString("9.5"), attendance.HoursWorked)
	requireDecimalEqual(t, decimal.RequireFromString("2.5"), attendance.OvertimeHours)
}

func TestScanOutBeforeWorkEndHasNoOvertime(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)
	employee := createEmployee(t, db, "On Time Worker")

	_, err := recorder.ScanIn(employee.ID, at(8, 0))
	require.NoError(t, err)

	result, err := recorder.ScanOut(employee.ID, at(15, 0))
	require.NoError(t, err)
	assert.Equal(t, ScanOK, result.Status)
	requireDecimalEqual(t, decimal.NewFromInt(7), result.HoursWorked)
	requireDecimalEqual(t, decimal.Zero, result.OvertimeAdded)
}

func TestScanOutTwiceDoesNotCompound(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)
	employee := createEmployee(t, db, "Double Scanner")

	_, err := recorder.ScanIn(employee.ID, at(9, 0))
	require.NoError(t, err)

	first, err := recorder.ScanOut(employee.ID, at(18, 30))
	require.NoError(t, err)
	require.Equal(t, ScanOK, first.Status)

	second, err := recorder.ScanOut(employee.ID, at(19, 0))
	require.NoError(t, err)
	assert.Equal(t, ScanAlreadyOut, second.Status)

	// Overtime must not accumulate across repeated submissions.
	var attendance models.Attendance
	require.NoError(t, db.First(&attendance, "employee_id = ?", employee.ID).Error)
	requireDecimalEqual(t, decimal.RequireFromString("2.5"), attendance.OvertimeHours)
	requireDecimalEqual(t, decimal.RequireFromString("9.5"), attendance.HoursWorked)
}

func TestMarkAbsentees(t *testing.T) {
	db := newTestDB(t)
	recorder := NewAttendanceRecorder(db, time.UTC)

	present := createEmployee(t, db, "Present Worker")
	absent := createEmployee(t, db, "Absent Worker")
	inactive := createEmployee(t, db, "Former Worker")
	require.NoError(t, db.Model(&models.Employee{}).Where("id = ?", inactive.ID).
		Update("status", models.EmployeeInactive).Error)

	_, err := recorder.ScanIn(present.ID, at(8, 15))
	require.NoError(t, err)

	marked, err := recorder.MarkAbsentees(at(23, 55))
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	var record models.Attendance
	require.NoError(t, db.First(&record, "employee_id = ?", absent.ID).Error)
	assert.Equal(t, models.ShiftAbsent, record.Shift)
	assert.False(t, record.IsPresent)
	requireDecimalEqual(t, decimal.Zero, record.HoursWorked)

	// Present employee untouched, inactive employee skipped.
	require.NoError(t, db.First(&record, "employee_id = ?", present.ID).Error)
	assert.True(t, record.IsPresent)
	var count int64
	db.Model(&models.Attendance{}).Where("employee_id = ?", inactive.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	// Rerun is a no-op.
	marked, err = recorder.MarkAbsentees(at(23, 59))
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}
