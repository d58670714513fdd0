package jobs

import (
	"time"

	"staffpay/services"
	"staffpay/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitCronJobs registers the nightly absence sweep. The sweep is idempotent,
// so overlapping or repeated runs are harmless.
func InitCronJobs(c *cron.Cron, schedule string, recorder *services.AttendanceRecorder) error {
	_, err := c.AddFunc(schedule, func() {
		marked, err := recorder.MarkAbsentees(time.Now())
		if err != nil {
			utils.Logger.Error("Absence sweep failed", zap.Error(err))
			return
		}
		utils.Logger.Info("Absence sweep completed", zap.Int("marked_absent", marked))
	})
	if err != nil {
		return err
	}

	c.Start()
	return nil
}
