package jobs

import (
	"context"
	"time"

	"airhotel-web/services/logger"

	"github.com/robfig/cron/v3"
)

// MidnightSchedule re-partitions reservations when the calendar day changes
const MidnightSchedule = "0 0 * * *"

// ReservationRefresher is the part of the workflow the jobs drive
type ReservationRefresher interface {
	AutoRefresh(ctx context.Context) error
	Repartition(reason string)
}

// InitCronJobs registers the reservation refresh on schedule and the
// midnight re-partition. It does not start c.
func InitCronJobs(c *cron.Cron, wf ReservationRefresher, schedule string, timeout time.Duration, log logger.Logger) error {
	if log == nil {
		log = logger.Nop{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := wf.AutoRefresh(ctx); err != nil {
			log.Warn("auto refresh of reservations failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	_, err = c.AddFunc(MidnightSchedule, func() {
		log.Info("day changed at %v, re-partitioning reservations", time.Now().Format(time.DateTime))
		wf.Repartition("midnight")
	})
	if err != nil {
		return err
	}

	log.Info("Cron jobs initialized successfully")
	return nil
}
