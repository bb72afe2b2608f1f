package scheduler

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
)

// MaintenanceJobID identifies the database maintenance job.
const MaintenanceJobID = "database-maintenance"

// Optimizer runs storage maintenance.
type Optimizer interface {
	Optimize(ctx context.Context) error
}

// AddMaintenanceJob schedules the database maintenance on the given cron schedule.
// An empty schedule disables the job.
func (s *Scheduler) AddMaintenanceJob(schedule string, db Optimizer) error {
	if schedule == "" {
		return nil
	}
	return s.AddSingletonJob(
		MaintenanceJobID,
		"Database maintenance",
		schedule,
		gocron.CronJob(schedule, false),
		func(ctx context.Context) error {
			if err := db.Optimize(ctx); err != nil {
				return fmt.Errorf("failed to optimize database: %w", err)
			}
			return nil
		},
	)
}
