package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/attendance"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/shift"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/database"
)

// SweepJobs closes out shifts that were never checked into: the shift
// moves to missed and an absent attendance row is written for the
// employee-day, unless one already exists.
type SweepJobs struct {
	shiftRepo      shift.ShiftRepository
	attendanceRepo attendance.AttendanceRepository
	txManager      database.TxManager
	tz             *time.Location
	now            func() time.Time
}

func NewSweepJobs(
	shiftRepo shift.ShiftRepository,
	attendanceRepo attendance.AttendanceRepository,
	txManager database.TxManager,
	tz *time.Location,
) *SweepJobs {
	return &SweepJobs{
		shiftRepo:      shiftRepo,
		attendanceRepo: attendanceRepo,
		txManager:      txManager,
		tz:             tz,
		now:            time.Now,
	}
}

// Register wires the sweep into the scheduler.
func (j *SweepJobs) Register(s *Scheduler) {
	s.AddJob("missed-shift-sweep", time.Hour, j.SweepMissedShifts)
}

// SweepMissedShifts marks every shift still scheduled on a past day as
// missed and records the matching absence. Each shift is closed in its
// own transaction so one bad row does not stall the rest.
func (j *SweepJobs) SweepMissedShifts(ctx context.Context) error {
	cutoff := attendance.DateBucket(j.now(), j.tz)

	overdue, err := j.shiftRepo.ListOverdueScheduled(ctx, cutoff)
	if err != nil {
		return err
	}

	swept := 0
	for _, sh := range overdue {
		err := j.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := j.shiftRepo.MarkMissed(txCtx, sh.ID); err != nil {
				return err
			}
			return j.attendanceRepo.CreateAbsences(txCtx, []attendance.Attendance{{
				EmployeeID: sh.EmployeeID,
				ShiftID:    sh.ID,
				Date:       attendance.DateBucket(sh.Date, j.tz),
				Status:     attendance.StatusAbsent,
			}})
		})
		if err != nil {
			slog.Error("Failed to close missed shift", "shift_id", sh.ID, "error", err)
			continue
		}
		swept++
	}

	if swept > 0 {
		slog.Info("Missed shifts swept", "count", swept)
	}

	return nil
}
