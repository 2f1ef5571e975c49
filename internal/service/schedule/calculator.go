package schedule

import (
	"fmt"
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/timewindow"
)

// Calculator derives follow-up instants from a primary reminder time. It holds no state
// beyond the timezone cache and is safe for concurrent use.
type Calculator struct {
	window *timewindow.Window
}

func NewCalculator(window *timewindow.Window) *Calculator {
	return &Calculator{
		window: window,
	}
}

// Calculate anchors primaryTime to the civil date of reference in timezone, then spaces
// maxCount follow-ups intervalMinutes apart by instant arithmetic. Follow-ups may land on
// the next civil day.
func (c *Calculator) Calculate(primaryTime string, intervalMinutes, maxCount int, timezone string, reference time.Time) (domain.NotificationSchedule, error) {
	if intervalMinutes <= 0 {
		return domain.NotificationSchedule{}, fmt.Errorf("%w: got %d", domain.ErrInvalidInterval, intervalMinutes)
	}

	hour, minute, err := domain.ParseHHMM(primaryTime)
	if err != nil {
		return domain.NotificationSchedule{}, err
	}

	primary, err := c.window.InstantAt(timezone, reference, hour, minute)
	if err != nil {
		return domain.NotificationSchedule{}, err
	}

	schedule := domain.NotificationSchedule{
		PrimaryTimestamp: primary,
		FollowUpTimes:    []domain.FollowUpTime{},
	}
	if maxCount <= 0 {
		return schedule, nil
	}

	interval := time.Duration(intervalMinutes) * time.Minute
	schedule.FollowUpTimes = make([]domain.FollowUpTime, 0, maxCount)
	for i := 1; i <= maxCount; i++ {
		schedule.FollowUpTimes = append(schedule.FollowUpTimes, domain.FollowUpTime{
			FollowUpNumber: i,
			ScheduledTime:  primary.Add(time.Duration(i) * interval),
		})
	}

	return schedule, nil
}

// ForSettings calculates the schedule configured in settings for the day of reference.
func (c *Calculator) ForSettings(settings *domain.NotificationSettings, reference time.Time) (domain.NotificationSchedule, error) {
	return c.Calculate(
		settings.PrimaryTime,
		settings.FollowUpIntervalMinutes,
		settings.FollowUpMaxCount,
		settings.Timezone,
		reference,
	)
}
