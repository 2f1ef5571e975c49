package domain

import "time"

type FollowUpTime struct {
	FollowUpNumber int
	ScheduledTime  time.Time
}

// NotificationSchedule is derived on demand and never stored.
type NotificationSchedule struct {
	PrimaryTimestamp time.Time
	FollowUpTimes    []FollowUpTime
}

// FollowUp returns the follow-up with the given 1-based number.
func (s NotificationSchedule) FollowUp(number int) (FollowUpTime, bool) {
	if number < 1 || number > len(s.FollowUpTimes) {
		return FollowUpTime{}, false
	}
	return s.FollowUpTimes[number-1], true
}
