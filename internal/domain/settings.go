package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	MaxReminderSlots               = 5
	DefaultPrimaryTime             = "21:00"
	DefaultFollowUpIntervalMinutes = 60
	DefaultFollowUpMaxCount        = 2
)

// Reminder is one configurable reminder slot. A nil Time means the slot is unset.
type Reminder struct {
	Time    *string `json:"time"`
	Enabled bool    `json:"enabled"`
}

// NotificationSettings is the per-user reminder configuration.
// ActiveDays holds weekdays where 0 is Sunday.
type NotificationSettings struct {
	UserID                  string
	Enabled                 bool
	PrimaryTime             string
	Timezone                string
	ActiveDays              []int
	FollowUpEnabled         bool
	FollowUpIntervalMinutes int
	FollowUpMaxCount        int
	Reminders               []Reminder
	UpdatedAt               time.Time
}

// SettingsPatch names the fields a partial update may override. Nil fields are left untouched.
type SettingsPatch struct {
	Enabled                 *bool
	PrimaryTime             *string
	Timezone                *string
	ActiveDays              *[]int
	FollowUpEnabled         *bool
	FollowUpIntervalMinutes *int
	FollowUpMaxCount        *int
	Reminders               *[]Reminder
}

// DefaultSettings returns the settings in effect for a user without a stored row.
// The single reminder slot starts unset so it cannot shadow a later primary time change.
func DefaultSettings(userID, timezone string) *NotificationSettings {
	return &NotificationSettings{
		UserID:                  userID,
		Enabled:                 false,
		PrimaryTime:             DefaultPrimaryTime,
		Timezone:                timezone,
		ActiveDays:              []int{0, 1, 2, 3, 4, 5, 6},
		FollowUpEnabled:         true,
		FollowUpIntervalMinutes: DefaultFollowUpIntervalMinutes,
		FollowUpMaxCount:        DefaultFollowUpMaxCount,
		Reminders:               []Reminder{{Time: nil, Enabled: false}},
	}
}

func (s *NotificationSettings) IsActiveOn(weekday int) bool {
	return slices.Contains(s.ActiveDays, weekday)
}

// Apply returns a copy of s with every non-nil field of p applied.
func (s *NotificationSettings) Apply(p SettingsPatch) *NotificationSettings {
	out := *s
	out.ActiveDays = slices.Clone(s.ActiveDays)
	out.Reminders = slices.Clone(s.Reminders)

	if p.Enabled != nil {
		out.Enabled = *p.Enabled
	}
	if p.PrimaryTime != nil {
		out.PrimaryTime = *p.PrimaryTime
	}
	if p.Timezone != nil {
		out.Timezone = *p.Timezone
	}
	if p.ActiveDays != nil {
		out.ActiveDays = slices.Clone(*p.ActiveDays)
	}
	if p.FollowUpEnabled != nil {
		out.FollowUpEnabled = *p.FollowUpEnabled
	}
	if p.FollowUpIntervalMinutes != nil {
		out.FollowUpIntervalMinutes = *p.FollowUpIntervalMinutes
	}
	if p.FollowUpMaxCount != nil {
		out.FollowUpMaxCount = *p.FollowUpMaxCount
	}
	if p.Reminders != nil {
		out.Reminders = slices.Clone(*p.Reminders)
	}

	return &out
}

// Normalize validates s and rewrites every HH:mm value in zero-padded form.
func (s *NotificationSettings) Normalize() error {
	if s.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidSettings)
	}

	primary, err := NormalizeHHMM(s.PrimaryTime)
	if err != nil {
		return err
	}
	s.PrimaryTime = primary

	if _, err := time.LoadLocation(s.Timezone); err != nil || s.Timezone == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, s.Timezone)
	}

	for _, d := range s.ActiveDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidSettings, d)
		}
	}
	slices.Sort(s.ActiveDays)
	s.ActiveDays = slices.Compact(s.ActiveDays)

	if s.FollowUpIntervalMinutes <= 0 {
		return ErrInvalidInterval
	}
	if s.FollowUpMaxCount < 0 {
		return fmt.Errorf("%w: follow-up max count must not be negative", ErrInvalidSettings)
	}

	if len(s.Reminders) > MaxReminderSlots {
		return fmt.Errorf("%w: at most %d reminder slots", ErrInvalidSettings, MaxReminderSlots)
	}
	for i, r := range s.Reminders {
		if r.Time == nil {
			continue
		}
		normalized, err := NormalizeHHMM(*r.Time)
		if err != nil {
			return fmt.Errorf("reminder %d: %w", i, err)
		}
		s.Reminders[i].Time = &normalized
	}

	return nil
}

// ParseHHMM accepts "H:mm" or "HH:mm".
func ParseHHMM(v string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(v), ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPrimaryTime, v)
	}

	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPrimaryTime, v)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPrimaryTime, v)
	}

	return hour, minute, nil
}

func NormalizeHHMM(v string) (string, error) {
	hour, minute, err := ParseHHMM(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
