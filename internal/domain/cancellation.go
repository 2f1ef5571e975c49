package domain

import "time"

// CivilDateLayout formats a calendar date in the user's timezone.
const CivilDateLayout = "2006-01-02"

// FollowUpCancellation marks that no more follow-ups go out to a user on TargetDate.
type FollowUpCancellation struct {
	UserID      string
	TargetDate  string
	CancelledAt time.Time
}
