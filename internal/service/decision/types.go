package decision

import (
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type FollowUpReason string

const (
	ReasonAlreadyRecorded FollowUpReason = "already_recorded"
	ReasonMaxCountReached FollowUpReason = "max_count_reached"
	ReasonNotTimeYet      FollowUpReason = "not_time_yet"
	ReasonDisabled        FollowUpReason = "disabled"
)

func (r FollowUpReason) String() string {
	return string(r)
}

// ReasonDue labels a decision that sends.
const ReasonDue = "due"

// FollowUpDecision is the outcome of the follow-up rule chain. Reason is empty when
// ShouldSend is true. NextNumber and ScheduledTime describe the follow-up that was
// evaluated, when the chain got that far. AnchorDate is the civil date of the primary
// reminder that started the chain.
type FollowUpDecision struct {
	ShouldSend    bool
	FollowUpCount int
	Reason        FollowUpReason
	NextNumber    int
	ScheduledTime time.Time
	AnchorDate    string
}

// Label names the decision for metrics, including the send case.
func (d FollowUpDecision) Label() string {
	if d.ShouldSend {
		return ReasonDue
	}
	return d.Reason.String()
}

// FollowUpInput carries everything the rule chain reads. Logs and HasRecorded must already
// be limited to the chain that owns Now (see Engine.FollowUpAnchor).
type FollowUpInput struct {
	Settings    *domain.NotificationSettings
	Now         time.Time
	Logs        []*domain.NotificationLog
	HasRecorded bool
}

// ReminderMatch identifies which configured time fired. Slot 0 is the primary time;
// slot n refers to Reminders[n-1].
type ReminderMatch struct {
	Slot int
	Time string
}
