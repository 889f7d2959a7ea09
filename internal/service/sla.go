package service

import (
	"time"

	"github.com/staykeep/staykeep/internal/domain"
)

// SLAStatus represents the urgency of a task relative to its deadline.
type SLAStatus string

const (
	SLAStatusNone    SLAStatus = "NONE" // no threshold applies
	SLAStatusSafe    SLAStatus = "SAFE"
	SLAStatusDueSoon SLAStatus = "DUE_SOON" // less than the warning window remains
	SLAStatusOverdue SLAStatus = "OVERDUE"
	SLAStatusClosed  SLAStatus = "CLOSED" // task no longer accrues SLA time
)

// dueSoonWindow is the remaining time below which a task is flagged DUE_SOON.
const dueSoonWindow = 30 * time.Minute

// SLAThresholds holds the configured allowed minutes per priority. P3 tasks
// use their own response time instead.
type SLAThresholds struct {
	P1Minutes int
	P2Minutes int
}

// SLABasis selects the timestamp the deadline counts from. The inspection
// queue measures from when the task became ready for inspection; general
// task views measure from creation. The basis is explicit per caller.
type SLABasis string

const (
	SLABasisCreated SLABasis = "created"
	SLABasisReady   SLABasis = "ready"
)

// SLAResult is the outcome of an SLA evaluation.
type SLAResult struct {
	Status    SLAStatus
	DueAt     *time.Time
	Remaining time.Duration
}

// EvaluateSLA computes the deadline and urgency for a task. It is a pure
// function: urgency is computed on demand, never stored or pushed.
func EvaluateSLA(task *domain.Task, now time.Time, thresholds SLAThresholds, basis SLABasis) SLAResult {
	if task.Status.IsSLAClosed() {
		return SLAResult{Status: SLAStatusClosed}
	}

	var allowedMinutes int
	switch task.Priority {
	case domain.TaskPriorityP1:
		allowedMinutes = thresholds.P1Minutes
	case domain.TaskPriorityP2:
		allowedMinutes = thresholds.P2Minutes
	case domain.TaskPriorityP3:
		if task.ResponseTimeMinutes != nil {
			allowedMinutes = *task.ResponseTimeMinutes
		}
	}
	if allowedMinutes <= 0 {
		return SLAResult{Status: SLAStatusNone}
	}

	start := task.CreatedAt
	if basis == SLABasisReady && task.ReadyAt != nil {
		start = *task.ReadyAt
	}

	dueAt := start.Add(time.Duration(allowedMinutes) * time.Minute)
	remaining := dueAt.Sub(now)

	status := SLAStatusSafe
	switch {
	case remaining < 0:
		status = SLAStatusOverdue
	case remaining < dueSoonWindow:
		status = SLAStatusDueSoon
	}

	return SLAResult{Status: status, DueAt: &dueAt, Remaining: remaining}
}
