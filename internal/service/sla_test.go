package service_test

import (
	"testing"
	"time"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testThresholds = service.SLAThresholds{
	P1Minutes: 60,
	P2Minutes: 240,
}

func newSLATask(priority domain.TaskPriority, status domain.TaskStatus, createdAt time.Time) *domain.Task {
	return &domain.Task{
		Title:     "Leaking faucet",
		Type:      domain.TaskTypeMaintenance,
		Priority:  priority,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestEvaluateSLA_Safe(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	task := newSLATask(domain.TaskPriorityP1, domain.TaskStatusInProgress, created)

	result := service.EvaluateSLA(task, created.Add(10*time.Minute), testThresholds, service.SLABasisCreated)

	assert.Equal(t, service.SLAStatusSafe, result.Status)
	require.NotNil(t, result.DueAt)
	assert.Equal(t, created.Add(60*time.Minute), *result.DueAt)
	assert.Equal(t, 50*time.Minute, result.Remaining)
}

func TestEvaluateSLA_DueSoon(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	task := newSLATask(domain.TaskPriorityP1, domain.TaskStatusInProgress, created)

	// 1 minute left, inside the 30 minute warning window.
	result := service.EvaluateSLA(task, created.Add(59*time.Minute), testThresholds, service.SLABasisCreated)
	assert.Equal(t, service.SLAStatusDueSoon, result.Status)
	assert.Equal(t, time.Minute, result.Remaining)

	// Exactly 30 minutes left is still SAFE.
	result = service.EvaluateSLA(task, created.Add(30*time.Minute), testThresholds, service.SLABasisCreated)
	assert.Equal(t, service.SLAStatusSafe, result.Status)
}

func TestEvaluateSLA_Overdue(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	task := newSLATask(domain.TaskPriorityP1, domain.TaskStatusInProgress, created)

	result := service.EvaluateSLA(task, created.Add(60*time.Minute+time.Second), testThresholds, service.SLABasisCreated)

	assert.Equal(t, service.SLAStatusOverdue, result.Status)
	assert.Negative(t, result.Remaining)
}

func TestEvaluateSLA_ClosedStatusesStopTheClock(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := created.Add(48 * time.Hour)

	for _, status := range []domain.TaskStatus{
		domain.TaskStatusDone,
		domain.TaskStatusVerified,
		domain.TaskStatusClosed,
		domain.TaskStatusCancelled,
	} {
		task := newSLATask(domain.TaskPriorityP1, status, created)
		result := service.EvaluateSLA(task, now, testThresholds, service.SLABasisCreated)
		assert.Equal(t, service.SLAStatusClosed, result.Status, "status %s", status)
		assert.Nil(t, result.DueAt, "status %s", status)
	}
}

func TestEvaluateSLA_P2UsesItsOwnThreshold(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	task := newSLATask(domain.TaskPriorityP2, domain.TaskStatusAssigned, created)

	// 90 minutes in: overdue for P1, comfortably safe for P2.
	result := service.EvaluateSLA(task, created.Add(90*time.Minute), testThresholds, service.SLABasisCreated)

	assert.Equal(t, service.SLAStatusSafe, result.Status)
	require.NotNil(t, result.DueAt)
	assert.Equal(t, created.Add(240*time.Minute), *result.DueAt)
}

func TestEvaluateSLA_P3UsesResponseTime(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	task := newSLATask(domain.TaskPriorityP3, domain.TaskStatusAssigned, created)
	responseTime := 15
	task.ResponseTimeMinutes = &responseTime

	result := service.EvaluateSLA(task, created.Add(20*time.Minute), testThresholds, service.SLABasisCreated)
	assert.Equal(t, service.SLAStatusOverdue, result.Status)

	// Without a response time the task carries no deadline at all.
	task.ResponseTimeMinutes = nil
	result = service.EvaluateSLA(task, created.Add(20*time.Minute), testThresholds, service.SLABasisCreated)
	assert.Equal(t, service.SLAStatusNone, result.Status)
	assert.Nil(t, result.DueAt)
}

func TestEvaluateSLA_ReadyBasis(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ready := created.Add(3 * time.Hour)

	task := newSLATask(domain.TaskPriorityP1, domain.TaskStatusReadyForInspection, created)
	task.ReadyAt = &ready

	// Counting from creation the task is long overdue; counting from when
	// it became ready for inspection it is fresh.
	fromCreated := service.EvaluateSLA(task, ready.Add(5*time.Minute), testThresholds, service.SLABasisCreated)
	assert.Equal(t, service.SLAStatusOverdue, fromCreated.Status)

	fromReady := service.EvaluateSLA(task, ready.Add(5*time.Minute), testThresholds, service.SLABasisReady)
	assert.Equal(t, service.SLAStatusSafe, fromReady.Status)
	require.NotNil(t, fromReady.DueAt)
	assert.Equal(t, ready.Add(60*time.Minute), *fromReady.DueAt)
}

func TestEvaluateSLA_ReadyBasisFallsBackToCreation(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	task := newSLATask(domain.TaskPriorityP1, domain.TaskStatusAssigned, created)

	result := service.EvaluateSLA(task, created.Add(10*time.Minute), testThresholds, service.SLABasisReady)

	require.NotNil(t, result.DueAt)
	assert.Equal(t, created.Add(60*time.Minute), *result.DueAt)
}
