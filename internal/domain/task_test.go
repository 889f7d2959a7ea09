package domain_test

import (
	"testing"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.TaskStatus
		to      domain.TaskStatus
		allowed bool
	}{
		{"new to triaged", domain.TaskStatusNew, domain.TaskStatusTriaged, true},
		{"new to assigned", domain.TaskStatusNew, domain.TaskStatusAssigned, true},
		{"new straight to done", domain.TaskStatusNew, domain.TaskStatusDone, false},
		{"assigned to in_progress", domain.TaskStatusAssigned, domain.TaskStatusInProgress, true},
		{"assigned back to triaged", domain.TaskStatusAssigned, domain.TaskStatusTriaged, true},
		{"in_progress to blocked", domain.TaskStatusInProgress, domain.TaskStatusBlocked, true},
		{"in_progress to ready_for_inspection", domain.TaskStatusInProgress, domain.TaskStatusReadyForInspection, true},
		{"in_progress to done", domain.TaskStatusInProgress, domain.TaskStatusDone, true},
		{"blocked resumes to in_progress", domain.TaskStatusBlocked, domain.TaskStatusInProgress, true},
		{"blocked skips to done", domain.TaskStatusBlocked, domain.TaskStatusDone, false},
		{"inspection passes", domain.TaskStatusReadyForInspection, domain.TaskStatusDone, true},
		{"inspection fails", domain.TaskStatusReadyForInspection, domain.TaskStatusReopened, true},
		{"done reopened", domain.TaskStatusDone, domain.TaskStatusReopened, true},
		{"done verified", domain.TaskStatusDone, domain.TaskStatusVerified, true},
		{"done closed", domain.TaskStatusDone, domain.TaskStatusClosed, true},
		{"reopened back to assigned", domain.TaskStatusReopened, domain.TaskStatusAssigned, true},
		{"reopened back to in_progress", domain.TaskStatusReopened, domain.TaskStatusInProgress, true},
		{"verified to closed", domain.TaskStatusVerified, domain.TaskStatusClosed, true},
		{"verified reopened", domain.TaskStatusVerified, domain.TaskStatusReopened, false},
		{"closed is final", domain.TaskStatusClosed, domain.TaskStatusReopened, false},
		{"cancel from new", domain.TaskStatusNew, domain.TaskStatusCancelled, true},
		{"cancel from blocked", domain.TaskStatusBlocked, domain.TaskStatusCancelled, true},
		{"cancel from done", domain.TaskStatusDone, domain.TaskStatusCancelled, true},
		{"cancel from closed", domain.TaskStatusClosed, domain.TaskStatusCancelled, false},
		{"cancel from cancelled", domain.TaskStatusCancelled, domain.TaskStatusCancelled, false},
		{"resurrect cancelled", domain.TaskStatusCancelled, domain.TaskStatusNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTaskStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.TaskStatusClosed.IsTerminal())
	assert.True(t, domain.TaskStatusCancelled.IsTerminal())

	// DONE and VERIFIED still allow moves, so they are not terminal.
	assert.False(t, domain.TaskStatusDone.IsTerminal())
	assert.False(t, domain.TaskStatusVerified.IsTerminal())
	assert.False(t, domain.TaskStatusNew.IsTerminal())
}

func TestTaskStatus_IsSLAClosed(t *testing.T) {
	closed := []domain.TaskStatus{
		domain.TaskStatusDone,
		domain.TaskStatusVerified,
		domain.TaskStatusClosed,
		domain.TaskStatusCancelled,
	}
	for _, status := range closed {
		assert.True(t, status.IsSLAClosed(), "status %s", status)
	}

	open := []domain.TaskStatus{
		domain.TaskStatusNew,
		domain.TaskStatusAssigned,
		domain.TaskStatusInProgress,
		domain.TaskStatusBlocked,
		domain.TaskStatusReadyForInspection,
		domain.TaskStatusReopened,
	}
	for _, status := range open {
		assert.False(t, status.IsSLAClosed(), "status %s", status)
	}
}

func TestTaskStatus_IsValid(t *testing.T) {
	assert.True(t, domain.TaskStatusReadyForInspection.IsValid())
	assert.False(t, domain.TaskStatus("SHIPPED").IsValid())
	assert.False(t, domain.TaskStatus("").IsValid())
}

func TestSpaceEffectForTaskStatus(t *testing.T) {
	tests := []struct {
		taskStatus  domain.TaskStatus
		spaceStatus domain.SpaceStatus
		hasEffect   bool
	}{
		{domain.TaskStatusAssigned, domain.SpaceStatusCleaning, true},
		{domain.TaskStatusInProgress, domain.SpaceStatusCleaning, true},
		{domain.TaskStatusReadyForInspection, domain.SpaceStatusReady, true},
		{domain.TaskStatusDone, domain.SpaceStatusInspected, true},
		{domain.TaskStatusReopened, domain.SpaceStatusDirty, true},
		{domain.TaskStatusNew, "", false},
		{domain.TaskStatusBlocked, "", false},
		{domain.TaskStatusVerified, "", false},
		{domain.TaskStatusClosed, "", false},
		{domain.TaskStatusCancelled, "", false},
	}

	for _, tt := range tests {
		status, ok := domain.SpaceEffectForTaskStatus(tt.taskStatus)
		assert.Equal(t, tt.hasEffect, ok, "task status %s", tt.taskStatus)
		if tt.hasEffect {
			assert.Equal(t, tt.spaceStatus, status, "task status %s", tt.taskStatus)
		}
	}
}

func TestUser_IsAssignable(t *testing.T) {
	housekeeping := domain.TaskTypeHousekeeping
	maintenance := domain.TaskTypeMaintenance

	onShift := &domain.User{
		Role:       domain.UserRoleStaff,
		Department: &housekeeping,
		IsOnShift:  true,
	}
	assert.True(t, onShift.IsAssignable(domain.TaskTypeHousekeeping))
	assert.False(t, onShift.IsAssignable(domain.TaskTypeMaintenance))

	offShift := &domain.User{
		Role:       domain.UserRoleStaff,
		Department: &housekeeping,
	}
	assert.False(t, offShift.IsAssignable(domain.TaskTypeHousekeeping))

	manager := &domain.User{
		Role:       domain.UserRoleManager,
		Department: &maintenance,
		IsOnShift:  true,
	}
	assert.False(t, manager.IsAssignable(domain.TaskTypeMaintenance))

	noDepartment := &domain.User{
		Role:      domain.UserRoleStaff,
		IsOnShift: true,
	}
	assert.False(t, noDepartment.IsAssignable(domain.TaskTypeHousekeeping))
}
