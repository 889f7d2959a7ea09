package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/notify"
	"github.com/staykeep/staykeep/internal/repository"
)

// TaskService coordinates the task lifecycle: creation, status
// transitions, auto-assignment, space side effects, and the audit trail.
// Task, space, and audit writes for one operation share a transaction;
// notifications go out only after commit.
type TaskService struct {
	pool          *pgxpool.Pool
	taskRepo      *repository.TaskRepository
	spaceRepo     *repository.SpaceRepository
	userRepo      *repository.UserRepository
	equipmentRepo *repository.EquipmentRepository
	activityRepo  *repository.ActivityLogRepository
	selector      *Selector
	notifier      notify.Notifier
	systemActorID string

	// Now is the clock used for lifecycle timestamps. Overridable in tests.
	Now func() time.Time
}

// NewTaskService creates a new TaskService. systemActorID is the user
// credited in audit entries when no reporter is given; it may be empty, in
// which case reporterless creates are rejected.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	spaceRepo *repository.SpaceRepository,
	userRepo *repository.UserRepository,
	equipmentRepo *repository.EquipmentRepository,
	activityRepo *repository.ActivityLogRepository,
	selector *Selector,
	notifier notify.Notifier,
	systemActorID string,
) *TaskService {
	return &TaskService{
		pool:          pool,
		taskRepo:      taskRepo,
		spaceRepo:     spaceRepo,
		userRepo:      userRepo,
		equipmentRepo: equipmentRepo,
		activityRepo:  activityRepo,
		selector:      selector,
		notifier:      notifier,
		systemActorID: systemActorID,
		Now:           time.Now,
	}
}

// rollback rolls the transaction back, tolerating an already-committed tx.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("failed to rollback transaction", "error", err)
	}
}

// Create validates the draft, resolves the audit actor, auto-assigns when
// no assignee is given, and persists the task together with its space side
// effect and CREATED audit entry in one transaction.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actorID, err := s.resolveActor(ctx, input.ReporterID)
	if err != nil {
		return nil, err
	}

	if input.SpaceID != nil {
		if _, err := s.spaceRepo.GetByID(ctx, *input.SpaceID); err != nil {
			return nil, err
		}
	}
	if input.EquipmentID != nil {
		if _, err := s.equipmentRepo.GetByID(ctx, *input.EquipmentID); err != nil {
			return nil, err
		}
	}

	var assignee *domain.User
	autoAssigned := false
	if input.AssigneeID != nil {
		assignee, err = s.userRepo.GetByID(ctx, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
	} else {
		staff, err := s.userRepo.ListOnShiftStaff(ctx, input.Type)
		if err != nil {
			return nil, fmt.Errorf("list on-shift staff: %w", err)
		}
		assignee = s.selector.SelectCandidate(staff, input.Type)
		autoAssigned = assignee != nil
	}

	task := &domain.Task{
		Title:               input.Title,
		Description:         input.Description,
		Type:                input.Type,
		Priority:            input.Priority,
		Status:              domain.TaskStatusNew,
		SpaceID:             input.SpaceID,
		CustomLocation:      input.CustomLocation,
		ReporterID:          input.ReporterID,
		EquipmentID:         input.EquipmentID,
		DueAt:               input.DueAt,
		IsGuestImpact:       input.IsGuestImpact,
		ResponseTimeMinutes: input.ResponseTimeMinutes,
		BlockLocationUntil:  input.BlockLocationUntil,
		Images:              input.Images,
	}
	if assignee != nil {
		task.AssigneeID = &assignee.ID
		task.Status = domain.TaskStatusAssigned
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if _, err := s.taskRepo.Create(ctx, tx, task); err != nil {
		return nil, err
	}

	if task.SpaceID != nil {
		if target, ok := createSpaceEffect(task); ok {
			if err := s.spaceRepo.UpdateStatusTx(ctx, tx, *task.SpaceID, target); err != nil {
				return nil, err
			}
		}
	}

	entry := &domain.ActivityLogEntry{
		TaskID: task.ID,
		UserID: actorID,
		Action: domain.ActivityActionCreated,
		Metadata: map[string]any{
			"title":        task.Title,
			"autoAssigned": autoAssigned,
		},
	}
	if err := s.activityRepo.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("create activity entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	if assignee != nil {
		message := fmt.Sprintf("New task #%d: %s [%s]", task.FriendlyID, task.Title, task.Priority)
		s.notify(ctx, assignee, message)
	}

	slog.Info("task created",
		"task_id", task.ID,
		"type", task.Type,
		"priority", task.Priority,
		"auto_assigned", autoAssigned,
	)

	return task, nil
}

// createSpaceEffect returns the space status a freshly created task forces
// on its space. A block-until timestamp takes the space out of order
// regardless of task type; otherwise only housekeeping tasks dirty the
// space.
func createSpaceEffect(task *domain.Task) (domain.SpaceStatus, bool) {
	if task.BlockLocationUntil != nil {
		return domain.SpaceStatusOutOfOrder, true
	}
	if task.Type == domain.TaskTypeHousekeeping {
		return domain.SpaceStatusDirty, true
	}
	return "", false
}

// resolveActor picks the user credited in the audit entry: the reporter
// when given, else the configured system actor.
func (s *TaskService) resolveActor(ctx context.Context, reporterID *string) (string, error) {
	if reporterID != nil {
		user, err := s.userRepo.GetByID(ctx, *reporterID)
		if err != nil {
			return "", err
		}
		return user.ID, nil
	}
	if s.systemActorID == "" {
		return "", domain.ErrNoActor
	}
	return s.systemActorID, nil
}

// Transition applies a patch to a task: status moves are checked against
// the state machine, lifecycle timestamps are set exactly once, the linked
// space is updated for housekeeping tasks, and exactly one audit entry is
// written.
func (s *TaskService) Transition(ctx context.Context, taskID, actorID string, patch TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var newAssignee *domain.User
	if patch.AssigneeID != nil {
		user, err := s.userRepo.GetByID(ctx, *patch.AssigneeID)
		if err != nil {
			return nil, err
		}
		newAssignee = user
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	oldAssignee := task.AssigneeID

	changed, err := s.applyPatch(task, patch)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, tx, task, oldStatus); err != nil {
		return nil, err
	}

	statusChanged := task.Status != oldStatus
	if statusChanged && task.Type == domain.TaskTypeHousekeeping && task.SpaceID != nil {
		if target, ok := domain.SpaceEffectForTaskStatus(task.Status); ok {
			if err := s.spaceRepo.UpdateStatusTx(ctx, tx, *task.SpaceID, target); err != nil {
				return nil, err
			}
		}
	}

	assigneeChanged := !strPtrEqual(oldAssignee, task.AssigneeID)

	// One audit entry per transition: an assignee change wins over a
	// generic edit.
	var entry *domain.ActivityLogEntry
	switch {
	case assigneeChanged:
		action := domain.ActivityActionAssigned
		if oldAssignee != nil {
			action = domain.ActivityActionReassigned
		}
		entry = &domain.ActivityLogEntry{
			TaskID: task.ID,
			UserID: actorID,
			Action: action,
			Metadata: map[string]any{
				"oldAssignee": strOrNil(oldAssignee),
				"newAssignee": strOrNil(task.AssigneeID),
			},
		}
	case len(changed) > 0:
		entry = &domain.ActivityLogEntry{
			TaskID:   task.ID,
			UserID:   actorID,
			Action:   domain.ActivityActionEdited,
			Metadata: map[string]any{"fields": changed},
		}
	}
	if entry != nil {
		if err := s.activityRepo.Create(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("create activity entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	if assigneeChanged && newAssignee != nil {
		message := fmt.Sprintf("Task #%d reassigned to you: %s", task.FriendlyID, task.Title)
		s.notify(ctx, newAssignee, message)
	}

	slog.Info("task updated",
		"task_id", task.ID,
		"old_status", oldStatus,
		"new_status", task.Status,
		"changed", changed,
	)

	return task, nil
}

// applyPatch mutates the task in place and returns the names of changed
// fields. Lifecycle timestamps are set only on first entry into the
// triggering status; cycling back through a status never resets them.
func (s *TaskService) applyPatch(task *domain.Task, patch TaskPatch) ([]string, error) {
	var changed []string

	if patch.Title != nil && *patch.Title != task.Title {
		task.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.Description != nil && *patch.Description != task.Description {
		task.Description = *patch.Description
		changed = append(changed, "description")
	}
	if patch.Priority != nil && *patch.Priority != task.Priority {
		task.Priority = *patch.Priority
		changed = append(changed, "priority")
	}
	if patch.DueAt != nil {
		task.DueAt = patch.DueAt
		changed = append(changed, "dueAt")
	}
	if patch.IsGuestImpact != nil && *patch.IsGuestImpact != task.IsGuestImpact {
		task.IsGuestImpact = *patch.IsGuestImpact
		changed = append(changed, "isGuestImpact")
	}
	if patch.Images != nil {
		task.Images = patch.Images
		changed = append(changed, "images")
	}
	if patch.AssigneeID != nil && !task.IsAssignedTo(*patch.AssigneeID) {
		task.AssigneeID = patch.AssigneeID
		changed = append(changed, "assignee")
	}

	if patch.Status != nil && *patch.Status != task.Status {
		newStatus := *patch.Status
		if !task.Status.CanTransitionTo(newStatus) {
			return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, task.Status, newStatus)
		}

		now := s.Now()
		switch newStatus {
		case domain.TaskStatusInProgress:
			if task.StartedAt == nil {
				task.StartedAt = &now
			}
		case domain.TaskStatusReadyForInspection:
			if task.ReadyAt == nil {
				task.ReadyAt = &now
			}
		case domain.TaskStatusDone:
			if task.CompletedAt == nil {
				task.CompletedAt = &now
			}
		case domain.TaskStatusReopened:
			task.ReopenCount++
		}

		task.Status = newStatus
		changed = append(changed, "status")
	}

	return changed, nil
}

// Get retrieves a task by ID.
func (s *TaskService) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, taskID)
}

// List retrieves tasks matching the filters.
func (s *TaskService) List(ctx context.Context, filters repository.TaskListFilters) ([]*domain.Task, error) {
	return s.taskRepo.List(ctx, filters)
}

// AppendComment records a COMMENT audit entry for the task.
func (s *TaskService) AppendComment(ctx context.Context, taskID, text, actorID string) (*domain.ActivityLogEntry, error) {
	if text == "" {
		return nil, domain.ErrEmptyComment
	}

	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	entry := &domain.ActivityLogEntry{
		TaskID:   taskID,
		UserID:   actor.ID,
		Action:   domain.ActivityActionComment,
		Metadata: map[string]any{"text": text},
	}
	if err := s.activityRepo.Create(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("create activity entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return entry, nil
}

// ActivityLog returns the audit trail for a task, newest first.
func (s *TaskService) ActivityLog(ctx context.Context, taskID string) ([]*domain.ActivityLogEntry, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.activityRepo.ListByTask(ctx, taskID)
}

// notify delivers a message best-effort: failures are logged and absorbed,
// never surfaced as a failure of the state change.
func (s *TaskService) notify(ctx context.Context, user *domain.User, message string) {
	if err := s.notifier.NotifyUser(ctx, user, message); err != nil {
		slog.Warn("notification failed",
			"user_id", user.ID,
			"error", err,
		)
	}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
