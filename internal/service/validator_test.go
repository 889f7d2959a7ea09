package service_test

import (
	"testing"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestCreateTaskInput_Validate(t *testing.T) {
	spaceID := "11111111-1111-1111-1111-111111111111"
	customLocation := "Hallway, 2nd floor"
	empty := ""

	valid := func() service.CreateTaskInput {
		return service.CreateTaskInput{
			Title:    "Clean room 101",
			Type:     domain.TaskTypeHousekeeping,
			Priority: domain.TaskPriorityP2,
			SpaceID:  &spaceID,
		}
	}

	t.Run("valid with space", func(t *testing.T) {
		in := valid()
		assert.NoError(t, in.Validate())
	})

	t.Run("valid with custom location", func(t *testing.T) {
		in := valid()
		in.SpaceID = nil
		in.CustomLocation = &customLocation
		assert.NoError(t, in.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		in := valid()
		in.Title = "   "
		assert.ErrorIs(t, in.Validate(), domain.ErrValidation)
	})

	t.Run("invalid type", func(t *testing.T) {
		in := valid()
		in.Type = "JANITORIAL"
		assert.ErrorIs(t, in.Validate(), domain.ErrInvalidType)
	})

	t.Run("invalid priority", func(t *testing.T) {
		in := valid()
		in.Priority = "P9"
		assert.ErrorIs(t, in.Validate(), domain.ErrInvalidPriority)
	})

	t.Run("both locations", func(t *testing.T) {
		in := valid()
		in.CustomLocation = &customLocation
		assert.ErrorIs(t, in.Validate(), domain.ErrInvalidLocation)
	})

	t.Run("no location", func(t *testing.T) {
		in := valid()
		in.SpaceID = nil
		assert.ErrorIs(t, in.Validate(), domain.ErrInvalidLocation)
	})

	t.Run("empty strings count as absent", func(t *testing.T) {
		in := valid()
		in.SpaceID = &empty
		in.CustomLocation = &empty
		assert.ErrorIs(t, in.Validate(), domain.ErrInvalidLocation)
	})
}

func TestTaskPatch_Validate(t *testing.T) {
	badStatus := domain.TaskStatus("SHIPPED")
	badPriority := domain.TaskPriority("P9")
	goodStatus := domain.TaskStatusInProgress
	blank := "  "

	assert.NoError(t, (&service.TaskPatch{Status: &goodStatus}).Validate())
	assert.NoError(t, (&service.TaskPatch{}).Validate())
	assert.ErrorIs(t, (&service.TaskPatch{Status: &badStatus}).Validate(), domain.ErrInvalidStatus)
	assert.ErrorIs(t, (&service.TaskPatch{Priority: &badPriority}).Validate(), domain.ErrInvalidPriority)
	assert.ErrorIs(t, (&service.TaskPatch{Title: &blank}).Validate(), domain.ErrValidation)
}
