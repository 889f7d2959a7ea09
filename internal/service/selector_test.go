package service_test

import (
	"testing"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource always picks the same index.
type stubSource struct {
	index int
	calls []int
}

func (s *stubSource) Pick(n int) int {
	s.calls = append(s.calls, n)
	return s.index % n
}

func staffUser(id string, department domain.TaskType, onShift bool) *domain.User {
	return &domain.User{
		ID:         id,
		Name:       "staff-" + id,
		Role:       domain.UserRoleStaff,
		Department: &department,
		IsOnShift:  onShift,
	}
}

func TestSelectCandidate_PicksFromEligible(t *testing.T) {
	source := &stubSource{index: 1}
	selector := service.NewSelector(source)

	users := []*domain.User{
		staffUser("u1", domain.TaskTypeHousekeeping, true),
		staffUser("u2", domain.TaskTypeHousekeeping, true),
		staffUser("u3", domain.TaskTypeHousekeeping, true),
	}

	picked := selector.SelectCandidate(users, domain.TaskTypeHousekeeping)

	require.NotNil(t, picked)
	assert.Equal(t, "u2", picked.ID)
	assert.Equal(t, []int{3}, source.calls)
}

func TestSelectCandidate_FiltersIneligible(t *testing.T) {
	source := &stubSource{index: 0}
	selector := service.NewSelector(source)

	maintenance := domain.TaskTypeMaintenance
	users := []*domain.User{
		staffUser("off-shift", domain.TaskTypeHousekeeping, false),
		{ID: "manager", Role: domain.UserRoleManager, Department: &maintenance, IsOnShift: true},
		staffUser("wrong-dept", domain.TaskTypeMaintenance, true),
		staffUser("eligible", domain.TaskTypeHousekeeping, true),
	}

	picked := selector.SelectCandidate(users, domain.TaskTypeHousekeeping)

	require.NotNil(t, picked)
	assert.Equal(t, "eligible", picked.ID)
	// Only one candidate survived the filter.
	assert.Equal(t, []int{1}, source.calls)
}

func TestSelectCandidate_NoCandidates(t *testing.T) {
	source := &stubSource{}
	selector := service.NewSelector(source)

	users := []*domain.User{
		staffUser("off-shift", domain.TaskTypeHousekeeping, false),
		staffUser("wrong-dept", domain.TaskTypeMaintenance, true),
	}

	picked := selector.SelectCandidate(users, domain.TaskTypeHousekeeping)

	assert.Nil(t, picked)
	assert.Empty(t, source.calls, "source must not be consulted with zero candidates")
}

func TestSelectCandidate_EmptyInput(t *testing.T) {
	selector := service.NewSelector(&stubSource{})
	assert.Nil(t, selector.SelectCandidate(nil, domain.TaskTypeHousekeeping))
}
