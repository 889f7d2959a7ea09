package domain

import "time"

// UserRole represents the access level of a user.
type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleManager  UserRole = "MANAGER"
	UserRoleStaff    UserRole = "STAFF"
	UserRolePending  UserRole = "PENDING"
	UserRoleObserver UserRole = "OBSERVER"
)

// IsValid checks if the role is one of the allowed values.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleStaff, UserRolePending, UserRoleObserver:
		return true
	default:
		return false
	}
}

// User represents a member of the property staff.
type User struct {
	ID         string
	Name       string
	Email      *string
	TelegramID *string
	Token      string
	Role       UserRole
	Department *TaskType
	IsOnShift  bool
	CreatedAt  time.Time
}

// IsAssignable reports whether auto-assignment may pick this user for the
// given department.
func (u *User) IsAssignable(department TaskType) bool {
	return u.Role == UserRoleStaff &&
		u.IsOnShift &&
		u.Department != nil &&
		*u.Department == department
}
