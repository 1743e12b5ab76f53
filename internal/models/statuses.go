package models

// ApplicationStatus is the forward-only lifecycle of an application.
type ApplicationStatus string

const (
	StatusDraft     ApplicationStatus = "draft"
	StatusSubmitted ApplicationStatus = "submitted"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
)

// statusTransitions maps each status to the statuses it may move to.
// draft -> submitted -> reviewing -> {approved, rejected}; never backward.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusReviewing},
	StatusReviewing: {StatusApproved, StatusRejected},
	StatusApproved:  {},
	StatusRejected:  {},
}

// CanTransition reports whether moving from one status to another is allowed.
func (s ApplicationStatus) CanTransition(to ApplicationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known status.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusReviewing, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// AdminRole separates the two staff tiers.
type AdminRole string

const (
	AdminRoleSuper  AdminRole = "super"
	AdminRolePortal AdminRole = "portal"
)

// IsValid reports whether the value is a known admin role.
func (r AdminRole) IsValid() bool {
	return r == AdminRoleSuper || r == AdminRolePortal
}
