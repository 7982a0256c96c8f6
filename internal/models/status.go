package models

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusClosed     ProjectStatus = "closed"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusOpen, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusClosed:
		return true
	default:
		return false
	}
}

// AcceptsProposals reports whether artisans may bid on a project in s.
func (s ProjectStatus) AcceptsProposals() bool {
	return s == ProjectStatusOpen
}

// AllowsReviews reports whether participants may review a project in s.
func (s ProjectStatus) AllowsReviews() bool {
	return s == ProjectStatusCompleted
}

// Terminal reports whether s has no outgoing transitions.
func (s ProjectStatus) Terminal() bool {
	return s == ProjectStatusClosed
}

// CanTransition reports whether a direct status update from -> to is
// permitted. open -> in_progress is deliberately absent: it is only reachable
// by accepting a proposal.
func CanTransition(from, to ProjectStatus) bool {
	switch from {
	case ProjectStatusOpen:
		return to == ProjectStatusClosed
	case ProjectStatusInProgress:
		return to == ProjectStatusCompleted || to == ProjectStatusClosed
	case ProjectStatusCompleted:
		return to == ProjectStatusClosed
	default:
		return false
	}
}

// AllowedTransitions lists the direct targets reachable from s.
func AllowedTransitions(s ProjectStatus) []ProjectStatus {
	targets := make([]ProjectStatus, 0, 2)
	for _, to := range []ProjectStatus{ProjectStatusOpen, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusClosed} {
		if CanTransition(s, to) {
			targets = append(targets, to)
		}
	}
	return targets
}
