package types

import "fmt"

// BriefStatus is the lifecycle state of a brief
type BriefStatus string

const (
	BriefStatusDraft        BriefStatus = "draft"
	BriefStatusLive         BriefStatus = "live"
	BriefStatusClosed       BriefStatus = "closed"
	BriefStatusWithdrawn    BriefStatus = "withdrawn"
	BriefStatusAwarded      BriefStatus = "awarded"
	BriefStatusCancelled    BriefStatus = "cancelled"
	BriefStatusUnsuccessful BriefStatus = "unsuccessful"
)

// AllBriefStatuses returns all valid brief statuses
func AllBriefStatuses() []BriefStatus {
	return []BriefStatus{
		BriefStatusDraft,
		BriefStatusLive,
		BriefStatusClosed,
		BriefStatusWithdrawn,
		BriefStatusAwarded,
		BriefStatusCancelled,
		BriefStatusUnsuccessful,
	}
}

// ClosedBriefStatuses are the states listed under "closed requirements" on
// the buyer's requirements page.
func ClosedBriefStatuses() []BriefStatus {
	return []BriefStatus{
		BriefStatusClosed,
		BriefStatusWithdrawn,
		BriefStatusAwarded,
		BriefStatusCancelled,
		BriefStatusUnsuccessful,
	}
}

// ClosedPublishedBriefStatuses are the states in which supplier responses can
// be viewed and downloaded. Withdrawn briefs never received a complete set.
func ClosedPublishedBriefStatuses() []BriefStatus {
	return []BriefStatus{
		BriefStatusClosed,
		BriefStatusAwarded,
		BriefStatusCancelled,
		BriefStatusUnsuccessful,
	}
}

// IsValid checks if the brief status is valid
func (s BriefStatus) IsValid() bool {
	switch s {
	case BriefStatusDraft,
		BriefStatusLive,
		BriefStatusClosed,
		BriefStatusWithdrawn,
		BriefStatusAwarded,
		BriefStatusCancelled,
		BriefStatusUnsuccessful:
		return true
	default:
		return false
	}
}

// In reports whether s is one of statuses
func (s BriefStatus) In(statuses ...BriefStatus) bool {
	for _, st := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsTerminal is true for states with no outgoing transition
func (s BriefStatus) IsTerminal() bool {
	return s.In(BriefStatusWithdrawn, BriefStatusAwarded, BriefStatusCancelled, BriefStatusUnsuccessful)
}

// CanTransitionTo encodes the brief lifecycle:
//
//	draft -> live -> closed -> awarded | cancelled | unsuccessful
//	live -> withdrawn
//
// Deleting a draft is not a transition; it removes the brief.
func (s BriefStatus) CanTransitionTo(next BriefStatus) bool {
	switch s {
	case BriefStatusDraft:
		return next == BriefStatusLive
	case BriefStatusLive:
		return next == BriefStatusClosed || next == BriefStatusWithdrawn
	case BriefStatusClosed:
		return next.In(BriefStatusAwarded, BriefStatusCancelled, BriefStatusUnsuccessful)
	default:
		return false
	}
}

// String returns the string representation of the brief status
func (s BriefStatus) String() string {
	return string(s)
}

// ParseBriefStatus parses a string into a BriefStatus
func ParseBriefStatus(s string) (BriefStatus, error) {
	status := BriefStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid brief status: %s", s)
	}
	return status, nil
}
