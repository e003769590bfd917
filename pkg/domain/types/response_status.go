package types

import "fmt"

// BriefResponseStatus represents the state of a supplier's response to a brief
type BriefResponseStatus string

const (
	BriefResponseStatusDraft          BriefResponseStatus = "draft"
	BriefResponseStatusSubmitted      BriefResponseStatus = "submitted"
	BriefResponseStatusPendingAwarded BriefResponseStatus = "pending-awarded"
	BriefResponseStatusAwarded        BriefResponseStatus = "awarded"
)

// AllBriefResponseStatuses returns all valid response statuses
func AllBriefResponseStatuses() []BriefResponseStatus {
	return []BriefResponseStatus{
		BriefResponseStatusDraft,
		BriefResponseStatusSubmitted,
		BriefResponseStatusPendingAwarded,
		BriefResponseStatusAwarded,
	}
}

// SubmittedBriefResponseStatuses are the statuses a buyer can see
func SubmittedBriefResponseStatuses() []BriefResponseStatus {
	return []BriefResponseStatus{
		BriefResponseStatusSubmitted,
		BriefResponseStatusPendingAwarded,
		BriefResponseStatusAwarded,
	}
}

// IsValid checks if the response status is valid
func (s BriefResponseStatus) IsValid() bool {
	switch s {
	case BriefResponseStatusDraft,
		BriefResponseStatusSubmitted,
		BriefResponseStatusPendingAwarded,
		BriefResponseStatusAwarded:
		return true
	default:
		return false
	}
}

// IsSubmitted is true once the supplier has sent the response. Award states
// are only reachable from a submitted response.
func (s BriefResponseStatus) IsSubmitted() bool {
	return s != BriefResponseStatusDraft && s.IsValid()
}

// String returns the string representation of the response status
func (s BriefResponseStatus) String() string {
	return string(s)
}

// ParseBriefResponseStatus parses a string into a BriefResponseStatus
func ParseBriefResponseStatus(s string) (BriefResponseStatus, error) {
	status := BriefResponseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid brief response status: %s", s)
	}
	return status, nil
}
