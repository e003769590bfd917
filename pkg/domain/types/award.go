package types

import "fmt"

// AwardDecision is the buyer's answer to "did you award a contract?"
type AwardDecision string

const (
	AwardDecisionYes  AwardDecision = "yes"
	AwardDecisionNo   AwardDecision = "no"
	AwardDecisionBack AwardDecision = "back"
)

func (d AwardDecision) IsValid() bool {
	switch d {
	case AwardDecisionYes, AwardDecisionNo, AwardDecisionBack:
		return true
	default:
		return false
	}
}

// ParseAwardDecision parses a string into an AwardDecision
func ParseAwardDecision(s string) (AwardDecision, error) {
	d := AwardDecision(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid award decision: %s", s)
	}
	return d, nil
}

// CancelReason is why a closed brief ended without a contract. It is also the
// resulting brief status.
type CancelReason string

const (
	CancelReasonCancelled    CancelReason = "cancelled"
	CancelReasonUnsuccessful CancelReason = "unsuccessful"
)

func (r CancelReason) IsValid() bool {
	return r == CancelReasonCancelled || r == CancelReasonUnsuccessful
}

// Status returns the brief status the reason leads to
func (r CancelReason) Status() BriefStatus {
	return BriefStatus(r)
}

// ParseCancelReason parses a string into a CancelReason
func ParseCancelReason(s string) (CancelReason, error) {
	r := CancelReason(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid cancel reason: %s", s)
	}
	return r, nil
}
