package model

import (
	"time"

	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

// Answer keys of a supplier response that the buyer views read directly
const (
	FieldSupplierName             = "supplierName"
	FieldRespondToEmailAddress    = "respondToEmailAddress"
	FieldEssentialRequirements    = "essentialRequirements"
	FieldEssentialRequirementsMet = "essentialRequirementsMet"
	FieldNiceToHaveRequirements   = "niceToHaveRequirements"
)

// BriefResponse is one supplier's answer set for a brief. Answers is kept as
// the raw record because its shape depends on when the brief was published.
type BriefResponse struct {
	ID           string                    `json:"id" firestore:"id"`
	BriefID      string                    `json:"briefId" firestore:"brief_id"`
	SupplierID   string                    `json:"supplierId,omitempty" firestore:"supplier_id"`
	Status       types.BriefResponseStatus `json:"status" firestore:"status"`
	AwardDetails *AwardDetails             `json:"awardDetails,omitempty" firestore:"award_details"`
	CreatedAt    time.Time                 `json:"createdAt" firestore:"created_at"`
	SubmittedAt  time.Time                 `json:"submittedAt,omitzero" firestore:"submitted_at"`

	Answers map[string]any `json:"-" firestore:"answers"`
}

type briefResponseRecord BriefResponse

func (r BriefResponse) MarshalJSON() ([]byte, error) {
	return flattenRecord(briefResponseRecord(r), r.Answers)
}

func (r *BriefResponse) UnmarshalJSON(data []byte) error {
	var rec briefResponseRecord
	answers, err := splitRecord(data, &rec)
	if err != nil {
		return err
	}
	*r = BriefResponse(rec)
	r.Answers = answers
	return nil
}

// Clone returns a deep copy
func (r *BriefResponse) Clone() *BriefResponse {
	c := *r
	if r.AwardDetails != nil {
		details := *r.AwardDetails
		c.AwardDetails = &details
	}
	c.Answers = copyAnswers(r.Answers)
	return &c
}

// Field returns a raw answer and whether the key is present at all
func (r *BriefResponse) Field(key string) (any, bool) {
	v, ok := r.Answers[key]
	return v, ok
}

func (r *BriefResponse) SupplierName() string {
	name, _ := r.Answers[FieldSupplierName].(string)
	return name
}

func (r *BriefResponse) ContactEmail() string {
	email, _ := r.Answers[FieldRespondToEmailAddress].(string)
	return email
}

// HasEssentialRequirementsMet reports presence of the structured evidence
// flag, whatever its value.
func (r *BriefResponse) HasEssentialRequirementsMet() bool {
	_, ok := r.Answers[FieldEssentialRequirementsMet]
	return ok
}
