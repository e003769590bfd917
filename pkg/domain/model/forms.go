package model

import (
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// CreateBriefForm is the title step of a new brief
type CreateBriefForm struct {
	Title string `json:"title" validate:"required,max=100"`
}

// ClarificationQuestionForm publishes a question and its answer on a live brief
type ClarificationQuestionForm struct {
	Question string `json:"question" validate:"required,max=5000"`
	Answer   string `json:"answer" validate:"required,max=5000"`
}

// AwardResponseForm selects the winning response
type AwardResponseForm struct {
	BriefResponseID string `json:"briefResponseId" validate:"required"`
}

// AwardDetailsForm is the contract step of the award flow
type AwardDetailsForm struct {
	StartDate string `json:"awardedContractStartDate" validate:"required,datetime=2006-01-02"`
	Value     string `json:"awardedContractValue" validate:"required,numeric"`
}

// AwardDetails is the contract attached to an awarded response
type AwardDetails struct {
	StartDate time.Time `json:"awardedContractStartDate" firestore:"start_date"`
	Value     float64   `json:"awardedContractValue" firestore:"value"`
}

// Parse validates the form and converts it to AwardDetails
func (f AwardDetailsForm) Parse() (*AwardDetails, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	start, err := time.Parse(time.DateOnly, f.StartDate)
	if err != nil {
		return nil, goerr.Wrap(ErrValidation, "invalid start date",
			goerr.V(FieldKey, FieldErrors{"awardedContractStartDate": "datetime"}))
	}

	value, err := strconv.ParseFloat(f.Value, 64)
	if err != nil || value <= 0 {
		return nil, goerr.Wrap(ErrValidation, "contract value must be positive",
			goerr.V(FieldKey, FieldErrors{"awardedContractValue": "gt"}))
	}

	return &AwardDetails{StartDate: start, Value: value}, nil
}
