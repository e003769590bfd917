package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// ErrNotFound covers every gating failure: missing brief, another buyer's
	// brief, wrong framework or lot, or a status that forbids the operation
	ErrNotFound = goerr.New("not found")

	// ErrIncomplete is returned when publishing a brief with unanswered
	// required questions
	ErrIncomplete = goerr.New("brief has unanswered required questions")

	// ErrNoResponses is returned by the award flow for a brief nobody applied to
	ErrNoResponses = goerr.New("brief has no responses")
)

// Context keys for error values
const (
	FrameworkKey  = "framework"
	LotKey        = "lot"
	BriefIDKey    = "brief_id"
	BuyerIDKey    = "buyer_id"
	SectionKey    = "section"
	QuestionKey   = "question"
	ResponseIDKey = "brief_response_id"
	ReasonKey     = "reason"
)
