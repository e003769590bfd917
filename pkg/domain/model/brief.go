package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

// Question ids stored as typed Brief attributes rather than in Answers
const (
	QuestionTitle                  = "title"
	QuestionEssentialRequirements  = "essentialRequirements"
	QuestionNiceToHaveRequirements = "niceToHaveRequirements"
	QuestionRequirementsLength     = "requirementsLength"
)

const (
	RequirementsLengthOneWeek  = "1 week"
	RequirementsLengthTwoWeeks = "2 weeks"
)

type ClarificationQuestion struct {
	Question    string    `json:"question" firestore:"question"`
	Answer      string    `json:"answer" firestore:"answer"`
	PublishedAt time.Time `json:"publishedAt" firestore:"published_at"`
}

// Brief is a buyer's requirement posting for one framework lot
type Brief struct {
	ID                     string                  `json:"id" firestore:"id"`
	Title                  string                  `json:"title" firestore:"title"`
	FrameworkSlug          string                  `json:"frameworkSlug" firestore:"framework_slug"`
	FrameworkFamily        string                  `json:"frameworkFramework,omitempty" firestore:"framework_family"`
	LotSlug                string                  `json:"lotSlug" firestore:"lot_slug"`
	Status                 types.BriefStatus       `json:"status" firestore:"status"`
	OwnerID                string                  `json:"ownerId" firestore:"owner_id"`
	EssentialRequirements  []string                `json:"essentialRequirements,omitempty" firestore:"essential_requirements"`
	NiceToHaveRequirements []string                `json:"niceToHaveRequirements,omitempty" firestore:"nice_to_have_requirements"`
	RequirementsLength     string                  `json:"requirementsLength,omitempty" firestore:"requirements_length"`
	ClarificationQuestions []ClarificationQuestion `json:"clarificationQuestions,omitempty" firestore:"clarification_questions"`
	AwardedBriefResponseID string                  `json:"awardedBriefResponseId,omitempty" firestore:"awarded_brief_response_id"`
	CreatedAt              time.Time               `json:"createdAt" firestore:"created_at"`
	UpdatedAt              time.Time               `json:"updatedAt" firestore:"updated_at"`
	PublishedAt            time.Time               `json:"publishedAt,omitzero" firestore:"published_at"`
	ApplicationsClosedAt   time.Time               `json:"applicationsClosedAt,omitzero" firestore:"applications_closed_at"`
	WithdrawnAt            time.Time               `json:"withdrawnAt,omitzero" firestore:"withdrawn_at"`
	CancelledAt            time.Time               `json:"cancelledAt,omitzero" firestore:"cancelled_at"`
	AwardedAt              time.Time               `json:"awardedAt,omitzero" firestore:"awarded_at"`

	// Answers holds every other question answer keyed by question id
	Answers map[string]any `json:"-" firestore:"answers"`
}

type briefRecord Brief

func (b Brief) MarshalJSON() ([]byte, error) {
	return flattenRecord(briefRecord(b), b.Answers)
}

func (b *Brief) UnmarshalJSON(data []byte) error {
	var rec briefRecord
	answers, err := splitRecord(data, &rec)
	if err != nil {
		return err
	}
	*b = Brief(rec)
	b.Answers = answers
	return nil
}

// Clone returns a deep copy
func (b *Brief) Clone() *Brief {
	c := *b
	c.EssentialRequirements = append([]string(nil), b.EssentialRequirements...)
	c.NiceToHaveRequirements = append([]string(nil), b.NiceToHaveRequirements...)
	c.ClarificationQuestions = append([]ClarificationQuestion(nil), b.ClarificationQuestions...)
	c.Answers = copyAnswers(b.Answers)
	return &c
}

// Value returns the answer to questionID, nil when unanswered
func (b *Brief) Value(questionID string) any {
	switch questionID {
	case QuestionTitle:
		if b.Title == "" {
			return nil
		}
		return b.Title
	case QuestionEssentialRequirements:
		if len(b.EssentialRequirements) == 0 {
			return nil
		}
		return b.EssentialRequirements
	case QuestionNiceToHaveRequirements:
		if len(b.NiceToHaveRequirements) == 0 {
			return nil
		}
		return b.NiceToHaveRequirements
	case QuestionRequirementsLength:
		if b.RequirementsLength == "" {
			return nil
		}
		return b.RequirementsLength
	}
	return b.Answers[questionID]
}

// SetValue stores an answer; nil clears it
func (b *Brief) SetValue(questionID string, value any) {
	switch questionID {
	case QuestionTitle:
		b.Title, _ = value.(string)
		return
	case QuestionEssentialRequirements:
		b.EssentialRequirements = toStrings(value)
		return
	case QuestionNiceToHaveRequirements:
		b.NiceToHaveRequirements = toStrings(value)
		return
	case QuestionRequirementsLength:
		b.RequirementsLength, _ = value.(string)
		return
	}

	if value == nil {
		delete(b.Answers, questionID)
		return
	}
	if b.Answers == nil {
		b.Answers = make(map[string]any)
	}
	b.Answers[questionID] = value
}

// IsAnswered is false for nil, empty strings and empty lists
func (b *Brief) IsAnswered(questionID string) bool {
	switch v := b.Value(questionID).(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// Labels returns the declared item labels of a list question. Report column
// groups take their width from here, never from a response.
func (b *Brief) Labels(questionID string) []string {
	return toStrings(b.Value(questionID))
}

// Shape decides which essential requirement format every response to this
// brief uses. Briefs published on or after cutover collect structured
// evidence; older ones collected plain booleans.
func (b *Brief) Shape(cutover time.Time) Shape {
	if b.PublishedAt.IsZero() || b.PublishedAt.Before(cutover) {
		return ShapeLegacy
	}
	return ShapeEvidence
}

func (b *Brief) transition(next types.BriefStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return goerr.Wrap(ErrInvalidTransition, "brief cannot move to requested status",
			goerr.V(BriefIDKey, b.ID),
			goerr.V(StatusKey, b.Status),
			goerr.V(NextStatusKey, next))
	}
	b.Status = next
	b.UpdatedAt = now
	return nil
}

// Publish makes a draft live and fixes its application window
func (b *Brief) Publish(now time.Time) error {
	if err := b.transition(types.BriefStatusLive, now); err != nil {
		return err
	}
	b.PublishedAt = now
	b.ApplicationsClosedAt = closingDate(now, b.RequirementsLength)
	return nil
}

// CloseApplications ends the application window of a live brief
func (b *Brief) CloseApplications(now time.Time) error {
	if err := b.transition(types.BriefStatusClosed, now); err != nil {
		return err
	}
	if b.ApplicationsClosedAt.IsZero() || b.ApplicationsClosedAt.After(now) {
		b.ApplicationsClosedAt = now
	}
	return nil
}

func (b *Brief) Withdraw(now time.Time) error {
	if err := b.transition(types.BriefStatusWithdrawn, now); err != nil {
		return err
	}
	b.WithdrawnAt = now
	return nil
}

// Cancel ends a closed brief without a contract
func (b *Brief) Cancel(reason types.CancelReason, now time.Time) error {
	if !reason.IsValid() {
		return goerr.Wrap(ErrValidation, "invalid cancel reason", goerr.V("reason", reason))
	}
	if err := b.transition(reason.Status(), now); err != nil {
		return err
	}
	b.CancelledAt = now
	return nil
}

// Award records the winning response of a closed brief
func (b *Brief) Award(responseID string, now time.Time) error {
	if err := b.transition(types.BriefStatusAwarded, now); err != nil {
		return err
	}
	b.AwardedBriefResponseID = responseID
	b.AwardedAt = now
	return nil
}

// Copy returns a new draft with the same requirements. Clarification
// questions and lifecycle dates are not carried over.
func (b *Brief) Copy(now time.Time) *Brief {
	c := b.Clone()
	c.ID = ""
	c.Status = types.BriefStatusDraft
	c.ClarificationQuestions = nil
	c.AwardedBriefResponseID = ""
	c.CreatedAt = now
	c.UpdatedAt = now
	c.PublishedAt = time.Time{}
	c.ApplicationsClosedAt = time.Time{}
	c.WithdrawnAt = time.Time{}
	c.CancelledAt = time.Time{}
	c.AwardedAt = time.Time{}
	return c
}

// PublishingDates are the milestones shown on a live brief's timeline
type PublishingDates struct {
	Published      time.Time `json:"published"`
	QuestionsClose time.Time `json:"questionsClose"`
	AnswersClose   time.Time `json:"answersClose"`
	Closing        time.Time `json:"closing"`
}

// Dates computes the timeline from the publish date. An unpublished brief is
// measured from now.
func (b *Brief) Dates(now time.Time) PublishingDates {
	published := b.PublishedAt
	if published.IsZero() {
		published = now
	}

	closing := b.ApplicationsClosedAt
	if closing.IsZero() {
		closing = closingDate(published, b.RequirementsLength)
	}

	questionDays := 6
	if b.RequirementsLength == RequirementsLengthOneWeek {
		questionDays = 2
	}

	return PublishingDates{
		Published:      published,
		QuestionsClose: endOfDay(published.AddDate(0, 0, questionDays)),
		AnswersClose:   endOfDay(closing.AddDate(0, 0, -1)),
		Closing:        closing,
	}
}

func closingDate(published time.Time, length string) time.Time {
	days := 14
	if length == RequirementsLengthOneWeek {
		days = 7
	}
	return endOfDay(published.AddDate(0, 0, days))
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

func toStrings(v any) []string {
	switch x := v.(type) {
	case []string:
		return append([]string(nil), x...)
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
