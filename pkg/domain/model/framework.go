package model

import (
	"time"

	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

type Lot struct {
	Slug        string `json:"slug" firestore:"slug" toml:"slug"`
	Name        string `json:"name" firestore:"name" toml:"name"`
	AllowsBrief bool   `json:"allowsBrief" firestore:"allows_brief" toml:"allows_brief"`
}

// Framework is a procurement vehicle and the lots briefs can be posted to
type Framework struct {
	Slug   string                `json:"slug" firestore:"slug" toml:"slug"`
	Name   string                `json:"name" firestore:"name" toml:"name"`
	Family string                `json:"framework" firestore:"family" toml:"family"`
	Status types.FrameworkStatus `json:"status" firestore:"status" toml:"status"`
	Lots   []Lot                 `json:"lots" firestore:"lots" toml:"lot"`
}

// Lot returns the lot with slug, or nil
func (f *Framework) Lot(slug string) *Lot {
	for i := range f.Lots {
		if f.Lots[i].Slug == slug {
			return &f.Lots[i]
		}
	}
	return nil
}

func (f *Framework) Clone() *Framework {
	c := *f
	c.Lots = append([]Lot(nil), f.Lots...)
	return &c
}

// DirectAwardProject is a buyer's search-and-award project. Only its
// locked/outcome state feeds the dashboard.
type DirectAwardProject struct {
	ID        string    `json:"id" firestore:"id"`
	OwnerID   string    `json:"ownerId" firestore:"owner_id"`
	Name      string    `json:"name" firestore:"name"`
	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
	LockedAt  time.Time `json:"lockedAt,omitzero" firestore:"locked_at"`
	OutcomeAt time.Time `json:"outcomeAt,omitzero" firestore:"outcome_at"`
}

// AwaitingOutcome is true once the search is locked but no outcome recorded
func (p *DirectAwardProject) AwaitingOutcome() bool {
	return !p.LockedAt.IsZero() && p.OutcomeAt.IsZero()
}
