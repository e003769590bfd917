package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

func newManifest() *model.Manifest {
	return &model.Manifest{
		Name: model.ManifestEditBrief,
		Sections: []model.Section{
			{
				Slug: "section-1",
				Name: "Section 1",
				Questions: []model.Question{
					{ID: "title", Name: "Title", Type: types.QuestionTypeText},
					{ID: "specialistRole", Name: "Role", Type: types.QuestionTypeRadios, Lots: []string{"digital-specialists"}},
				},
			},
			{
				Slug: "section-2",
				Name: "Section 2",
				Questions: []model.Question{
					{ID: "teamSize", Name: "Team size", Type: types.QuestionTypeText, Lots: []string{"digital-outcomes"}},
				},
			},
			{
				Slug: "section-3",
				Name: "Section 3",
				Questions: []model.Question{
					{ID: "location", Name: "Location", Type: types.QuestionTypeText},
					{ID: "budgetRange", Name: "Budget", Type: types.QuestionTypeText, Optional: true},
				},
			},
		},
	}
}

func TestManifestFilter(t *testing.T) {
	filtered := newManifest().Filter("digital-specialists")

	gt.Array(t, filtered.Sections).Length(2)
	gt.Value(t, filtered.Sections[0].Slug).Equal("section-1")
	gt.Array(t, filtered.Sections[0].Questions).Length(2)
	gt.Value(t, filtered.Section("section-2")).Nil()
	gt.Value(t, filtered.Section("section-3").Question("location")).NotNil()
	gt.Value(t, filtered.Section("section-3").Question("missing")).Nil()
}

func TestManifestUnanswered(t *testing.T) {
	m := newManifest().Filter("digital-specialists")

	brief := &model.Brief{Title: "A brief", Answers: map[string]any{"location": "London"}}
	required, optional := m.Unanswered(brief)
	gt.Value(t, required).Equal(1)
	gt.Value(t, optional).Equal(1)

	brief.SetValue("specialistRole", "developer")
	required, _ = m.Unanswered(brief)
	gt.Value(t, required).Equal(0)
}
