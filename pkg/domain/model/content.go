package model

import (
	"slices"

	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

// Manifest names used by the buyer views
const (
	ManifestEditBrief                 = "edit_brief"
	ManifestOutputBriefResponse       = "output_brief_response"
	ManifestLegacyOutputBriefResponse = "legacy_output_brief_response"
	SectionViewResponseToRequirements = "view-response-to-requirements"
)

// Question describes one schema question
type Question struct {
	ID       string             `toml:"id" json:"id"`
	Name     string             `toml:"name" json:"name"`
	Type     types.QuestionType `toml:"type" json:"type"`
	Hint     string             `toml:"hint" json:"hint,omitempty"`
	Optional bool               `toml:"optional" json:"optional"`
	// Lots restricts the question to these lot slugs. Empty means every lot.
	Lots []string `toml:"lots" json:"-"`
}

// AppliesTo reports whether the question is asked for lot
func (q Question) AppliesTo(lot string) bool {
	return len(q.Lots) == 0 || slices.Contains(q.Lots, lot)
}

type Section struct {
	Slug        string     `toml:"slug" json:"slug"`
	Name        string     `toml:"name" json:"name"`
	Description string     `toml:"description" json:"description,omitempty"`
	Questions   []Question `toml:"question" json:"questions"`
}

// Manifest is an ordered set of sections for one framework
type Manifest struct {
	Name      string    `toml:"name" json:"name"`
	Framework string    `toml:"-" json:"framework"`
	Sections  []Section `toml:"section" json:"sections"`
}

// Filter returns the manifest as seen by lot: questions for other lots are
// removed, then sections left empty.
func (m *Manifest) Filter(lot string) *Manifest {
	out := &Manifest{Name: m.Name, Framework: m.Framework}
	for _, s := range m.Sections {
		section := Section{Slug: s.Slug, Name: s.Name, Description: s.Description}
		for _, q := range s.Questions {
			if q.AppliesTo(lot) {
				section.Questions = append(section.Questions, q)
			}
		}
		if len(section.Questions) > 0 {
			out.Sections = append(out.Sections, section)
		}
	}
	return out
}

// Section returns the section with slug, or nil
func (m *Manifest) Section(slug string) *Section {
	for i := range m.Sections {
		if m.Sections[i].Slug == slug {
			return &m.Sections[i]
		}
	}
	return nil
}

// Question returns the question with id, or nil
func (s *Section) Question(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// Unanswered counts unanswered required and optional questions across the
// manifest.
func (m *Manifest) Unanswered(b *Brief) (required, optional int) {
	for _, s := range m.Sections {
		for _, q := range s.Questions {
			if b.IsAnswered(q.ID) {
				continue
			}
			if q.Optional {
				optional++
			} else {
				required++
			}
		}
	}
	return required, optional
}
