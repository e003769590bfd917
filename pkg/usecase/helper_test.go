package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
	"github.com/marketplace-labs/briefdesk/pkg/repository/memory"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
)

const (
	buyerID   = "42"
	dos       = "digital-outcomes-and-specialists"
	specs     = "digital-specialists"
	outcomes  = "digital-outcomes"
	noBriefs  = "user-research-studios"
	otherUser = "99"
)

var (
	now     = time.Date(2017, 3, 1, 9, 0, 0, 0, time.UTC)
	cutover = time.Date(2016, 12, 1, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	repo *memory.Memory
	uc   *usecase.UseCases
}

func setup(t *testing.T, opts ...usecase.Option) *fixture {
	t.Helper()

	repo := memory.New()
	gt.NoError(t, repo.Framework().Put(context.Background(), &model.Framework{
		Slug:   dos,
		Name:   "Digital Outcomes and Specialists",
		Family: dos,
		Status: types.FrameworkStatusLive,
		Lots: []model.Lot{
			{Slug: specs, Name: "Digital specialists", AllowsBrief: true},
			{Slug: outcomes, Name: "Digital outcomes", AllowsBrief: true},
			{Slug: noBriefs, Name: "User research studios", AllowsBrief: false},
		},
	})).Required()

	opts = append([]usecase.Option{
		usecase.WithClock(func() time.Time { return now }),
		usecase.WithEvidenceCutover(cutover),
	}, opts...)

	return &fixture{repo: repo, uc: usecase.New(repo, opts...)}
}

func (f *fixture) setFrameworkStatus(t *testing.T, status types.FrameworkStatus) {
	t.Helper()
	ctx := context.Background()
	fw, err := f.repo.Framework().Get(ctx, dos)
	gt.NoError(t, err).Required()
	fw.Status = status
	gt.NoError(t, f.repo.Framework().Put(ctx, fw)).Required()
}

// addBrief stores a specialists brief owned by the test buyer
func (f *fixture) addBrief(t *testing.T, status types.BriefStatus, mutate ...func(b *model.Brief)) *model.Brief {
	t.Helper()

	b := &model.Brief{
		Title:                  "I need a thing to do a thing",
		FrameworkSlug:          dos,
		FrameworkFamily:        dos,
		LotSlug:                specs,
		Status:                 status,
		OwnerID:                buyerID,
		EssentialRequirements:  []string{"E1", "E2"},
		NiceToHaveRequirements: []string{"Nice1", "Nice2", "Nice3"},
		CreatedAt:              now.Add(-48 * time.Hour),
	}
	if status != types.BriefStatusDraft {
		b.PublishedAt = time.Date(2016, 6, 1, 9, 0, 0, 0, time.UTC)
		b.ApplicationsClosedAt = time.Date(2016, 6, 15, 23, 59, 59, 0, time.UTC)
	}
	for _, m := range mutate {
		m(b)
	}

	created, err := f.repo.Brief().Create(context.Background(), b)
	gt.NoError(t, err).Required()
	return created
}

func (f *fixture) addResponse(t *testing.T, briefID string, status types.BriefResponseStatus, answers map[string]any) *model.BriefResponse {
	t.Helper()

	created, err := f.repo.BriefResponse().Create(context.Background(), &model.BriefResponse{
		BriefID: briefID,
		Status:  status,
		Answers: answers,
	})
	gt.NoError(t, err).Required()
	return created
}

func ref(b *model.Brief) usecase.BriefRef {
	return usecase.BriefRef{Framework: b.FrameworkSlug, Lot: b.LotSlug, BriefID: b.ID, BuyerID: buyerID}
}

func complete(b *model.Brief) {
	for id, v := range map[string]any{
		"specialistRole":    "developer",
		"location":          "London",
		"organisation":      "Ministry of Tea",
		"specialistWork":    "Make the tea",
		"startDate":         "2017-04-01",
		"numberOfSuppliers": "3",
		"evaluationType":    []any{"Reference"},
	} {
		b.SetValue(id, v)
	}
}

func legacyAnswers(name string, essentials, nice []any) map[string]any {
	return map[string]any{
		"supplierName":           name,
		"availability":           "Next Tuesday",
		"dayRate":                "£1.49",
		"essentialRequirements":  essentials,
		"niceToHaveRequirements": nice,
		"respondToEmailAddress":  "test@example.com",
	}
}
