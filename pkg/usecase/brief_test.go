package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
	"github.com/marketplace-labs/briefdesk/pkg/usecase"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("counts briefs and projects awaiting outcomes", func(t *testing.T) {
		f := setup(t)
		f.addBrief(t, types.BriefStatusDraft)
		f.addBrief(t, types.BriefStatusLive)
		f.addBrief(t, types.BriefStatusLive, func(b *model.Brief) { b.OwnerID = otherUser })

		for _, p := range []*model.DirectAwardProject{
			{OwnerID: buyerID, Name: "locked", LockedAt: now},
			{OwnerID: buyerID, Name: "done", LockedAt: now, OutcomeAt: now},
			{OwnerID: buyerID, Name: "open"},
			{OwnerID: otherUser, Name: "theirs", LockedAt: now},
		} {
			_, err := f.repo.DirectAwardProject().Create(ctx, p)
			gt.NoError(t, err).Required()
		}

		d, err := f.uc.Brief.Dashboard(ctx, buyerID)
		gt.NoError(t, err).Required()
		gt.Value(t, d.BriefsTotal).Equal(2)
		gt.Value(t, d.ProjectsAwaitingOutcomesTotal).Equal(1)
		gt.Bool(t, d.HasProjects).True()
	})

	t.Run("no projects", func(t *testing.T) {
		f := setup(t)
		d, err := f.uc.Brief.Dashboard(ctx, buyerID)
		gt.NoError(t, err).Required()
		gt.Value(t, d.BriefsTotal).Equal(0)
		gt.Bool(t, d.HasProjects).False()
	})
}

func TestRequirements(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	older := f.addBrief(t, types.BriefStatusDraft, func(b *model.Brief) { b.CreatedAt = now.Add(-72 * time.Hour) })
	newer := f.addBrief(t, types.BriefStatusDraft, func(b *model.Brief) { b.CreatedAt = now.Add(-24 * time.Hour) })
	live1 := f.addBrief(t, types.BriefStatusLive, func(b *model.Brief) { b.PublishedAt = now.Add(-10 * 24 * time.Hour) })
	live2 := f.addBrief(t, types.BriefStatusLive, func(b *model.Brief) { b.PublishedAt = now.Add(-2 * 24 * time.Hour) })

	var closed []*model.Brief
	for i, status := range types.ClosedBriefStatuses() {
		closed = append(closed, f.addBrief(t, status, func(b *model.Brief) {
			b.ApplicationsClosedAt = now.Add(-time.Duration(i+1) * 24 * time.Hour)
		}))
	}
	f.addBrief(t, types.BriefStatusLive, func(b *model.Brief) { b.OwnerID = otherUser })

	req, err := f.uc.Brief.Requirements(ctx, buyerID)
	gt.NoError(t, err).Required()

	gt.Array(t, req.Drafts).Length(2).Required()
	gt.Value(t, req.Drafts[0].Brief.ID).Equal(newer.ID)
	gt.Value(t, req.Drafts[1].Brief.ID).Equal(older.ID)
	// only the title is answered on a specialists draft
	gt.Value(t, req.Drafts[0].UnansweredRequired).Equal(7)
	gt.Value(t, req.Drafts[0].UnansweredOptional).Equal(3)

	gt.Array(t, req.Live).Length(2).Required()
	gt.Value(t, req.Live[0].ID).Equal(live2.ID)
	gt.Value(t, req.Live[1].ID).Equal(live1.ID)

	gt.Array(t, req.Closed).Length(len(closed)).Required()
	for i, b := range closed {
		gt.Value(t, req.Closed[i].ID).Equal(b.ID)
	}
}

func TestCreateBrief(t *testing.T) {
	ctx := context.Background()
	form := model.CreateBriefForm{Title: "Tea maker"}

	t.Run("creates a draft", func(t *testing.T) {
		f := setup(t)
		b, err := f.uc.Brief.CreateBrief(ctx, buyerID, dos, specs, form)
		gt.NoError(t, err).Required()
		gt.Value(t, b.Status).Equal(types.BriefStatusDraft)
		gt.Value(t, b.OwnerID).Equal(buyerID)
		gt.Value(t, b.LotSlug).Equal(specs)
		gt.Value(t, b.FrameworkFamily).Equal(dos)
		gt.Value(t, b.ID).NotEqual("")
	})

	t.Run("requires a live framework", func(t *testing.T) {
		for _, status := range []types.FrameworkStatus{
			types.FrameworkStatusComing,
			types.FrameworkStatusOpen,
			types.FrameworkStatusPending,
			types.FrameworkStatusStandstill,
			types.FrameworkStatusExpired,
		} {
			f := setup(t)
			f.setFrameworkStatus(t, status)
			_, err := f.uc.Brief.CreateBrief(ctx, buyerID, dos, specs, form)
			gt.Error(t, err).Is(usecase.ErrNotFound)
		}
	})

	t.Run("lot must allow briefs", func(t *testing.T) {
		f := setup(t)
		_, err := f.uc.Brief.CreateBrief(ctx, buyerID, dos, noBriefs, form)
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})

	t.Run("lot must exist", func(t *testing.T) {
		f := setup(t)
		_, err := f.uc.Brief.CreateBrief(ctx, buyerID, dos, "no-such-lot", form)
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})

	t.Run("framework must exist", func(t *testing.T) {
		f := setup(t)
		_, err := f.uc.Brief.CreateBrief(ctx, buyerID, "g-cloud-9", specs, form)
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})

	t.Run("title is validated", func(t *testing.T) {
		f := setup(t)
		_, err := f.uc.Brief.CreateBrief(ctx, buyerID, dos, specs, model.CreateBriefForm{})
		gt.Error(t, err).Is(model.ErrValidation)
		gt.Map(t, model.FieldErrorsOf(err)).HasKey("title")
	})
}

func TestCopyBrief(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	src := f.addBrief(t, types.BriefStatusWithdrawn, func(b *model.Brief) {
		b.ClarificationQuestions = []model.ClarificationQuestion{{Question: "q", Answer: "a"}}
	})

	copied, err := f.uc.Brief.CopyBrief(ctx, ref(src))
	gt.NoError(t, err).Required()
	gt.Value(t, copied.ID).NotEqual(src.ID)
	gt.Value(t, copied.Status).Equal(types.BriefStatusDraft)
	gt.Value(t, copied.Title).Equal(src.Title)
	gt.Array(t, copied.ClarificationQuestions).Length(0)

	theirs := f.addBrief(t, types.BriefStatusLive, func(b *model.Brief) { b.OwnerID = otherUser })
	_, err = f.uc.Brief.CopyBrief(ctx, ref(theirs))
	gt.Error(t, err).Is(usecase.ErrNotFound)
}

func TestBriefGating(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	b := f.addBrief(t, types.BriefStatusDraft)

	testCases := map[string]usecase.BriefRef{
		"wrong lot":       {Framework: dos, Lot: outcomes, BriefID: b.ID, BuyerID: buyerID},
		"wrong framework": {Framework: "g-cloud-9", Lot: specs, BriefID: b.ID, BuyerID: buyerID},
		"other buyer":     {Framework: dos, Lot: specs, BriefID: b.ID, BuyerID: otherUser},
		"missing brief":   {Framework: dos, Lot: specs, BriefID: "9999", BuyerID: buyerID},
		"lot not briefed": {Framework: dos, Lot: noBriefs, BriefID: b.ID, BuyerID: buyerID},
	}

	for name, r := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Brief.Overview(ctx, r, usecase.OverviewRequest{})
			gt.Error(t, err).Is(usecase.ErrNotFound)

			_, err = f.uc.Brief.EditQuestion(ctx, r, "title", "title")
			gt.Error(t, err).Is(usecase.ErrNotFound)

			_, err = f.uc.Brief.PublishBrief(ctx, r)
			gt.Error(t, err).Is(usecase.ErrNotFound)

			gt.Error(t, f.uc.Brief.DeleteBrief(ctx, r)).Is(usecase.ErrNotFound)
		})
	}
}

func linkTexts(links []usecase.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Text
	}
	return out
}

func TestOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("draft", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft)

		ov, err := f.uc.Brief.Overview(ctx, ref(b), usecase.OverviewRequest{DeleteRequested: true, WithdrawRequested: true})
		gt.NoError(t, err).Required()

		gt.Value(t, linkTexts(ov.Links)).Equal([]string{"Preview your requirements", "Publish your requirements"})
		gt.Bool(t, ov.DeleteRequested).True()
		gt.Bool(t, ov.WithdrawRequested).False()

		sections := map[string]usecase.SectionSummary{}
		for _, s := range ov.Sections {
			sections[s.Slug] = s
		}
		gt.Bool(t, sections["title"].Complete).True()
		gt.Bool(t, sections["location"].Complete).False()
		// a section of optional questions only is complete once they are answered
		gt.Bool(t, sections["how-long-your-brief-is-open"].Complete).False()

		gt.Value(t, sections["title"].Path).Equal(ref(b).Path("edit", "title", "title"))
		gt.Value(t, sections["description-of-work"].Path).Equal(ref(b).Path("edit", "description-of-work"))
	})

	t.Run("live on expired framework", func(t *testing.T) {
		f := setup(t)
		f.setFrameworkStatus(t, types.FrameworkStatusExpired)
		b := f.addBrief(t, types.BriefStatusLive, func(b *model.Brief) {
			b.ClarificationQuestions = []model.ClarificationQuestion{
				{Question: "Why?", Answer: "Because"},
				{Question: "When?", Answer: "Soon"},
			}
		})

		ov, err := f.uc.Brief.Overview(ctx, ref(b), usecase.OverviewRequest{DeleteRequested: true, WithdrawRequested: true})
		gt.NoError(t, err).Required()

		gt.Value(t, linkTexts(ov.Links)).Equal([]string{"View question and answer dates", "View your published requirements"})
		gt.Value(t, ov.Links[1].Path).Equal("/" + dos + "/opportunities/" + b.ID)
		gt.Bool(t, ov.DeleteRequested).False()
		gt.Bool(t, ov.WithdrawRequested).True()

		gt.Array(t, ov.ClarificationQuestions).Length(2).Required()
		gt.Value(t, ov.ClarificationQuestions[0].Number).Equal(1)
		gt.Value(t, ov.ClarificationQuestions[1].Number).Equal(2)
		gt.Value(t, ov.ClarificationQuestions[1].Question).Equal("When?")
	})

	t.Run("awarded shows supplier", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusClosed)
		r := f.addResponse(t, b.ID, types.BriefResponseStatusAwarded, map[string]any{"supplierName": "BananaCorp"})

		b.Status = types.BriefStatusAwarded
		b.AwardedBriefResponseID = r.ID
		_, err := f.repo.Brief().Update(ctx, b)
		gt.NoError(t, err).Required()

		ov, err := f.uc.Brief.Overview(ctx, ref(b), usecase.OverviewRequest{})
		gt.NoError(t, err).Required()
		gt.Value(t, ov.AwardedSupplierName).Equal("BananaCorp")
		gt.Value(t, linkTexts(ov.Links)).Equal([]string{"View your published requirements"})
	})

	t.Run("framework not yet live", func(t *testing.T) {
		f := setup(t)
		f.setFrameworkStatus(t, types.FrameworkStatusStandstill)
		b := f.addBrief(t, types.BriefStatusDraft)

		_, err := f.uc.Brief.Overview(ctx, ref(b), usecase.OverviewRequest{})
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})
}

func TestEditQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("returns current value", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft, func(b *model.Brief) { b.SetValue("location", "London") })

		view, err := f.uc.Brief.EditQuestion(ctx, ref(b), "location", "location")
		gt.NoError(t, err).Required()
		gt.Value(t, view.Question.Name).Equal("Location")
		gt.Value(t, view.Value).Equal(any("London"))
	})

	t.Run("not found cases", func(t *testing.T) {
		f := setup(t)
		draft := f.addBrief(t, types.BriefStatusDraft)
		live := f.addBrief(t, types.BriefStatusLive)

		_, err := f.uc.Brief.EditQuestion(ctx, ref(live), "location", "location")
		gt.Error(t, err).Is(usecase.ErrNotFound)

		_, err = f.uc.Brief.EditQuestion(ctx, ref(draft), "no-such-section", "location")
		gt.Error(t, err).Is(usecase.ErrNotFound)

		_, err = f.uc.Brief.EditQuestion(ctx, ref(draft), "location", "no-such-question")
		gt.Error(t, err).Is(usecase.ErrNotFound)

		// questions for another lot are filtered out
		_, err = f.uc.Brief.EditQuestion(ctx, ref(draft), "description-of-work", "summary")
		gt.Error(t, err).Is(usecase.ErrNotFound)

		f.setFrameworkStatus(t, types.FrameworkStatusExpired)
		_, err = f.uc.Brief.EditQuestion(ctx, ref(draft), "location", "location")
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})
}

func TestUpdateQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("single question section returns to overview", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft)

		next, err := f.uc.Brief.UpdateQuestion(ctx, ref(b), "location", "location", "Manchester")
		gt.NoError(t, err).Required()
		gt.Value(t, next).Equal(ref(b).Path())

		stored, err := f.repo.Brief().Get(ctx, b.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Value("location")).Equal(any("Manchester"))
	})

	t.Run("multi question section returns to section summary", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft)

		next, err := f.uc.Brief.UpdateQuestion(ctx, ref(b), "description-of-work", "organisation", "Ministry of Tea")
		gt.NoError(t, err).Required()
		gt.Value(t, next).Equal(ref(b).Path("edit", "description-of-work"))
	})

	t.Run("required answer", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft)

		_, err := f.uc.Brief.UpdateQuestion(ctx, ref(b), "location", "location", "")
		gt.Error(t, err).Is(model.ErrValidation)
		gt.Value(t, model.FieldErrorsOf(err)["location"]).Equal("required")
	})

	t.Run("title is validated", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft)

		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		_, err := f.uc.Brief.UpdateQuestion(ctx, ref(b), "title", "title", string(long))
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("live brief cannot be edited", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusLive)

		_, err := f.uc.Brief.UpdateQuestion(ctx, ref(b), "location", "location", "Leeds")
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})
}

func TestPublishBrief(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a complete draft", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft, complete)

		published, err := f.uc.Brief.PublishBrief(ctx, ref(b))
		gt.NoError(t, err).Required()
		gt.Value(t, published.Status).Equal(types.BriefStatusLive)
		gt.Value(t, published.PublishedAt).Equal(now)
		gt.Value(t, published.ApplicationsClosedAt).Equal(time.Date(2017, 3, 15, 23, 59, 59, 0, time.UTC))
	})

	t.Run("one week brief", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft, complete, func(b *model.Brief) {
			b.RequirementsLength = model.RequirementsLengthOneWeek
		})

		published, err := f.uc.Brief.PublishBrief(ctx, ref(b))
		gt.NoError(t, err).Required()
		gt.Value(t, published.ApplicationsClosedAt).Equal(time.Date(2017, 3, 8, 23, 59, 59, 0, time.UTC))
	})

	t.Run("unanswered required questions", func(t *testing.T) {
		f := setup(t)
		b := f.addBrief(t, types.BriefStatusDraft)

		_, err := f.uc.Brief.PublishBrief(ctx, ref(b))
		gt.Error(t, err).Is(usecase.ErrIncomplete)

		stored, err := f.repo.Brief().Get(ctx, b.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Status).Equal(types.BriefStatusDraft)
	})

	t.Run("framework must be live", func(t *testing.T) {
		f := setup(t)
		f.setFrameworkStatus(t, types.FrameworkStatusExpired)
		b := f.addBrief(t, types.BriefStatusDraft, complete)

		_, err := f.uc.Brief.PublishBrief(ctx, ref(b))
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})
}

func TestDeleteBrief(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	draft := f.addBrief(t, types.BriefStatusDraft)
	gt.NoError(t, f.uc.Brief.DeleteBrief(ctx, ref(draft))).Required()
	_, err := f.repo.Brief().Get(ctx, draft.ID)
	gt.Error(t, err).Is(interfaces.ErrNotFound)

	live := f.addBrief(t, types.BriefStatusLive)
	gt.Error(t, f.uc.Brief.DeleteBrief(ctx, ref(live))).Is(usecase.ErrNotFound)
}

func TestWithdrawBrief(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	live := f.addBrief(t, types.BriefStatusLive)
	withdrawn, err := f.uc.Brief.WithdrawBrief(ctx, ref(live))
	gt.NoError(t, err).Required()
	gt.Value(t, withdrawn.Status).Equal(types.BriefStatusWithdrawn)
	gt.Value(t, withdrawn.WithdrawnAt).Equal(now)

	for _, status := range []types.BriefStatus{types.BriefStatusDraft, types.BriefStatusClosed} {
		b := f.addBrief(t, status)
		_, err := f.uc.Brief.WithdrawBrief(ctx, ref(b))
		gt.Error(t, err).Is(usecase.ErrNotFound)
	}
}

func TestTimeline(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	live := f.addBrief(t, types.BriefStatusLive, func(b *model.Brief) {
		b.RequirementsLength = model.RequirementsLengthTwoWeeks
		b.PublishedAt = time.Date(2016, 4, 2, 20, 10, 0, 0, time.UTC)
		b.ApplicationsClosedAt = time.Date(2016, 4, 16, 23, 59, 59, 0, time.UTC)
	})

	tl, err := f.uc.Brief.Timeline(ctx, ref(live))
	gt.NoError(t, err).Required()
	gt.Value(t, tl.Dates.Published.Day()).Equal(2)
	gt.Value(t, tl.Dates.QuestionsClose.Day()).Equal(8)
	gt.Value(t, tl.Dates.AnswersClose.Day()).Equal(15)
	gt.Value(t, tl.Dates.Closing.Day()).Equal(16)

	for _, status := range []types.BriefStatus{types.BriefStatusDraft, types.BriefStatusClosed} {
		b := f.addBrief(t, status)
		_, err := f.uc.Brief.Timeline(ctx, ref(b))
		gt.Error(t, err).Is(usecase.ErrNotFound)
	}
}

func TestAddClarificationQuestion(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	live := f.addBrief(t, types.BriefStatusLive)

	updated, err := f.uc.Brief.AddClarificationQuestion(ctx, ref(live), model.ClarificationQuestionForm{
		Question: "Is there parking?",
		Answer:   "No",
	})
	gt.NoError(t, err).Required()
	gt.Array(t, updated.ClarificationQuestions).Length(1).Required()
	gt.Value(t, updated.ClarificationQuestions[0].PublishedAt).Equal(now)

	_, err = f.uc.Brief.AddClarificationQuestion(ctx, ref(live), model.ClarificationQuestionForm{Question: "No answer"})
	gt.Error(t, err).Is(model.ErrValidation)
	gt.Map(t, model.FieldErrorsOf(err)).HasKey("answer")

	closed := f.addBrief(t, types.BriefStatusClosed)
	_, err = f.uc.Brief.AddClarificationQuestion(ctx, ref(closed), model.ClarificationQuestionForm{Question: "q", Answer: "a"})
	gt.Error(t, err).Is(usecase.ErrNotFound)
}
