package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

type BriefUseCase struct {
	gate *gate
	now  func() time.Time
}

// Dashboard is the buyer landing page
type Dashboard struct {
	BriefsTotal                   int  `json:"briefsTotal"`
	ProjectsAwaitingOutcomesTotal int  `json:"projectsAwaitingOutcomesTotal"`
	HasProjects                   bool `json:"hasProjects"`
}

func (uc *BriefUseCase) Dashboard(ctx context.Context, buyerID string) (*Dashboard, error) {
	var (
		d        Dashboard
		projects []*model.DirectAwardProject
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		briefs, err := uc.gate.repo.Brief().ListByOwner(egCtx, buyerID)
		if err != nil {
			return goerr.Wrap(err, "failed to list briefs", goerr.V(BuyerIDKey, buyerID))
		}
		d.BriefsTotal = len(briefs)
		return nil
	})
	eg.Go(func() error {
		var err error
		projects, err = uc.gate.repo.DirectAwardProject().ListByOwner(egCtx, buyerID)
		if err != nil {
			return goerr.Wrap(err, "failed to list direct award projects", goerr.V(BuyerIDKey, buyerID))
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.AwaitingOutcome() {
			d.ProjectsAwaitingOutcomesTotal++
		}
	}
	d.HasProjects = len(projects) > 0

	return &d, nil
}

// DraftBrief is a draft with its outstanding question counts
type DraftBrief struct {
	Brief              *model.Brief `json:"brief"`
	UnansweredRequired int          `json:"unansweredRequired"`
	UnansweredOptional int          `json:"unansweredOptional"`
}

// Requirements lists a buyer's briefs by lifecycle stage
type Requirements struct {
	Drafts []DraftBrief   `json:"drafts"`
	Live   []*model.Brief `json:"live"`
	Closed []*model.Brief `json:"closed"`
}

func (uc *BriefUseCase) Requirements(ctx context.Context, buyerID string) (*Requirements, error) {
	briefs, err := uc.gate.repo.Brief().ListByOwner(ctx, buyerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list briefs", goerr.V(BuyerIDKey, buyerID))
	}

	req := &Requirements{
		Drafts: []DraftBrief{},
		Live:   []*model.Brief{},
		Closed: []*model.Brief{},
	}

	for _, b := range briefs {
		switch {
		case b.Status == types.BriefStatusDraft:
			m, err := uc.gate.editManifest(b)
			if err != nil {
				return nil, err
			}
			required, optional := m.Unanswered(b)
			req.Drafts = append(req.Drafts, DraftBrief{Brief: b, UnansweredRequired: required, UnansweredOptional: optional})
		case b.Status == types.BriefStatusLive:
			req.Live = append(req.Live, b)
		case b.Status.In(types.ClosedBriefStatuses()...):
			req.Closed = append(req.Closed, b)
		}
	}

	slices.SortStableFunc(req.Drafts, func(a, b DraftBrief) int { return b.Brief.CreatedAt.Compare(a.Brief.CreatedAt) })
	slices.SortStableFunc(req.Live, func(a, b *model.Brief) int { return b.PublishedAt.Compare(a.PublishedAt) })
	slices.SortStableFunc(req.Closed, func(a, b *model.Brief) int {
		return b.ApplicationsClosedAt.Compare(a.ApplicationsClosedAt)
	})

	return req, nil
}

// CreateBrief starts a draft on a live framework
func (uc *BriefUseCase) CreateBrief(ctx context.Context, buyerID, framework, lot string, form model.CreateBriefForm) (*model.Brief, error) {
	fw, _, err := uc.gate.frameworkAndLot(ctx, framework, lot, types.FrameworkStatusLive)
	if err != nil {
		return nil, err
	}
	if err := model.Validate(form); err != nil {
		return nil, err
	}

	now := uc.now()
	created, err := uc.gate.repo.Brief().Create(ctx, &model.Brief{
		Title:           form.Title,
		FrameworkSlug:   fw.Slug,
		FrameworkFamily: fw.Family,
		LotSlug:         lot,
		Status:          types.BriefStatusDraft,
		OwnerID:         buyerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create brief",
			goerr.V(FrameworkKey, framework),
			goerr.V(LotKey, lot))
	}

	logging.From(ctx).Info("brief created", "brief_id", created.ID, "buyer_id", buyerID)
	return created, nil
}

// CopyBrief makes a new draft from any of the buyer's briefs, withdrawn ones
// included
func (uc *BriefUseCase) CopyBrief(ctx context.Context, ref BriefRef) (*model.Brief, error) {
	src, err := uc.gate.brief(ctx, ref)
	if err != nil {
		return nil, err
	}

	created, err := uc.gate.repo.Brief().Create(ctx, src.Copy(uc.now()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to copy brief", ref.values()...)
	}
	return created, nil
}

// SectionSummary is one section of the overview checklist
type SectionSummary struct {
	Slug               string `json:"slug"`
	Name               string `json:"name"`
	Complete           bool   `json:"complete"`
	UnansweredRequired int    `json:"unansweredRequired"`
	UnansweredOptional int    `json:"unansweredOptional"`
	// Path edits the question directly when the section has only one
	Path string `json:"path"`
}

type Link struct {
	Text string `json:"text"`
	Path string `json:"path"`
}

type NumberedQuestion struct {
	Number int `json:"number"`
	model.ClarificationQuestion
}

// Overview is the brief management page
type Overview struct {
	Brief                  *model.Brief       `json:"brief"`
	Framework              *model.Framework   `json:"framework"`
	Sections               []SectionSummary   `json:"sections"`
	Links                  []Link             `json:"links"`
	ClarificationQuestions []NumberedQuestion `json:"clarificationQuestions"`
	AwardedSupplierName    string             `json:"awardedSupplierName,omitempty"`
	DeleteRequested        bool               `json:"deleteRequested"`
	WithdrawRequested      bool               `json:"withdrawRequested"`
}

// OverviewRequest carries the confirmation prompts a buyer asked for
type OverviewRequest struct {
	DeleteRequested   bool
	WithdrawRequested bool
}

type statusLink struct {
	text     string
	elem     []string
	statuses []types.BriefStatus
}

var overviewLinks = []statusLink{
	{text: "Preview your requirements", elem: []string{"preview"}, statuses: []types.BriefStatus{types.BriefStatusDraft}},
	{text: "Publish your requirements", elem: []string{"publish"}, statuses: []types.BriefStatus{types.BriefStatusDraft}},
	{text: "View question and answer dates", elem: []string{"timeline"}, statuses: []types.BriefStatus{types.BriefStatusLive}},
	{text: "View your published requirements", statuses: []types.BriefStatus{
		types.BriefStatusLive,
		types.BriefStatusClosed,
		types.BriefStatusAwarded,
		types.BriefStatusCancelled,
		types.BriefStatusUnsuccessful,
	}},
}

func (uc *BriefUseCase) Overview(ctx context.Context, ref BriefRef, req OverviewRequest) (*Overview, error) {
	fw, b, err := uc.gate.frameworkAndBrief(ctx, ref, viewableFrameworkStatuses)
	if err != nil {
		return nil, err
	}

	m, err := uc.gate.editManifest(b)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Brief:                  b,
		Framework:              fw,
		Sections:               summariseSections(m, b, ref),
		Links:                  []Link{},
		ClarificationQuestions: make([]NumberedQuestion, len(b.ClarificationQuestions)),
		DeleteRequested:        req.DeleteRequested && b.Status == types.BriefStatusDraft,
		WithdrawRequested:      req.WithdrawRequested && b.Status == types.BriefStatusLive,
	}

	for i, q := range b.ClarificationQuestions {
		ov.ClarificationQuestions[i] = NumberedQuestion{Number: i + 1, ClarificationQuestion: q}
	}

	for _, l := range overviewLinks {
		if !b.Status.In(l.statuses...) {
			continue
		}
		path := ref.Path(l.elem...)
		if len(l.elem) == 0 {
			path = "/" + b.FrameworkFamily + "/opportunities/" + b.ID
		}
		ov.Links = append(ov.Links, Link{Text: l.text, Path: path})
	}

	if b.AwardedBriefResponseID != "" {
		resp, err := uc.gate.repo.BriefResponse().Get(ctx, b.AwardedBriefResponseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get awarded response",
				append(ref.values(), goerr.V(ResponseIDKey, b.AwardedBriefResponseID))...)
		}
		ov.AwardedSupplierName = resp.SupplierName()
	}

	return ov, nil
}

func summariseSections(m *model.Manifest, b *model.Brief, ref BriefRef) []SectionSummary {
	out := make([]SectionSummary, 0, len(m.Sections))
	for _, s := range m.Sections {
		section := &model.Manifest{Sections: []model.Section{s}}
		required, optional := section.Unanswered(b)

		hasRequired := slices.ContainsFunc(s.Questions, func(q model.Question) bool { return !q.Optional })
		complete := optional == 0
		if hasRequired {
			complete = required == 0
		}

		out = append(out, SectionSummary{
			Slug:               s.Slug,
			Name:               s.Name,
			Complete:           complete,
			UnansweredRequired: required,
			UnansweredOptional: optional,
			Path:               sectionPath(ref, &s),
		})
	}
	return out
}

// sectionPath is where editing a section starts: its summary when it has
// several questions or a description, otherwise its only question
func sectionPath(ref BriefRef, s *model.Section) string {
	if len(s.Questions) > 1 || s.Description != "" {
		return ref.Path("edit", s.Slug)
	}
	return ref.Path("edit", s.Slug, s.Questions[0].ID)
}

// QuestionView is one question of a draft being edited
type QuestionView struct {
	Brief    *model.Brief    `json:"brief"`
	Section  *model.Section  `json:"section"`
	Question *model.Question `json:"question"`
	Value    any             `json:"value"`
}

func (uc *BriefUseCase) draftQuestion(ctx context.Context, ref BriefRef, sectionSlug, questionID string) (*model.Brief, *model.Section, *model.Question, error) {
	_, b, err := uc.gate.frameworkAndBrief(ctx, ref, []types.FrameworkStatus{types.FrameworkStatusLive}, types.BriefStatusDraft)
	if err != nil {
		return nil, nil, nil, err
	}

	m, err := uc.gate.editManifest(b)
	if err != nil {
		return nil, nil, nil, err
	}

	section := m.Section(sectionSlug)
	if section == nil {
		return nil, nil, nil, notFound(nil, "section does not exist",
			append(ref.values(), goerr.V(SectionKey, sectionSlug))...)
	}
	question := section.Question(questionID)
	if question == nil {
		return nil, nil, nil, notFound(nil, "question does not exist",
			append(ref.values(), goerr.V(SectionKey, sectionSlug), goerr.V(QuestionKey, questionID))...)
	}
	return b, section, question, nil
}

func (uc *BriefUseCase) EditQuestion(ctx context.Context, ref BriefRef, sectionSlug, questionID string) (*QuestionView, error) {
	b, section, question, err := uc.draftQuestion(ctx, ref, sectionSlug, questionID)
	if err != nil {
		return nil, err
	}
	return &QuestionView{Brief: b, Section: section, Question: question, Value: b.Value(question.ID)}, nil
}

// UpdateQuestion stores an answer on a draft and returns where the buyer
// goes next
func (uc *BriefUseCase) UpdateQuestion(ctx context.Context, ref BriefRef, sectionSlug, questionID string, value any) (string, error) {
	b, section, question, err := uc.draftQuestion(ctx, ref, sectionSlug, questionID)
	if err != nil {
		return "", err
	}

	if question.ID == model.QuestionTitle {
		title, _ := value.(string)
		if err := model.Validate(model.CreateBriefForm{Title: title}); err != nil {
			return "", err
		}
	}

	b.SetValue(question.ID, value)
	if !question.Optional && !b.IsAnswered(question.ID) {
		return "", goerr.Wrap(model.ErrValidation, "answer is required",
			goerr.V(model.FieldKey, model.FieldErrors{question.ID: "required"}))
	}
	b.UpdatedAt = uc.now()

	if _, err := uc.gate.repo.Brief().Update(ctx, b); err != nil {
		return "", goerr.Wrap(err, "failed to update brief",
			append(ref.values(), goerr.V(QuestionKey, questionID))...)
	}

	if len(section.Questions) > 1 || section.Description != "" {
		return ref.Path("edit", section.Slug), nil
	}
	return ref.Path(), nil
}

// PublishBrief makes a complete draft live
func (uc *BriefUseCase) PublishBrief(ctx context.Context, ref BriefRef) (*model.Brief, error) {
	_, b, err := uc.gate.frameworkAndBrief(ctx, ref, []types.FrameworkStatus{types.FrameworkStatusLive}, types.BriefStatusDraft)
	if err != nil {
		return nil, err
	}

	m, err := uc.gate.editManifest(b)
	if err != nil {
		return nil, err
	}
	if required, _ := m.Unanswered(b); required > 0 {
		return nil, goerr.Wrap(ErrIncomplete, "cannot publish brief",
			append(ref.values(), goerr.V("unanswered", required))...)
	}

	if err := b.Publish(uc.now()); err != nil {
		return nil, goerr.Wrap(err, "failed to publish brief", ref.values()...)
	}

	updated, err := uc.gate.repo.Brief().Update(ctx, b)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update brief", ref.values()...)
	}

	logging.From(ctx).Info("brief published", "brief_id", b.ID, "closing", b.ApplicationsClosedAt)
	return updated, nil
}

func (uc *BriefUseCase) DeleteBrief(ctx context.Context, ref BriefRef) error {
	_, _, err := uc.gate.frameworkAndBrief(ctx, ref, viewableFrameworkStatuses, types.BriefStatusDraft)
	if err != nil {
		return err
	}

	if err := uc.gate.repo.Brief().Delete(ctx, ref.BriefID); err != nil {
		return goerr.Wrap(err, "failed to delete brief", ref.values()...)
	}

	logging.From(ctx).Info("brief deleted", "brief_id", ref.BriefID)
	return nil
}

func (uc *BriefUseCase) WithdrawBrief(ctx context.Context, ref BriefRef) (*model.Brief, error) {
	_, b, err := uc.gate.frameworkAndBrief(ctx, ref, viewableFrameworkStatuses, types.BriefStatusLive)
	if err != nil {
		return nil, err
	}

	if err := b.Withdraw(uc.now()); err != nil {
		return nil, goerr.Wrap(err, "failed to withdraw brief", ref.values()...)
	}

	updated, err := uc.gate.repo.Brief().Update(ctx, b)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update brief", ref.values()...)
	}

	logging.From(ctx).Info("brief withdrawn", "brief_id", b.ID)
	return updated, nil
}

type Timeline struct {
	Brief *model.Brief          `json:"brief"`
	Dates model.PublishingDates `json:"dates"`
}

// Timeline shows the question and answer dates of a live brief
func (uc *BriefUseCase) Timeline(ctx context.Context, ref BriefRef) (*Timeline, error) {
	_, b, err := uc.gate.frameworkAndBrief(ctx, ref, viewableFrameworkStatuses, types.BriefStatusLive)
	if err != nil {
		return nil, err
	}
	return &Timeline{Brief: b, Dates: b.Dates(uc.now())}, nil
}

// AddClarificationQuestion publishes a question and answer on a live brief
func (uc *BriefUseCase) AddClarificationQuestion(ctx context.Context, ref BriefRef, form model.ClarificationQuestionForm) (*model.Brief, error) {
	_, b, err := uc.gate.frameworkAndBrief(ctx, ref, viewableFrameworkStatuses, types.BriefStatusLive)
	if err != nil {
		return nil, err
	}
	if err := model.Validate(form); err != nil {
		return nil, err
	}

	now := uc.now()
	b.ClarificationQuestions = append(b.ClarificationQuestions, model.ClarificationQuestion{
		Question:    form.Question,
		Answer:      form.Answer,
		PublishedAt: now,
	})
	b.UpdatedAt = now

	updated, err := uc.gate.repo.Brief().Update(ctx, b)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to add clarification question", ref.values()...)
	}
	return updated, nil
}
