package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/report"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
	"github.com/marketplace-labs/briefdesk/pkg/service/archive"
	"github.com/marketplace-labs/briefdesk/pkg/utils/async"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

type ResponseUseCase struct {
	gate    *gate
	archive interfaces.ReportArchive
	cutover time.Time
}

// ResponsesSummary is the responses page of a closed brief
type ResponsesSummary struct {
	Brief    *model.Brief `json:"brief"`
	Eligible int          `json:"eligible"`
	Failed   int          `json:"failed"`
	// RequiredEvidence is nil without responses
	RequiredEvidence *bool  `json:"requiredEvidence"`
	DownloadFormat   string `json:"downloadFormat"`
}

func (uc *ResponseUseCase) listResponses(ctx context.Context, ref BriefRef) ([]*model.BriefResponse, error) {
	responses, err := uc.gate.repo.BriefResponse().ListByBrief(ctx, ref.BriefID, types.SubmittedBriefResponseStatuses()...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list brief responses", ref.values()...)
	}
	return responses, nil
}

func (uc *ResponseUseCase) ResponsesSummary(ctx context.Context, ref BriefRef) (*ResponsesSummary, error) {
	_, b, err := uc.gate.frameworkAndBrief(ctx, ref, viewableFrameworkStatuses, types.ClosedPublishedBriefStatuses()...)
	if err != nil {
		return nil, err
	}

	responses, err := uc.listResponses(ctx, ref)
	if err != nil {
		return nil, err
	}

	s := report.Summarise(b, responses, uc.cutover)
	summary := &ResponsesSummary{
		Brief:          b,
		Eligible:       s.Eligible,
		Failed:         s.Failed,
		DownloadFormat: report.SelectFormat(report.Eligible(b, responses, uc.cutover)).String(),
	}
	if len(responses) > 0 {
		evidence := s.Shape == model.ShapeEvidence && responses[0].HasEssentialRequirementsMet()
		summary.RequiredEvidence = &evidence
	}
	return summary, nil
}

// DownloadResponses renders the eligible responses of a closed brief. When
// an archive is configured a copy is stored in the background.
func (uc *ResponseUseCase) DownloadResponses(ctx context.Context, ref BriefRef) (*report.Document, error) {
	var (
		b         *model.Brief
		responses []*model.BriefResponse
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		_, b, err = uc.gate.frameworkAndBrief(egCtx, ref, viewableFrameworkStatuses, types.ClosedPublishedBriefStatuses()...)
		return err
	})
	eg.Go(func() error {
		var err error
		responses, err = uc.listResponses(egCtx, ref)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	doc, err := report.Generate(b, responses, uc.cutover, func(manifest string) ([]model.Question, error) {
		return uc.gate.questions(b.FrameworkSlug, b.LotSlug, manifest, model.SectionViewResponseToRequirements)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate report", ref.values()...)
	}

	logging.From(ctx).Info("report generated",
		"brief_id", b.ID,
		"format", doc.Format.String(),
		"rows", doc.Rows,
		"responses", len(responses))

	if uc.archive != nil {
		key := archive.Key(b.ID, doc.Filename)
		async.Dispatch(ctx, "archive_report", func(ctx context.Context) error {
			if err := uc.archive.Put(ctx, key, doc.ContentType, doc.Body); err != nil {
				return goerr.Wrap(err, "failed to archive report", goerr.V(BriefIDKey, b.ID), goerr.V("key", key))
			}
			logging.From(ctx).Info("report archived", "key", key)
			return nil
		})
	}

	return doc, nil
}
