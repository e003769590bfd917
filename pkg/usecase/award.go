package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
)

// AwardUseCase drives the two step award flow and cancellation of closed
// briefs
type AwardUseCase struct {
	gate    *gate
	cutover time.Time
	now     func() time.Time
}

func (uc *AwardUseCase) closedBrief(ctx context.Context, ref BriefRef) (*model.Brief, error) {
	_, b, err := uc.gate.frameworkAndBrief(ctx, ref, viewableFrameworkStatuses, types.BriefStatusClosed)
	return b, err
}

// AwardOrCancel maps the buyer's answer to "did you award a contract?" to
// the next location
func (uc *AwardUseCase) AwardOrCancel(ctx context.Context, ref BriefRef, decision types.AwardDecision) (string, error) {
	if _, err := uc.closedBrief(ctx, ref); err != nil {
		return "", err
	}

	switch decision {
	case types.AwardDecisionYes:
		return ref.Path("award-contract"), nil
	case types.AwardDecisionNo:
		return ref.Path("cancel"), nil
	case types.AwardDecisionBack:
		return ref.Path("responses"), nil
	default:
		return "", goerr.Wrap(model.ErrValidation, "select if you have awarded a contract",
			goerr.V(model.FieldKey, model.FieldErrors{"awardOrCancelDecision": "required"}))
	}
}

// AwardChoice is the list a buyer picks the winning supplier from
type AwardChoice struct {
	Brief     *model.Brief           `json:"brief"`
	Responses []*model.BriefResponse `json:"responses"`
	// Selected is a response chosen earlier and not yet confirmed
	Selected string `json:"selected,omitempty"`
}

func (uc *AwardUseCase) choices(ctx context.Context, ref BriefRef) (*AwardChoice, error) {
	b, err := uc.closedBrief(ctx, ref)
	if err != nil {
		return nil, err
	}

	responses, err := uc.gate.repo.BriefResponse().ListByBrief(ctx, b.ID,
		types.BriefResponseStatusSubmitted,
		types.BriefResponseStatusPendingAwarded)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list brief responses", ref.values()...)
	}

	// only suppliers that met every essential requirement can win
	shape := b.Shape(uc.cutover)
	responses = slices.DeleteFunc(responses, func(r *model.BriefResponse) bool {
		return !model.DecodeEssentials(shape, r).Met()
	})
	if len(responses) == 0 {
		return nil, goerr.Wrap(ErrNoResponses, "nothing to award", ref.values()...)
	}

	slices.SortStableFunc(responses, func(a, b *model.BriefResponse) int {
		return strings.Compare(a.SupplierName(), b.SupplierName())
	})

	choice := &AwardChoice{Brief: b, Responses: responses}
	for _, r := range responses {
		if r.Status == types.BriefResponseStatusPendingAwarded {
			choice.Selected = r.ID
		}
	}
	return choice, nil
}

func (uc *AwardUseCase) AwardChoices(ctx context.Context, ref BriefRef) (*AwardChoice, error) {
	return uc.choices(ctx, ref)
}

// AwardResponse marks the chosen response as pending award and returns the
// contract details location
func (uc *AwardUseCase) AwardResponse(ctx context.Context, ref BriefRef, form model.AwardResponseForm) (string, error) {
	choice, err := uc.choices(ctx, ref)
	if err != nil {
		return "", err
	}
	if err := model.Validate(form); err != nil {
		return "", err
	}

	idx := slices.IndexFunc(choice.Responses, func(r *model.BriefResponse) bool { return r.ID == form.BriefResponseID })
	if idx < 0 {
		return "", goerr.Wrap(model.ErrValidation, "not a valid choice",
			goerr.V(model.FieldKey, model.FieldErrors{"briefResponseId": "oneof"}))
	}

	for _, r := range choice.Responses {
		next := types.BriefResponseStatusSubmitted
		if r.ID == form.BriefResponseID {
			next = types.BriefResponseStatusPendingAwarded
		}
		if r.Status == next {
			continue
		}
		r.Status = next
		if _, err := uc.gate.repo.BriefResponse().Update(ctx, r); err != nil {
			return "", goerr.Wrap(err, "failed to update brief response",
				append(ref.values(), goerr.V(ResponseIDKey, r.ID))...)
		}
	}

	return ref.Path("award", form.BriefResponseID, "contract-details"), nil
}

// AwardDetailsView is the contract details step
type AwardDetailsView struct {
	Brief    *model.Brief         `json:"brief"`
	Response *model.BriefResponse `json:"response"`
}

func (uc *AwardUseCase) pendingAward(ctx context.Context, ref BriefRef, responseID string) (*AwardDetailsView, error) {
	b, err := uc.closedBrief(ctx, ref)
	if err != nil {
		return nil, err
	}

	opts := append(ref.values(), goerr.V(ResponseIDKey, responseID))
	r, err := uc.gate.repo.BriefResponse().Get(ctx, responseID)
	if err != nil {
		return nil, notFound(err, "failed to get brief response", opts...)
	}
	if r.BriefID != b.ID {
		return nil, notFound(nil, "response belongs to another brief", opts...)
	}
	if r.Status != types.BriefResponseStatusPendingAwarded {
		return nil, notFound(nil, "response is not pending award", append(opts, goerr.V("status", r.Status))...)
	}
	return &AwardDetailsView{Brief: b, Response: r}, nil
}

func (uc *AwardUseCase) AwardDetails(ctx context.Context, ref BriefRef, responseID string) (*AwardDetailsView, error) {
	return uc.pendingAward(ctx, ref, responseID)
}

// SubmitAwardDetails attaches the contract to the pending response and
// awards the brief
func (uc *AwardUseCase) SubmitAwardDetails(ctx context.Context, ref BriefRef, responseID string, form model.AwardDetailsForm) (*model.Brief, error) {
	view, err := uc.pendingAward(ctx, ref, responseID)
	if err != nil {
		return nil, err
	}

	details, err := form.Parse()
	if err != nil {
		return nil, err
	}

	now := uc.now()
	b, r := view.Brief, view.Response
	if err := b.Award(r.ID, now); err != nil {
		return nil, goerr.Wrap(err, "failed to award brief", ref.values()...)
	}

	r.AwardDetails = details
	r.Status = types.BriefResponseStatusAwarded
	if _, err := uc.gate.repo.BriefResponse().Update(ctx, r); err != nil {
		return nil, goerr.Wrap(err, "failed to update brief response",
			append(ref.values(), goerr.V(ResponseIDKey, r.ID))...)
	}

	updated, err := uc.gate.repo.Brief().Update(ctx, b)
	if err != nil {
		// the brief is still closed, so the response goes back to pending
		r.AwardDetails = nil
		r.Status = types.BriefResponseStatusPendingAwarded
		if _, rerr := uc.gate.repo.BriefResponse().Update(ctx, r); rerr != nil {
			logging.From(ctx).Error("failed to revert brief response",
				"brief_id", b.ID, "brief_response_id", r.ID, "error", rerr)
		}
		return nil, goerr.Wrap(err, "failed to update brief", ref.values()...)
	}

	logging.From(ctx).Info("brief awarded", "brief_id", b.ID, "brief_response_id", r.ID)
	return updated, nil
}

// CancelBrief ends a closed brief without a contract
func (uc *AwardUseCase) CancelBrief(ctx context.Context, ref BriefRef, reason types.CancelReason) (*model.Brief, error) {
	b, err := uc.closedBrief(ctx, ref)
	if err != nil {
		return nil, err
	}

	if err := b.Cancel(reason, uc.now()); err != nil {
		return nil, goerr.Wrap(err, "failed to cancel brief", append(ref.values(), goerr.V(ReasonKey, reason))...)
	}

	updated, err := uc.gate.repo.Brief().Update(ctx, b)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update brief", ref.values()...)
	}

	logging.From(ctx).Info("brief cancelled", "brief_id", b.ID, "reason", reason)
	return updated, nil
}
