package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

// BriefRef addresses a brief the way buyer URLs do
type BriefRef struct {
	Framework string
	Lot       string
	BriefID   string
	BuyerID   string
}

func (r BriefRef) values() []goerr.Option {
	return []goerr.Option{
		goerr.V(FrameworkKey, r.Framework),
		goerr.V(LotKey, r.Lot),
		goerr.V(BriefIDKey, r.BriefID),
		goerr.V(BuyerIDKey, r.BuyerID),
	}
}

// Path is the brief overview location
func (r BriefRef) Path(elem ...string) string {
	p := fmt.Sprintf("/buyers/frameworks/%s/requirements/%s/%s", r.Framework, r.Lot, r.BriefID)
	for _, e := range elem {
		p += "/" + e
	}
	return p
}

// Framework statuses under which existing briefs can be viewed and managed
var viewableFrameworkStatuses = []types.FrameworkStatus{
	types.FrameworkStatusLive,
	types.FrameworkStatusExpired,
}

// gate holds the lookups shared by every buyer view. Each failure becomes
// ErrNotFound so callers cannot tell which condition failed.
type gate struct {
	repo    interfaces.Repository
	content interfaces.ContentLoader
}

func notFound(err error, msg string, opts ...goerr.Option) error {
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, msg, opts...)
	}
	return goerr.Wrap(ErrNotFound, msg, opts...)
}

// frameworkAndLot loads a framework in one of allowed statuses and a lot of
// it that accepts briefs
func (g *gate) frameworkAndLot(ctx context.Context, frameworkSlug, lotSlug string, allowed ...types.FrameworkStatus) (*model.Framework, *model.Lot, error) {
	opts := []goerr.Option{goerr.V(FrameworkKey, frameworkSlug), goerr.V(LotKey, lotSlug)}

	fw, err := g.repo.Framework().Get(ctx, frameworkSlug)
	if err != nil {
		return nil, nil, notFound(err, "failed to get framework", opts...)
	}
	if !fw.Status.In(allowed...) {
		return nil, nil, notFound(nil, "framework is not open for this operation",
			append(opts, goerr.V("framework_status", fw.Status))...)
	}

	lot := fw.Lot(lotSlug)
	if lot == nil || !lot.AllowsBrief {
		return nil, nil, notFound(nil, "lot does not accept briefs", opts...)
	}
	return fw, lot, nil
}

// checkBrief reports whether b is addressed by ref and, when statuses are
// given, in one of them
func checkBrief(b *model.Brief, ref BriefRef, statuses ...types.BriefStatus) error {
	switch {
	case b.FrameworkSlug != ref.Framework:
		return notFound(nil, "brief is on another framework", ref.values()...)
	case b.LotSlug != ref.Lot:
		return notFound(nil, "brief is on another lot", ref.values()...)
	case b.OwnerID != ref.BuyerID:
		return notFound(nil, "brief belongs to another buyer", ref.values()...)
	case len(statuses) > 0 && !b.Status.In(statuses...):
		return notFound(nil, "brief status does not allow this operation",
			append(ref.values(), goerr.V("status", b.Status))...)
	}
	return nil
}

func (g *gate) brief(ctx context.Context, ref BriefRef, statuses ...types.BriefStatus) (*model.Brief, error) {
	b, err := g.repo.Brief().Get(ctx, ref.BriefID)
	if err != nil {
		return nil, notFound(err, "failed to get brief", ref.values()...)
	}
	if err := checkBrief(b, ref, statuses...); err != nil {
		return nil, err
	}
	return b, nil
}

// frameworkAndBrief runs both gates in the order buyer views apply them
func (g *gate) frameworkAndBrief(ctx context.Context, ref BriefRef, frameworkStatuses []types.FrameworkStatus, statuses ...types.BriefStatus) (*model.Framework, *model.Brief, error) {
	fw, _, err := g.frameworkAndLot(ctx, ref.Framework, ref.Lot, frameworkStatuses...)
	if err != nil {
		return nil, nil, err
	}
	b, err := g.brief(ctx, ref, statuses...)
	if err != nil {
		return nil, nil, err
	}
	return fw, b, nil
}

// editManifest is the brief editing manifest as seen by the brief's lot
func (g *gate) editManifest(b *model.Brief) (*model.Manifest, error) {
	m, err := g.content.Manifest(b.FrameworkSlug, model.ManifestEditBrief)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load edit manifest",
			goerr.V(FrameworkKey, b.FrameworkSlug))
	}
	return m.Filter(b.LotSlug), nil
}

// questions returns a manifest section's questions for a lot. A missing
// section is an empty list.
func (g *gate) questions(framework, lot, manifest, section string) ([]model.Question, error) {
	m, err := g.content.Manifest(framework, manifest)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load manifest",
			goerr.V(FrameworkKey, framework),
			goerr.V("manifest", manifest))
	}
	s := m.Filter(lot).Section(section)
	if s == nil {
		return []model.Question{}, nil
	}
	return s.Questions, nil
}
