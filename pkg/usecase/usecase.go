package usecase

import (
	"time"

	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/service/content"
)

// DefaultEvidenceCutover is when briefs started collecting structured
// evidence for essential requirements
var DefaultEvidenceCutover = time.Date(2016, 12, 1, 0, 0, 0, 0, time.UTC)

type UseCases struct {
	repo    interfaces.Repository
	content interfaces.ContentLoader
	archive interfaces.ReportArchive
	cutover time.Time
	now     func() time.Time

	Brief    *BriefUseCase
	Response *ResponseUseCase
	Award    *AwardUseCase
	Auth     AuthUseCaseInterface
}

type Option func(*UseCases)

// WithContent replaces the bundled content manifests
func WithContent(loader interfaces.ContentLoader) Option {
	return func(uc *UseCases) {
		uc.content = loader
	}
}

// WithArchive keeps a copy of every downloaded report
func WithArchive(archive interfaces.ReportArchive) Option {
	return func(uc *UseCases) {
		uc.archive = archive
	}
}

func WithEvidenceCutover(cutover time.Time) Option {
	return func(uc *UseCases) {
		uc.cutover = cutover
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		cutover: DefaultEvidenceCutover,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.content == nil {
		uc.content = content.New(content.Defaults())
	}

	g := &gate{repo: repo, content: uc.content}
	uc.Brief = &BriefUseCase{gate: g, now: uc.now}
	uc.Response = &ResponseUseCase{gate: g, archive: uc.archive, cutover: uc.cutover}
	uc.Award = &AwardUseCase{gate: g, cutover: uc.cutover, now: uc.now}

	return uc
}
