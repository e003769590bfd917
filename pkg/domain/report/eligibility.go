package report

import (
	"sort"
	"time"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

// Eligible returns the responses that meet every essential requirement,
// ordered by the number of nice-to-have requirements answered yes, most
// first. Ties keep their input order. The input slice is not modified.
func Eligible(brief *model.Brief, responses []*model.BriefResponse, cutover time.Time) []*model.BriefResponse {
	shape := brief.Shape(cutover)

	type ranked struct {
		resp *model.BriefResponse
		yes  int
	}

	candidates := make([]ranked, 0, len(responses))
	for _, r := range responses {
		if !model.DecodeEssentials(shape, r).Met() {
			continue
		}
		candidates = append(candidates, ranked{resp: r, yes: model.NiceToHaveCount(shape, r)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].yes > candidates[j].yes
	})

	eligible := make([]*model.BriefResponse, len(candidates))
	for i, c := range candidates {
		eligible[i] = c.resp
	}
	return eligible
}

// Summary counts responses on either side of the essential requirements bar
type Summary struct {
	Shape    model.Shape
	Eligible int
	Failed   int
}

func Summarise(brief *model.Brief, responses []*model.BriefResponse, cutover time.Time) Summary {
	s := Summary{Shape: brief.Shape(cutover)}
	for _, r := range responses {
		if model.DecodeEssentials(s.Shape, r).Met() {
			s.Eligible++
		} else {
			s.Failed++
		}
	}
	return s
}
