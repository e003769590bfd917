package model

// Shape is the generation of essential requirement data a brief collected
type Shape int

const (
	// ShapeLegacy responses carry one boolean per essential requirement
	ShapeLegacy Shape = iota
	// ShapeEvidence responses carry an explicit all-met flag plus evidence
	ShapeEvidence
)

func (s Shape) String() string {
	switch s {
	case ShapeLegacy:
		return "legacy"
	case ShapeEvidence:
		return "evidence"
	default:
		return "unknown"
	}
}

// Essentials is a response's essential requirement data, decoded once per
// brief shape.
type Essentials interface {
	// Met is the eligibility verdict
	Met() bool
	// Len is the number of per-requirement entries
	Len() int

	essentials()
}

// LegacyEssentials is one boolean per essential requirement. Entries that
// are not booleans count as unsatisfied.
type LegacyEssentials []bool

func (e LegacyEssentials) Met() bool {
	for _, ok := range e {
		if !ok {
			return false
		}
	}
	return true
}

func (e LegacyEssentials) Len() int  { return len(e) }
func (LegacyEssentials) essentials() {}

// Evidence is one structured answer to a requirement
type Evidence struct {
	Text  string
	YesNo bool
}

type EvidenceEssentials struct {
	AllMet bool
	Items  []Evidence
}

func (e EvidenceEssentials) Met() bool { return e.AllMet }
func (e EvidenceEssentials) Len() int  { return len(e.Items) }
func (EvidenceEssentials) essentials() {}

// DecodeEssentials reads the essential requirement data of a response in the
// given shape. Missing or malformed fields decode to their zero value.
func DecodeEssentials(shape Shape, r *BriefResponse) Essentials {
	raw := r.Answers[FieldEssentialRequirements]

	if shape == ShapeEvidence {
		met, _ := r.Answers[FieldEssentialRequirementsMet].(bool)
		return EvidenceEssentials{AllMet: met, Items: decodeEvidence(raw)}
	}

	items, _ := raw.([]any)
	out := make(LegacyEssentials, len(items))
	for i, item := range items {
		out[i], _ = item.(bool)
	}
	return out
}

// NiceToHaveCount counts affirmative optional requirement answers. A missing
// field counts as zero.
func NiceToHaveCount(shape Shape, r *BriefResponse) int {
	raw := r.Answers[FieldNiceToHaveRequirements]

	count := 0
	if shape == ShapeEvidence {
		for _, ev := range decodeEvidence(raw) {
			if ev.YesNo {
				count++
			}
		}
		return count
	}

	items, _ := raw.([]any)
	for _, item := range items {
		if yes, _ := item.(bool); yes {
			count++
		}
	}
	return count
}

func decodeEvidence(raw any) []Evidence {
	items, _ := raw.([]any)
	out := make([]Evidence, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out[i].Text, _ = obj["evidence"].(string)
		out[i].YesNo, _ = obj["yesNo"].(bool)
	}
	return out
}
