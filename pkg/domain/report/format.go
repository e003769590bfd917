package report

import "github.com/marketplace-labs/briefdesk/pkg/domain/model"

type Format int

const (
	FormatCSV Format = iota
	FormatODS
)

const (
	ContentTypeODS = "application/vnd.oasis.opendocument.spreadsheet"
	ContentTypeCSV = "text/csv"
)

func (f Format) String() string {
	if f == FormatODS {
		return "ods"
	}
	return "csv"
}

func (f Format) Extension() string {
	return "." + f.String()
}

func (f Format) ContentType() string {
	if f == FormatODS {
		return ContentTypeODS
	}
	return ContentTypeCSV
}

// Manifest names the question manifest whose columns this format shows
func (f Format) Manifest() string {
	if f == FormatODS {
		return model.ManifestOutputBriefResponse
	}
	return model.ManifestLegacyOutputBriefResponse
}

// SelectFormat chooses the spreadsheet only when every response carries the
// essentialRequirementsMet field. An empty list selects the spreadsheet.
// This is independent of the brief's shape.
func SelectFormat(responses []*model.BriefResponse) Format {
	for _, r := range responses {
		if !r.HasEssentialRequirementsMet() {
			return FormatCSV
		}
	}
	return FormatODS
}
