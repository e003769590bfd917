// Package report turns a brief's supplier responses into a downloadable
// document. Everything here is pure: the caller resolves the brief, its
// responses and the question list before calling in.
package report

import (
	"bytes"
	"time"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

// Document is a rendered report ready to be served as an attachment
type Document struct {
	Filename    string
	ContentType string
	Format      Format
	Body        []byte
	// Rows is the number of responses in the document
	Rows int
}

// QuestionSource returns the ordered questions of a manifest for the brief's
// lot. A missing section must come back as an empty list.
type QuestionSource func(manifest string) ([]model.Question, error)

// Generate filters and orders responses, picks the format and renders it.
func Generate(brief *model.Brief, responses []*model.BriefResponse, cutover time.Time, questions QuestionSource) (*Document, error) {
	eligible := Eligible(brief, responses, cutover)
	format := SelectFormat(eligible)

	qs, err := questions(format.Manifest())
	if err != nil {
		return nil, err
	}

	return Render(brief, qs, eligible, format)
}

// Render writes already ordered responses in the given format
func Render(brief *model.Brief, questions []model.Question, responses []*model.BriefResponse, format Format) (*Document, error) {
	table := Build(brief, questions, responses)

	var buf bytes.Buffer
	var err error
	if format == FormatODS {
		err = WriteODS(&buf, table)
	} else {
		err = WriteCSV(&buf, table)
	}
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    Filename(brief.Title, format),
		ContentType: format.ContentType(),
		Format:      format,
		Body:        buf.Bytes(),
		Rows:        len(table.Rows),
	}, nil
}
