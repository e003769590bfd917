package report_test

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/report"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

var cutover = time.Date(2016, 12, 1, 0, 0, 0, 0, time.UTC)

func legacyBrief() *model.Brief {
	return &model.Brief{
		ID:                     "1234",
		Title:                  "I need a thing to do a thing",
		FrameworkSlug:          "digital-outcomes-and-specialists",
		LotSlug:                "digital-specialists",
		Status:                 types.BriefStatusClosed,
		EssentialRequirements:  []string{"E1", "E2"},
		NiceToHaveRequirements: []string{"Nice1", "Nice2", "Nice3"},
		PublishedAt:            time.Date(2016, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func evidenceBrief() *model.Brief {
	return &model.Brief{
		ID:            "1234",
		Title:         "I need a thing to do a thing",
		FrameworkSlug: "digital-outcomes-and-specialists",
		LotSlug:       "digital-specialists",
		Status:        types.BriefStatusClosed,
		EssentialRequirements: []string{
			"Good nose for tea",
			"Good eye for biscuits",
			"Knowledgable about tea",
		},
		NiceToHaveRequirements: []string{
			"Able to bake",
			"Able to perform the tea ceremony",
		},
		PublishedAt: time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func legacyResponse(name string, essentials, nice []bool, extra map[string]any) *model.BriefResponse {
	answers := map[string]any{
		model.FieldSupplierName:          name,
		model.FieldEssentialRequirements: bools(essentials),
	}
	if nice != nil {
		answers[model.FieldNiceToHaveRequirements] = bools(nice)
	}
	for k, v := range extra {
		answers[k] = v
	}
	return &model.BriefResponse{BriefID: "1234", Status: types.BriefResponseStatusSubmitted, Answers: answers}
}

func bools(v []bool) []any {
	out := make([]any, len(v))
	for i, b := range v {
		out[i] = b
	}
	return out
}

func evidence(texts ...string) []any {
	out := make([]any, len(texts))
	for i, s := range texts {
		out[i] = map[string]any{"evidence": s}
	}
	return out
}

func yesNo(answers ...bool) []any {
	out := make([]any, len(answers))
	for i, b := range answers {
		obj := map[string]any{"yesNo": b}
		if b {
			obj["evidence"] = "yes"
		}
		out[i] = obj
	}
	return out
}

func names(responses []*model.BriefResponse) []string {
	out := make([]string, len(responses))
	for i, r := range responses {
		out[i] = r.SupplierName()
	}
	return out
}

type odsSheet struct {
	name string
	rows [][]string
}

// readODS unpacks a spreadsheet report into its sheet name and cell text
func readODS(t *testing.T, data []byte) odsSheet {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	gt.NoError(t, err).Required()
	if len(zr.File) == 0 {
		t.Fatal("empty archive")
	}
	gt.Value(t, zr.File[0].Name).Equal("mimetype")
	gt.Value(t, zr.File[0].Method).Equal(zip.Store)

	mt, err := zr.File[0].Open()
	gt.NoError(t, err).Required()
	raw, err := io.ReadAll(mt)
	gt.NoError(t, err).Required()
	gt.Value(t, string(raw)).Equal(report.ContentTypeODS)

	var content *zip.File
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			content = f
		}
	}
	gt.Value(t, content).NotNil().Required()

	rc, err := content.Open()
	gt.NoError(t, err).Required()
	defer rc.Close()

	var (
		sheet odsSheet
		paras []string
		text  strings.Builder
		inP   bool
	)

	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		gt.NoError(t, err).Required()

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "table":
				for _, attr := range el.Attr {
					if attr.Name.Local == "name" {
						sheet.name = attr.Value
					}
				}
			case "table-row":
				sheet.rows = append(sheet.rows, []string{})
			case "table-cell":
				paras = nil
			case "p":
				text.Reset()
				inP = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				paras = append(paras, text.String())
				inP = false
			case "table-cell":
				last := len(sheet.rows) - 1
				sheet.rows[last] = append(sheet.rows[last], strings.Join(paras, "\n"))
			}
		case xml.CharData:
			if inP {
				text.Write(el)
			}
		}
	}

	return sheet
}
