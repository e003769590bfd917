package report_test

import (
	"bytes"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/report"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

func teaResponses() []*model.BriefResponse {
	return []*model.BriefResponse{
		{Answers: map[string]any{
			"supplierName":             "Prof. T. Maker",
			"respondToEmailAddress":    "t.maker@example.com",
			"niceToHaveRequirements":   []any{map[string]any{"yesNo": false}, map[string]any{"yesNo": false}},
			"availability":             "2017-12-25",
			"essentialRequirementsMet": true,
			"essentialRequirements": evidence(
				"From Assan to Yixing I've got you covered.",
				"There will be no nobhobs or cream custards on my watch.",
				"I even memorised the entire T section of the dictionary",
			),
			"dayRate": "750",
			"blah":    bools([]bool{true, false}),
		}},
		{Answers: map[string]any{
			"supplierName":          "Tea Boy Ltd.",
			"respondToEmailAddress": "teaboy@example.com",
			"niceToHaveRequirements": []any{
				map[string]any{"yesNo": true, "evidence": "Winner of GBBO 2009"},
				map[string]any{"yesNo": true, "evidence": "Currently learning from the re-incarnation of Eisai himself"},
			},
			"availability":             "Tomorrow",
			"essentialRequirementsMet": true,
			"essentialRequirements": evidence(
				"I know my Silver needle from my Red lychee",
				"Able to identify fake hobnobs and custard cremes a mile off",
				"Have visited the Flagstaff House Museum of Tea Ware in Hong Kong",
			),
			"dayRate": "1000",
			"blah":    bools([]bool{false, true}),
		}},
	}
}

var teaQuestions = []model.Question{
	{ID: "supplierName", Name: "Supplier", Type: types.QuestionTypeText},
	{ID: "blah", Name: "Blah", Type: types.QuestionTypeBooleanList},
	{ID: "niceToHaveRequirements", Name: "Nice-to-have skills and experience", Type: types.QuestionTypeDynamicList},
	{ID: "dayRate", Name: "Day rate", Type: types.QuestionTypeText},
}

func teaBrief() *model.Brief {
	brief := evidenceBrief()
	brief.Answers = map[string]any{"blah": []any{"Affirmative", "Negative"}}
	return brief
}

func TestODSLayout(t *testing.T) {
	brief := teaBrief()
	eligible := report.Eligible(brief, teaResponses(), cutover)
	table := report.Build(brief, teaQuestions, eligible)

	var buf bytes.Buffer
	gt.NoError(t, report.WriteODS(&buf, table)).Required()

	sheet := readODS(t, buf.Bytes())
	gt.Value(t, sheet.name).Equal(report.SheetName)
	gt.Array(t, sheet.rows).Length(4).Required()

	gt.Value(t, sheet.rows[0]).Equal([]string{
		"I need a thing to do a thing",
		"Supplier", "Blah", "", "Nice-to-have skills and experience", "", "Day rate",
	})
	gt.Value(t, sheet.rows[1]).Equal([]string{
		"",
		"", "Affirmative", "Negative", "Able to bake", "Able to perform the tea ceremony", "",
	})
	gt.Value(t, sheet.rows[2]).Equal([]string{
		"",
		"Tea Boy Ltd.", "false", "true",
		"Winner of GBBO 2009", "Currently learning from the re-incarnation of Eisai himself",
		"1000",
	})
	gt.Value(t, sheet.rows[3]).Equal([]string{
		"",
		"Prof. T. Maker", "true", "false", "", "", "750",
	})
}

func TestODSEscapesMarkup(t *testing.T) {
	brief := teaBrief()
	brief.Title = `Tea & <biscuits>`
	r := &model.BriefResponse{Answers: map[string]any{
		"supplierName":             "A \"quoted\" <name>\nsecond line",
		"essentialRequirementsMet": true,
	}}

	table := report.Build(brief, teaQuestions[:1], []*model.BriefResponse{r})

	var buf bytes.Buffer
	gt.NoError(t, report.WriteODS(&buf, table)).Required()

	sheet := readODS(t, buf.Bytes())
	gt.Value(t, sheet.rows[0][0]).Equal(`Tea & <biscuits>`)
	gt.Value(t, sheet.rows[2][1]).Equal("A \"quoted\" <name>\nsecond line")
}

func TestODSNoResponses(t *testing.T) {
	table := report.Build(teaBrief(), teaQuestions, nil)

	var buf bytes.Buffer
	gt.NoError(t, report.WriteODS(&buf, table)).Required()

	sheet := readODS(t, buf.Bytes())
	gt.Array(t, sheet.rows).Length(2)
}

func TestODSNoQuestions(t *testing.T) {
	table := report.Build(teaBrief(), nil, teaResponses())

	var buf bytes.Buffer
	gt.NoError(t, report.WriteODS(&buf, table)).Required()

	sheet := readODS(t, buf.Bytes())
	gt.Array(t, sheet.rows).Length(4).Required()
	gt.Value(t, sheet.rows[0]).Equal([]string{"I need a thing to do a thing"})
	gt.Value(t, sheet.rows[2]).Equal([]string{""})
}
