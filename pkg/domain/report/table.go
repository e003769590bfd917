package report

import "github.com/marketplace-labs/briefdesk/pkg/domain/model"

// Table is a planned and extracted report, independent of file format
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]Cell
}

// Build extracts one row per response, in order
func Build(brief *model.Brief, questions []model.Question, responses []*model.BriefResponse) *Table {
	columns := Plan(brief, questions)

	rows := make([][]Cell, len(responses))
	for i, r := range responses {
		row := make([]Cell, len(columns))
		for j, col := range columns {
			row[j] = col.Extract(r)
		}
		rows[i] = row
	}

	return &Table{
		Title:   brief.Title,
		Columns: columns,
		Rows:    rows,
	}
}
