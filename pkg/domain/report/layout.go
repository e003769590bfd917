package report

import (
	"fmt"
	"strconv"

	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/marketplace-labs/briefdesk/pkg/domain/types"
)

type cellKind int

const (
	cellBlank cellKind = iota
	cellText
	cellBool
)

// Cell is one rendered value. Booleans stay typed until a writer decides
// their spelling.
type Cell struct {
	kind cellKind
	text string
	flag bool
}

var Blank = Cell{}

func Text(s string) Cell {
	return Cell{kind: cellText, text: s}
}

func Bool(b bool) Cell {
	return Cell{kind: cellBool, flag: b}
}

func (c Cell) IsBlank() bool { return c.kind == cellBlank }

// Value returns nil for a blank cell, otherwise its string or bool
func (c Cell) Value() any {
	switch c.kind {
	case cellText:
		return c.text
	case cellBool:
		return c.flag
	default:
		return nil
	}
}

// Column is one physical report column
type Column struct {
	// Header is the question name, set on the first column of a group only
	Header string
	// SubHeader is the item label of a repeated group, empty for scalars
	SubHeader string
	Extract   func(r *model.BriefResponse) Cell
}

// Plan lays out the columns for questions before any row is rendered.
// Scalar questions take one column. boolean_list and dynamic_list questions
// take one column per label the brief declares for them, whatever the
// responses contain.
func Plan(brief *model.Brief, questions []model.Question) []Column {
	var columns []Column

	for _, q := range questions {
		if !q.Type.IsRepeatedGroup() {
			columns = append(columns, Column{
				Header:  q.Name,
				Extract: scalarExtractor(q.ID),
			})
			continue
		}

		for i, label := range brief.Labels(q.ID) {
			col := Column{SubHeader: label}
			if i == 0 {
				col.Header = q.Name
			}
			if q.Type == types.QuestionTypeBooleanList {
				col.Extract = booleanItemExtractor(q.ID, i)
			} else {
				col.Extract = evidenceItemExtractor(q.ID, i)
			}
			columns = append(columns, col)
		}
	}

	return columns
}

func scalarExtractor(id string) func(*model.BriefResponse) Cell {
	return func(r *model.BriefResponse) Cell {
		return toCell(r.Answers[id])
	}
}

func booleanItemExtractor(id string, pos int) func(*model.BriefResponse) Cell {
	return func(r *model.BriefResponse) Cell {
		item, ok := itemAt(r.Answers[id], pos)
		if !ok {
			return Blank
		}
		return toCell(item)
	}
}

func evidenceItemExtractor(id string, pos int) func(*model.BriefResponse) Cell {
	return func(r *model.BriefResponse) Cell {
		item, ok := itemAt(r.Answers[id], pos)
		if !ok {
			return Blank
		}
		obj, ok := item.(map[string]any)
		if !ok {
			return Blank
		}
		evidence, _ := obj["evidence"].(string)
		if evidence == "" {
			return Blank
		}
		return Text(evidence)
	}
}

func itemAt(v any, pos int) (any, bool) {
	list, ok := v.([]any)
	if !ok || pos >= len(list) {
		return nil, false
	}
	return list[pos], true
}

func toCell(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Blank
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case float64:
		return Text(strconv.FormatFloat(x, 'f', -1, 64))
	case int64:
		return Text(strconv.FormatInt(x, 10))
	case int:
		return Text(strconv.Itoa(x))
	default:
		return Text(fmt.Sprint(x))
	}
}
