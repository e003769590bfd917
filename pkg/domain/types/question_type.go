package types

// QuestionType is the content schema tag that decides how a question renders
// in forms and reports. Unknown tags are kept as-is and treated as scalar.
type QuestionType string

const (
	QuestionTypeText        QuestionType = "text"
	QuestionTypeTextbox     QuestionType = "textbox_large"
	QuestionTypeBoolean     QuestionType = "boolean"
	QuestionTypeBooleanList QuestionType = "boolean_list"
	QuestionTypeDynamicList QuestionType = "dynamic_list"
	QuestionTypeList        QuestionType = "list"
	QuestionTypeRadios      QuestionType = "radios"
	QuestionTypeDate        QuestionType = "date"
)

// IsRepeatedGroup reports whether the question expands into one column per
// label declared on the brief.
func (t QuestionType) IsRepeatedGroup() bool {
	return t == QuestionTypeBooleanList || t == QuestionTypeDynamicList
}

func (t QuestionType) String() string {
	return string(t)
}
