package httptransport

import "foxform/internal/domains"

type addQuestionRequest struct {
	Type domains.QuestionType `json:"type"`
}

type reorderRequest struct {
	Questions []domains.QuestionConfig `json:"questions"`
}

type shareLinkResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type submitRequest struct {
	Answers map[string]any `json:"answers"`
}

type createSessionRequest struct {
	Slug  string `json:"slug,omitempty"`
	Token string `json:"token,omitempty"`
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Value      any    `json:"value"`
}

type advanceRequest struct {
	SkipValidation bool `json:"skip_validation,omitempty"`
}

type questionTypeInfo struct {
	Type        domains.QuestionType `json:"type"`
	Label       string               `json:"label"`
	Description string               `json:"description"`
	Group       string               `json:"group"`
}

type uploadNotConfigured struct {
	Configured bool   `json:"configured"`
	Error      string `json:"error"`
}
