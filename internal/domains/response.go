package domains

import "time"

// Response is one completed traversal of a form. Immutable after creation.
type Response struct {
	ID          string         `json:"id"`
	FormID      string         `json:"form_id"`
	Answers     map[string]any `json:"answers"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

type ResponseCreate struct {
	FormID  string         `json:"form_id"`
	Answers map[string]any `json:"answers"`
}
