// Package questions is the static catalog of question and screen types:
// display metadata, per-type default configuration, and the kind helpers the
// player and builder branch on.
package questions

import (
	"github.com/gofrs/uuid"

	"foxform/internal/domains"
)

// TypeInfo describes one entry of the catalog.
type TypeInfo struct {
	Type        domains.QuestionType `json:"type"`
	Label       string               `json:"label"`
	Description string               `json:"description"`
	Defaults    domains.QuestionConfig
}

func intp(v int) *int { return &v }

// AnswerableTypes are the input-collecting question types.
var AnswerableTypes = []TypeInfo{
	{
		Type:        domains.QuestionShortText,
		Label:       "Short Text",
		Description: "Single-line text input.",
		Defaults:    domains.QuestionConfig{Placeholder: "Type your answer here..."},
	},
	{
		Type:        domains.QuestionLongText,
		Label:       "Long Text",
		Description: "Multi-line text input.",
		Defaults:    domains.QuestionConfig{Placeholder: "Type your answer here..."},
	},
	{
		Type:        domains.QuestionNumber,
		Label:       "Number",
		Description: "Numeric input.",
		Defaults:    domains.QuestionConfig{Placeholder: "0"},
	},
	{
		Type:        domains.QuestionEmail,
		Label:       "Email",
		Description: "Email address input.",
		Defaults:    domains.QuestionConfig{Placeholder: "name@example.com"},
	},
	{
		Type:        domains.QuestionPhone,
		Label:       "Phone",
		Description: "Phone number input.",
		Defaults:    domains.QuestionConfig{Placeholder: "+1 (555) 000-0000"},
	},
	{
		Type:        domains.QuestionDropdown,
		Label:       "Dropdown",
		Description: "Select one option from a list.",
		Defaults:    domains.QuestionConfig{Options: []string{"Option 1", "Option 2", "Option 3"}},
	},
	{
		Type:        domains.QuestionCheckboxes,
		Label:       "Checkboxes",
		Description: "Select multiple options.",
		Defaults:    domains.QuestionConfig{Options: []string{"Option 1", "Option 2", "Option 3"}},
	},
	{
		Type:        domains.QuestionYesNo,
		Label:       "Yes/No",
		Description: "Binary choice input.",
	},
	{
		Type:        domains.QuestionRating,
		Label:       "Rating",
		Description: "Star-based rating input.",
		Defaults:    domains.QuestionConfig{MinValue: intp(1), MaxValue: intp(5)},
	},
	{
		Type:        domains.QuestionOpinionScale,
		Label:       "Opinion Scale",
		Description: "Numeric scale (e.g. 1-10).",
		Defaults:    domains.QuestionConfig{MinValue: intp(1), MaxValue: intp(10)},
	},
	{
		Type:        domains.QuestionSlider,
		Label:       "Level / Slider",
		Description: "Numeric slider input.",
		Defaults:    domains.QuestionConfig{MinValue: intp(0), MaxValue: intp(100)},
	},
	{
		Type:        domains.QuestionDate,
		Label:       "Date",
		Description: "Date picker input.",
	},
	{
		Type:        domains.QuestionFileUpload,
		Label:       "File Upload",
		Description: "Upload files or images.",
		Defaults: domains.QuestionConfig{
			AllowedFileTypes: []string{"image/*", "application/pdf"},
			MaxFileSize:      intp(10), // MB
		},
	},
	{
		Type:        domains.QuestionURL,
		Label:       "Website URL",
		Description: "URL input field.",
		Defaults:    domains.QuestionConfig{Placeholder: "https://example.com"},
	},
}

// FlowScreens are structural screens with no answerable input.
var FlowScreens = []TypeInfo{
	{
		Type:        domains.ScreenWelcome,
		Label:       "Welcome",
		Description: "Intro screen with title, description and start button.",
		Defaults: domains.QuestionConfig{
			Title:       "Welcome",
			Description: "Get started by clicking the button below",
			ButtonText:  "Start",
		},
	},
	{
		Type:        domains.ScreenLoading,
		Label:       "Loading",
		Description: "Temporary screen shown while processing data.",
		Defaults: domains.QuestionConfig{
			Title:       "Loading...",
			Description: "Please wait while we process your information",
		},
	},
	{
		Type:        domains.ScreenResult,
		Label:       "Result",
		Description: "Personalized result screen based on logic rules.",
		Defaults: domains.QuestionConfig{
			Title:       "Your Result",
			Description: "Based on your answers",
		},
	},
	{
		Type:        domains.ScreenEnd,
		Label:       "End",
		Description: "Final screen with closing message or CTA.",
		Defaults: domains.QuestionConfig{
			Title:       "Thank you!",
			Description: "Your response has been recorded",
			ButtonText:  "Close",
		},
	},
}

// ContentScreens carry static content between questions.
var ContentScreens = []TypeInfo{
	{
		Type:        domains.ScreenAlert,
		Label:       "Alert",
		Description: "Highlight important messages or warnings.",
		Defaults:    domains.QuestionConfig{Title: "Alert", Description: "Important information"},
	},
	{
		Type:        domains.ScreenTestimonials,
		Label:       "Testimonials",
		Description: "Display social proof with name, rating and comment.",
		Defaults:    domains.QuestionConfig{Title: "What our users say"},
	},
	{
		Type:        domains.ScreenMedia,
		Label:       "Media",
		Description: "Image or video content screen.",
		Defaults:    domains.QuestionConfig{Title: "Media"},
	},
	{
		Type:        domains.ScreenTimer,
		Label:       "Timer",
		Description: "Countdown or timed message screen.",
		Defaults:    domains.QuestionConfig{Title: "Timer"},
	},
}

// Info looks a type up across all three groups.
func Info(t domains.QuestionType) (TypeInfo, bool) {
	for _, group := range [][]TypeInfo{AnswerableTypes, FlowScreens, ContentScreens} {
		for _, ti := range group {
			if ti.Type == t {
				return ti, true
			}
		}
	}
	return TypeInfo{}, false
}

// Known reports whether t is part of the closed type set.
func Known(t domains.QuestionType) bool {
	_, ok := Info(t)
	return ok
}

// IsFlowScreen reports whether t is a structural screen the player never
// validates (welcome, loading, result, end).
func IsFlowScreen(t domains.QuestionType) bool {
	switch t {
	case domains.ScreenWelcome, domains.ScreenLoading, domains.ScreenResult, domains.ScreenEnd:
		return true
	}
	return false
}

// IsContentScreen reports whether t is a content-only screen.
func IsContentScreen(t domains.QuestionType) bool {
	switch t {
	case domains.ScreenAlert, domains.ScreenTestimonials, domains.ScreenMedia, domains.ScreenTimer:
		return true
	}
	return false
}

// IsAnswerable reports whether t collects respondent input.
func IsAnswerable(t domains.QuestionType) bool {
	return Known(t) && !IsFlowScreen(t) && !IsContentScreen(t)
}

// New builds a question of the given type with a fresh id and the catalog
// defaults applied.
func New(t domains.QuestionType) domains.QuestionConfig {
	q := domains.QuestionConfig{
		ID:       uuid.Must(uuid.NewV4()).String(),
		Type:     t,
		Required: false,
	}
	ti, ok := Info(t)
	if !ok {
		return q
	}

	d := ti.Defaults
	q.Title = d.Title
	q.Description = d.Description
	q.ButtonText = d.ButtonText
	q.Placeholder = d.Placeholder
	if len(d.Options) > 0 {
		q.Options = append([]string(nil), d.Options...)
	}
	if len(d.AllowedFileTypes) > 0 {
		q.AllowedFileTypes = append([]string(nil), d.AllowedFileTypes...)
	}
	if d.MinValue != nil {
		v := *d.MinValue
		q.MinValue = &v
	}
	if d.MaxValue != nil {
		v := *d.MaxValue
		q.MaxValue = &v
	}
	if d.MaxFileSize != nil {
		v := *d.MaxFileSize
		q.MaxFileSize = &v
	}
	return q
}
