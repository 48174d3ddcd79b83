package domains

import "time"

type FormStatus string

const (
	StatusDraft     FormStatus = "draft"
	StatusPublished FormStatus = "published"
	StatusClosed    FormStatus = "closed"
)

type ThemePreset string

const (
	ThemeMidnight ThemePreset = "midnight"
	ThemeOcean    ThemePreset = "ocean"
	ThemeSunset   ThemePreset = "sunset"
	ThemeForest   ThemePreset = "forest"
	ThemeLavender ThemePreset = "lavender"
	ThemeMinimal  ThemePreset = "minimal"
)

const DefaultThankYouMessage = "Thank you for your response!"

// SharedFormID marks forms reconstructed from a share token rather than
// loaded from the store.
const SharedFormID = "shared-form"

type Form struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Slug            string           `json:"slug"`
	Status          FormStatus       `json:"status"`
	Theme           ThemePreset      `json:"theme"`
	Questions       []QuestionConfig `json:"questions"`
	ThankYouMessage string           `json:"thank_you_message"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Question returns the question with the given id, if present.
func (f *Form) Question(id string) (QuestionConfig, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return QuestionConfig{}, false
}

// QuestionIndex returns the position of the question with the given id, or -1.
func (f *Form) QuestionIndex(id string) int {
	for i, q := range f.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

type FormCreate struct {
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Slug            string           `json:"slug,omitempty"`
	Theme           ThemePreset      `json:"theme,omitempty"`
	Questions       []QuestionConfig `json:"questions,omitempty"`
	ThankYouMessage string           `json:"thank_you_message,omitempty"`
}

// FormUpdate carries a partial update; nil fields are left untouched.
type FormUpdate struct {
	Title           *string           `json:"title,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Slug            *string           `json:"slug,omitempty"`
	Status          *FormStatus       `json:"status,omitempty"`
	Theme           *ThemePreset      `json:"theme,omitempty"`
	Questions       *[]QuestionConfig `json:"questions,omitempty"`
	ThankYouMessage *string           `json:"thank_you_message,omitempty"`
}
