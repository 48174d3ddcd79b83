package domains

type QuestionType string

const (
	QuestionShortText    QuestionType = "short_text"
	QuestionLongText     QuestionType = "long_text"
	QuestionNumber       QuestionType = "number"
	QuestionEmail        QuestionType = "email"
	QuestionPhone        QuestionType = "phone"
	QuestionDropdown     QuestionType = "dropdown"
	QuestionCheckboxes   QuestionType = "checkboxes"
	QuestionYesNo        QuestionType = "yes_no"
	QuestionRating       QuestionType = "rating"
	QuestionOpinionScale QuestionType = "opinion_scale"
	QuestionSlider       QuestionType = "slider"
	QuestionDate         QuestionType = "date"
	QuestionFileUpload   QuestionType = "file_upload"
	QuestionURL          QuestionType = "url"

	ScreenWelcome QuestionType = "welcome"
	ScreenLoading QuestionType = "loading"
	ScreenResult  QuestionType = "result"
	ScreenEnd     QuestionType = "end"

	ScreenAlert        QuestionType = "alert"
	ScreenTestimonials QuestionType = "testimonials"
	ScreenMedia        QuestionType = "media"
	ScreenTimer        QuestionType = "timer"
)

// QuestionConfig is the common envelope for every screen in a form. The Type
// tag decides which optional fields are meaningful; traversal code only ever
// branches on the tag.
type QuestionConfig struct {
	ID               string         `json:"id"`
	Type             QuestionType   `json:"type"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	Required         bool           `json:"required"`
	ButtonText       string         `json:"buttonText,omitempty"`
	Options          []string       `json:"options,omitempty"`
	MinValue         *int           `json:"minValue,omitempty"`
	MaxValue         *int           `json:"maxValue,omitempty"`
	Placeholder      string         `json:"placeholder,omitempty"`
	AllowedFileTypes []string       `json:"allowedFileTypes,omitempty"`
	MaxFileSize      *int           `json:"maxFileSize,omitempty"`
	Style            *StyleOverride `json:"style,omitempty"`
	Logic            *QuestionLogic `json:"logic,omitempty"`
}

// StyleOverride overrides the form theme for a single question. Empty fields
// fall back to the theme defaults.
type StyleOverride struct {
	Theme                 ThemePreset `json:"theme,omitempty"`
	FontFamily            string      `json:"fontFamily,omitempty"`
	TextColor             string      `json:"textColor,omitempty"`
	ButtonBackgroundColor string      `json:"buttonBackgroundColor,omitempty"`
	ButtonTextColor       string      `json:"buttonTextColor,omitempty"`
	VerticalAlignment     string      `json:"verticalAlignment,omitempty"`
}

type NavigationAction string

const (
	NavNextScreen     NavigationAction = "next_screen"
	NavPreviousScreen NavigationAction = "previous_screen"
	NavSpecificScreen NavigationAction = "specific_screen"
	NavEndForm        NavigationAction = "end_form"
)

type QuestionLogic struct {
	AutoAdvance        *AutoAdvance        `json:"autoAdvance,omitempty"`
	NavigationBehavior *NavigationBehavior `json:"navigationBehavior,omitempty"`
}

type AutoAdvance struct {
	Enabled      bool    `json:"enabled"`
	DelaySeconds float64 `json:"delaySeconds,omitempty"`
}

type NavigationBehavior struct {
	OnButtonClick  NavigationAction `json:"onButtonClick,omitempty"`
	OnAutoAdvance  NavigationAction `json:"onAutoAdvance,omitempty"`
	TargetScreenID string           `json:"targetScreenId,omitempty"`
}

// QuestionPatch is a partial question update; nil fields are left untouched.
type QuestionPatch struct {
	Title            *string        `json:"title,omitempty"`
	Description      *string        `json:"description,omitempty"`
	Required         *bool          `json:"required,omitempty"`
	ButtonText       *string        `json:"buttonText,omitempty"`
	Options          *[]string      `json:"options,omitempty"`
	MinValue         *int           `json:"minValue,omitempty"`
	MaxValue         *int           `json:"maxValue,omitempty"`
	Placeholder      *string        `json:"placeholder,omitempty"`
	AllowedFileTypes *[]string      `json:"allowedFileTypes,omitempty"`
	MaxFileSize      *int           `json:"maxFileSize,omitempty"`
	Style            *StyleOverride `json:"style,omitempty"`
	Logic            *QuestionLogic `json:"logic,omitempty"`
}
