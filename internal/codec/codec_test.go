package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foxform/internal/domains"
)

func intp(v int) *int { return &v }

func TestEncodeDecodeRoundTrip(t *testing.T) {
	form := domains.Form{
		ID:              "f-1",
		UserID:          "u-1",
		Title:           "Customer Feedback",
		Description:     "Tell us what you think",
		Slug:            "customer-feedback",
		Status:          domains.StatusPublished,
		Theme:           domains.ThemeOcean,
		ThankYouMessage: "Thanks a lot!",
		Questions: []domains.QuestionConfig{
			{
				ID:    "q-welcome",
				Type:  domains.ScreenWelcome,
				Title: "Welcome!",
				Logic: &domains.QuestionLogic{
					AutoAdvance: &domains.AutoAdvance{Enabled: true, DelaySeconds: 2.5},
				},
			},
			{
				ID:          "q-name",
				Type:        domains.QuestionShortText,
				Title:       "What is your name?",
				Required:    true,
				Placeholder: "Jane Doe",
				Style: &domains.StyleOverride{
					Theme:     domains.ThemeSunset,
					TextColor: "#333333",
				},
			},
			{
				ID:       "q-rating",
				Type:     domains.QuestionRating,
				Title:    "How did we do?",
				MinValue: intp(1),
				MaxValue: intp(5),
				Logic: &domains.QuestionLogic{
					NavigationBehavior: &domains.NavigationBehavior{
						OnButtonClick:  domains.NavSpecificScreen,
						TargetScreenID: "q-name",
					},
				},
			},
			{
				ID:      "q-pick",
				Type:    domains.QuestionDropdown,
				Title:   "Pick one",
				Options: []string{"A", "B", "C"},
			},
		},
	}

	token, err := Encode(form)
	require.NoError(t, err)

	decoded, err := Decode(token)
	require.NoError(t, err)

	assert.Equal(t, form.Title, decoded.Title)
	assert.Equal(t, form.Description, decoded.Description)
	assert.Equal(t, form.Theme, decoded.Theme)
	assert.Equal(t, form.ThankYouMessage, decoded.ThankYouMessage)
	require.Len(t, decoded.Questions, len(form.Questions))
	assert.Equal(t, form.Questions[0].Logic.AutoAdvance, decoded.Questions[0].Logic.AutoAdvance)
	assert.Equal(t, form.Questions[1].Style, decoded.Questions[1].Style)
	assert.Equal(t, form.Questions[2].MinValue, decoded.Questions[2].MinValue)
	assert.Equal(t, form.Questions[2].Logic.NavigationBehavior, decoded.Questions[2].Logic.NavigationBehavior)
	assert.Equal(t, form.Questions[3].Options, decoded.Questions[3].Options)
}

func TestEncodeProducesURLSafeToken(t *testing.T) {
	form := domains.Form{
		Title: strings.Repeat("a title long enough to cover every base64 block ", 20),
		Theme: domains.ThemeMidnight,
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionLongText, Title: "free text >>> with ??? punctuation"},
		},
	}

	token, err := Encode(form)
	require.NoError(t, err)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")
}

func TestDecodeAppliesSharedDefaults(t *testing.T) {
	form := domains.Form{
		Title: "T",
		Theme: domains.ThemeMinimal,
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionShortText, Title: "Q1", Required: true},
		},
	}

	token, err := Encode(form)
	require.NoError(t, err)

	decoded, err := Decode(token)
	require.NoError(t, err)

	assert.Equal(t, domains.SharedFormID, decoded.ID)
	assert.Equal(t, "shared", decoded.UserID)
	assert.Equal(t, "shared", decoded.Slug)
	assert.Equal(t, domains.StatusPublished, decoded.Status)
	assert.Equal(t, domains.DefaultThankYouMessage, decoded.ThankYouMessage)
	require.Len(t, decoded.Questions, 1)
	assert.True(t, decoded.Questions[0].Required)
}

func TestDecodeToleratesStandardAlphabetAndPadding(t *testing.T) {
	form := domains.Form{
		Title: "Padded",
		Theme: domains.ThemeForest,
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionYesNo, Title: "Yes?"},
		},
	}

	token, err := Encode(form)
	require.NoError(t, err)

	mangled := strings.NewReplacer("-", "+", "_", "/").Replace(token)
	for len(mangled)%4 != 0 {
		mangled += "="
	}

	decoded, err := Decode(mangled)
	require.NoError(t, err)
	assert.Equal(t, "Padded", decoded.Title)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, token := range []string{"%%%not-base64%%%", "bm90LWpzb24", ""} {
		_, err := Decode(token)
		require.Error(t, err)
		var derr *DecodeError
		assert.ErrorAs(t, err, &derr)
	}
}

func TestDecodeZeroQuestions(t *testing.T) {
	form := domains.Form{Title: "Empty", Theme: domains.ThemeMinimal}

	token, err := Encode(form)
	require.NoError(t, err)

	decoded, err := Decode(token)
	require.NoError(t, err)
	assert.Empty(t, decoded.Questions)
}

func TestShareURL(t *testing.T) {
	form := domains.Form{
		Title: "Linked",
		Theme: domains.ThemeMinimal,
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionShortText, Title: "Q"},
		},
	}

	url, err := ShareURL(form, "https://forms.example.com/")
	require.NoError(t, err)

	token, err := Encode(form)
	require.NoError(t, err)
	assert.Equal(t, "https://forms.example.com/s/"+token, url)
}
