// Package codec turns a form's respondent-facing structure into a compact
// URL-safe token and back. Tokens are short-key JSON, UTF-8 encoded, then
// Base64url without padding, so a whole form fits in one path segment.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"foxform/internal/domains"
)

// DecodeError wraps any failure while parsing a shared-form token. Callers
// must treat it as "no form" and render a fallback, never crash.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode form token: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// serializedForm mirrors the full form with one- and two-letter keys. Fields
// holding their default or zero value are omitted to keep tokens short.
type serializedForm struct {
	Title       string               `json:"t"`
	Description string               `json:"d,omitempty"`
	Theme       domains.ThemePreset  `json:"th"`
	Questions   []serializedQuestion `json:"q"`
	ThankYou    string               `json:"ty,omitempty"`
}

type serializedQuestion struct {
	ID          string               `json:"i"`
	Type        domains.QuestionType `json:"tp"`
	Title       string               `json:"t"`
	Description string               `json:"d,omitempty"`
	Required    bool                 `json:"r,omitempty"`
	ButtonText  string               `json:"bt,omitempty"`
	Options     []string             `json:"o,omitempty"`
	MinValue    *int                 `json:"mn,omitempty"`
	MaxValue    *int                 `json:"mx,omitempty"`
	Placeholder string               `json:"ph,omitempty"`
	Style       *serializedStyle     `json:"st,omitempty"`
	Logic       *serializedLogic     `json:"lg,omitempty"`
}

type serializedStyle struct {
	Theme                 domains.ThemePreset `json:"th,omitempty"`
	FontFamily            string              `json:"ff,omitempty"`
	TextColor             string              `json:"tc,omitempty"`
	ButtonBackgroundColor string              `json:"bbc,omitempty"`
	ButtonTextColor       string              `json:"btc,omitempty"`
	VerticalAlignment     string              `json:"va,omitempty"`
}

type serializedLogic struct {
	AutoAdvance *serializedAutoAdvance `json:"aa,omitempty"`
	Navigation  *serializedNavigation  `json:"nb,omitempty"`
}

type serializedAutoAdvance struct {
	Enabled      bool    `json:"e"`
	DelaySeconds float64 `json:"ds,omitempty"`
}

type serializedNavigation struct {
	OnButtonClick  domains.NavigationAction `json:"obc,omitempty"`
	OnAutoAdvance  domains.NavigationAction `json:"oaa,omitempty"`
	TargetScreenID string                   `json:"tsi,omitempty"`
}

func compress(form domains.Form) serializedForm {
	out := serializedForm{
		Title:       form.Title,
		Description: form.Description,
		Theme:       form.Theme,
		Questions:   make([]serializedQuestion, 0, len(form.Questions)),
	}
	if form.ThankYouMessage != domains.DefaultThankYouMessage {
		out.ThankYou = form.ThankYouMessage
	}

	for _, q := range form.Questions {
		cq := serializedQuestion{
			ID:          q.ID,
			Type:        q.Type,
			Title:       q.Title,
			Description: q.Description,
			Required:    q.Required,
			ButtonText:  q.ButtonText,
			Placeholder: q.Placeholder,
			MinValue:    q.MinValue,
			MaxValue:    q.MaxValue,
		}
		if len(q.Options) > 0 {
			cq.Options = q.Options
		}

		if s := q.Style; s != nil {
			st := serializedStyle{
				Theme:                 s.Theme,
				FontFamily:            s.FontFamily,
				TextColor:             s.TextColor,
				ButtonBackgroundColor: s.ButtonBackgroundColor,
				ButtonTextColor:       s.ButtonTextColor,
				VerticalAlignment:     s.VerticalAlignment,
			}
			if st != (serializedStyle{}) {
				cq.Style = &st
			}
		}

		if l := q.Logic; l != nil {
			lg := serializedLogic{}
			if l.AutoAdvance != nil {
				lg.AutoAdvance = &serializedAutoAdvance{
					Enabled:      l.AutoAdvance.Enabled,
					DelaySeconds: l.AutoAdvance.DelaySeconds,
				}
			}
			if nb := l.NavigationBehavior; nb != nil {
				nav := serializedNavigation{
					OnButtonClick:  nb.OnButtonClick,
					OnAutoAdvance:  nb.OnAutoAdvance,
					TargetScreenID: nb.TargetScreenID,
				}
				if nav != (serializedNavigation{}) {
					lg.Navigation = &nav
				}
			}
			if lg.AutoAdvance != nil || lg.Navigation != nil {
				cq.Logic = &lg
			}
		}

		out.Questions = append(out.Questions, cq)
	}
	return out
}

func decompress(compressed serializedForm) domains.Form {
	form := domains.Form{
		ID:              domains.SharedFormID,
		UserID:          "shared",
		Title:           compressed.Title,
		Description:     compressed.Description,
		Slug:            "shared",
		Status:          domains.StatusPublished,
		Theme:           compressed.Theme,
		Questions:       make([]domains.QuestionConfig, 0, len(compressed.Questions)),
		ThankYouMessage: compressed.ThankYou,
	}
	if form.ThankYouMessage == "" {
		form.ThankYouMessage = domains.DefaultThankYouMessage
	}

	for _, cq := range compressed.Questions {
		q := domains.QuestionConfig{
			ID:          cq.ID,
			Type:        cq.Type,
			Title:       cq.Title,
			Description: cq.Description,
			Required:    cq.Required,
			ButtonText:  cq.ButtonText,
			Placeholder: cq.Placeholder,
			MinValue:    cq.MinValue,
			MaxValue:    cq.MaxValue,
			Options:     cq.Options,
		}

		if st := cq.Style; st != nil {
			q.Style = &domains.StyleOverride{
				Theme:                 st.Theme,
				FontFamily:            st.FontFamily,
				TextColor:             st.TextColor,
				ButtonBackgroundColor: st.ButtonBackgroundColor,
				ButtonTextColor:       st.ButtonTextColor,
				VerticalAlignment:     st.VerticalAlignment,
			}
		}

		if lg := cq.Logic; lg != nil {
			logic := domains.QuestionLogic{}
			if lg.AutoAdvance != nil {
				logic.AutoAdvance = &domains.AutoAdvance{
					Enabled:      lg.AutoAdvance.Enabled,
					DelaySeconds: lg.AutoAdvance.DelaySeconds,
				}
			}
			if lg.Navigation != nil {
				logic.NavigationBehavior = &domains.NavigationBehavior{
					OnButtonClick:  lg.Navigation.OnButtonClick,
					OnAutoAdvance:  lg.Navigation.OnAutoAdvance,
					TargetScreenID: lg.Navigation.TargetScreenID,
				}
			}
			q.Logic = &logic
		}

		form.Questions = append(form.Questions, q)
	}
	return form
}

// Encode produces the URL-safe token for a form. The output never contains
// '+', '/' or '='.
func Encode(form domains.Form) (string, error) {
	payload, err := json.Marshal(compress(form))
	if err != nil {
		return "", fmt.Errorf("marshal form: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode parses a token produced by Encode. It tolerates standard-alphabet
// Base64 and stray padding, since tokens travel through copy-paste and URL
// rewriting. Absent fields come back with the same defaults the builder and
// player apply.
func Decode(token string) (domains.Form, error) {
	normalized := strings.NewReplacer("+", "-", "/", "_").Replace(token)
	normalized = strings.TrimRight(normalized, "=")

	payload, err := base64.RawURLEncoding.DecodeString(normalized)
	if err != nil {
		return domains.Form{}, &DecodeError{Err: err}
	}

	var compressed serializedForm
	if err := json.Unmarshal(payload, &compressed); err != nil {
		return domains.Form{}, &DecodeError{Err: err}
	}

	return decompress(compressed), nil
}

// ShareURL builds the public link for a form token.
func ShareURL(form domains.Form, baseURL string) (string, error) {
	token, err := Encode(form)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(baseURL, "/") + "/s/" + token, nil
}
