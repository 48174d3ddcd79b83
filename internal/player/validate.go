package player

import (
	"net/url"
	"regexp"

	"foxform/internal/domains"
)

const (
	msgRequired     = "This field is required"
	msgSelectOne    = "Please select at least one option"
	msgInvalidEmail = "Please enter a valid email address"
	msgInvalidURL   = "Please enter a valid URL"
	msgInvalidPhone = "Please enter a valid phone number"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-().]+$`)
)

// validateLocked checks the current answer for q, storing or clearing the
// per-question error. Returns true when the answer passes.
func (s *Session) validateLocked(q domains.QuestionConfig) bool {
	if msg := validateAnswer(q, s.answers[q.ID]); msg != "" {
		s.errs[q.ID] = msg
		return false
	}
	delete(s.errs, q.ID)
	return true
}

func validateAnswer(q domains.QuestionConfig, answer any) string {
	if q.Required {
		switch v := answer.(type) {
		case nil:
			return msgRequired
		case string:
			if v == "" {
				return msgRequired
			}
		case []any:
			if len(v) == 0 {
				return msgSelectOne
			}
		case []string:
			if len(v) == 0 {
				return msgSelectOne
			}
		}
	}

	text, _ := answer.(string)
	if text == "" {
		return ""
	}

	switch q.Type {
	case domains.QuestionEmail:
		if !emailPattern.MatchString(text) {
			return msgInvalidEmail
		}
	case domains.QuestionURL:
		if u, err := url.Parse(text); err != nil || u.Scheme == "" || u.Host == "" {
			return msgInvalidURL
		}
	case domains.QuestionPhone:
		if !phonePattern.MatchString(text) {
			return msgInvalidPhone
		}
	}
	return ""
}
