package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gofrs/uuid"

	"foxform/internal/builder"
	"foxform/internal/codec"
	"foxform/internal/domains"
	"foxform/internal/storage"
	"foxform/internal/themes"
)

type FormService struct {
	provider     FormProvider
	shareBaseURL string
}

type FormProvider interface {
	CreateForm(ctx context.Context, form domains.Form) (domains.Form, error)
	UpdateForm(ctx context.Context, id string, update domains.FormUpdate) (domains.Form, error)
	GetFormByID(ctx context.Context, id string) (domains.Form, error)
	GetFormBySlug(ctx context.Context, slug string, status domains.FormStatus) (domains.Form, error)
	ListFormsByUser(ctx context.Context, userID string) ([]domains.Form, error)
	DeleteForm(ctx context.Context, id string) (bool, error)
}

func NewFormService(provider FormProvider, shareBaseURL string) *FormService {
	return &FormService{provider: provider, shareBaseURL: shareBaseURL}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugify lowers a title into URL-safe form the same way the builder's slug
// field sanitizes manual input.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugPattern.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	return s
}

func slugSuffix() string {
	return uuid.Must(uuid.NewV4()).String()[:8]
}

func validateQuestions(qs []domains.QuestionConfig) error {
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		if q.ID == "" {
			return errors.New("question id must not be empty")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

func (s *FormService) CreateForm(ctx context.Context, userID string, payload domains.FormCreate) (domains.Form, error) {
	title := payload.Title
	if title == "" {
		title = "Untitled Form"
	}

	theme := payload.Theme
	if !themes.Known(theme) {
		theme = domains.ThemeMinimal
	}

	if err := validateQuestions(payload.Questions); err != nil {
		return domains.Form{}, err
	}

	slug := Slugify(payload.Slug)
	if slug == "" {
		slug = Slugify(title)
		if slug == "" {
			slug = "form"
		}
		slug = slug + "-" + slugSuffix()
	}

	form := domains.Form{
		UserID:          userID,
		Title:           title,
		Description:     payload.Description,
		Slug:            slug,
		Status:          domains.StatusDraft,
		Theme:           theme,
		Questions:       payload.Questions,
		ThankYouMessage: payload.ThankYouMessage,
	}

	created, err := s.provider.CreateForm(ctx, form)
	if errors.Is(err, storage.ErrSlugTaken) {
		form.Slug = slug + "-" + slugSuffix()
		created, err = s.provider.CreateForm(ctx, form)
	}
	if err != nil {
		return domains.Form{}, fmt.Errorf("create form: %w", err)
	}
	return created, nil
}

// owned loads a form and checks ownership.
func (s *FormService) owned(ctx context.Context, userID, formID string) (domains.Form, error) {
	form, err := s.provider.GetFormByID(ctx, formID)
	if err != nil {
		return domains.Form{}, err
	}
	if form.UserID != userID {
		return domains.Form{}, ErrForbidden
	}
	return form, nil
}

func (s *FormService) GetForm(ctx context.Context, userID, formID string) (domains.Form, error) {
	return s.owned(ctx, userID, formID)
}

func (s *FormService) ListForms(ctx context.Context, userID string) ([]domains.Form, error) {
	return s.provider.ListFormsByUser(ctx, userID)
}

func (s *FormService) UpdateForm(ctx context.Context, userID, formID string, update domains.FormUpdate) (domains.Form, error) {
	if _, err := s.owned(ctx, userID, formID); err != nil {
		return domains.Form{}, err
	}

	// Status changes only go through Publish/Unpublish.
	update.Status = nil

	if update.Slug != nil {
		slug := Slugify(*update.Slug)
		update.Slug = &slug
	}
	if update.Theme != nil && !themes.Known(*update.Theme) {
		minimal := domains.ThemeMinimal
		update.Theme = &minimal
	}
	if update.Questions != nil {
		if err := validateQuestions(*update.Questions); err != nil {
			return domains.Form{}, err
		}
	}

	return s.provider.UpdateForm(ctx, formID, update)
}

func (s *FormService) DeleteForm(ctx context.Context, userID, formID string) error {
	if _, err := s.owned(ctx, userID, formID); err != nil {
		return err
	}
	deleted, err := s.provider.DeleteForm(ctx, formID)
	if err != nil {
		return err
	}
	if !deleted {
		return storage.ErrNotFound
	}
	return nil
}

// Publish moves a draft or closed form to published. An empty form cannot be
// published.
func (s *FormService) Publish(ctx context.Context, userID, formID string) (domains.Form, error) {
	form, err := s.owned(ctx, userID, formID)
	if err != nil {
		return domains.Form{}, err
	}
	if form.Status == domains.StatusPublished {
		return form, nil
	}
	if len(form.Questions) == 0 {
		return domains.Form{}, ErrNoQuestions
	}

	published := domains.StatusPublished
	updated, err := s.provider.UpdateForm(ctx, formID, domains.FormUpdate{Status: &published})
	if err != nil {
		return domains.Form{}, err
	}
	slog.Info("form published", "form", formID, "slug", updated.Slug)
	return updated, nil
}

// Unpublish closes a published form.
func (s *FormService) Unpublish(ctx context.Context, userID, formID string) (domains.Form, error) {
	form, err := s.owned(ctx, userID, formID)
	if err != nil {
		return domains.Form{}, err
	}
	if form.Status != domains.StatusPublished {
		return domains.Form{}, ErrInvalidStatus
	}

	closed := domains.StatusClosed
	updated, err := s.provider.UpdateForm(ctx, formID, domains.FormUpdate{Status: &closed})
	if err != nil {
		return domains.Form{}, err
	}
	slog.Info("form unpublished", "form", formID)
	return updated, nil
}

// GetPublishedBySlug is the public lookup used by the player page.
func (s *FormService) GetPublishedBySlug(ctx context.Context, slug string) (domains.Form, error) {
	return s.provider.GetFormBySlug(ctx, slug, domains.StatusPublished)
}

// ShareLink encodes a form into its URL-safe token and absolute share URL.
func (s *FormService) ShareLink(ctx context.Context, userID, formID string) (token, url string, err error) {
	form, err := s.owned(ctx, userID, formID)
	if err != nil {
		return "", "", err
	}
	token, err = codec.Encode(form)
	if err != nil {
		return "", "", err
	}
	url, err = codec.ShareURL(form, s.shareBaseURL)
	if err != nil {
		return "", "", err
	}
	return token, url, nil
}

// Question editing goes through the builder so the server applies the same
// rules as the client-side editor.

func (s *FormService) AddQuestion(ctx context.Context, userID, formID string, qtype domains.QuestionType) (domains.QuestionConfig, domains.Form, error) {
	form, err := s.owned(ctx, userID, formID)
	if err != nil {
		return domains.QuestionConfig{}, domains.Form{}, err
	}

	b := builder.New(form)
	q, err := b.AddQuestion(qtype)
	if err != nil {
		return domains.QuestionConfig{}, domains.Form{}, err
	}
	saved, err := b.Save(ctx, s.provider)
	if err != nil {
		return domains.QuestionConfig{}, domains.Form{}, err
	}
	return q, saved, nil
}

func (s *FormService) UpdateQuestion(ctx context.Context, userID, formID, questionID string, patch domains.QuestionPatch) (domains.Form, error) {
	form, err := s.owned(ctx, userID, formID)
	if err != nil {
		return domains.Form{}, err
	}

	b := builder.New(form)
	if _, err := b.UpdateQuestion(questionID, patch); err != nil {
		return domains.Form{}, err
	}
	return b.Save(ctx, s.provider)
}

func (s *FormService) DeleteQuestion(ctx context.Context, userID, formID, questionID string) (domains.Form, error) {
	form, err := s.owned(ctx, userID, formID)
	if err != nil {
		return domains.Form{}, err
	}

	b := builder.New(form)
	if err := b.DeleteQuestion(questionID); err != nil {
		return domains.Form{}, err
	}
	return b.Save(ctx, s.provider)
}

func (s *FormService) ReorderQuestions(ctx context.Context, userID, formID string, newOrder []domains.QuestionConfig) (domains.Form, error) {
	form, err := s.owned(ctx, userID, formID)
	if err != nil {
		return domains.Form{}, err
	}

	b := builder.New(form)
	if err := b.Reorder(newOrder); err != nil {
		return domains.Form{}, err
	}
	return b.Save(ctx, s.provider)
}
