// Package memory is the in-memory form/response store: the stand-in for a
// real database during local development and in tests. Same contract as the
// Postgres providers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"foxform/internal/domains"
	"foxform/internal/storage"
)

type Store struct {
	mu        sync.RWMutex
	forms     map[string]domains.Form
	responses map[string]domains.Response
}

func NewStore() *Store {
	return &Store{
		forms:     make(map[string]domains.Form),
		responses: make(map[string]domains.Response),
	}
}

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func (s *Store) CreateForm(_ context.Context, form domains.Form) (domains.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if form.ID == "" {
		form.ID = newID()
	}
	if form.Status == "" {
		form.Status = domains.StatusDraft
	}
	if form.Theme == "" {
		form.Theme = domains.ThemeMinimal
	}
	if form.ThankYouMessage == "" {
		form.ThankYouMessage = domains.DefaultThankYouMessage
	}
	if form.Questions == nil {
		form.Questions = []domains.QuestionConfig{}
	}
	form.CreatedAt = now
	form.UpdatedAt = now

	s.forms[form.ID] = form
	return form, nil
}

func (s *Store) UpdateForm(_ context.Context, id string, update domains.FormUpdate) (domains.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.forms[id]
	if !ok {
		return domains.Form{}, storage.ErrNotFound
	}

	if update.Title != nil {
		form.Title = *update.Title
	}
	if update.Description != nil {
		form.Description = *update.Description
	}
	if update.Slug != nil {
		form.Slug = *update.Slug
	}
	if update.Status != nil {
		form.Status = *update.Status
	}
	if update.Theme != nil {
		form.Theme = *update.Theme
	}
	if update.Questions != nil {
		form.Questions = *update.Questions
	}
	if update.ThankYouMessage != nil {
		form.ThankYouMessage = *update.ThankYouMessage
	}
	form.UpdatedAt = time.Now().UTC()

	s.forms[id] = form
	return form, nil
}

func (s *Store) GetFormByID(_ context.Context, id string) (domains.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	form, ok := s.forms[id]
	if !ok {
		return domains.Form{}, storage.ErrNotFound
	}
	return form, nil
}

// GetFormBySlug searches all forms. An empty status matches any status.
func (s *Store) GetFormBySlug(_ context.Context, slug string, status domains.FormStatus) (domains.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, form := range s.forms {
		if form.Slug == slug && (status == "" || form.Status == status) {
			return form, nil
		}
	}
	return domains.Form{}, storage.ErrNotFound
}

func (s *Store) ListFormsByUser(_ context.Context, userID string) ([]domains.Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domains.Form
	for _, form := range s.forms {
		if form.UserID == userID {
			out = append(out, form)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteForm removes a form and every response submitted to it.
func (s *Store) DeleteForm(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.forms[id]; !ok {
		return false, nil
	}
	for respID, resp := range s.responses {
		if resp.FormID == id {
			delete(s.responses, respID)
		}
	}
	delete(s.forms, id)
	return true, nil
}

func (s *Store) CreateResponse(_ context.Context, payload domains.ResponseCreate) (domains.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := payload.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	resp := domains.Response{
		ID:          newID(),
		FormID:      payload.FormID,
		Answers:     answers,
		SubmittedAt: time.Now().UTC(),
	}
	s.responses[resp.ID] = resp
	return resp, nil
}

// ListResponsesByForm returns responses newest-first.
func (s *Store) ListResponsesByForm(_ context.Context, formID string) ([]domains.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domains.Response
	for _, resp := range s.responses {
		if resp.FormID == formID {
			out = append(out, resp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (s *Store) DeleteResponse(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.responses[id]; !ok {
		return false, nil
	}
	delete(s.responses, id)
	return true, nil
}
