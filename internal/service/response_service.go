package service

import (
	"context"
	"errors"
	"fmt"

	"foxform/internal/domains"
	"foxform/internal/storage"
)

type ResponseService struct {
	forms     ResponseFormProvider
	responses ResponseProvider
}

type ResponseFormProvider interface {
	GetFormByID(ctx context.Context, id string) (domains.Form, error)
	GetFormBySlug(ctx context.Context, slug string, status domains.FormStatus) (domains.Form, error)
}

type ResponseProvider interface {
	CreateResponse(ctx context.Context, payload domains.ResponseCreate) (domains.Response, error)
	ListResponsesByForm(ctx context.Context, formID string) ([]domains.Response, error)
}

func NewResponseService(forms ResponseFormProvider, responses ResponseProvider) *ResponseService {
	return &ResponseService{forms: forms, responses: responses}
}

// CreateResponse accepts a completed traversal. Forms loaded from the store
// must still be published at submission time; token-decoded shared forms have
// no store row and are accepted as-is.
func (s *ResponseService) CreateResponse(ctx context.Context, payload domains.ResponseCreate) (domains.Response, error) {
	if payload.FormID != domains.SharedFormID {
		form, err := s.forms.GetFormByID(ctx, payload.FormID)
		if err != nil {
			return domains.Response{}, err
		}
		if form.Status != domains.StatusPublished {
			return domains.Response{}, ErrNotAccepting
		}
	}

	resp, err := s.responses.CreateResponse(ctx, payload)
	if err != nil {
		return domains.Response{}, fmt.Errorf("store response: %w", err)
	}
	return resp, nil
}

// SubmitBySlug is the direct (non-session) submission path.
func (s *ResponseService) SubmitBySlug(ctx context.Context, slug string, answers map[string]any) (domains.Response, error) {
	form, err := s.forms.GetFormBySlug(ctx, slug, domains.StatusPublished)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domains.Response{}, ErrNotAccepting
		}
		return domains.Response{}, err
	}
	return s.CreateResponse(ctx, domains.ResponseCreate{FormID: form.ID, Answers: answers})
}

// ListResponses returns a form's responses newest-first, owner-checked.
func (s *ResponseService) ListResponses(ctx context.Context, userID, formID string) ([]domains.Response, error) {
	form, err := s.forms.GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.UserID != userID {
		return nil, ErrForbidden
	}
	return s.responses.ListResponsesByForm(ctx, formID)
}
