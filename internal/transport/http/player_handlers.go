package httptransport

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"foxform/internal/codec"
	"foxform/internal/domains"
	"foxform/internal/httpx"
	"foxform/internal/player"
)

// PlayerHandlers exposes the server-driven traversal engine. A session is
// created from either a published slug or a share token, then stepped with
// answer/advance/retreat calls until it submits.
type PlayerHandlers struct {
	manager *player.Manager
	forms   PublishedFormSource
}

func NewPlayerHandlers(manager *player.Manager, forms PublishedFormSource) *PlayerHandlers {
	return &PlayerHandlers{manager: manager, forms: forms}
}

func (h *PlayerHandlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := httpx.ReadBody[createSessionRequest](r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var form domains.Form
	switch {
	case body.Token != "":
		form, err = codec.Decode(body.Token)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "This share link is invalid or corrupted")
			return
		}
	case body.Slug != "":
		form, err = h.forms.GetPublishedBySlug(r.Context(), body.Slug)
		if err != nil {
			writeError(w, "CreateSession", err)
			return
		}
	default:
		httpx.Error(w, http.StatusBadRequest, "Provide a slug or a share token")
		return
	}

	session, err := h.manager.Create(form)
	if err != nil {
		writeError(w, "CreateSession", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, session.Snapshot())
}

func (h *PlayerHandlers) session(w http.ResponseWriter, r *http.Request) (*player.Session, bool) {
	s, ok := h.manager.Get(mux.Vars(r)["sid"])
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Session not found or expired")
	}
	return s, ok
}

func (h *PlayerHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, s.Snapshot())
}

func (h *PlayerHandlers) Answer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	body, err := httpx.ReadBody[answerRequest](r)
	if err != nil || body.QuestionID == "" {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.Answer(body.QuestionID, body.Value); err != nil {
		writeError(w, "Answer", err)
		return
	}
	httpx.JSON(w, http.StatusOK, s.Snapshot())
}

func (h *PlayerHandlers) Advance(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var skip bool
	if r.ContentLength > 0 {
		body, err := httpx.ReadBody[advanceRequest](r)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		skip = body.SkipValidation
	}

	snap, err := s.Advance(r.Context(), skip)
	if err != nil {
		var serr *player.SubmissionError
		if errors.As(err, &serr) {
			httpx.Error(w, http.StatusBadGateway, "Failed to submit response")
			return
		}
		writeError(w, "Advance", err)
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}

func (h *PlayerHandlers) Retreat(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := s.Retreat()
	if err != nil {
		writeError(w, "Retreat", err)
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}

func (h *PlayerHandlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.manager.Remove(mux.Vars(r)["sid"])
	w.WriteHeader(http.StatusNoContent)
}
