package httptransport

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"foxform/internal/codec"
	"foxform/internal/domains"
	"foxform/internal/httpx"
	"foxform/internal/questions"
	"foxform/internal/themes"
)

// PublicHandlers serves the respondent-facing routes: published forms, shared
// tokens, and the static theme/question catalogs. No auth.
type PublicHandlers struct {
	forms     PublishedFormSource
	responses SubmitServices
}

type PublishedFormSource interface {
	GetPublishedBySlug(ctx context.Context, slug string) (domains.Form, error)
}

type SubmitServices interface {
	SubmitBySlug(ctx context.Context, slug string, answers map[string]any) (domains.Response, error)
}

func NewPublicHandlers(forms PublishedFormSource, responses SubmitServices) *PublicHandlers {
	return &PublicHandlers{forms: forms, responses: responses}
}

func (h *PublicHandlers) GetPublishedForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.forms.GetPublishedBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, "GetPublishedForm", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *PublicHandlers) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	body, err := httpx.ReadBody[submitRequest](r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.responses.SubmitBySlug(r.Context(), mux.Vars(r)["slug"], body.Answers)
	if err != nil {
		writeError(w, "SubmitResponse", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, resp)
}

// GetSharedForm decodes a self-contained share token. The form never touches
// the store, so a bad token is the only failure mode.
func (h *PublicHandlers) GetSharedForm(w http.ResponseWriter, r *http.Request) {
	form, err := codec.Decode(mux.Vars(r)["token"])
	if err != nil {
		var derr *codec.DecodeError
		if errors.As(err, &derr) {
			httpx.Error(w, http.StatusBadRequest, "This share link is invalid or corrupted")
			return
		}
		writeError(w, "GetSharedForm", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *PublicHandlers) ListThemes(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, themes.List())
}

func (h *PublicHandlers) ListQuestionTypes(w http.ResponseWriter, _ *http.Request) {
	out := make([]questionTypeInfo, 0, len(questions.AnswerableTypes)+len(questions.FlowScreens)+len(questions.ContentScreens))
	add := func(group string, infos []questions.TypeInfo) {
		for _, info := range infos {
			out = append(out, questionTypeInfo{
				Type:        info.Type,
				Label:       info.Label,
				Description: info.Description,
				Group:       group,
			})
		}
	}
	add("answerable", questions.AnswerableTypes)
	add("flow", questions.FlowScreens)
	add("content", questions.ContentScreens)
	httpx.JSON(w, http.StatusOK, out)
}
