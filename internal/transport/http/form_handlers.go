package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"foxform/internal/domains"
	"foxform/internal/httpx"
)

type FormHandlers struct {
	service   FormServices
	responses ResponseListServices
}

type FormServices interface {
	CreateForm(ctx context.Context, userID string, payload domains.FormCreate) (domains.Form, error)
	GetForm(ctx context.Context, userID, formID string) (domains.Form, error)
	ListForms(ctx context.Context, userID string) ([]domains.Form, error)
	UpdateForm(ctx context.Context, userID, formID string, update domains.FormUpdate) (domains.Form, error)
	DeleteForm(ctx context.Context, userID, formID string) error
	Publish(ctx context.Context, userID, formID string) (domains.Form, error)
	Unpublish(ctx context.Context, userID, formID string) (domains.Form, error)
	ShareLink(ctx context.Context, userID, formID string) (token, url string, err error)
	AddQuestion(ctx context.Context, userID, formID string, qtype domains.QuestionType) (domains.QuestionConfig, domains.Form, error)
	UpdateQuestion(ctx context.Context, userID, formID, questionID string, patch domains.QuestionPatch) (domains.Form, error)
	DeleteQuestion(ctx context.Context, userID, formID, questionID string) (domains.Form, error)
	ReorderQuestions(ctx context.Context, userID, formID string, newOrder []domains.QuestionConfig) (domains.Form, error)
}

type ResponseListServices interface {
	ListResponses(ctx context.Context, userID, formID string) ([]domains.Response, error)
}

func NewFormHandlers(service FormServices, responses ResponseListServices) *FormHandlers {
	return &FormHandlers{service: service, responses: responses}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
	}
	return user, ok
}

func (h *FormHandlers) CreateForm(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	payload, err := httpx.ReadBody[domains.FormCreate](r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := h.service.CreateForm(r.Context(), user, payload)
	if err != nil {
		writeError(w, "CreateForm", err)
		return
	}
	slog.Info("form created", "form", form.ID, "user", user)
	httpx.JSON(w, http.StatusCreated, form)
}

func (h *FormHandlers) ListForms(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	forms, err := h.service.ListForms(r.Context(), user)
	if err != nil {
		writeError(w, "ListForms", err)
		return
	}
	if forms == nil {
		forms = []domains.Form{}
	}
	httpx.JSON(w, http.StatusOK, forms)
}

func (h *FormHandlers) GetForm(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	form, err := h.service.GetForm(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "GetForm", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *FormHandlers) UpdateForm(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	update, err := httpx.ReadBody[domains.FormUpdate](r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := h.service.UpdateForm(r.Context(), user, mux.Vars(r)["id"], update)
	if err != nil {
		writeError(w, "UpdateForm", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *FormHandlers) DeleteForm(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteForm(r.Context(), user, mux.Vars(r)["id"]); err != nil {
		writeError(w, "DeleteForm", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FormHandlers) Publish(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	form, err := h.service.Publish(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "Publish", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *FormHandlers) Unpublish(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	form, err := h.service.Unpublish(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "Unpublish", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *FormHandlers) ShareLink(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	token, url, err := h.service.ShareLink(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "ShareLink", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shareLinkResponse{Token: token, URL: url})
}

func (h *FormHandlers) AddQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	body, err := httpx.ReadBody[addQuestionRequest](r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, form, err := h.service.AddQuestion(r.Context(), user, mux.Vars(r)["id"], body.Type)
	if err != nil {
		writeError(w, "AddQuestion", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"question": question,
		"form":     form,
	})
}

func (h *FormHandlers) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	patch, err := httpx.ReadBody[domains.QuestionPatch](r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vars := mux.Vars(r)
	form, err := h.service.UpdateQuestion(r.Context(), user, vars["id"], vars["qid"], patch)
	if err != nil {
		writeError(w, "UpdateQuestion", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *FormHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	form, err := h.service.DeleteQuestion(r.Context(), user, vars["id"], vars["qid"])
	if err != nil {
		writeError(w, "DeleteQuestion", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *FormHandlers) ReorderQuestions(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	body, err := httpx.ReadBody[reorderRequest](r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := h.service.ReorderQuestions(r.Context(), user, mux.Vars(r)["id"], body.Questions)
	if err != nil {
		writeError(w, "ReorderQuestions", err)
		return
	}
	httpx.JSON(w, http.StatusOK, form)
}

func (h *FormHandlers) ListResponses(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	responses, err := h.responses.ListResponses(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "ListResponses", err)
		return
	}
	if responses == nil {
		responses = []domains.Response{}
	}
	httpx.JSON(w, http.StatusOK, responses)
}
