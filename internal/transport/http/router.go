package httptransport

import (
	"net/http"

	"github.com/gorilla/mux"

	"foxform/internal/httpx"
	"foxform/internal/player"
	"foxform/internal/service"
	"foxform/internal/upload"
)

type Deps struct {
	Forms     *service.FormService
	Responses *service.ResponseService
	Sessions  *player.Manager
	Uploads   *upload.Store
	JWTSecret string
}

func Router(deps Deps) *mux.Router {
	router := mux.NewRouter()

	formHandlers := NewFormHandlers(deps.Forms, deps.Responses)
	publicHandlers := NewPublicHandlers(deps.Forms, deps.Responses)
	playerHandlers := NewPlayerHandlers(deps.Sessions, deps.Forms)
	uploadHandlers := NewUploadHandlers(deps.Uploads)

	api := router.PathPrefix("/api").Subrouter()

	forms := api.PathPrefix("/forms").Subrouter()
	forms.Use(httpx.Protected(deps.JWTSecret))
	forms.HandleFunc("", formHandlers.CreateForm).Methods(http.MethodPost)
	forms.HandleFunc("", formHandlers.ListForms).Methods(http.MethodGet)
	forms.HandleFunc("/{id}", formHandlers.GetForm).Methods(http.MethodGet)
	forms.HandleFunc("/{id}", formHandlers.UpdateForm).Methods(http.MethodPatch)
	forms.HandleFunc("/{id}", formHandlers.DeleteForm).Methods(http.MethodDelete)
	forms.HandleFunc("/{id}/publish", formHandlers.Publish).Methods(http.MethodPost)
	forms.HandleFunc("/{id}/unpublish", formHandlers.Unpublish).Methods(http.MethodPost)
	forms.HandleFunc("/{id}/share-link", formHandlers.ShareLink).Methods(http.MethodGet)
	forms.HandleFunc("/{id}/responses", formHandlers.ListResponses).Methods(http.MethodGet)
	forms.HandleFunc("/{id}/questions", formHandlers.AddQuestion).Methods(http.MethodPost)
	forms.HandleFunc("/{id}/questions/reorder", formHandlers.ReorderQuestions).Methods(http.MethodPut)
	forms.HandleFunc("/{id}/questions/{qid}", formHandlers.UpdateQuestion).Methods(http.MethodPatch)
	forms.HandleFunc("/{id}/questions/{qid}", formHandlers.DeleteQuestion).Methods(http.MethodDelete)

	api.HandleFunc("/f/{slug}", publicHandlers.GetPublishedForm).Methods(http.MethodGet)
	api.HandleFunc("/f/{slug}/responses", publicHandlers.SubmitResponse).Methods(http.MethodPost)
	api.HandleFunc("/s/{token}", publicHandlers.GetSharedForm).Methods(http.MethodGet)
	api.HandleFunc("/themes", publicHandlers.ListThemes).Methods(http.MethodGet)
	api.HandleFunc("/question-types", publicHandlers.ListQuestionTypes).Methods(http.MethodGet)

	play := api.PathPrefix("/play").Subrouter()
	play.HandleFunc("", playerHandlers.CreateSession).Methods(http.MethodPost)
	play.HandleFunc("/{sid}", playerHandlers.GetSession).Methods(http.MethodGet)
	play.HandleFunc("/{sid}", playerHandlers.DeleteSession).Methods(http.MethodDelete)
	play.HandleFunc("/{sid}/answers", playerHandlers.Answer).Methods(http.MethodPost)
	play.HandleFunc("/{sid}/advance", playerHandlers.Advance).Methods(http.MethodPost)
	play.HandleFunc("/{sid}/retreat", playerHandlers.Retreat).Methods(http.MethodPost)

	api.HandleFunc("/upload", uploadHandlers.Upload).Methods(http.MethodPost)
	api.HandleFunc("/upload/status", uploadHandlers.Status).Methods(http.MethodGet)

	return router
}
