package httptransport

import (
	"errors"
	"log/slog"
	"net/http"

	"foxform/internal/builder"
	"foxform/internal/httpx"
	"foxform/internal/player"
	"foxform/internal/service"
	"foxform/internal/storage"
)

// writeError maps domain errors onto HTTP statuses; anything unexpected is
// logged and hidden behind a 500.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrForbidden):
		httpx.Error(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrNoQuestions):
		httpx.Error(w, http.StatusBadRequest, "Add at least one question before publishing")
	case errors.Is(err, service.ErrInvalidStatus):
		httpx.Error(w, http.StatusBadRequest, "Invalid status transition")
	case errors.Is(err, service.ErrNotAccepting):
		httpx.Error(w, http.StatusConflict, "This form is not accepting responses")
	case errors.Is(err, storage.ErrSlugTaken):
		httpx.Error(w, http.StatusConflict, "Slug already in use")
	case errors.Is(err, builder.ErrUnknownType):
		httpx.Error(w, http.StatusBadRequest, "Unknown question type")
	case errors.Is(err, builder.ErrQuestionMissing):
		httpx.Error(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, builder.ErrReorderMismatch):
		httpx.Error(w, http.StatusBadRequest, "Reorder must keep the same question set")
	case errors.Is(err, player.ErrNoQuestions):
		httpx.Error(w, http.StatusUnprocessableEntity, "This form has no questions yet")
	case errors.Is(err, player.ErrFinished):
		httpx.Error(w, http.StatusConflict, "This response has already been submitted")
	default:
		slog.Error(op+" failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
