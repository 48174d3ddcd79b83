package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foxform/internal/domains"
	"foxform/internal/player"
	"foxform/internal/service"
	"foxform/internal/storage/memory"
	"foxform/internal/upload"
)

const testSecret = "test-secret"

type testEnv struct {
	router *mux.Router
	store  *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	forms := service.NewFormService(store, "http://localhost:3000")
	responses := service.NewResponseService(store, store)
	sessions := player.NewManager(responses, time.Minute)

	router := Router(Deps{
		Forms:     forms,
		Responses: responses,
		Sessions:  sessions,
		Uploads:   upload.NewStore("", "/uploads", 10),
		JWTSecret: testSecret,
	})
	return &testEnv{router: router, store: store}
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken(t, userID))
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func (e *testEnv) createForm(t *testing.T, userID string, payload domains.FormCreate) domains.Form {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/forms", userID, payload)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[domains.Form](t, rr)
}

func TestFormRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/forms", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/forms", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFormCRUD(t *testing.T) {
	env := newTestEnv(t)

	form := env.createForm(t, "u1", domains.FormCreate{Title: "Feedback"})
	assert.Equal(t, "Feedback", form.Title)
	assert.Equal(t, domains.StatusDraft, form.Status)

	rr := env.do(t, http.MethodGet, "/api/forms", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	forms := decodeBody[[]domains.Form](t, rr)
	require.Len(t, forms, 1)

	rr = env.do(t, http.MethodGet, "/api/forms/"+form.ID, "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// Another user cannot see it.
	rr = env.do(t, http.MethodGet, "/api/forms/"+form.ID, "u2", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodPatch, "/api/forms/"+form.ID, "u1", map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Renamed", decodeBody[domains.Form](t, rr).Title)

	rr = env.do(t, http.MethodDelete, "/api/forms/"+form.ID, "u1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/forms/"+form.ID, "u1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestQuestionEditingRoutes(t *testing.T) {
	env := newTestEnv(t)
	form := env.createForm(t, "u1", domains.FormCreate{Title: "Quiz"})

	rr := env.do(t, http.MethodPost, "/api/forms/"+form.ID+"/questions", "u1", addQuestionRequest{Type: domains.QuestionShortText})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeBody[struct {
		Question domains.QuestionConfig `json:"question"`
		Form     domains.Form           `json:"form"`
	}](t, rr)
	require.Len(t, created.Form.Questions, 1)
	qid := created.Question.ID

	rr = env.do(t, http.MethodPost, "/api/forms/"+form.ID+"/questions", "u1", addQuestionRequest{Type: "telepathy"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPatch, "/api/forms/"+form.ID+"/questions/"+qid, "u1", map[string]any{"title": "Your name?"})
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decodeBody[domains.Form](t, rr)
	q, ok := updated.Question(qid)
	require.True(t, ok)
	assert.Equal(t, "Your name?", q.Title)

	rr = env.do(t, http.MethodPatch, "/api/forms/"+form.ID+"/questions/missing", "u1", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/forms/"+form.ID+"/questions/"+qid, "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeBody[domains.Form](t, rr).Questions)
}

func TestReorderRoute(t *testing.T) {
	env := newTestEnv(t)
	form := env.createForm(t, "u1", domains.FormCreate{
		Title: "Quiz",
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionShortText, Title: "One"},
			{ID: "q2", Type: domains.QuestionShortText, Title: "Two"},
		},
	})

	rr := env.do(t, http.MethodPut, "/api/forms/"+form.ID+"/questions/reorder", "u1", reorderRequest{
		Questions: []domains.QuestionConfig{form.Questions[1], form.Questions[0]},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "q2", decodeBody[domains.Form](t, rr).Questions[0].ID)

	rr = env.do(t, http.MethodPut, "/api/forms/"+form.ID+"/questions/reorder", "u1", reorderRequest{
		Questions: []domains.QuestionConfig{form.Questions[0]},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPublishAndPublicAccess(t *testing.T) {
	env := newTestEnv(t)
	form := env.createForm(t, "u1", domains.FormCreate{
		Title: "Live",
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionShortText, Title: "Q", Required: true},
		},
	})

	// Not published yet.
	rr := env.do(t, http.MethodGet, "/api/f/"+form.Slug, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/forms/"+form.ID+"/publish", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/f/"+form.Slug, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, form.ID, decodeBody[domains.Form](t, rr).ID)

	rr = env.do(t, http.MethodPost, "/api/f/"+form.Slug+"/responses", "", submitRequest{
		Answers: map[string]any{"q1": "hello"},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/forms/"+form.ID+"/responses", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	responses := decodeBody[[]domains.Response](t, rr)
	require.Len(t, responses, 1)
	assert.Equal(t, "hello", responses[0].Answers["q1"])

	// Closing the form stops submissions.
	rr = env.do(t, http.MethodPost, "/api/forms/"+form.ID+"/unpublish", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = env.do(t, http.MethodPost, "/api/f/"+form.Slug+"/responses", "", submitRequest{Answers: map[string]any{"q1": "late"}})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestPublishEmptyFormRejected(t *testing.T) {
	env := newTestEnv(t)
	form := env.createForm(t, "u1", domains.FormCreate{Title: "Empty"})

	rr := env.do(t, http.MethodPost, "/api/forms/"+form.ID+"/publish", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestShareLinkAndTokenDecode(t *testing.T) {
	env := newTestEnv(t)
	form := env.createForm(t, "u1", domains.FormCreate{
		Title: "Shared",
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionShortText, Title: "Q"},
		},
	})

	rr := env.do(t, http.MethodGet, "/api/forms/"+form.ID+"/share-link", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	link := decodeBody[shareLinkResponse](t, rr)
	require.NotEmpty(t, link.Token)
	assert.Contains(t, link.URL, "/s/"+link.Token)

	rr = env.do(t, http.MethodGet, "/api/s/"+link.Token, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decoded := decodeBody[domains.Form](t, rr)
	assert.Equal(t, domains.SharedFormID, decoded.ID)
	assert.Equal(t, "Shared", decoded.Title)

	rr = env.do(t, http.MethodGet, "/api/s/not!!!a-token", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlayerSessionFlow(t *testing.T) {
	env := newTestEnv(t)
	form := env.createForm(t, "u1", domains.FormCreate{
		Title: "Playable",
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionShortText, Title: "Name", Required: true},
			{ID: "q2", Type: domains.QuestionEmail, Title: "Email"},
		},
	})
	rr := env.do(t, http.MethodPost, "/api/forms/"+form.ID+"/publish", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/play", "", createSessionRequest{Slug: form.Slug})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	snap := decodeBody[player.Snapshot](t, rr)
	require.NotEmpty(t, snap.SessionID)
	assert.Equal(t, player.StateActive, snap.State)
	assert.Equal(t, 0, snap.Index)

	sid := snap.SessionID

	// Required question blocks the advance.
	rr = env.do(t, http.MethodPost, fmt.Sprintf("/api/play/%s/advance", sid), "", advanceRequest{})
	require.Equal(t, http.StatusOK, rr.Code)
	snap = decodeBody[player.Snapshot](t, rr)
	assert.Equal(t, 0, snap.Index)
	assert.Contains(t, snap.Errors, "q1")

	rr = env.do(t, http.MethodPost, fmt.Sprintf("/api/play/%s/answers", sid), "", answerRequest{QuestionID: "q1", Value: "Jane"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPost, fmt.Sprintf("/api/play/%s/advance", sid), "", advanceRequest{})
	require.Equal(t, http.StatusOK, rr.Code)
	snap = decodeBody[player.Snapshot](t, rr)
	require.Equal(t, 1, snap.Index)

	rr = env.do(t, http.MethodPost, fmt.Sprintf("/api/play/%s/retreat", sid), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeBody[player.Snapshot](t, rr).Index)

	rr = env.do(t, http.MethodPost, fmt.Sprintf("/api/play/%s/advance", sid), "", advanceRequest{})
	require.Equal(t, http.StatusOK, rr.Code)

	// Advancing off the last question submits.
	rr = env.do(t, http.MethodPost, fmt.Sprintf("/api/play/%s/advance", sid), "", advanceRequest{})
	require.Equal(t, http.StatusOK, rr.Code)
	snap = decodeBody[player.Snapshot](t, rr)
	assert.Equal(t, player.StateSubmitted, snap.State)
	assert.NotEmpty(t, snap.ThankYouMessage)

	rr = env.do(t, http.MethodGet, "/api/forms/"+form.ID+"/responses", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	responses := decodeBody[[]domains.Response](t, rr)
	require.Len(t, responses, 1)
	assert.Equal(t, "Jane", responses[0].Answers["q1"])
}

func TestPlayerSessionFromToken(t *testing.T) {
	env := newTestEnv(t)
	form := env.createForm(t, "u1", domains.FormCreate{
		Title: "Tokened",
		Questions: []domains.QuestionConfig{
			{ID: "q1", Type: domains.QuestionShortText, Title: "Q"},
		},
	})

	rr := env.do(t, http.MethodGet, "/api/forms/"+form.ID+"/share-link", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	link := decodeBody[shareLinkResponse](t, rr)

	rr = env.do(t, http.MethodPost, "/api/play", "", createSessionRequest{Token: link.Token})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	sid := decodeBody[player.Snapshot](t, rr).SessionID

	rr = env.do(t, http.MethodPost, fmt.Sprintf("/api/play/%s/advance", sid), "", advanceRequest{})
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decodeBody[player.Snapshot](t, rr)
	assert.Equal(t, player.StateSubmitted, snap.State)
}

func TestPlayerSessionErrors(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/play", "", createSessionRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/play", "", createSessionRequest{Slug: "nope"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/play/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// A published form with zero questions cannot start a session.
	form := env.createForm(t, "u1", domains.FormCreate{
		Title:     "Empty",
		Questions: []domains.QuestionConfig{{ID: "q1", Type: domains.QuestionShortText, Title: "Q"}},
	})
	rr = env.do(t, http.MethodPost, "/api/forms/"+form.ID+"/publish", "u1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = env.do(t, http.MethodPatch, "/api/forms/"+form.ID, "u1", map[string]any{"questions": []any{}})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/play", "", createSessionRequest{Slug: form.Slug})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCatalogRoutes(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/themes", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	themes := decodeBody[[]map[string]any](t, rr)
	assert.Len(t, themes, 6)

	rr = env.do(t, http.MethodGet, "/api/question-types", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	types := decodeBody[[]questionTypeInfo](t, rr)
	assert.Len(t, types, 22)

	groups := map[string]bool{}
	for _, ti := range types {
		groups[ti.Group] = true
	}
	assert.Equal(t, map[string]bool{"answerable": true, "flow": true, "content": true}, groups)
}

func TestUploadNotConfigured(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/upload/status", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	status := decodeBody[uploadNotConfigured](t, rr)
	assert.False(t, status.Configured)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
