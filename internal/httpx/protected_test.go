package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(secret string) (*mux.Router, *string) {
	var seen string
	router := mux.NewRouter()
	router.Use(Protected(secret))
	router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return router, &seen
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestProtectedAcceptsValidToken(t *testing.T) {
	router, seen := protectedRouter("s3cret")

	token := signed(t, "s3cret", jwt.MapClaims{"sub": "user-42", "exp": time.Now().Add(time.Hour).Unix()})
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-42", *seen)
}

func TestProtectedRejectsBadTokens(t *testing.T) {
	router, _ := protectedRouter("s3cret")

	cases := map[string]string{
		"missing header": "",
		"wrong secret":   "Bearer " + signed(t, "other", jwt.MapClaims{"sub": "u"}),
		"no subject":     "Bearer " + signed(t, "s3cret", jwt.MapClaims{"aud": "x"}),
		"garbage":        "Bearer nope",
		"no bearer":      signed(t, "s3cret", jwt.MapClaims{"sub": "u"}),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestUserIDFromContextEmpty(t *testing.T) {
	_, ok := UserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
