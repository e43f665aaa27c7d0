package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-trip-booking/internal/domain"
)

type stubValidator struct {
	user domain.User
	err  error
}

func (s *stubValidator) CurrentUser(_ context.Context, _ string) (domain.User, error) {
	return s.user, s.err
}

func validatedUser(t *testing.T) domain.User {
	t.Helper()
	email, err := domain.NewEmail("ana@example.com")
	require.NoError(t, err)
	password, err := domain.NewPassword("sunset2026")
	require.NoError(t, err)
	u, err := domain.NewUser("anasilva", email, password, "Ana", "Silva")
	require.NoError(t, err)
	return u
}

func TestAuth_MissingHeader(t *testing.T) {
	h := Auth(&stubValidator{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	h := Auth(&stubValidator{err: domain.ErrUnauthorized})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer bogus")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_InjectsUser(t *testing.T) {
	user := validatedUser(t)
	var seen domain.User
	h := Auth(&stubValidator{user: user})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer good-token")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.True(t, seen.Equals(user))
}
