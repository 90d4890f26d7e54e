package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreatesCookieForNewClient(t *testing.T) {
	store := session.NewMemoryStore()

	var got *session.Session
	handler := Session(store, "sf_session", time.Hour, zerolog.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionFromContext(r.Context())
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.NotNil(t, got)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sf_session", cookies[0].Name)
	assert.Equal(t, got.ID(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionFlushesDirtySession(t *testing.T) {
	store := session.NewMemoryStore()

	handler := Session(store, "sf_session", time.Hour, zerolog.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			require.NoError(t, sess.Set("greeting", "hello"))
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	loaded, err := store.Load(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	var greeting string
	ok, err := loaded.Get("greeting", &greeting)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", greeting)
}

func TestSessionDoesNotFlushCleanSession(t *testing.T) {
	store := session.NewMemoryStore()

	handler := Session(store, "sf_session", time.Hour, zerolog.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	loaded, err := store.Load(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionRestoresExistingSession(t *testing.T) {
	store := session.NewMemoryStore()

	existing := session.New()
	require.NoError(t, existing.Set("greeting", "hello"))
	require.NoError(t, store.Save(context.Background(), existing))

	var got *session.Session
	handler := Session(store, "sf_session", time.Hour, zerolog.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = SessionFromContext(r.Context())
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sf_session", Value: existing.ID()})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.NotNil(t, got)
	assert.Equal(t, existing.ID(), got.ID())

	var greeting string
	ok, err := got.Get("greeting", &greeting)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", greeting)

	// No new cookie for a known session.
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionUnknownCookieStartsFresh(t *testing.T) {
	store := session.NewMemoryStore()

	handler := Session(store, "sf_session", time.Hour, zerolog.Nop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sf_session", Value: "expired-or-bogus"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "expired-or-bogus", cookies[0].Value)
}
