package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moonhaven/moonjournal-backend/config"
	"github.com/moonhaven/moonjournal-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartSessionTest(t *testing.T) (*CartSession, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	session := NewCartSession(&config.SessionConfig{
		Secret:     "test-session-secret",
		CookieName: "mj_cart",
		TTL:        time.Hour,
	})

	router := gin.New()
	router.Use(session.Attach())
	return session, router
}

func TestCartSession_NoCookie(t *testing.T) {
	_, router := setupCartSessionTest(t)

	router.GET("/probe", func(c *gin.Context) {
		_, ok := CartID(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartSession_ValidCookie(t *testing.T) {
	_, router := setupCartSessionTest(t)

	router.GET("/probe", func(c *gin.Context) {
		id, ok := CartID(c)
		assert.True(t, ok)
		assert.Equal(t, int64(42), id)
		c.Status(http.StatusOK)
	})

	token, err := util.GenerateCartToken(42, "test-session-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "mj_cart", Value: token})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartSession_TamperedCookieIsDiscarded(t *testing.T) {
	_, router := setupCartSessionTest(t)

	router.GET("/probe", func(c *gin.Context) {
		_, ok := CartID(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	token, err := util.GenerateCartToken(42, "wrong-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "mj_cart", Value: token})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Expired cookie sent back so the client drops it
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "mj_cart", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestCartSession_EnsureCartID_MintsAndReuses(t *testing.T) {
	session, router := setupCartSessionTest(t)

	var first, second int64
	router.GET("/probe", func(c *gin.Context) {
		id, err := session.EnsureCartID(c)
		require.NoError(t, err)
		first = id

		// Second call in the same request reuses the minted id
		id, err = session.EnsureCartID(c)
		require.NoError(t, err)
		second = id
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Positive(t, first)
	assert.Equal(t, first, second)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	cartID, err := util.ValidateCartToken(cookies[0].Value, "test-session-secret")
	require.NoError(t, err)
	assert.Equal(t, first, cartID)
}

func TestCartSession_EnsureCartID_KeepsExistingSession(t *testing.T) {
	session, router := setupCartSessionTest(t)

	router.GET("/probe", func(c *gin.Context) {
		id, err := session.EnsureCartID(c)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
		c.Status(http.StatusOK)
	})

	token, err := util.GenerateCartToken(42, "test-session-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "mj_cart", Value: token})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// No new cookie when the session already exists
	assert.Empty(t, w.Result().Cookies())
}
