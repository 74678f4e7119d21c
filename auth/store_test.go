// file: auth/store_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"catering-admin/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStoreRouter exposes save/load/clear/corrupt routes backed by a CookieStore.
func setupStoreRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(sessions.Sessions("testsession", cookie.NewStore([]byte("test-secret"))))

	router.GET("/save", func(c *gin.Context) {
		err := NewCookieStore(sessions.Default(c)).Save(models.Session{ID: "a1", Username: "asha", Email: "asha@example.com"})
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, "saved")
	})
	router.GET("/load", func(c *gin.Context) {
		s, err := NewCookieStore(sessions.Default(c)).Load()
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		if s == nil {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, s.Username)
	})
	router.GET("/clear", func(c *gin.Context) {
		_ = NewCookieStore(sessions.Default(c)).Clear()
		c.String(http.StatusOK, "cleared")
	})
	router.GET("/corrupt", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionKey, "{not json")
		_ = session.Save()
		c.String(http.StatusOK, "corrupted")
	})
	return router
}

func get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCookieStore_RoundTrip(t *testing.T) {
	router := setupStoreRouter()

	w := get(router, "/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "save writes the cookie before responding")

	assert.Equal(t, "asha", get(router, "/load", cookies).Body.String())

	w = get(router, "/clear", cookies)
	cleared := w.Result().Cookies()
	assert.Equal(t, "none", get(router, "/load", cleared).Body.String())
}

func TestCookieStore_NoSession(t *testing.T) {
	router := setupStoreRouter()
	assert.Equal(t, "none", get(router, "/load", nil).Body.String())
}

func TestCookieStore_CorruptRecordIsNone(t *testing.T) {
	router := setupStoreRouter()

	cookies := get(router, "/corrupt", nil).Result().Cookies()
	require.NotEmpty(t, cookies)

	w := get(router, "/load", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "none", w.Body.String())
}
