package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliosmart/bibliosmart/internal/config"
	"github.com/bibliosmart/bibliosmart/internal/storage"
)

func setupSessionRouter(t *testing.T) (*gin.Engine, *SessionManager, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_sessions_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := storage.NewDatabase(dbPath)
	require.NoError(t, err)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	sm, err := NewSessionManager(sqlDB, config.Auth{
		Mode:            config.AuthModeLocal,
		SessionLifetime: time.Hour,
		SecureCookies:   false,
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(sm.SessionLoadSave())

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, sm, cleanup
}

func TestSessionLoadSave_RoundTrip(t *testing.T) {
	router, sm, cleanup := setupSessionRouter(t)
	defer cleanup()

	router.POST("/put", func(c *gin.Context) {
		sm.Put(c.Request.Context(), "value", "stored")
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	router.GET("/get", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"value": sm.GetString(c.Request.Context(), "value")})
	})

	// A modified session sets the cookie on the way out
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/put", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sm.Cookie.Name, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	// The next request with that cookie sees the stored value
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/get", nil)
	req.AddCookie(cookies[0])
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stored")
}

func TestSessionLoadSave_NoCookieWithoutSessionUse(t *testing.T) {
	router, _, cleanup := setupSessionRouter(t)
	defer cleanup()

	router.GET("/plain", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/plain", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())
}
