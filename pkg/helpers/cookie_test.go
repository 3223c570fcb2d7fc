package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	res := http.Response{Header: rec.Header()}
	out := map[string]*http.Cookie{}
	for _, ck := range res.Cookies() {
		out[ck.Name] = ck
	}
	return out
}

func TestAttachSetsBothCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	m := NewCookie("example.com", true)
	m.Attach(c, "access-jwt", time.Now().Add(24*time.Hour), "refresh-jwt", time.Now().Add(720*time.Hour))

	cks := cookiesByName(rec)
	access := cks[AccessTokenCookie]
	refresh := cks[RefreshTokenCookie]
	require.NotNil(t, access)
	require.NotNil(t, refresh)

	assert.Equal(t, "access-jwt", access.Value)
	assert.Equal(t, "refresh-jwt", refresh.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.True(t, access.Secure)
	assert.Greater(t, refresh.MaxAge, access.MaxAge)
}

func TestClearExpiresCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	m := NewCookie("example.com", false)
	m.Clear(c)

	cks := cookiesByName(rec)
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		ck := cks[name]
		require.NotNil(t, ck, name)
		assert.Equal(t, "logout", ck.Value)
		assert.Negative(t, ck.MaxAge)
	}
}
