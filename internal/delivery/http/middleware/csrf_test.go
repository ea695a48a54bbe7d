package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"heyjob-backend/internal/delivery/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCSRFMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CSRFMiddleware(false))
	r.GET("/jobs", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/jobs", func(c *gin.Context) { c.Status(http.StatusCreated) })

	post := func(setup func(*http.Request)) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		setup(req)
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("Should issue a token cookie on safe requests", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.CSRFTokenCookieName+"=")
	})

	t.Run("Should exempt bearer clients", func(t *testing.T) {
		assert.Equal(t, http.StatusCreated, post(func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer abc")
		}))
	})

	t.Run("Should reject cookie sessions without the header", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, post(func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "auth_token", Value: "jwt"})
			req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: "t1"})
		}))
	})

	t.Run("Should reject a mismatched header", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, post(func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "auth_token", Value: "jwt"})
			req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: "t1"})
			req.Header.Set(middleware.CSRFTokenHeaderName, "t2")
		}))
	})

	t.Run("Should accept a matching header", func(t *testing.T) {
		assert.Equal(t, http.StatusCreated, post(func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: "auth_token", Value: "jwt"})
			req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: "t1"})
			req.Header.Set(middleware.CSRFTokenHeaderName, "t1")
		}))
	})
}
