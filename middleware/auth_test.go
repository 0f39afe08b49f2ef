package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/monishpeddapally/hostel-management-system/models"
	"github.com/monishpeddapally/hostel-management-system/services"
)

type stubParser map[string]*services.StaffClaims

func (s stubParser) ParseToken(token string) (*services.StaffClaims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := stubParser{
		"desk": {StaffID: 3, Role: models.RoleReceptionist},
		"boss": {StaffID: 1, Role: models.RoleManager},
	}
	r := gin.New()
	r.Use(Logger(zap.NewNop()))
	secured := r.Group("", RequireAuth(tokens))
	secured.GET("/me", func(c *gin.Context) {
		id, _ := StaffID(c)
		role, _ := Role(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	secured.GET("/reports", RequireRole(models.RoleAdmin, models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doGet(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter()

	w := doGet(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error.unauthorized")

	w = doGet(r, "/me", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(r, "/me", "Basic desk")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(r, "/me", "Bearer desk")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"role":"receptionist"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newTestRouter()

	w := doGet(r, "/reports", "Bearer desk")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "error.forbidden")

	w = doGet(r, "/reports", "bearer boss")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
