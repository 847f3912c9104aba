package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"neroli_back_end/internal/models"
	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAdminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/check-auth", AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.GetString("admin_id")})
	})
	return r
}

func TestAdminRequired_NoCookie(t *testing.T) {
	r := newAdminRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check-auth", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequired_InvalidToken(t *testing.T) {
	r := newAdminRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "pas-un-jwt"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequired_UserTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newAdminRouter()

	// Un token client valide ne donne jamais accès au back-office
	token, err := utils.GenerateJWT(models.User{
		ID:    primitive.NewObjectID(),
		Email: "client@example.com",
		Role:  "user",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRequired_ValidAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	r := newAdminRouter()

	token, err := utils.GenerateAdminJWT(models.Admin{
		ID:    primitive.NewObjectID(),
		Email: "admin@example.com",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin_id")
}
