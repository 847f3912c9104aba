package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

func performLogin(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/admin/login", Login)

	payload, err := json.Marshal(gin.H{"email": email, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func stubAdmin(t *testing.T, email, password string) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	adm := models.Admin{
		ID:       primitive.NewObjectID(),
		Name:     "Admin Néroli",
		Email:    email,
		Password: hash,
		Role:     "admin",
	}

	orig := findAdminByEmail
	findAdminByEmail = func(_ context.Context, e string) (models.Admin, error) {
		if e == email {
			return adm, nil
		}
		return models.Admin{}, errors.New("mongo: no documents in result")
	}
	t.Cleanup(func() { findAdminByEmail = orig })
}

func TestAdminLogin_CorrectPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	stubAdmin(t, "admin@maison-neroli.com", "jasmin-absolu")

	w := performLogin(t, "admin@maison-neroli.com", "jasmin-absolu")

	require.Equal(t, http.StatusOK, w.Code)

	// Le jeton est posé en cookie HttpOnly, jamais dans le corps
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_token", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, w.Body.String(), cookies[0].Value)

	claims, err := utils.ParseToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	stubAdmin(t, "admin@maison-neroli.com", "jasmin-absolu")

	w := performLogin(t, "admin@maison-neroli.com", "mauvais-mot-de-passe")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminLogin_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	stubAdmin(t, "admin@maison-neroli.com", "jasmin-absolu")

	w := performLogin(t, "inconnu@maison-neroli.com", "jasmin-absolu")

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
