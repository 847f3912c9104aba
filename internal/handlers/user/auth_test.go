package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"neroli_back_end/internal/models"
	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeUserStore simule la collection users pour Signup/Login.
type fakeUserStore struct {
	byEmail map[string]models.User
	inserts []models.User
}

func useFakeUserStore(t *testing.T) *fakeUserStore {
	t.Helper()
	store := &fakeUserStore{byEmail: map[string]models.User{}}

	origFind, origInsert := findLocalUserByEmail, insertUser
	findLocalUserByEmail = func(_ context.Context, email string) (models.User, error) {
		if u, ok := store.byEmail[email]; ok {
			return u, nil
		}
		return models.User{}, mongo.ErrNoDocuments
	}
	insertUser = func(_ context.Context, user models.User) error {
		store.byEmail[user.Email] = user
		store.inserts = append(store.inserts, user)
		return nil
	}
	t.Cleanup(func() { findLocalUserByEmail, insertUser = origFind, origInsert })

	return store
}

func performSignup(t *testing.T, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/auth/signup", Signup)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup_NewAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	store := useFakeUserStore(t)

	w := performSignup(t, gin.H{
		"name":     "Camille",
		"email":    "camille@example.com",
		"password": "fleur-d-oranger",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.inserts, 1)

	created := store.inserts[0]
	assert.Equal(t, "local", created.Provider)
	assert.Equal(t, "user", created.Role)
	// Le mot de passe est stocké hashé, jamais en clair
	assert.NotEqual(t, "fleur-d-oranger", created.Password)
	assert.True(t, utils.CheckPassword("fleur-d-oranger", created.Password))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	store := useFakeUserStore(t)

	hash, err := utils.HashPassword("fleur-d-oranger")
	require.NoError(t, err)
	store.byEmail["camille@example.com"] = models.User{
		ID:       primitive.NewObjectID(),
		Email:    "camille@example.com",
		Password: hash,
		Provider: "local",
	}

	w := performSignup(t, gin.H{
		"name":     "Camille",
		"email":    "camille@example.com",
		"password": "autre-mot-de-passe",
	})

	// 409 et aucun second compte créé
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, store.inserts)
	assert.Contains(t, w.Body.String(), "existe déjà")
}

func TestSignup_PasswordTooShort(t *testing.T) {
	store := useFakeUserStore(t)

	w := performSignup(t, gin.H{
		"name":     "Camille",
		"email":    "camille@example.com",
		"password": "court",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.inserts)
}
