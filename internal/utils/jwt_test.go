package utils

import (
	"testing"

	"neroli_back_end/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateJWT_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	user := models.User{ID: primitive.NewObjectID(), Email: "client@neroli.fr", Role: "user"}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), claims["user_id"])
	require.Equal(t, "client@neroli.fr", claims["email"])
	require.Equal(t, "user", claims["role"])
}

func TestGenerateAdminJWT_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	admin := models.Admin{ID: primitive.NewObjectID(), Email: "admin@neroli.fr"}
	token, err := GenerateAdminJWT(admin)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, admin.ID.Hex(), claims["admin_id"])
	require.Equal(t, "admin", claims["role"])
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	token, err := GenerateJWT(models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "autre-secret")
	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	_, err := ParseToken("pas.un.jwt")
	require.Error(t, err)
}
