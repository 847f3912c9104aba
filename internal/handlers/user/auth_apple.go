package user

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"os"

	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const appleKeysURL = "https://appleid.apple.com/auth/keys"

// AppleTokenLogin authentifie via un identity_token Sign in with Apple.
// La signature est vérifiée contre les clés publiques JWKS d'Apple,
// puis iss/aud/exp sont contrôlés — jamais de confiance aveugle au client.
func AppleTokenLogin(c *gin.Context) {
	var body struct {
		IdentityToken string `json:"identity_token"`
		Name          string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IdentityToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity_token manquant"})
		return
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(body.IdentityToken, claims, appleKeyFunc,
		jwt.WithIssuer("https://appleid.apple.com"),
		jwt.WithAudience(os.Getenv("APPLE_CLIENT_ID")),
		jwt.WithValidMethods([]string{"RS256"}),
	)
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token Apple invalide"})
		return
	}

	subject, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if subject == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token Apple incomplet"})
		return
	}

	user, err := findOrCreateOAuthUser("apple", subject, email, body.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	jwtToken, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": jwtToken, "email": user.Email, "name": user.Name})
}

// appleKeyFunc retrouve la clé RSA publique correspondant au kid du token
// dans le JWKS publié par Apple.
func appleKeyFunc(token *jwt.Token) (interface{}, error) {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("kid manquant")
	}

	resp, err := http.Get(appleKeysURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var jwks struct {
		Keys []struct {
			Kid string `json:"kid"`
			Kty string `json:"kty"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, err
	}

	for _, key := range jwks.Keys {
		if key.Kid != kid || key.Kty != "RSA" {
			continue
		}

		nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
		if err != nil {
			return nil, err
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
		if err != nil {
			return nil, err
		}

		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(new(big.Int).SetBytes(eBytes).Int64()),
		}, nil
	}

	return nil, errors.New("clé Apple introuvable pour ce kid")
}
