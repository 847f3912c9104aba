package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"neroli_back_end/internal/database"
	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

// ================== AUTH SOCIALE (WEB) ==================

// BeginAuth démarre le flow OAuth hébergé (google ou apple).
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	ctx := context.Background()
	state := generateRandomState()
	if redirectURL := c.Query("redirect_url"); redirectURL != "" {
		_ = database.Redis.Set(ctx, "oauth_redirect:"+state, redirectURL, 10*time.Minute).Err()
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	q.Set("state", state)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flow OAuth : goth a déjà échangé le code et
// vérifié la réponse du provider, on ne lit que son résultat.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	state := c.Query("state")

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ Callback OAuth %s en échec: %v", provider, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification " + provider + " échouée"})
		return
	}

	user, err := findOrCreateOAuthUser(provider, gothUser.UserID, gothUser.Email, gothUser.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	ctx := context.Background()
	redirectURI, _ := database.Redis.Get(ctx, "oauth_redirect:"+state).Result()
	_, _ = database.Redis.Del(ctx, "oauth_redirect:"+state).Result()

	if redirectURI == "" {
		redirectURI = os.Getenv("FRONTEND_URL")
		if redirectURI == "" {
			redirectURI = "http://localhost:5173"
		}
	}

	if !isAllowedRedirect(redirectURI) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Redirect url non autorisé"})
		return
	}

	sep := "?"
	if strings.Contains(redirectURI, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURI+sep+"token="+url.QueryEscape(token))
}

func generateRandomState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func isAllowedRedirect(redirectURI string) bool {
	allowed := []string{
		"http://localhost:5173",
		"http://localhost:3000",
	}
	if front := os.Getenv("FRONTEND_URL"); front != "" {
		allowed = append(allowed, front)
	}
	for _, o := range allowed {
		if strings.HasPrefix(redirectURI, o) {
			return true
		}
	}
	return false
}
