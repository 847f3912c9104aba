package user

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"

	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// GoogleTokenLogin authentifie via un id_token Google.
// Le token est vérifié côté serveur auprès de Google — les champs de profil
// envoyés par le client ne sont jamais crus sur parole.
func GoogleTokenLogin(c *gin.Context) {
	var body struct {
		IDToken string `json:"id_token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_token manquant"})
		return
	}

	clientIDs := []string{
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("GOOGLE_WEB_CLIENT_ID"),
		os.Getenv("GOOGLE_IOS_CLIENT_ID"),
		os.Getenv("GOOGLE_ANDROID_CLIENT_ID"),
	}

	resp, err := http.Get("https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(body.IDToken))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification Google"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token Google invalide"})
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Audience string `json:"aud"`
		Subject  string `json:"sub"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Réponse Google illisible"})
		return
	}

	valid := false
	for _, id := range clientIDs {
		if payload.Audience == id && id != "" {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Client ID non autorisé"})
		return
	}

	user, err := findOrCreateOAuthUser("google", payload.Subject, payload.Email, payload.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "email": user.Email, "name": user.Name})
}
